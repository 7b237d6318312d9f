package routes

import (
	"commerce-backend/controller"
	"commerce-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

type Controllers struct {
	Cart     *controller.CartController
	Checkout *controller.CheckoutController
	Payment  *controller.PaymentController
	Webhook  *controller.WebhookController
	Order    *controller.OrderController
}

func Register(app *fiber.App, ctl Controllers, jwtSecret string) {
	auth := middleware.AuthRequired(jwtSecret)
	owner := middleware.RoleRequired("owner")

	api := app.Group("/api")

	crt := api.Group("/cart")
	crt.Get("/", auth, ctl.Cart.Get)
	crt.Post("/items", auth, ctl.Cart.AddItem)
	crt.Put("/items/:id", auth, ctl.Cart.UpdateLine)
	crt.Delete("/", auth, ctl.Cart.Clear)

	api.Post("/checkout/quote", auth, ctl.Checkout.Quote)
	api.Post("/checkout", auth, ctl.Checkout.Create)

	api.Post("/payments/start", auth, ctl.Payment.Start)

	ord := api.Group("/orders")
	ord.Get("/", auth, ctl.Order.List)
	ord.Get("/:id", auth, ctl.Order.Get)
	ord.Post("/:id/cancel", auth, ctl.Order.RequestCancel)
	ord.Post("/:id/cancel/approve", auth, owner, ctl.Order.ApproveCancel)
	ord.Post("/:id/cancel/reject", auth, owner, ctl.Order.RejectCancel)
	ord.Post("/:id/refund", auth, owner, ctl.Order.MarkRefunded)

	// providers call this unauthenticated; reconciliation trusts only what it
	// can match to a known reference
	app.Post("/payments/webhook/:provider", ctl.Webhook.Receive)
}
