package controller

import (
	"errors"
	"time"

	"commerce-backend/cart"
	"commerce-backend/checkout"
	"commerce-backend/kafka"
	"commerce-backend/metrics"
	"commerce-backend/middleware"
	"commerce-backend/model"
	"commerce-backend/payment"
	"commerce-backend/pricing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Checkout *checkout.Service
	Carts    *cart.Service
	Payments *payment.Orchestrator
	Producer *kafka.Producer
	Cache    payment.CacheInvalidator
	Logger   *zap.Logger
}

type checkoutBody struct {
	Lines          []checkout.LineRequest `json:"lines"`
	CurrencyID     uint                   `json:"currencyId"`
	PaymentMethod  string                 `json:"paymentMethod"`
	CouponCode     string                 `json:"couponCode"`
	StrictCoupon   bool                   `json:"strictCoupon"`
	ShippingMethod string                 `json:"shippingMethod"`
	Address        *model.AddressSnapshot `json:"shippingAddress"`
}

// buildRequest resolves the request lines: sent explicitly, or taken from the
// caller's ACTIVE cart when omitted. Cart checkouts convert the cart on
// success.
func (cc *CheckoutController) buildRequest(c *fiber.Ctx, body checkoutBody) (checkout.Request, error) {
	req := checkout.Request{
		TenantID:       middleware.TenantID(c),
		UserID:         middleware.UserID(c),
		Lines:          body.Lines,
		CurrencyID:     body.CurrencyID,
		PaymentMethod:  body.PaymentMethod,
		CouponCode:     body.CouponCode,
		StrictCoupon:   body.StrictCoupon,
		ShippingMethod: body.ShippingMethod,
		Address:        body.Address,
	}
	if len(body.Lines) > 0 {
		return req, nil
	}

	crt, err := cc.Carts.GetOrCreate(c.Context(), req.TenantID, req.UserID)
	if err != nil {
		return req, err
	}
	req.CartID = crt.ID
	if req.CurrencyID == 0 {
		req.CurrencyID = crt.CurrencyID
	}
	for _, l := range crt.Lines {
		req.Lines = append(req.Lines, checkout.LineRequest{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return req, nil
}

// Quote prices the request without touching stock or creating anything.
func (cc *CheckoutController) Quote(c *fiber.Ctx) error {
	var body checkoutBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	req, err := cc.buildRequest(c, body)
	if err != nil {
		return checkoutError(c, err)
	}
	quote, err := cc.Checkout.Quote(c.Context(), req)
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(quote)
}

// Create runs the full checkout: price, reserve stock, persist the PENDING
// order, then start payment. The provider is called only after the checkout
// transaction committed.
func (cc *CheckoutController) Create(c *fiber.Ctx) error {
	var body checkoutBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	req, err := cc.buildRequest(c, body)
	if err != nil {
		return checkoutError(c, err)
	}

	started := time.Now()
	result, err := cc.Checkout.Checkout(c.Context(), req)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("rejected").Inc()
		return checkoutError(c, err)
	}
	metrics.CheckoutsTotal.WithLabelValues("accepted").Inc()
	metrics.CheckoutDuration.Observe(time.Since(started).Seconds())

	cc.Producer.OrderCreated(result.Order)
	cc.Cache.InvalidateOrders(c.Context(), req.TenantID, req.UserID)

	tx, continuation, err := cc.Payments.Start(c.Context(), req.TenantID, result.Order.ID, body.PaymentMethod)
	if err != nil {
		// the order stands either way; payment can be retried through
		// /payments/start
		metrics.PaymentsTotal.WithLabelValues(body.PaymentMethod, "failed").Inc()
		cc.Logger.Warn("initial payment attempt failed",
			zap.Uint("order_id", result.Order.ID), zap.Error(err))
		status := fiber.StatusCreated
		if errors.Is(err, payment.ErrPaymentDeclined) {
			status = fiber.StatusPaymentRequired
		}
		return c.Status(status).JSON(fiber.Map{
			"order":         result.Order,
			"quote":         result.Quote,
			"currency":      result.CurrencyCode,
			"payment_error": paymentErrorCode(err),
		})
	}
	metrics.PaymentsTotal.WithLabelValues(body.PaymentMethod, tx.Status.String()).Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":    result.Order,
		"quote":    result.Quote,
		"currency": result.CurrencyCode,
		"payment": fiber.Map{
			"transaction_id": tx.ID,
			"provider":       tx.ProviderCode,
			"reference":      tx.ProviderReference,
			"status":         tx.Status,
			"continuation":   continuation,
		},
	})
}

func paymentErrorCode(err error) string {
	switch {
	case errors.Is(err, payment.ErrPaymentDeclined):
		return "declined"
	case errors.Is(err, payment.ErrRetryWindowClosed):
		return "retry_window_closed"
	default:
		return "provider_unavailable"
	}
}

func checkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrItemUnavailable),
		errors.Is(err, checkout.ErrShippingMethodUnknown),
		errors.Is(err, pricing.ErrCouponInvalid),
		errors.Is(err, pricing.ErrNegativeTotal):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, checkout.ErrInsufficientStock),
		errors.Is(err, checkout.ErrCurrencyMismatch):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, checkout.ErrPaymentMethodDisabled):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
