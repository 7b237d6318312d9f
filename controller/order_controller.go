package controller

import (
	"context"
	"errors"
	"strconv"

	"commerce-backend/cache"
	"commerce-backend/middleware"
	"commerce-backend/model"
	"commerce-backend/order"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	Orders *order.Service
	Cache  *cache.Client
}

func NewOrderController(orders *order.Service, c *cache.Client) *OrderController {
	return &OrderController{Orders: orders, Cache: c}
}

// List serves the caller's orders cache-aside: redis first, database on a
// miss, refill after.
func (oc *OrderController) List(c *fiber.Ctx) error {
	tenantID, userID := middleware.TenantID(c), middleware.UserID(c)

	if cached, err := oc.Cache.Orders(c.Context(), tenantID, userID); err == nil && cached != nil {
		return c.JSON(cached)
	}

	orders, err := oc.Orders.List(c.Context(), tenantID, userID)
	if err != nil {
		return orderError(c, err)
	}
	oc.Cache.SetOrders(c.Context(), tenantID, userID, orders)
	return c.JSON(orders)
}

func (oc *OrderController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}

	o, err := oc.Orders.Get(c.Context(), middleware.TenantID(c), middleware.UserID(c), uint(id))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(o)
}

// RequestCancel is buyer-facing: only the order's owner may flag it.
func (oc *OrderController) RequestCancel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	o, err := oc.Orders.RequestCancel(c.Context(), middleware.TenantID(c), middleware.UserID(c), uint(id))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(o)
}

func (oc *OrderController) ApproveCancel(c *fiber.Ctx) error {
	return oc.decide(c, oc.Orders.ApproveCancel)
}

func (oc *OrderController) RejectCancel(c *fiber.Ctx) error {
	return oc.decide(c, oc.Orders.RejectCancel)
}

func (oc *OrderController) MarkRefunded(c *fiber.Ctx) error {
	return oc.decide(c, oc.Orders.MarkRefunded)
}

// decide runs one owner-side lifecycle decision; routes gate these behind the
// owner role.
func (oc *OrderController) decide(c *fiber.Ctx, op func(ctx context.Context, tenantID, orderID uint) (*model.Order, error)) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	o, err := op(c.Context(), middleware.TenantID(c), uint(id))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(o)
}

func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, order.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, order.ErrNotCancelable),
		errors.Is(err, order.ErrNotDecidable),
		errors.Is(err, order.ErrNotRefundable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
