package controller

import (
	"errors"

	"commerce-backend/metrics"
	"commerce-backend/middleware"
	"commerce-backend/payment"

	"github.com/gofiber/fiber/v2"
)

type PaymentController struct {
	Payments *payment.Orchestrator
}

func NewPaymentController(payments *payment.Orchestrator) *PaymentController {
	return &PaymentController{Payments: payments}
}

// Start begins a new payment attempt for a PENDING order, including retries
// after a failed one.
func (pc *PaymentController) Start(c *fiber.Ctx) error {
	var body struct {
		OrderID  uint   `json:"orderId"`
		Provider string `json:"paymentMethod"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	tx, continuation, err := pc.Payments.Start(c.Context(), middleware.TenantID(c), body.OrderID, body.Provider)
	if err != nil {
		metrics.PaymentsTotal.WithLabelValues(body.Provider, "failed").Inc()
		switch {
		case errors.Is(err, payment.ErrOrderNotPayable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, payment.ErrRetryWindowClosed):
			return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, payment.ErrMethodDisabled), errors.Is(err, payment.ErrUnknownProvider):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, payment.ErrPaymentDeclined):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "payment provider unavailable"})
		}
	}
	metrics.PaymentsTotal.WithLabelValues(body.Provider, tx.Status.String()).Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"transaction_id": tx.ID,
		"provider":       tx.ProviderCode,
		"reference":      tx.ProviderReference,
		"status":         tx.Status,
		"continuation":   continuation,
	})
}
