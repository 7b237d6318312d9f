package controller

import (
	"errors"

	"commerce-backend/metrics"
	"commerce-backend/payment"

	"github.com/gofiber/fiber/v2"
)

// WebhookController terminates provider callbacks. The webhook URL carries
// the provider code; the payload is handed to reconciliation verbatim.
type WebhookController struct {
	Reconciler *payment.Reconciler
}

func NewWebhookController(rec *payment.Reconciler) *WebhookController {
	return &WebhookController{Reconciler: rec}
}

// Receive answers 200 for everything reconciliation absorbed, including
// replays and unknown references, so providers stop redelivering. Only a
// payload we cannot parse at all gets a 400.
func (wc *WebhookController) Receive(c *fiber.Ctx) error {
	provider := c.Params("provider")

	if err := wc.Reconciler.Reconcile(c.Context(), provider, c.Body()); err != nil {
		if errors.Is(err, payment.ErrMalformedPayload) {
			metrics.WebhooksTotal.WithLabelValues(provider, "malformed").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		metrics.WebhooksTotal.WithLabelValues(provider, "error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	metrics.WebhooksTotal.WithLabelValues(provider, "processed").Inc()
	return c.SendStatus(fiber.StatusOK)
}
