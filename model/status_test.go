package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_LegalEdges(t *testing.T) {
	legal := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPending, OrderStatusCancelRequested},
		{OrderStatusPending, OrderStatusCompleted},
		{OrderStatusPending, OrderStatusRejected},
		{OrderStatusCancelRequested, OrderStatusCanceled},
		{OrderStatusCancelRequested, OrderStatusPending},
		{OrderStatusCanceled, OrderStatusRefunded},
	}

	for _, tc := range legal {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}
}

func TestCanTransition_TerminalStatesHaveNoExit(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending,
		OrderStatusCancelRequested,
		OrderStatusCompleted,
		OrderStatusRejected,
		OrderStatusCanceled,
		OrderStatusRefunded,
	}

	for _, from := range all {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range all {
			assert.False(t, CanTransition(from, to), "%s is terminal, %s -> %s must be rejected", from, from, to)
		}
	}
}

func TestCanTransition_NoSkipping(t *testing.T) {
	// Refund is only reachable through CANCELED, and cancel is a two-step flow.
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusRefunded))
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusCanceled))
	assert.False(t, CanTransition(OrderStatusCancelRequested, OrderStatusRefunded))
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusRefunded))
}

func TestPaymentStatus_IsSettled(t *testing.T) {
	assert.True(t, PaymentStatusPaid.IsSettled())
	assert.True(t, PaymentStatusFailed.IsSettled())
	assert.False(t, PaymentStatusCreated.IsSettled())
	assert.False(t, PaymentStatusRequiresAction.IsSettled())
	assert.False(t, PaymentStatusOfflinePending.IsSettled())
}

func TestCartRecompute(t *testing.T) {
	cart := Cart{
		Lines: []CartLine{
			{ItemID: 1, Quantity: 3, UnitPrice: 1000},
			{ItemID: 2, Quantity: 1, UnitPrice: 2500},
		},
	}
	cart.Recompute()
	assert.Equal(t, int64(5500), cart.Total)

	cart.Lines = cart.Lines[:1]
	cart.Recompute()
	assert.Equal(t, int64(3000), cart.Total)
}

func TestCatalogItemVariant(t *testing.T) {
	product := CatalogItem{Kind: ItemKindProduct, Name: "Mug", Image: "mug.png"}
	assert.Equal(t, "Mug", product.Variant().DisplayName())
	assert.Equal(t, "mug.png", product.Variant().ImageURL())

	activity := CatalogItem{
		Kind: ItemKindActivity,
		Activity: &ActivityDetail{
			Title:  "Pottery class",
			Banner: "pottery.png",
		},
	}
	assert.Contains(t, activity.Variant().DisplayName(), "Pottery class")
	assert.Equal(t, "pottery.png", activity.Variant().ImageURL())
}
