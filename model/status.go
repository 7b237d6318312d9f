package model

// OrderStatus is the single source of truth for an order's position in its
// lifecycle. It is never inferred from the presence of related rows.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusCancelRequested OrderStatus = "CANCEL_REQUESTED"
	OrderStatusCompleted       OrderStatus = "COMPLETED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusRefunded        OrderStatus = "REFUNDED"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusRejected || s == OrderStatusRefunded
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:         {OrderStatusCancelRequested, OrderStatusCompleted, OrderStatusRejected},
	OrderStatusCancelRequested: {OrderStatusCanceled, OrderStatusPending},
	OrderStatusCanceled:        {OrderStatusRefunded},
}

// CanTransition reports whether from -> to is a legal order state change.
// Terminal states have no outgoing edges.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentStatus tracks a single payment attempt against a provider.
type PaymentStatus string

const (
	PaymentStatusCreated        PaymentStatus = "CREATED"
	PaymentStatusRequiresAction PaymentStatus = "REQUIRES_ACTION"
	PaymentStatusOfflinePending PaymentStatus = "OFFLINE_PENDING"
	PaymentStatusPaid           PaymentStatus = "PAID"
	PaymentStatusFailed         PaymentStatus = "FAILED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// IsSettled reports whether the attempt already reached a final provider outcome.
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed
}
