// Package order owns the post-checkout order lifecycle: listing, the buyer's
// cancellation request and the owner's decision on it. Every status move is a
// compare-and-swap through the store; nothing here reads-then-writes status.
package order

import (
	"context"
	"errors"
	"fmt"

	"commerce-backend/model"

	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrNotCancelable = errors.New("order cannot be canceled")
	ErrNotDecidable  = errors.New("order has no pending cancellation request")
	ErrNotRefundable = errors.New("order is not refundable")
)

type Store interface {
	OrderByID(ctx context.Context, tenantID, orderID uint) (*model.Order, error)
	OrderForUser(ctx context.Context, tenantID, userID, orderID uint) (*model.Order, error)
	OrdersForUser(ctx context.Context, tenantID, userID uint) ([]model.Order, error)
	TransitionOrder(ctx context.Context, orderID uint, from, to model.OrderStatus) (bool, error)
	// CancelAndRestock atomically moves CANCEL_REQUESTED to CANCELED and
	// returns the reserved stock to the catalog.
	CancelAndRestock(ctx context.Context, tenantID, orderID uint) (bool, error)
}

// Notifier mirrors the payment package's fan-out contract so one producer can
// serve both.
type Notifier interface {
	OrderStatusChanged(tenantID, userID, orderID uint, status model.OrderStatus)
}

type CacheInvalidator interface {
	InvalidateOrders(ctx context.Context, tenantID, userID uint)
}

type Service struct {
	store    Store
	notifier Notifier
	cache    CacheInvalidator
	logger   *zap.Logger
}

func NewService(store Store, notifier Notifier, cache CacheInvalidator, logger *zap.Logger) *Service {
	return &Service{store: store, notifier: notifier, cache: cache, logger: logger}
}

func (s *Service) List(ctx context.Context, tenantID, userID uint) ([]model.Order, error) {
	return s.store.OrdersForUser(ctx, tenantID, userID)
}

func (s *Service) Get(ctx context.Context, tenantID, userID, orderID uint) (*model.Order, error) {
	o, err := s.store.OrderForUser(ctx, tenantID, userID, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, orderID)
	}
	return o, nil
}

// RequestCancel flags a PENDING order for cancellation. Stock is not released
// yet. While the request is open a confirming payment settles its transaction
// but does not advance the order; the owner's decision resolves it either way.
func (s *Service) RequestCancel(ctx context.Context, tenantID, userID, orderID uint) (*model.Order, error) {
	o, err := s.Get(ctx, tenantID, userID, orderID)
	if err != nil {
		return nil, err
	}

	moved, err := s.store.TransitionOrder(ctx, o.ID, model.OrderStatusPending, model.OrderStatusCancelRequested)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, fmt.Errorf("%w: order %d is %s", ErrNotCancelable, o.ID, o.Status)
	}

	s.logger.Info("cancellation requested",
		zap.Uint("tenant_id", tenantID), zap.Uint("order_id", o.ID))
	s.fanOut(ctx, o, model.OrderStatusCancelRequested)
	return s.Get(ctx, tenantID, userID, orderID)
}

// getForTenant is the owner-side lookup: any order of the tenant, whoever
// placed it.
func (s *Service) getForTenant(ctx context.Context, tenantID, orderID uint) (*model.Order, error) {
	o, err := s.store.OrderByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, orderID)
	}
	return o, nil
}

// ApproveCancel is the owner-side decision: the order goes CANCELED and its
// stock returns to the catalog atomically.
func (s *Service) ApproveCancel(ctx context.Context, tenantID, orderID uint) (*model.Order, error) {
	o, err := s.getForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	done, err := s.store.CancelAndRestock(ctx, tenantID, o.ID)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, fmt.Errorf("%w: order %d is %s", ErrNotDecidable, o.ID, o.Status)
	}

	s.logger.Info("order canceled",
		zap.Uint("tenant_id", tenantID), zap.Uint("order_id", o.ID))
	s.fanOut(ctx, o, model.OrderStatusCanceled)
	return s.getForTenant(ctx, tenantID, orderID)
}

// RejectCancel returns a CANCEL_REQUESTED order to PENDING; the payment
// window resumes where it left off.
func (s *Service) RejectCancel(ctx context.Context, tenantID, orderID uint) (*model.Order, error) {
	o, err := s.getForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	moved, err := s.store.TransitionOrder(ctx, o.ID, model.OrderStatusCancelRequested, model.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, fmt.Errorf("%w: order %d is %s", ErrNotDecidable, o.ID, o.Status)
	}

	s.fanOut(ctx, o, model.OrderStatusPending)
	return s.getForTenant(ctx, tenantID, orderID)
}

// MarkRefunded closes the money loop on a CANCELED order once the tenant has
// returned the funds out of band.
func (s *Service) MarkRefunded(ctx context.Context, tenantID, orderID uint) (*model.Order, error) {
	o, err := s.getForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	moved, err := s.store.TransitionOrder(ctx, o.ID, model.OrderStatusCanceled, model.OrderStatusRefunded)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, fmt.Errorf("%w: order %d is %s", ErrNotRefundable, o.ID, o.Status)
	}

	s.logger.Info("order refunded",
		zap.Uint("tenant_id", tenantID), zap.Uint("order_id", o.ID))
	s.fanOut(ctx, o, model.OrderStatusRefunded)
	return s.getForTenant(ctx, tenantID, orderID)
}

func (s *Service) fanOut(ctx context.Context, o *model.Order, status model.OrderStatus) {
	if s.notifier != nil {
		s.notifier.OrderStatusChanged(o.TenantID, o.UserID, o.ID, status)
	}
	if s.cache != nil {
		s.cache.InvalidateOrders(ctx, o.TenantID, o.UserID)
	}
}
