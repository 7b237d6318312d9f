package order

import (
	"context"
	"sync"

	"commerce-backend/model"
)

type memStore struct {
	mu     sync.Mutex
	orders map[uint]*model.Order
	stock  map[uint]int64 // itemID -> qty

	restocked []uint
}

func newMemStore() *memStore {
	return &memStore{orders: map[uint]*model.Order{}, stock: map[uint]int64{}}
}

func (m *memStore) add(o *model.Order) *memStore {
	m.orders[o.ID] = o
	return m
}

func (m *memStore) OrderByID(_ context.Context, tenantID, orderID uint) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) OrderForUser(_ context.Context, tenantID, userID, orderID uint) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.TenantID != tenantID || o.UserID != userID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) OrdersForUser(_ context.Context, tenantID, userID uint) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for _, o := range m.orders {
		if o.TenantID == tenantID && o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memStore) TransitionOrder(_ context.Context, orderID uint, from, to model.OrderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.Status != from || !model.CanTransition(from, to) {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (m *memStore) CancelAndRestock(_ context.Context, tenantID, orderID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.TenantID != tenantID || o.Status != model.OrderStatusCancelRequested {
		return false, nil
	}
	o.Status = model.OrderStatusCanceled
	for _, l := range o.Lines {
		m.stock[l.ItemID] += l.Quantity
		m.restocked = append(m.restocked, l.ItemID)
	}
	return true, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []model.OrderStatus
}

func (n *recordingNotifier) OrderStatusChanged(_, _, _ uint, status model.OrderStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, status)
}

type recordingCache struct {
	invalidations int
}

func (c *recordingCache) InvalidateOrders(_ context.Context, _, _ uint) {
	c.invalidations++
}
