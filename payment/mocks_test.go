package payment

import (
	"context"
	"sync"
	"time"

	"commerce-backend/model"

	"gorm.io/datatypes"
)

type mockStore struct {
	mu sync.Mutex

	orders   map[uint]*model.Order
	configs  map[string]*model.PaymentMethodConfig
	txs      map[uint]*model.PaymentTransaction
	events   map[string]bool
	nextTxID uint

	orderTransitions []model.OrderStatus
}

func newPayStore() *mockStore {
	return &mockStore{
		orders:   map[uint]*model.Order{},
		configs:  map[string]*model.PaymentMethodConfig{},
		txs:      map[uint]*model.PaymentTransaction{},
		events:   map[string]bool{},
		nextTxID: 1,
	}
}

func (m *mockStore) addOrder(o *model.Order) *mockStore {
	m.orders[o.ID] = o
	return m
}

func (m *mockStore) enable(code string, cfg []byte) *mockStore {
	m.configs[code] = &model.PaymentMethodConfig{ProviderCode: code, Enabled: true, Config: datatypes.JSON(cfg)}
	return m
}

func (m *mockStore) OrderByID(_ context.Context, tenantID, orderID uint) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	return o, nil
}

func (m *mockStore) GatewayConfig(_ context.Context, _ uint, code string) (*model.PaymentMethodConfig, error) {
	return m.configs[code], nil
}

func (m *mockStore) CurrencyByID(_ context.Context, id uint) (*model.Currency, error) {
	return &model.Currency{ID: id, Code: "USD"}, nil
}

func (m *mockStore) CreateTransaction(_ context.Context, t *model.PaymentTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.nextTxID
	m.nextTxID++
	m.txs[t.ID] = t
	return nil
}

func (m *mockStore) TransactionByReference(_ context.Context, code, ref string) (*model.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.txs {
		if t.ProviderCode == code && t.ProviderReference == ref {
			return t, nil
		}
	}
	return nil, nil
}

func (m *mockStore) SettleTransaction(_ context.Context, txID uint, to model.PaymentStatus, settledAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txs[txID]
	if !ok || t.Status.IsSettled() {
		return false, nil
	}
	t.Status = to
	t.SettledAt = &settledAt
	return true, nil
}

func (m *mockStore) TransitionOrder(_ context.Context, orderID uint, from, to model.OrderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.Status != from || !model.CanTransition(from, to) {
		return false, nil
	}
	o.Status = to
	m.orderTransitions = append(m.orderTransitions, to)
	return true, nil
}

func (m *mockStore) RecordWebhookEvent(_ context.Context, e *model.WebhookEvent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.events[e.EventID] {
		return false, nil
	}
	m.events[e.EventID] = true
	return true, nil
}

// stubGateway lets orchestrator tests bypass real providers.
type stubGateway struct {
	code   string
	intent *Intent
	err    error
	parsed *Callback
}

func (g *stubGateway) Code() string {
	return g.code
}

func (g *stubGateway) CreatePayment(_ context.Context, _ Command) (*Intent, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.intent, nil
}

func (g *stubGateway) ParseCallback(_ []byte) (*Callback, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.parsed, nil
}

func stubRegistry(g Gateway) Registry {
	return Registry{g.Code(): func([]byte) (Gateway, error) { return g, nil }}
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
