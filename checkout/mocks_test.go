package checkout

import (
	"context"
	"sync"

	"commerce-backend/model"
)

// mockStore implements Store for assembler tests. It tracks lock order and
// emulates the conditional decrement, and rolls written state back when the
// transaction function fails, mirroring database semantics.
type mockStore struct {
	mu sync.Mutex

	items    map[uint]*model.CatalogItem
	coupons  map[uint]*model.Coupon
	methods  map[string]*model.PaymentMethodConfig
	shipping map[string]*model.ShippingMethod
	taxRules []model.TaxRule
	currency *model.Currency

	orders         []*model.Order
	convertedCarts []uint
	lockOrder      []uint
	nextOrderID    uint

	decrementErr error
	createErr    error
}

func newMockStore() *mockStore {
	return &mockStore{
		items:       map[uint]*model.CatalogItem{},
		coupons:     map[uint]*model.Coupon{},
		methods:     map[string]*model.PaymentMethodConfig{},
		shipping:    map[string]*model.ShippingMethod{},
		currency:    &model.Currency{ID: 1, Code: "USD"},
		nextOrderID: 1,
	}
}

func (m *mockStore) addItem(it *model.CatalogItem) *mockStore {
	m.items[it.ID] = it
	return m
}

func (m *mockStore) enableMethod(code string) *mockStore {
	m.methods[code] = &model.PaymentMethodConfig{TenantID: 1, ProviderCode: code, Enabled: true}
	return m
}

func (m *mockStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// snapshot for rollback
	stocks := make(map[uint]int64, len(m.items))
	for id, it := range m.items {
		stocks[id] = it.StockQty
	}
	uses := make(map[uint]int64, len(m.coupons))
	for id, c := range m.coupons {
		uses[id] = c.UsedCount
	}
	orders := len(m.orders)
	carts := len(m.convertedCarts)

	if err := fn(m); err != nil {
		for id, qty := range stocks {
			m.items[id].StockQty = qty
		}
		for id, n := range uses {
			m.coupons[id].UsedCount = n
		}
		m.orders = m.orders[:orders]
		m.convertedCarts = m.convertedCarts[:carts]
		return err
	}
	return nil
}

func (m *mockStore) Items(_ context.Context, tenantID uint, ids []uint) ([]model.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CatalogItem
	for _, id := range ids {
		if it, ok := m.items[id]; ok && it.TenantID == tenantID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockStore) ItemForUpdate(_ context.Context, tenantID, itemID uint) (*model.CatalogItem, error) {
	m.lockOrder = append(m.lockOrder, itemID)
	return m.items[itemID], nil
}

func (m *mockStore) DecrementStock(_ context.Context, _ uint, itemID uint, qty int64) (bool, error) {
	if m.decrementErr != nil {
		return false, m.decrementErr
	}
	it, ok := m.items[itemID]
	if !ok || it.StockQty < qty {
		return false, nil
	}
	it.StockQty -= qty
	return true, nil
}

func (m *mockStore) CreateOrder(_ context.Context, o *model.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	o.ID = m.nextOrderID
	m.nextOrderID++
	m.orders = append(m.orders, o)
	return nil
}

func (m *mockStore) RedeemCoupon(_ context.Context, couponID uint) (bool, error) {
	c, ok := m.coupons[couponID]
	if !ok {
		return false, nil
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return false, nil
	}
	c.UsedCount++
	return true, nil
}

func (m *mockStore) ConvertCart(_ context.Context, cartID uint) error {
	m.convertedCarts = append(m.convertedCarts, cartID)
	return nil
}

func (m *mockStore) CouponByCode(_ context.Context, tenantID uint, code string) (*model.Coupon, error) {
	for _, c := range m.coupons {
		if c.TenantID == tenantID && c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ShippingMethodByCode(_ context.Context, _ uint, code string) (*model.ShippingMethod, error) {
	return m.shipping[code], nil
}

func (m *mockStore) TaxRules(_ context.Context, _ uint, country string) ([]model.TaxRule, error) {
	var out []model.TaxRule
	for _, r := range m.taxRules {
		if r.Country == country {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) PaymentMethod(_ context.Context, _ uint, code string) (*model.PaymentMethodConfig, error) {
	return m.methods[code], nil
}

func (m *mockStore) TenantCurrency(_ context.Context, _ uint) (*model.Currency, error) {
	return m.currency, nil
}

func (m *mockStore) CurrencyByID(_ context.Context, id uint) (*model.Currency, error) {
	if m.currency != nil && m.currency.ID == id {
		return m.currency, nil
	}
	return &model.Currency{ID: id, Code: "XXX"}, nil
}
