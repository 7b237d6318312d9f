package cart

import (
	"context"

	"commerce-backend/model"
)

// memStore implements Store in memory for service tests.
type memStore struct {
	carts  map[uint]*model.Cart // keyed by cart id
	items  map[uint]*model.CatalogItem
	nextID uint

	SaveErr error
}

func newMemStore(items ...*model.CatalogItem) *memStore {
	m := &memStore{
		carts:  map[uint]*model.Cart{},
		items:  map[uint]*model.CatalogItem{},
		nextID: 1,
	}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memStore) ActiveCart(_ context.Context, tenantID, userID uint) (*model.Cart, error) {
	for _, c := range m.carts {
		if c.TenantID == tenantID && c.UserID == userID && c.Status == model.CartStatusActive {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateCart(_ context.Context, c *model.Cart) error {
	c.ID = m.nextID
	m.nextID++
	m.carts[c.ID] = c
	return nil
}

func (m *memStore) SaveCart(_ context.Context, c *model.Cart) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	for i := range c.Lines {
		if c.Lines[i].ID == 0 {
			c.Lines[i].ID = m.nextID
			m.nextID++
		}
	}
	m.carts[c.ID] = c
	return nil
}

func (m *memStore) RemoveLine(_ context.Context, cartID, lineID uint) error {
	return nil
}

func (m *memStore) Item(_ context.Context, tenantID, itemID uint) (*model.CatalogItem, error) {
	it, ok := m.items[itemID]
	if !ok || it.TenantID != tenantID {
		return nil, nil
	}
	return it, nil
}
