package cart

import (
	"context"
	"errors"
	"fmt"

	"commerce-backend/model"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrItemNotFound     = errors.New("item not found")
	ErrLineNotFound     = errors.New("cart line not found")
)

// Store is the persistence the aggregator needs. ActiveCart returns nil when
// the user has no ACTIVE cart.
type Store interface {
	ActiveCart(ctx context.Context, tenantID, userID uint) (*model.Cart, error)
	CreateCart(ctx context.Context, c *model.Cart) error
	SaveCart(ctx context.Context, c *model.Cart) error
	RemoveLine(ctx context.Context, cartID, lineID uint) error
	Item(ctx context.Context, tenantID, itemID uint) (*model.CatalogItem, error)
}

// Service owns the mutable shopping cart per (user, tenant).
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetOrCreate returns the user's ACTIVE cart, creating an empty one lazily.
func (s *Service) GetOrCreate(ctx context.Context, tenantID, userID uint) (*model.Cart, error) {
	c, err := s.store.ActiveCart(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	c = &model.Cart{
		TenantID: tenantID,
		UserID:   userID,
		Status:   model.CartStatusActive,
	}
	if err := s.store.CreateCart(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddLine adds qty of an item. If the item is already in the cart the
// quantities are summed and the unit price captured earlier is kept; a new
// line snapshots the item's current price. The cart currency is fixed by the
// first added item; a later item priced in another currency is rejected.
func (s *Service) AddLine(ctx context.Context, tenantID, userID, itemID uint, qty int64) (*model.Cart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	item, err := s.store.Item(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active {
		return nil, fmt.Errorf("%w: item %d", ErrItemNotFound, itemID)
	}

	c, err := s.GetOrCreate(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if c.CurrencyID == 0 {
		c.CurrencyID = item.CurrencyID
	} else if c.CurrencyID != item.CurrencyID {
		return nil, fmt.Errorf("%w: cart is priced in currency %d, item %d is in %d",
			ErrCurrencyMismatch, c.CurrencyID, itemID, item.CurrencyID)
	}

	if line := c.FindLine(itemID); line != nil {
		line.Quantity += qty
	} else {
		c.Lines = append(c.Lines, model.CartLine{
			CartID:    c.ID,
			ItemID:    itemID,
			Quantity:  qty,
			UnitPrice: item.Price,
		})
	}

	c.Recompute()
	if err := s.store.SaveCart(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetLineQuantity replaces a line's quantity; zero or less removes the line.
func (s *Service) SetLineQuantity(ctx context.Context, tenantID, userID, lineID uint, qty int64) (*model.Cart, error) {
	c, err := s.store.ActiveCart(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrLineNotFound
	}

	idx := -1
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: line %d", ErrLineNotFound, lineID)
	}

	if qty <= 0 {
		if err := s.store.RemoveLine(ctx, c.ID, lineID); err != nil {
			return nil, err
		}
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	} else {
		c.Lines[idx].Quantity = qty
	}

	c.Recompute()
	if err := s.store.SaveCart(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear removes every line from the user's ACTIVE cart.
func (s *Service) Clear(ctx context.Context, tenantID, userID uint) (*model.Cart, error) {
	c, err := s.store.ActiveCart(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return s.GetOrCreate(ctx, tenantID, userID)
	}

	for _, l := range c.Lines {
		if err := s.store.RemoveLine(ctx, c.ID, l.ID); err != nil {
			return nil, err
		}
	}
	c.Lines = nil
	c.Recompute()
	if err := s.store.SaveCart(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
