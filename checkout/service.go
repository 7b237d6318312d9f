package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"commerce-backend/model"
	"commerce-backend/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Store is the transactional persistence behind checkout. InTx runs fn inside
// one database transaction; the Store passed to fn is bound to it, so stock
// locks taken there are released at commit or rollback.
type Store interface {
	InTx(ctx context.Context, fn func(tx Store) error) error

	Items(ctx context.Context, tenantID uint, ids []uint) ([]model.CatalogItem, error)
	ItemForUpdate(ctx context.Context, tenantID, itemID uint) (*model.CatalogItem, error)
	DecrementStock(ctx context.Context, tenantID, itemID uint, qty int64) (bool, error)
	CreateOrder(ctx context.Context, o *model.Order) error
	RedeemCoupon(ctx context.Context, couponID uint) (bool, error)
	ConvertCart(ctx context.Context, cartID uint) error

	CouponByCode(ctx context.Context, tenantID uint, code string) (*model.Coupon, error)
	ShippingMethodByCode(ctx context.Context, tenantID uint, code string) (*model.ShippingMethod, error)
	TaxRules(ctx context.Context, tenantID uint, country string) ([]model.TaxRule, error)
	PaymentMethod(ctx context.Context, tenantID uint, code string) (*model.PaymentMethodConfig, error)
	TenantCurrency(ctx context.Context, tenantID uint) (*model.Currency, error)
	CurrencyByID(ctx context.Context, id uint) (*model.Currency, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// LineRequest is one requested position; the unit price is always re-read from
// the catalog, never taken from the caller.
type LineRequest struct {
	ItemID   uint  `json:"itemId"`
	Quantity int64 `json:"qty"`
}

type Request struct {
	TenantID       uint
	UserID         uint
	Lines          []LineRequest
	CartID         uint // non-zero when the lines came from a stored cart
	CurrencyID     uint // 0 means take the first item's currency, then tenant default
	PaymentMethod  string
	CouponCode     string
	StrictCoupon   bool
	ShippingMethod string
	Address        *model.AddressSnapshot
}

type Result struct {
	Order        *model.Order
	Quote        pricing.Quote
	CurrencyCode string
}

// priced bundles everything resolved during quoting that the assembler needs.
type priced struct {
	input      pricing.Input
	items      map[uint]*model.CatalogItem
	currencyID uint
}

func (s *Service) buildInput(ctx context.Context, req Request) (*priced, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]uint, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d has non-positive quantity", ErrItemUnavailable, l.ItemID)
		}
		ids = append(ids, l.ItemID)
	}

	items, err := s.store.Items(ctx, req.TenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.CatalogItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	p := &priced{
		items:      byID,
		currencyID: req.CurrencyID,
		input: pricing.Input{
			StrictCoupon: req.StrictCoupon,
			Now:          time.Now(),
		},
	}

	for _, l := range req.Lines {
		item, ok := byID[l.ItemID]
		if !ok || !item.Active {
			return nil, fmt.Errorf("%w: item %d", ErrItemUnavailable, l.ItemID)
		}
		if p.currencyID == 0 {
			p.currencyID = item.CurrencyID
		} else if item.CurrencyID != p.currencyID {
			return nil, fmt.Errorf("%w: item %d priced in currency %d, checkout is in %d",
				ErrCurrencyMismatch, l.ItemID, item.CurrencyID, p.currencyID)
		}
		p.input.Lines = append(p.input.Lines, pricing.Line{
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: item.Price, // current catalog price, not the cart snapshot
			WeightG:   item.WeightG,
		})
	}

	if p.currencyID == 0 {
		cur, err := s.store.TenantCurrency(ctx, req.TenantID)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			return nil, fmt.Errorf("%w: tenant %d has no resolvable currency", ErrCurrencyMismatch, req.TenantID)
		}
		p.currencyID = cur.ID
	}

	if req.CouponCode != "" {
		coupon, err := s.store.CouponByCode(ctx, req.TenantID, req.CouponCode)
		if err != nil {
			return nil, err
		}
		if coupon == nil && req.StrictCoupon {
			return nil, fmt.Errorf("%w: unknown code %q", pricing.ErrCouponInvalid, req.CouponCode)
		}
		p.input.Coupon = coupon
	}

	if req.Address != nil {
		p.input.Destination = pricing.Destination{Country: req.Address.Country, Region: req.Address.Region}
		rules, err := s.store.TaxRules(ctx, req.TenantID, req.Address.Country)
		if err != nil {
			return nil, err
		}
		p.input.TaxRules = rules
	}

	if req.ShippingMethod != "" {
		method, err := s.store.ShippingMethodByCode(ctx, req.TenantID, req.ShippingMethod)
		if err != nil {
			return nil, err
		}
		if method == nil || !method.Active {
			return nil, fmt.Errorf("%w: %q", ErrShippingMethodUnknown, req.ShippingMethod)
		}
		p.input.Method = method
	}

	return p, nil
}

// Quote prices a request without reserving stock or creating anything.
func (s *Service) Quote(ctx context.Context, req Request) (pricing.Quote, error) {
	p, err := s.buildInput(ctx, req)
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.Price(p.input)
}

// Checkout turns a priced request into a persisted PENDING order. Stock
// reservation and order creation commit atomically; payment is started by the
// caller only after this returns, so no provider call ever holds a stock lock.
func (s *Service) Checkout(ctx context.Context, req Request) (*Result, error) {
	method, err := s.store.PaymentMethod(ctx, req.TenantID, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if method == nil || !method.Enabled {
		return nil, fmt.Errorf("%w: %q", ErrPaymentMethodDisabled, req.PaymentMethod)
	}

	p, err := s.buildInput(ctx, req)
	if err != nil {
		return nil, err
	}

	quote, err := pricing.Price(p.input)
	if err != nil {
		return nil, err
	}

	order, err := s.assemble(ctx, req, p, quote)
	if err != nil {
		return nil, err
	}

	code := ""
	if cur, err := s.store.CurrencyByID(ctx, p.currencyID); err == nil && cur != nil {
		code = cur.Code
	}

	s.logger.Info("order placed",
		zap.Uint("tenant_id", req.TenantID),
		zap.Uint("user_id", req.UserID),
		zap.Uint("order_id", order.ID),
		zap.Int64("grand_total", quote.GrandTotal))

	return &Result{Order: order, Quote: quote, CurrencyCode: code}, nil
}

func newOrderNumber() string {
	return uuid.New().String()
}

func marshalAddress(a *model.AddressSnapshot) datatypes.JSON {
	if a == nil {
		return nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
