package checkout

import (
	"context"
	"fmt"
	"sort"
	"time"

	"commerce-backend/model"
	"commerce-backend/pricing"
)

// sortItemIDs returns the distinct item ids in ascending order. Stock locks
// are always acquired in this order so two checkouts sharing items can never
// deadlock against each other.
func sortItemIDs(lines []LineRequest) []uint {
	seen := make(map[uint]bool, len(lines))
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ItemID] {
			seen[l.ItemID] = true
			ids = append(ids, l.ItemID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// assemble reserves stock and persists the order in one transaction. Any
// failed conditional decrement aborts the whole thing; nothing is ever
// partially committed.
func (s *Service) assemble(ctx context.Context, req Request, p *priced, quote pricing.Quote) (*model.Order, error) {
	qtyByItem := make(map[uint]int64, len(req.Lines))
	for _, l := range req.Lines {
		qtyByItem[l.ItemID] += l.Quantity
	}

	order := &model.Order{
		Number:      newOrderNumber(),
		TenantID:    req.TenantID,
		UserID:      req.UserID,
		CurrencyID:  p.currencyID,
		TotalAmount: quote.GrandTotal,
		Subtotal:    quote.ItemsSubtotal,
		Discount:    quote.Discount,
		Shipping:    quote.ShippingTotal,
		Tax:         quote.ItemTax + quote.ShippingTax,
		Status:      model.OrderStatusPending,
		Address:     marshalAddress(req.Address),
		CreatedAt:   time.Now(),
	}
	if quote.CouponApplied {
		order.CouponCode = req.CouponCode
	}

	for _, line := range p.input.Lines {
		item := p.items[line.ItemID]
		order.Lines = append(order.Lines, model.OrderLine{
			ItemID:              line.ItemID,
			ItemName:            item.Variant().DisplayName(),
			Quantity:            line.Quantity,
			UnitPriceAtPurchase: line.UnitPrice,
			LineSubtotal:        line.UnitPrice * line.Quantity,
		})
	}

	err := s.store.InTx(ctx, func(tx Store) error {
		for _, itemID := range sortItemIDs(req.Lines) {
			if _, err := tx.ItemForUpdate(ctx, req.TenantID, itemID); err != nil {
				return err
			}
			ok, err := tx.DecrementStock(ctx, req.TenantID, itemID, qtyByItem[itemID])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: item %d", ErrInsufficientStock, itemID)
			}
		}

		if quote.CouponApplied && p.input.Coupon != nil {
			ok, err := tx.RedeemCoupon(ctx, p.input.Coupon.ID)
			if err != nil {
				return err
			}
			if !ok {
				// usage limit raced away between quoting and commit
				return fmt.Errorf("%w: usage limit reached", pricing.ErrCouponInvalid)
			}
		}

		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		if req.CartID != 0 {
			return tx.ConvertCart(ctx, req.CartID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
