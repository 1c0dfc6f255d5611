package coupon

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Kind enumerates the supported coupon discount strategies.
type Kind string

const (
	// KindFlat subtracts a fixed rupee amount from the order.
	KindFlat Kind = "FLAT"
	// KindPercent subtracts a percentage of the merchandise subtotal.
	KindPercent Kind = "PERCENT"
)

var (
	// ErrInvalidCoupon is returned when a coupon code does not exist.
	ErrInvalidCoupon = errors.New("invalid coupon code")
	// ErrNotEligible is returned when the cart subtotal is below the
	// coupon's minimum order threshold or the coupon is inactive.
	ErrNotEligible = errors.New("coupon not eligible")
)

// Coupon is a user-selectable discount rule gated by a minimum order amount.
type Coupon struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Kind        Kind   `json:"discountType"`
	Value       int64  `json:"value"`
	MinOrder    int64  `json:"minOrder"`
	Active      bool   `json:"isActive"`
	Description string `json:"description"`
}

var hundred = decimal.NewFromInt(100)

// DiscountOn computes the discount this coupon yields against the given
// merchandise subtotal (after item-level discounts).
//
// FLAT coupons return their full value without clamping to the subtotal;
// PERCENT coupons round half away from zero to whole rupees. Eligibility is
// checked at selection time, not here: a coupon that was applied while
// eligible keeps discounting even if the cart later shrinks below MinOrder.
func (c Coupon) DiscountOn(base int64) int64 {
	switch c.Kind {
	case KindFlat:
		return c.Value
	case KindPercent:
		return decimal.NewFromInt(base).
			Mul(decimal.NewFromInt(c.Value)).
			Div(hundred).
			Round(0).
			IntPart()
	default:
		return 0
	}
}

// EligibleFor reports whether the coupon can be selected against the given
// merchandise subtotal.
func (c Coupon) EligibleFor(base int64) bool {
	return c.Active && base >= c.MinOrder
}

// Eligible filters coupons down to the ones selectable for the given
// merchandise subtotal, preserving catalog order.
func Eligible(all []Coupon, base int64) []Coupon {
	out := make([]Coupon, 0, len(all))
	for _, c := range all {
		if c.EligibleFor(base) {
			out = append(out, c)
		}
	}
	return out
}

// Repository provides lookup and administration of the coupon catalog.
type Repository interface {
	List(ctx context.Context) ([]Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, c Coupon) (*Coupon, error)
	Update(ctx context.Context, c Coupon) (*Coupon, error)
	Delete(ctx context.Context, id string) error
}
