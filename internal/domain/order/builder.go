package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/snapmen/storefront/internal/cart"
	"github.com/snapmen/storefront/internal/domain/address"
	"github.com/snapmen/storefront/internal/domain/coupon"
	"github.com/snapmen/storefront/internal/domain/pricing"
)

// Date/time layouts follow the storefront's display convention: day without
// a leading zero, abbreviated month, and a 12-hour clock with lowercase
// meridiem ("5 Mar 2026", "04:05 pm").
const (
	dateLayout     = "2 Jan 2006"
	timeLayout     = "03:04 pm"
	timelineLayout = "2 Jan"

	confirmationMessage = "Order placed and confirmed."
)

// Builder assembles immutable order records. It is pure: the stock decrement
// implied by an order is the caller's responsibility so both can be applied
// as one step.
type Builder struct {
	now  func() time.Time
	intn func(n int) int
}

// NewBuilder returns a Builder using the wall clock and math/rand.
func NewBuilder() *Builder {
	return &Builder{now: time.Now, intn: rand.Intn}
}

// NewBuilderAt returns a Builder with an injected clock and random source,
// for deterministic assembly in tests.
func NewBuilderAt(now func() time.Time, intn func(n int) int) *Builder {
	return &Builder{now: now, intn: intn}
}

// Build assembles an order from the frozen cart lines, the computed
// breakdown, the applied coupon (nil for none), the delivery address, and
// the payment method.
//
// The order ID is "ORD" plus a random six-digit numeral. Collisions are
// possible and unhandled; the order history tolerates them as the original
// system does.
func (b *Builder) Build(lines []cart.Line, bd pricing.Breakdown, applied *coupon.Coupon, addr address.Address, paymentMethod string) *Order {
	now := b.now()

	items := make([]Item, len(lines))
	for i, l := range lines {
		items[i] = Item{Product: l.Product, Quantity: l.Quantity}
	}

	o := &Order{
		ID:             fmt.Sprintf("ORD%d", b.intn(900000)+100000),
		Date:           now.Format(dateLayout),
		Time:           now.Format(timeLayout),
		Status:         StatusPlaced,
		Items:          items,
		Subtotal:       bd.RawSubtotal,
		ItemDiscount:   bd.ItemDiscount,
		CouponDiscount: bd.CouponDiscount,
		Tax:            bd.Tax,
		Shipping:       bd.Shipping,
		Total:          bd.Total,
		PaymentMethod:  paymentMethod,
		Address:        addr,
		Timeline: []TimelineEvent{{
			Status:  "Confirmed",
			Date:    now.Format(timelineLayout),
			Time:    now.Format(timeLayout),
			Message: confirmationMessage,
		}},
	}
	if applied != nil {
		o.CouponCode = applied.Code
	}
	return o
}
