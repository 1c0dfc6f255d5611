// Package pricing implements the order-pricing engine: the live cart/checkout
// breakdown and the checkout-screen quote. All amounts are whole rupees.
// Every function is pure and safe to recompute on each cart mutation.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/snapmen/storefront/internal/domain/coupon"
)

const (
	// FlatShippingFee is charged whenever the taxable amount does not
	// exceed the store's free-shipping threshold.
	FlatShippingFee int64 = 40
	// UPIIncentive is the flat checkout-screen discount for the UPI
	// payment channel. It is display-only: placed orders never include it.
	UPIIncentive int64 = 50
)

// taxRate is the single GST-style rate applied to the taxable amount.
var taxRate = decimal.RequireFromString("0.05")

// LineItem is a product snapshot plus quantity, the unit of pricing input.
type LineItem struct {
	ProductID string
	MRP       int64
	Price     int64
	Quantity  int
}

// Breakdown is the full derived pricing of a cart. The identity
// Total == RawSubtotal - ItemDiscount - CouponDiscount + Tax + Shipping
// holds for every input.
type Breakdown struct {
	RawSubtotal    int64 `json:"subTotal"`
	ItemDiscount   int64 `json:"discount"`
	CouponDiscount int64 `json:"couponDiscount"`
	Tax            int64 `json:"tax"`
	Shipping       int64 `json:"shipping"`
	Total          int64 `json:"total"`
}

// Base returns the merchandise subtotal after item-level discounts. This is
// the amount coupon eligibility thresholds are checked against.
func Base(items []LineItem) int64 {
	var base int64
	for _, it := range items {
		base += it.Price * int64(it.Quantity)
	}
	return base
}

// Compute derives the full breakdown for the given cart lines, the currently
// applied coupon (nil for none), and the store's free-shipping threshold.
//
// Coupon eligibility is deliberately not re-checked here: selection is the
// caller's contract, and an applied coupon keeps discounting even if item
// removal has since dropped the subtotal below its threshold.
func Compute(items []LineItem, applied *coupon.Coupon, freeShippingMin int64) Breakdown {
	if len(items) == 0 {
		return Breakdown{}
	}

	var raw, itemDiscount int64
	for _, it := range items {
		raw += it.MRP * int64(it.Quantity)
		itemDiscount += (it.MRP - it.Price) * int64(it.Quantity)
	}
	base := raw - itemDiscount

	var couponDiscount int64
	if applied != nil {
		couponDiscount = applied.DiscountOn(base)
	}

	taxable := base - couponDiscount
	tax := decimal.NewFromInt(taxable).Mul(taxRate).Round(0).IntPart()

	var shipping int64
	if taxable <= freeShippingMin {
		shipping = FlatShippingFee
	}

	return Breakdown{
		RawSubtotal:    raw,
		ItemDiscount:   itemDiscount,
		CouponDiscount: couponDiscount,
		Tax:            tax,
		Shipping:       shipping,
		Total:          taxable + tax + shipping,
	}
}

// Quote is the checkout-screen ledger. Unlike Breakdown it carries no coupon,
// tax, or shipping lines; its only extra is the payment-method incentive.
type Quote struct {
	RawSubtotal     int64 `json:"subTotal"`
	ItemDiscount    int64 `json:"discount"`
	MethodIncentive int64 `json:"methodOffer"`
	Payable         int64 `json:"payable"`
}

// ComputeQuote derives the checkout-screen figures for the given payment
// method. This is a distinct call path from Compute: the method incentive
// never flows into the persisted order totals.
func ComputeQuote(items []LineItem, paymentMethod string) Quote {
	var raw, itemDiscount int64
	for _, it := range items {
		raw += it.MRP * int64(it.Quantity)
		itemDiscount += (it.MRP - it.Price) * int64(it.Quantity)
	}

	var incentive int64
	if strings.EqualFold(paymentMethod, "UPI") {
		incentive = UPIIncentive
	}

	return Quote{
		RawSubtotal:     raw,
		ItemDiscount:    itemDiscount,
		MethodIncentive: incentive,
		Payable:         raw - itemDiscount - incentive,
	}
}
