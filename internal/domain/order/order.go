package order

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/snapmen/storefront/internal/domain/address"
	"github.com/snapmen/storefront/internal/domain/product"
)

// Status is the fulfilment state of an order. Orders are created as
// StatusPlaced; later transitions only ever append to the timeline.
type Status string

const (
	StatusPlaced         Status = "Placed"
	StatusShipped        Status = "Shipped"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

var (
	// ErrEmptyCart is returned when order placement runs with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotFound is returned when a requested order does not exist.
	ErrNotFound = errors.New("order not found")
)

// Item is a cart line frozen at placement time: the full product snapshot
// plus the ordered quantity.
type Item struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// TimelineEvent is one append-only entry in an order's status history.
type TimelineEvent struct {
	Status  string `json:"status"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

// Order is an immutable record assembled at checkout. The pricing fields are
// persisted as computed at placement and never recomputed later.
type Order struct {
	ID             string          `json:"id"`
	Date           string          `json:"date"`
	Time           string          `json:"time"`
	Status         Status          `json:"status"`
	Items          []Item          `json:"items"`
	Subtotal       int64           `json:"subTotal"`
	ItemDiscount   int64           `json:"discount"`
	CouponDiscount int64           `json:"couponDiscount"`
	Tax            int64           `json:"tax"`
	Shipping       int64           `json:"shipping"`
	Total          int64           `json:"total"`
	PaymentMethod  string          `json:"paymentMethod"`
	CouponCode     string          `json:"couponCode,omitempty"`
	Address        address.Address `json:"address"`
	Timeline       []TimelineEvent `json:"timeline"`
}

// Repository defines order-history operations. Insert prepends: the history
// lists newest orders first.
type Repository interface {
	Insert(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
}
