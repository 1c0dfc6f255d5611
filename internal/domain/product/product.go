package product

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// ErrOutOfStock is returned when a zero-stock product is added to the cart.
// It is the only inventory guard in the system; stock is not re-checked at
// checkout time.
var ErrOutOfStock = errors.New("item is out of stock")

// Spec is a single key/value row on the product detail page.
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Product is a catalog item. Price is the sale price, MRP the list price,
// both in whole rupees. DiscountPct is derived from the two when the admin
// saves the product.
type Product struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Price          int64    `json:"price"`
	MRP            int64    `json:"mrp"`
	DiscountPct    int      `json:"discount"`
	Rating         float64  `json:"rating"`
	Image          string   `json:"image"`
	Gallery        []string `json:"gallery,omitempty"`
	Brand          string   `json:"brand"`
	Category       string   `json:"category"`
	SubCategory    string   `json:"subCategory"`
	Description    string   `json:"description,omitempty"`
	Highlights     []string `json:"highlights,omitempty"`
	Specifications []Spec   `json:"specifications,omitempty"`
	Sizes          []string `json:"sizes,omitempty"`
	Colors         []string `json:"colors,omitempty"`
	IsNew          bool     `json:"isNew,omitempty"`
	StockCount     int      `json:"stockCount"`
	DemandCount    int      `json:"demandCount"`
}

// InStock reports whether the product can currently be added to a cart.
func (p Product) InStock() bool {
	return p.StockCount > 0
}

// SubCategory is a named tile under a category hub.
type SubCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Category groups products for browsing.
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon"`
	Banner        string        `json:"banner,omitempty"`
	SubCategories []SubCategory `json:"subCategories"`
}

// Repository defines catalog operations for products.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, p Product) (*Product, error)
	Delete(ctx context.Context, id string) error

	// DecrementStock lowers the stock count by qty, floored at zero.
	// Called once per order line during order placement.
	DecrementStock(ctx context.Context, id string, qty int) error
}

// CategoryRepository defines catalog operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	Upsert(ctx context.Context, c Category) (*Category, error)
	Delete(ctx context.Context, id string) error
}
