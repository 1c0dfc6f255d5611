package address

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNoAddress is returned when order placement runs against an empty
// address book.
var ErrNoAddress = errors.New("no delivery address on file")

// Type distinguishes the two supported address labels.
type Type string

const (
	TypeHome   Type = "HOME"
	TypeOffice Type = "OFFICE"
)

// Address is a delivery destination. Exactly one entry should carry
// IsDefault; when none does, the first entry in insertion order is treated
// as the default (fallback rule, not an enforced invariant).
type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	Pincode   string `json:"pincode"`
	House     string `json:"house"`
	Area      string `json:"area"`
	Type      Type   `json:"type"`
	IsDefault bool   `json:"isDefault"`
}

// Book defines the address collection operations.
type Book interface {
	List(ctx context.Context) ([]Address, error)
	// Add appends the address; the first address ever added becomes the
	// default.
	Add(ctx context.Context, a Address) (*Address, error)
	// Default returns the entry marked default, falling back to the first
	// in insertion order. Returns ErrNoAddress when the book is empty.
	Default(ctx context.Context) (*Address, error)
}
