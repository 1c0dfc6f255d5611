// Package seed holds the embedded demo catalog the server boots with, plus
// the promo-code snapshot codec shared with cmd/promo-ingest.
package seed

import (
	_ "embed"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/snapmen/storefront/internal/domain/address"
	"github.com/snapmen/storefront/internal/domain/coupon"
	"github.com/snapmen/storefront/internal/domain/notification"
	"github.com/snapmen/storefront/internal/domain/product"
	"github.com/snapmen/storefront/internal/domain/store"
)

//go:embed catalog.json
var catalogJSON []byte

// Data is everything the in-memory stores are seeded with at startup.
type Data struct {
	Config        store.Config                `json:"storeConfig"`
	Products      []product.Product           `json:"products"`
	Categories    []product.Category          `json:"categories"`
	Coupons       []coupon.Coupon             `json:"coupons"`
	Addresses     []address.Address           `json:"addresses"`
	Notifications []notification.Notification `json:"notifications"`
}

// Load parses the embedded catalog.
func Load() (*Data, error) {
	var d Data
	if err := json.Unmarshal(catalogJSON, &d); err != nil {
		return nil, errors.Wrap(err, "parse embedded catalog")
	}
	return &d, nil
}
