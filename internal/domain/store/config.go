// Package store holds the admin-editable storefront configuration.
package store

import "context"

// ProfileToggles controls which rows the profile screen shows.
type ProfileToggles struct {
	ShowProfileDetails bool `json:"showProfileDetails"`
	ShowSavedAddresses bool `json:"showSavedAddresses"`
	ShowPaymentMethods bool `json:"showPaymentMethods"`
	ShowNotifications  bool `json:"showNotifications"`
	ShowAdminAccess    bool `json:"showAdminAccess"`
	ShowLegal          bool `json:"showLegal"`
}

// ProductPageToggles controls which blocks the product detail page shows.
type ProductPageToggles struct {
	ShowBrand           bool `json:"showBrand"`
	ShowRating          bool `json:"showRating"`
	ShowDiscountBadge   bool `json:"showDiscountBadge"`
	ShowSizeGuide       bool `json:"showSizeGuide"`
	ShowDeliveryCheck   bool `json:"showDeliveryCheck"`
	ShowTrustBadges     bool `json:"showTrustBadges"`
	ShowDescription     bool `json:"showDescription"`
	ShowRelatedProducts bool `json:"showRelatedProducts"`
	ShowShareButton     bool `json:"showShareButton"`
}

// Config is the storefront configuration. FreeShippingMin is the only field
// the pricing engine reads; the rest drives presentation.
type Config struct {
	AppName            string             `json:"appName"`
	HeroTitle          string             `json:"heroTitle"`
	HeroSubtitle       string             `json:"heroSubtitle"`
	HeroImage          string             `json:"heroImage"`
	HeroTag            string             `json:"heroTag"`
	PromoImage         string             `json:"promoImage"`
	ShowHero           bool               `json:"showHero"`
	ShowFlashSale      bool               `json:"showFlashSale"`
	ShowBrandSpotlight bool               `json:"showBrandSpotlight"`
	ShowTrending       bool               `json:"showTrending"`
	ShowCategories     bool               `json:"showCategories"`
	ProfileFeatures    ProfileToggles     `json:"profileFeatures"`
	ProductPage        ProductPageToggles `json:"productPageSettings"`
	SupportNumber      string             `json:"supportNumber"`
	FreeShippingMin    int64              `json:"freeShippingMin"`
	MaintenanceMode    bool               `json:"maintenanceMode"`
}

// Repository provides read and admin-update access to the configuration.
type Repository interface {
	Get(ctx context.Context) (Config, error)
	Update(ctx context.Context, c Config) error
	FreeShippingMin(ctx context.Context) int64
}
