package domain

import "time"

// Supported platform types.
const (
	PlatformWooCommerce   = "woocommerce"
	PlatformCommercetools = "commercetools"
	PlatformBold          = "bold_platform"
	PlatformBigCommerce   = "bigcommerce"
	PlatformShopify       = "shopify"
)

// Shop is the identity record for a connected store.
type Shop struct {
	ID                 int64      `json:"id"`
	PlatformDomain     string     `json:"platform_domain"`
	PlatformType       string     `json:"platform_type"`
	PlatformIdentifier string     `json:"platform_identifier"`
	ShopName           string     `json:"shop_name"`
	SupportEmail       string     `json:"support_email"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
	RedactedAt         *time.Time `json:"redacted_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ShopParams carries the fields required to create or update a shop.
type ShopParams struct {
	PlatformDomain     string
	PlatformType       string
	PlatformIdentifier string
	ShopName           string
	SupportEmail       string
}

// Validate checks that every required shop field is present and
// non-empty. Absent fields are never silently defaulted.
func (p ShopParams) Validate() error {
	required := []struct {
		name, value string
	}{
		{"platform_domain", p.PlatformDomain},
		{"platform_type", p.PlatformType},
		{"platform_identifier", p.PlatformIdentifier},
		{"shop_name", p.ShopName},
		{"support_email", p.SupportEmail},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.name, Message: "parameter is empty"}
		}
	}
	return nil
}

// RemoteShopInfo is the independent source of truth returned by the
// remote shops/v1/info endpoint.
type RemoteShopInfo struct {
	ShopDomain     string `json:"shop_domain"`
	CustomDomain   string `json:"custom_domain"`
	PlatformSlug   string `json:"platform_slug"`
	ShopIdentifier string `json:"shop_identifier"`
	StoreName      string `json:"store_name"`
	AdminEmail     string `json:"admin_email"`
}

// MatchesRemoteInfo reports whether the install parameters agree with
// the domain, type and identifier the remote API attributes to the
// shop. All six values must be non-empty and equal pairwise.
func (p ShopParams) MatchesRemoteInfo(info RemoteShopInfo) bool {
	return p.PlatformDomain != "" && p.PlatformType != "" && p.PlatformIdentifier != "" &&
		info.ShopDomain != "" && info.PlatformSlug != "" && info.ShopIdentifier != "" &&
		p.PlatformDomain == info.ShopDomain &&
		p.PlatformType == info.PlatformSlug &&
		p.PlatformIdentifier == info.ShopIdentifier
}

// SupportedPlatform reports whether the platform type is one this
// layer can serve.
func SupportedPlatform(platformType string) bool {
	switch platformType {
	case PlatformWooCommerce, PlatformCommercetools, PlatformBold, PlatformBigCommerce, PlatformShopify:
		return true
	}
	return false
}
