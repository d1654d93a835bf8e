package domain

// ShopAPIToken is the per-shop access token for the remote commerce
// API. APIToken holds ciphertext at rest; repositories always store it
// encrypted and services decrypt on read.
type ShopAPIToken struct {
	ShopID   int64  `json:"shop_id"`
	APIToken string `json:"api_token"`
}

// ShopURLs holds the per-shop storefront URLs. Back-to-cart,
// back-to-store and login are required; logo and favicon are optional.
type ShopURLs struct {
	ShopID         int64  `json:"shop_id"`
	BackToCartURL  string `json:"back_to_cart_url"`
	BackToStoreURL string `json:"back_to_store_url"`
	LoginURL       string `json:"login_url"`
	LogoURL        string `json:"logo_url"`
	FaviconURL     string `json:"favicon_url"`
}

// Validate rejects a URL set with any required field missing. Writes
// guarded by this never touch an existing row.
func (u ShopURLs) Validate() error {
	required := []struct {
		name, value string
	}{
		{"back_to_cart_url", u.BackToCartURL},
		{"back_to_store_url", u.BackToStoreURL},
		{"login_url", u.LoginURL},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.name, Message: "parameter is empty"}
		}
	}
	return nil
}

// Asset positions within the rendered page.
const (
	AssetPositionHeader = 1
	AssetPositionBody   = 2
	AssetPositionFooter = 3
)

// Asset types.
const (
	AssetTypeJS  = "js"
	AssetTypeCSS = "css"
)

// Asset is a template or child script/stylesheet record.
type Asset struct {
	ID             int64  `json:"id"`
	AssetName      string `json:"asset_name"`
	AssetURL       string `json:"asset_url"`
	FlowID         string `json:"flow_id"`
	Position       int    `json:"position"`
	AssetType      string `json:"asset_type"`
	IsAsynchronous bool   `json:"is_asynchronous"`
	ParentID       int64  `json:"parent_id,omitempty"`
}

// ShopAssetLink assigns exactly one template asset to a shop.
type ShopAssetLink struct {
	ShopID  int64 `json:"shop_id"`
	AssetID int64 `json:"asset_id"`
}

// ShopAssets is the resolved asset set for a shop: the template plus
// its children grouped by page position.
type ShopAssets struct {
	Template Asset   `json:"template"`
	Header   []Asset `json:"header"`
	Body     []Asset `json:"body"`
	Footer   []Asset `json:"footer"`
}
