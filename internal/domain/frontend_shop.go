package domain

import "strings"

// FrontendShop composes a shop with its token, URLs and assets for a
// single request. It is only ever built whole: a missing sub-resource
// fails the aggregate.
type FrontendShop struct {
	Shop   Shop
	Token  string // decrypted access token
	URLs   ShopURLs
	Assets ShopAssets

	returnToCheckoutAfterLogin string
}

// ReturnToCheckoutAfterLogin returns the URL a customer lands on when
// coming back from the platform login page.
func (f *FrontendShop) ReturnToCheckoutAfterLogin() string {
	return f.returnToCheckoutAfterLogin
}

// SetReturnToCheckoutAfterLogin stores the URL; empty values are
// ignored so a woocommerce shop keeps whatever was set before.
func (f *FrontendShop) SetReturnToCheckoutAfterLogin(url string) {
	if url != "" {
		f.returnToCheckoutAfterLogin = url
	}
}

// SessionNamespace is the per-shop key prefix used by the session
// store: platform type plus the platform domain with dots replaced by
// dashes.
func (f *FrontendShop) SessionNamespace() string {
	return f.Shop.PlatformType + "." + strings.ReplaceAll(f.Shop.PlatformDomain, ".", "-")
}

// ReturnToCartURL picks the cart URL shown in the experience view:
// bold_platform shops go back to the store, everything else back to
// the cart.
func (f *FrontendShop) ReturnToCartURL() string {
	if f.Shop.PlatformType == PlatformBold {
		return f.URLs.BackToStoreURL
	}
	return f.URLs.BackToCartURL
}
