package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientShop() *domain.FrontendShop {
	return &domain.FrontendShop{
		Shop: domain.Shop{
			PlatformDomain:     "store.example.com",
			PlatformType:       domain.PlatformShopify,
			PlatformIdentifier: "store-1",
		},
		Token: "shop-token",
	}
}

func newTestClient(serverURL string) ports.CommerceClient {
	return NewClient(serverURL, "checkout", serverURL, serverURL+"/auth/oauth2/token", zerolog.Nop())
}

func TestInitializeOrder(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"public_order_id":"order-123"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	response, err := client.InitializeOrder(context.Background(), clientShop(), map[string]any{"cart_id": "cart-9"})
	require.NoError(t, err)

	assert.Equal(t, "/checkout/orders/store-1/init", gotPath)
	assert.Equal(t, "Bearer shop-token", gotAuth)
	assert.Equal(t, "cart-9", gotBody["cart_id"])
	assert.Equal(t, "order-123", response.PublicOrderID())
}

func TestResumeOrderPath(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ResumeOrder(context.Background(), clientShop(), "order-123")
	require.NoError(t, err)

	assert.Equal(t, "/checkout/orders/store-1/resume", gotPath)
	assert.Equal(t, "order-123", gotBody["public_order_id"])
}

func TestNon200BecomesRemoteRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":"cart expired"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.InitializeOrder(context.Background(), clientShop(), nil)

	var rejection *domain.RemoteRejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusUnprocessableEntity, rejection.Status)
	assert.Equal(t, "initialize_order", rejection.Op)
	assert.Equal(t, "cart expired", rejection.Message)
}

func TestUnreachableServerBecomesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.ResumeOrder(context.Background(), clientShop(), "order-123")

	var transport *domain.TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "resume_order", transport.Op)
}

func TestDeleteAddressUsesOrderJWTOnStorefrontPath(t *testing.T) {
	var gotPath, gotAuth, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.DeleteAddress(context.Background(), clientShop(), "order-123", "order-jwt", ports.AddressBilling)
	require.NoError(t, err)

	assert.Equal(t, "/checkout/storefront/store-1/order-123/addresses/billing", gotPath)
	assert.Equal(t, "Bearer order-jwt", gotAuth, "the storefront endpoint authenticates with the order token")
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestCustomerInfosPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"customer":{}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CustomerInfos(context.Background(), clientShop(), "customer-1")
	require.NoError(t, err)

	assert.Equal(t, "/customers/v2/shops/store-1/customers/pid/customer-1", gotPath)
}

func TestExchangeAuthorizationCodeDoesNotCheckStatus(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-1", r.PostForm.Get("client_id"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	response, err := client.ExchangeAuthorizationCode(context.Background(), "client-1", "secret-1", "auth-code")
	require.NoError(t, err, "the caller inspects the body, not the status")

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Equal(t, "invalid_grant", response.ErrorMessage())
}

func TestUndecodableBodyStillYieldsAnEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	response, err := client.ResumeOrder(context.Background(), clientShop(), "order-123")
	require.NoError(t, err)
	assert.Empty(t, response.PublicOrderID())
}
