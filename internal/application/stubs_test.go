package application

import (
	"context"
	"sync"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"
)

// Stub ports used across the application tests. Every method panics
// unless its func field is set, so a test only wires what it expects
// to be called.

type stubShopRepository struct {
	findByDomainFunc             func(ctx context.Context, platformDomain string) ([]*domain.Shop, error)
	findByIdentifierFunc         func(ctx context.Context, identifier string) ([]*domain.Shop, error)
	findByIdentifierOrDomainFunc func(ctx context.Context, value string) ([]*domain.Shop, error)
	getByIDFunc                  func(ctx context.Context, shopID int64) (*domain.Shop, error)
	upsertFunc                   func(ctx context.Context, params domain.ShopParams) (*domain.Shop, error)
}

func (s *stubShopRepository) GetByID(ctx context.Context, shopID int64) (*domain.Shop, error) {
	return s.getByIDFunc(ctx, shopID)
}

func (s *stubShopRepository) FindByDomain(ctx context.Context, platformDomain string) ([]*domain.Shop, error) {
	return s.findByDomainFunc(ctx, platformDomain)
}

func (s *stubShopRepository) FindByIdentifier(ctx context.Context, identifier string) ([]*domain.Shop, error) {
	return s.findByIdentifierFunc(ctx, identifier)
}

func (s *stubShopRepository) FindByIdentifierOrDomain(ctx context.Context, value string) ([]*domain.Shop, error) {
	return s.findByIdentifierOrDomainFunc(ctx, value)
}

func (s *stubShopRepository) Upsert(ctx context.Context, params domain.ShopParams) (*domain.Shop, error) {
	return s.upsertFunc(ctx, params)
}

type stubTokenRepository struct {
	getFunc  func(ctx context.Context, shopID int64) (*domain.ShopAPIToken, error)
	saveFunc func(ctx context.Context, token *domain.ShopAPIToken) error
}

func (s *stubTokenRepository) GetByShopID(ctx context.Context, shopID int64) (*domain.ShopAPIToken, error) {
	return s.getFunc(ctx, shopID)
}

func (s *stubTokenRepository) Save(ctx context.Context, token *domain.ShopAPIToken) error {
	return s.saveFunc(ctx, token)
}

type stubURLRepository struct {
	getFunc  func(ctx context.Context, shopID int64) (*domain.ShopURLs, error)
	saveFunc func(ctx context.Context, urls *domain.ShopURLs) error
}

func (s *stubURLRepository) GetByShopID(ctx context.Context, shopID int64) (*domain.ShopURLs, error) {
	return s.getFunc(ctx, shopID)
}

func (s *stubURLRepository) Save(ctx context.Context, urls *domain.ShopURLs) error {
	return s.saveFunc(ctx, urls)
}

type stubAssetRepository struct {
	getByIDFunc   func(ctx context.Context, assetID int64) (*domain.Asset, error)
	getByNameFunc func(ctx context.Context, name string) (*domain.Asset, error)
	childrenFunc  func(ctx context.Context, parentID int64) ([]domain.Asset, error)
	getLinkFunc   func(ctx context.Context, shopID int64) (*domain.ShopAssetLink, error)
	saveLinkFunc  func(ctx context.Context, link *domain.ShopAssetLink) error
}

func (s *stubAssetRepository) GetAssetByID(ctx context.Context, assetID int64) (*domain.Asset, error) {
	return s.getByIDFunc(ctx, assetID)
}

func (s *stubAssetRepository) GetAssetByName(ctx context.Context, name string) (*domain.Asset, error) {
	return s.getByNameFunc(ctx, name)
}

func (s *stubAssetRepository) ListChildren(ctx context.Context, parentID int64) ([]domain.Asset, error) {
	return s.childrenFunc(ctx, parentID)
}

func (s *stubAssetRepository) GetShopAssetLink(ctx context.Context, shopID int64) (*domain.ShopAssetLink, error) {
	return s.getLinkFunc(ctx, shopID)
}

func (s *stubAssetRepository) SaveShopAssetLink(ctx context.Context, link *domain.ShopAssetLink) error {
	return s.saveLinkFunc(ctx, link)
}

type stubEventRepository struct {
	insertFunc     func(ctx context.Context, event *domain.Event) error
	insertManyFunc func(ctx context.Context, events []*domain.Event) (int, error)
}

func (s *stubEventRepository) Insert(ctx context.Context, event *domain.Event) error {
	return s.insertFunc(ctx, event)
}

func (s *stubEventRepository) InsertMany(ctx context.Context, events []*domain.Event) (int, error) {
	return s.insertManyFunc(ctx, events)
}

type stubCommerceClient struct {
	initializeOrderFunc  func(ctx context.Context, shop *domain.FrontendShop, body map[string]any) (*domain.APIResponse, error)
	initializeAdminFunc  func(ctx context.Context, shop *domain.FrontendShop, cartItems []ports.CartItem, resumableLink string) (*domain.APIResponse, error)
	resumeOrderFunc      func(ctx context.Context, shop *domain.FrontendShop, publicOrderID string) (*domain.APIResponse, error)
	shopInfosFunc        func(ctx context.Context, accessToken string) (*domain.APIResponse, error)
	customerInfosFunc    func(ctx context.Context, shop *domain.FrontendShop, customerID string) (*domain.APIResponse, error)
	addCustomerFunc      func(ctx context.Context, shop *domain.FrontendShop, publicOrderID string, customer map[string]any) (*domain.APIResponse, error)
	deleteCustomerFunc   func(ctx context.Context, shop *domain.FrontendShop, publicOrderID string) (*domain.APIResponse, error)
	deleteAddressFunc    func(ctx context.Context, shop *domain.FrontendShop, publicOrderID, orderJWT, addressType string) (*domain.APIResponse, error)
	exchangeAuthCodeFunc func(ctx context.Context, clientID, clientSecret, code string) (*domain.APIResponse, error)
}

func (s *stubCommerceClient) InitializeOrder(ctx context.Context, shop *domain.FrontendShop, body map[string]any) (*domain.APIResponse, error) {
	return s.initializeOrderFunc(ctx, shop, body)
}

func (s *stubCommerceClient) InitializeShopifyAdminOrder(ctx context.Context, shop *domain.FrontendShop, cartItems []ports.CartItem, resumableLink string) (*domain.APIResponse, error) {
	return s.initializeAdminFunc(ctx, shop, cartItems, resumableLink)
}

func (s *stubCommerceClient) ResumeOrder(ctx context.Context, shop *domain.FrontendShop, publicOrderID string) (*domain.APIResponse, error) {
	return s.resumeOrderFunc(ctx, shop, publicOrderID)
}

func (s *stubCommerceClient) ShopInfos(ctx context.Context, accessToken string) (*domain.APIResponse, error) {
	return s.shopInfosFunc(ctx, accessToken)
}

func (s *stubCommerceClient) CustomerInfos(ctx context.Context, shop *domain.FrontendShop, customerID string) (*domain.APIResponse, error) {
	return s.customerInfosFunc(ctx, shop, customerID)
}

func (s *stubCommerceClient) AddAuthenticatedCustomer(ctx context.Context, shop *domain.FrontendShop, publicOrderID string, customer map[string]any) (*domain.APIResponse, error) {
	return s.addCustomerFunc(ctx, shop, publicOrderID, customer)
}

func (s *stubCommerceClient) DeleteCustomer(ctx context.Context, shop *domain.FrontendShop, publicOrderID string) (*domain.APIResponse, error) {
	return s.deleteCustomerFunc(ctx, shop, publicOrderID)
}

func (s *stubCommerceClient) DeleteAddress(ctx context.Context, shop *domain.FrontendShop, publicOrderID, orderJWT, addressType string) (*domain.APIResponse, error) {
	return s.deleteAddressFunc(ctx, shop, publicOrderID, orderJWT, addressType)
}

func (s *stubCommerceClient) ExchangeAuthorizationCode(ctx context.Context, clientID, clientSecret, code string) (*domain.APIResponse, error) {
	return s.exchangeAuthCodeFunc(ctx, clientID, clientSecret, code)
}

// plainEncryption is a reversible stand-in for the AES service.
type plainEncryption struct{}

func (plainEncryption) Encrypt(plaintext string) (string, error) { return "enc:" + plaintext, nil }

func (plainEncryption) Decrypt(ciphertext string) (string, error) {
	if len(ciphertext) < 4 || ciphertext[:4] != "enc:" {
		return "", &domain.ValidationError{Message: "bad ciphertext"}
	}
	return ciphertext[4:], nil
}

type stubCodec struct {
	decodeFunc func(token string) (*domain.ContinuationClaims, error)
}

func (s *stubCodec) Encode(domain.ContinuationClaims) (string, error) { return "", nil }

func (s *stubCodec) Decode(token string) (*domain.ContinuationClaims, error) {
	return s.decodeFunc(token)
}

type stubMarkerCache struct {
	pullFunc func(ctx context.Context, key string) (string, error)
	putFunc  func(ctx context.Context, key, value string) error
}

func (s *stubMarkerCache) Pull(ctx context.Context, key string) (string, error) {
	return s.pullFunc(ctx, key)
}

func (s *stubMarkerCache) Put(ctx context.Context, key, value string) error {
	return s.putFunc(ctx, key, value)
}

// memorySessionBackend keeps scoped sessions in a map, mirroring the
// redis hash layout.
type memorySessionBackend struct {
	mu     sync.Mutex
	scopes map[string]map[string]string
}

func newMemorySessionBackend() *memorySessionBackend {
	return &memorySessionBackend{scopes: map[string]map[string]string{}}
}

func (m *memorySessionBackend) Put(_ context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scopes[scope] == nil {
		m.scopes[scope] = map[string]string{}
	}
	m.scopes[scope][key] = value
	return nil
}

func (m *memorySessionBackend) Get(_ context.Context, scope, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scopes[scope][key], nil
}

func (m *memorySessionBackend) Pull(_ context.Context, scope, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value := m.scopes[scope][key]
	delete(m.scopes[scope], key)
	return value, nil
}

func (m *memorySessionBackend) Has(_ context.Context, scope, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.scopes[scope][key]
	return ok, nil
}

func (m *memorySessionBackend) Forget(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scopes[scope], key)
	return nil
}

func (m *memorySessionBackend) Flush(_ context.Context, scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scopes, scope)
	return nil
}
