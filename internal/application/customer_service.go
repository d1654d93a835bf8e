package application

import (
	"context"
	"fmt"
	"reflect"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/rs/zerolog"
)

// CustomerService merges a platform-authenticated customer into a
// freshly initialized order. Every failure downgrades to the baseline
// application state; an anonymous checkout is always preferable to a
// failed one.
type CustomerService struct {
	commerce ports.CommerceClient
	logger   zerolog.Logger
}

// NewCustomerService creates a new authenticated customer merger.
func NewCustomerService(commerce ports.CommerceClient, logger zerolog.Logger) *CustomerService {
	return &CustomerService{commerce: commerce, logger: logger}
}

// MergeAuthenticatedCustomer loads the customer's profile and saved
// addresses, pushes them into the order and returns the merged
// application state. The baseline state from initResponse is returned
// unchanged when any remote step fails.
func (s *CustomerService) MergeAuthenticatedCustomer(ctx context.Context, shop *domain.FrontendShop, customerID string, initResponse *domain.APIResponse) map[string]any {
	baseState := initResponse.ApplicationState()
	publicOrderID := initResponse.PublicOrderID()

	infosResponse, err := s.commerce.CustomerInfos(ctx, shop, customerID)
	if err != nil {
		s.downgrade(err, customerID, publicOrderID, "retrieve customer infos")
		return baseState
	}
	customerInfos := subMapOf(infosResponse.Content, "customer")

	lineItems := anySliceOf(baseState, "line_items")
	countryInfo := anySliceOf(initResponse.InitialData(), "country_info")

	customerAddresses := anySliceOf(customerInfos, "addresses")
	defaultAddress := subMapOf(customerInfos, "default_address")

	var addresses []map[string]any
	if requiresShipping(lineItems) {
		allowed := allowedShippingCountries(countryInfo)
		addresses = convertAddresses(filterByCountry(customerAddresses, allowed), defaultAddress)
	} else {
		addresses = convertAddresses(customerAddresses, defaultAddress)
	}

	customer := map[string]any{
		"first_name":      stringOf(customerInfos, "first_name"),
		"last_name":       stringOf(customerInfos, "last_name"),
		"email_address":   stringOf(customerInfos, "email"),
		"platform_id":     stringOf(customerInfos, "platform_id"),
		"public_id":       fmt.Sprintf("%v", valueOr(customerInfos, "id", "")),
		"saved_addresses": addresses,
	}

	if hasCustomerSaved(baseState) {
		if _, err := s.commerce.DeleteCustomer(ctx, shop, publicOrderID); err != nil {
			s.downgrade(err, customerID, publicOrderID, "delete previous customer")
			return baseState
		}
	}

	customerResponse, err := s.commerce.AddAuthenticatedCustomer(ctx, shop, publicOrderID, customer)
	if err != nil {
		s.downgrade(err, customerID, publicOrderID, "add authenticated customer")
		return baseState
	}

	merged := make(map[string]any, len(baseState))
	for k, v := range baseState {
		merged[k] = v
	}
	for k, v := range customerResponse.ApplicationState() {
		merged[k] = v
	}
	return merged
}

func (s *CustomerService) downgrade(err error, customerID, publicOrderID, step string) {
	s.logger.Error().
		Err(err).
		Str("customer_id", customerID).
		Str("public_order_id", publicOrderID).
		Msgf("Customer merge downgraded while trying to %s", step)
}

func requiresShipping(lineItems []any) bool {
	for _, item := range lineItems {
		lineItem, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := subMapOf(lineItem, "product_data")["requires_shipping"].(bool); ok && v {
			return true
		}
	}
	return false
}

func allowedShippingCountries(countryInfo []any) map[string]struct{} {
	allowed := make(map[string]struct{}, len(countryInfo))
	for _, entry := range countryInfo {
		if country, ok := entry.(map[string]any); ok {
			if iso, ok := country["iso_code"].(string); ok {
				allowed[iso] = struct{}{}
			}
		}
	}
	return allowed
}

func filterByCountry(addresses []any, allowed map[string]struct{}) []any {
	filtered := make([]any, 0, len(addresses))
	for _, entry := range addresses {
		address, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		iso, _ := address["country_iso2"].(string)
		if _, ok := allowed[iso]; ok {
			filtered = append(filtered, address)
		}
	}
	return filtered
}

// convertAddresses reshapes platform addresses into the dual key set
// the checkout frontend and the orders API both read. The default flag
// marks the address equal to the customer's default one.
func convertAddresses(addresses []any, defaultAddress map[string]any) []map[string]any {
	formatted := make([]map[string]any, 0, len(addresses))
	for _, entry := range addresses {
		address, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		formatted = append(formatted, map[string]any{
			"id":             address["id"],
			"first_name":     stringOf(address, "first_name"),
			"last_name":      stringOf(address, "last_name"),
			"company":        stringOf(address, "company"),
			"business_name":  stringOf(address, "company"),
			"address":        stringOf(address, "street_1"),
			"address_line_1": stringOf(address, "street_1"),
			"address2":       stringOf(address, "street_2"),
			"address_line_2": stringOf(address, "street_2"),
			"city":           stringOf(address, "city"),
			"postal_code":    stringOf(address, "zip"),
			"province":       stringOf(address, "province"),
			"province_code":  stringOf(address, "province_code"),
			"country":        stringOf(address, "country"),
			"country_code":   stringOf(address, "country_iso2"),
			"phone":          stringOf(address, "phone"),
			"phone_number":   stringOf(address, "phone"),
			"default":        len(defaultAddress) > 0 && reflect.DeepEqual(address, defaultAddress),
		})
	}
	return formatted
}

func hasCustomerSaved(state map[string]any) bool {
	customer := subMapOf(state, "customer")
	return stringOf(customer, "platform_id") != "" || stringOf(customer, "public_id") != ""
}

func subMapOf(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

func anySliceOf(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	list, _ := m[key].([]any)
	return list
}

func stringOf(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func valueOr(m map[string]any, key string, fallback any) any {
	if m == nil {
		return fallback
	}
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return fallback
}
