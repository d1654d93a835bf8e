package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderEnvelope() *APIResponse {
	return NewAPIResponse(200, map[string]any{
		"data": map[string]any{
			"public_order_id": "order-123",
			"jwt_token":       "jwt-abc",
			"application_state": map[string]any{
				"is_processed": false,
				"customer": map[string]any{
					"email_address": "jane@example.com",
					"platform_id":   "77",
				},
				"addresses": map[string]any{
					"shipping": map[string]any{"city": "Winnipeg"},
					"billing":  map[string]any{"city": "Winnipeg"},
				},
				"line_items": []any{},
			},
			"initial_data": map[string]any{
				"country_info": []any{},
			},
		},
	})
}

func TestAPIResponseAccessors(t *testing.T) {
	r := orderEnvelope()

	assert.Equal(t, "order-123", r.PublicOrderID())
	assert.Equal(t, "jwt-abc", r.JWTToken())
	assert.False(t, r.IsOrderProcessed())
	assert.NotNil(t, r.ApplicationState())
	assert.NotNil(t, r.InitialData())
}

func TestAPIResponseAccessorsOnEmptyEnvelope(t *testing.T) {
	r := NewAPIResponse(200, map[string]any{})

	assert.Empty(t, r.PublicOrderID())
	assert.Empty(t, r.JWTToken())
	assert.Nil(t, r.ApplicationState())
	assert.False(t, r.IsOrderProcessed())
}

func TestIsOrderProcessedRequiresExactTrue(t *testing.T) {
	r := orderEnvelope()
	assert.False(t, r.IsOrderProcessed())

	state := r.ApplicationState()
	state["is_processed"] = "true"
	r.SetApplicationState(state)
	assert.False(t, r.IsOrderProcessed(), "a string true must not count as processed")

	state["is_processed"] = true
	r.SetApplicationState(state)
	assert.True(t, r.IsOrderProcessed())
}

func TestCleanPIIStripsCustomerAndAddresses(t *testing.T) {
	r := orderEnvelope()
	r.CleanPII()

	state := r.ApplicationState()
	require.NotNil(t, state)
	assert.NotContains(t, state, "customer")

	addresses, ok := state["addresses"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, addresses, "shipping")
	assert.NotContains(t, addresses, "billing")

	assert.Equal(t, "order-123", r.PublicOrderID(), "cleaning must not touch the rest of the envelope")
	assert.Equal(t, "jwt-abc", r.JWTToken())
}

func TestCleanPIIIsIdempotent(t *testing.T) {
	r := orderEnvelope()
	r.CleanPII()
	first := r.ApplicationState()

	r.CleanPII()
	assert.Equal(t, first, r.ApplicationState())
}

func TestCleanPIIOnMissingStateIsANoOp(t *testing.T) {
	r := NewAPIResponse(200, map[string]any{"data": map[string]any{}})
	r.CleanPII()
	assert.Nil(t, r.ApplicationState())
}

func TestInvalidateJWT(t *testing.T) {
	r := orderEnvelope()
	r.InvalidateJWT()
	assert.Equal(t, InvalidJWTSentinel, r.JWTToken())
}

func TestSetApplicationStateCopiesInput(t *testing.T) {
	r := orderEnvelope()
	state := map[string]any{"customer": map[string]any{"email_address": "a@b.c"}}
	r.SetApplicationState(state)

	state["customer"] = "mutated"
	sub, ok := r.ApplicationState()["customer"].(map[string]any)
	require.True(t, ok, "later mutation of the caller's map must not leak into the envelope")
	assert.Equal(t, "a@b.c", sub["email_address"])
}

func TestErrorMessagePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		content map[string]any
		want    string
	}{
		{"errors wins", map[string]any{"errors": "bad cart", "message": "nope"}, "bad cart"},
		{"message next", map[string]any{"message": "not found"}, "not found"},
		{"error last", map[string]any{"error": "invalid_grant"}, "invalid_grant"},
		{"structured errors serialized", map[string]any{"errors": []any{map[string]any{"field": "cart_id"}}}, `[{"field":"cart_id"}]`},
		{"empty body", map[string]any{}, "possible network error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewAPIResponse(422, tt.content)
			assert.Equal(t, tt.want, r.ErrorMessage())
		})
	}
}
