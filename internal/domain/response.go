package domain

import "encoding/json"

// Field names used inside the remote response envelope.
const (
	fieldData             = "data"
	fieldApplicationState = "application_state"
	fieldPublicOrderID    = "public_order_id"
	fieldInitialData      = "initial_data"
	fieldJWTToken         = "jwt_token"
	fieldIsProcessed      = "is_processed"
	fieldAddresses        = "addresses"
	fieldCustomer         = "customer"
	fieldShipping         = "shipping"
	fieldBilling          = "billing"
)

// InvalidJWTSentinel replaces the jwt_token of a processed order
// before the response reaches the browser again.
const InvalidJWTSentinel = "invalid"

// APIResponse wraps the remote commerce API envelope {code, content}.
// Accessors return zero values for missing paths; mutators replace the
// whole envelope so the wrapped structure stays consistent.
type APIResponse struct {
	Code    int
	Content map[string]any
}

// NewAPIResponse builds a response wrapper around a decoded body.
func NewAPIResponse(code int, content map[string]any) *APIResponse {
	return &APIResponse{Code: code, Content: content}
}

// Data returns content.data, or nil when absent.
func (r *APIResponse) Data() map[string]any {
	if r == nil {
		return nil
	}
	return subMap(r.Content, fieldData)
}

// PublicOrderID returns content.data.public_order_id, or "".
func (r *APIResponse) PublicOrderID() string {
	s, _ := r.Data()[fieldPublicOrderID].(string)
	return s
}

// ApplicationState returns content.data.application_state, or nil.
func (r *APIResponse) ApplicationState() map[string]any {
	return subMap(r.Data(), fieldApplicationState)
}

// InitialData returns content.data.initial_data, or nil.
func (r *APIResponse) InitialData() map[string]any {
	return subMap(r.Data(), fieldInitialData)
}

// JWTToken returns content.data.jwt_token, or "".
func (r *APIResponse) JWTToken() string {
	s, _ := r.Data()[fieldJWTToken].(string)
	return s
}

// IsOrderProcessed reports whether application_state.is_processed is
// exactly true.
func (r *APIResponse) IsOrderProcessed() bool {
	v, _ := r.ApplicationState()[fieldIsProcessed].(bool)
	return v
}

// SetApplicationState replaces content.data.application_state with a
// fresh copy of state, rebuilding the whole envelope.
func (r *APIResponse) SetApplicationState(state map[string]any) {
	content := deepCopyMap(r.Content)
	data := subMap(content, fieldData)
	if data == nil {
		data = map[string]any{}
		if content == nil {
			content = map[string]any{}
		}
		content[fieldData] = data
	}
	data[fieldApplicationState] = deepCopyMap(state)
	r.Content = content
}

// CleanPII strips shipping/billing addresses and the customer block
// from the application state. Calling it twice is the same as calling
// it once.
func (r *APIResponse) CleanPII() {
	state := deepCopyMap(r.ApplicationState())
	if state == nil {
		return
	}
	if addresses := subMap(state, fieldAddresses); addresses != nil {
		delete(addresses, fieldShipping)
		delete(addresses, fieldBilling)
	}
	delete(state, fieldCustomer)
	r.SetApplicationState(state)
}

// InvalidateJWT overwrites content.data.jwt_token with the invalid
// sentinel.
func (r *APIResponse) InvalidateJWT() {
	content := deepCopyMap(r.Content)
	data := subMap(content, fieldData)
	if data == nil {
		return
	}
	data[fieldJWTToken] = InvalidJWTSentinel
	r.Content = content
}

// ErrorMessage extracts the best-effort message of a rejected call,
// checking content.errors, content.message and content.error in order.
func (r *APIResponse) ErrorMessage() string {
	for _, key := range []string{"errors", "message", "error"} {
		if v, ok := r.Content[key]; ok && v != nil {
			if s, ok := v.(string); ok {
				return s
			}
			return stringify(v)
		}
	}
	return "possible network error"
}

func subMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

func stringify(v any) string {
	// error payloads are occasionally lists or objects; keep them
	// readable without caring about their exact shape
	b, err := json.Marshal(v)
	if err != nil {
		return "possible network error"
	}
	return string(b)
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
