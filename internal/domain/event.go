package domain

import (
	"encoding/json"
	"time"
)

// Telemetry event vocabulary. The registrar rejects anything else.
const (
	EventClickCheckoutButton = "CLICK_CHECKOUT_BUTTON"

	EventInitOrderInitialize        = "CONTROLLER_INIT_ORDER_INITIALIZE"
	EventInitOrderEndpointCalled    = "CONTROLLER_INIT_ORDER_INIT_ENDPOINT_CALLED"
	EventInitOrderEndpointResponded = "CONTROLLER_INIT_ORDER_INIT_ENDPOINT_RESPONDED"
	EventInitOrderFinalize          = "CONTROLLER_INIT_ORDER_FINALIZE"
	EventInitOrderError             = "CONTROLLER_INIT_ORDER_ERROR"

	EventResumeOrderInitialize        = "CONTROLLER_RESUME_ORDER_INITIALIZE"
	EventResumeOrderEndpointCalled    = "CONTROLLER_RESUME_ORDER_RESUME_ENDPOINT_CALLED"
	EventResumeOrderEndpointResponded = "CONTROLLER_RESUME_ORDER_RESUME_ENDPOINT_RESPONDED"
	EventResumeOrderFinalize          = "CONTROLLER_RESUME_ORDER_FINALIZE"
	EventResumeOrderError             = "CONTROLLER_RESUME_ORDER_ERROR"
)

// EventDateTimeFormat is the persisted timestamp layout, microsecond
// precision.
const EventDateTimeFormat = "2006-01-02 15:04:05.000000"

var eventNames = map[string]struct{}{
	EventClickCheckoutButton:          {},
	EventInitOrderInitialize:          {},
	EventInitOrderEndpointCalled:      {},
	EventInitOrderEndpointResponded:   {},
	EventInitOrderFinalize:            {},
	EventInitOrderError:               {},
	EventResumeOrderInitialize:        {},
	EventResumeOrderEndpointCalled:    {},
	EventResumeOrderEndpointResponded: {},
	EventResumeOrderFinalize:          {},
	EventResumeOrderError:             {},
}

// ValidEventName reports whether name belongs to the fixed vocabulary.
func ValidEventName(name string) bool {
	_, ok := eventNames[name]
	return ok
}

// Event is one telemetry record attached to a shop and, when known, a
// public order.
type Event struct {
	ID            string    `json:"id"`
	ShopID        int64     `json:"shop_id"`
	EventName     string    `json:"event_name"`
	EventDateTime string    `json:"event_date_time"`
	Context       string    `json:"context"`
	PublicOrderID string    `json:"public_order_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// SetDateTime formats and stores the event timestamp.
func (e *Event) SetDateTime(t time.Time) {
	e.EventDateTime = t.Format(EventDateTimeFormat)
}

// DateTime parses the stored timestamp back into a time.Time.
func (e *Event) DateTime() (time.Time, error) {
	return time.Parse(EventDateTimeFormat, e.EventDateTime)
}

// SetContext serializes a free-form context payload. Strings pass
// through untouched.
func (e *Event) SetContext(context any) {
	switch t := context.(type) {
	case nil:
		e.Context = ""
	case string:
		e.Context = t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			e.Context = ""
			return
		}
		e.Context = string(b)
	}
}
