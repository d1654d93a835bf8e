package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDateTimeRoundTrip(t *testing.T) {
	var event Event
	stamp := time.Date(2026, 3, 14, 10, 30, 45, 123456000, time.UTC)
	event.SetDateTime(stamp)

	assert.Equal(t, "2026-03-14 10:30:45.123456", event.EventDateTime)

	parsed, err := event.DateTime()
	require.NoError(t, err)
	assert.True(t, parsed.Equal(stamp))
}

func TestEventSetContext(t *testing.T) {
	var event Event

	event.SetContext(nil)
	assert.Empty(t, event.Context)

	event.SetContext("raw context")
	assert.Equal(t, "raw context", event.Context)

	event.SetContext(map[string]any{"cart_id": "cart-1"})
	assert.JSONEq(t, `{"cart_id":"cart-1"}`, event.Context)
}

func TestValidEventName(t *testing.T) {
	assert.True(t, ValidEventName(EventClickCheckoutButton))
	assert.True(t, ValidEventName(EventInitOrderFinalize))
	assert.True(t, ValidEventName(EventResumeOrderError))
	assert.False(t, ValidEventName("SOMETHING_ELSE"))
	assert.False(t, ValidEventName(""))
}

func TestPendingMarkerKey(t *testing.T) {
	assert.Equal(t, "headless::order-123", PendingMarkerKey("order-123"))
}
