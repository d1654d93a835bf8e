package api

import (
	"encoding/json"
	"net/http"

	"checkout-experience-layer/internal/application"

	"github.com/rs/zerolog"
)

// EventsHandler accepts externally submitted telemetry events. The
// token validation middleware runs in front of it.
type EventsHandler struct {
	shops     *application.ShopService
	events    *application.EventsService
	responder *Responder
	logger    zerolog.Logger
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(shops *application.ShopService, events *application.EventsService, responder *Responder, logger zerolog.Logger) *EventsHandler {
	return &EventsHandler{shops: shops, events: events, responder: responder, logger: logger}
}

type registerEventsRequest struct {
	Events []application.IncomingEvent `json:"events"`
}

// Register handles POST /events. A bad batch never fails outright:
// whatever could be saved is saved and the rest is counted in_error.
func (h *EventsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request registerEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Info().Err(err).Msg("Unreadable events payload")
		request.Events = nil
	}
	if len(request.Events) == 0 {
		h.responder.JSON(w, http.StatusNoContent, nil)
		return
	}

	saved, inError := 0, 0
	shop, err := h.shops.GetShopByDomain(r.Context(), r.Header.Get("X-Bold-Shop-Domain"))
	if err != nil {
		h.logger.Info().Err(err).Msg("Events dropped, shop not resolved")
	} else {
		saved, inError = h.events.RegisterIncoming(r.Context(), shop, request.Events)
	}

	h.responder.JSON(w, http.StatusCreated, map[string]any{
		"message": "Event(s) saved",
		"results": map[string]int{
			"saved":    saved,
			"in_error": inError,
		},
	})
}
