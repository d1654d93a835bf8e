package application

import (
	"context"
	"time"

	"checkout-experience-layer/internal/domain"
	"checkout-experience-layer/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventsService records telemetry events. Persistence failures are
// logged and swallowed; telemetry never fails a checkout request.
type EventsService struct {
	events ports.EventRepository
	logger zerolog.Logger
}

// NewEventsService creates a new events service.
func NewEventsService(events ports.EventRepository, logger zerolog.Logger) *EventsService {
	return &EventsService{events: events, logger: logger}
}

// NewEvent builds an event record without persisting it.
func (s *EventsService) NewEvent(shopID int64, eventName string, dateTime time.Time, context any, publicOrderID string) *domain.Event {
	event := &domain.Event{
		ID:            uuid.NewString(),
		ShopID:        shopID,
		EventName:     eventName,
		PublicOrderID: publicOrderID,
		CreatedAt:     time.Now().UTC(),
	}
	event.SetDateTime(dateTime)
	event.SetContext(context)
	return event
}

// Register persists a batch of events and returns how many were
// saved.
func (s *EventsService) Register(ctx context.Context, events []*domain.Event) int {
	if len(events) == 0 {
		return 0
	}
	saved, err := s.events.InsertMany(ctx, events)
	if err != nil {
		s.logger.Error().Err(err).Int("events", len(events)).Msg("Failed to register events")
	}
	return saved
}

// IncomingEvent is one externally submitted telemetry record.
type IncomingEvent struct {
	EventName     string `json:"event_name"`
	EventDateTime string `json:"event_date_time"`
	Context       string `json:"context"`
	PublicOrderID string `json:"public_order_id"`
}

// RegisterIncoming validates and persists externally submitted events
// for a shop. Events with an unknown name count as in error instead of
// failing the batch.
func (s *EventsService) RegisterIncoming(ctx context.Context, shop *domain.Shop, incoming []IncomingEvent) (saved, inError int) {
	for _, in := range incoming {
		if !domain.ValidEventName(in.EventName) {
			inError++
			continue
		}
		dateTime := time.Now().UTC()
		if in.EventDateTime != "" {
			if parsed, err := time.Parse(domain.EventDateTimeFormat, in.EventDateTime); err == nil {
				dateTime = parsed
			}
		}
		event := s.NewEvent(shop.ID, in.EventName, dateTime, in.Context, in.PublicOrderID)
		if err := s.events.Insert(ctx, event); err != nil {
			s.logger.Error().Err(err).Str("event_name", in.EventName).Msg("Failed to save event")
			inError++
			continue
		}
		saved++
	}
	return saved, inError
}
