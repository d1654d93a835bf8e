package entity

import (
	"time"

	"checkout-experience-layer/internal/domain"
)

// MongoEventDoc represents a telemetry event in MongoDB
type MongoEventDoc struct {
	ID            string    `bson:"_id"`
	ShopID        int64     `bson:"shop_id"`
	EventName     string    `bson:"event_name"`
	EventDateTime string    `bson:"event_date_time"`
	Context       string    `bson:"context"`
	PublicOrderID string    `bson:"public_order_id"`
	CreatedAt     time.Time `bson:"created_at"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoEventDoc) ToDomain() *domain.Event {
	return &domain.Event{
		ID:            d.ID,
		ShopID:        d.ShopID,
		EventName:     d.EventName,
		EventDateTime: d.EventDateTime,
		Context:       d.Context,
		PublicOrderID: d.PublicOrderID,
		CreatedAt:     d.CreatedAt,
	}
}

// MongoEventDocFromDomain converts a domain entity to a MongoDB document
func MongoEventDocFromDomain(event *domain.Event) *MongoEventDoc {
	return &MongoEventDoc{
		ID:            event.ID,
		ShopID:        event.ShopID,
		EventName:     event.EventName,
		EventDateTime: event.EventDateTime,
		Context:       event.Context,
		PublicOrderID: event.PublicOrderID,
		CreatedAt:     event.CreatedAt,
	}
}
