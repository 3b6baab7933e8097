package service

import "time"

// Catalog event types pushed to subscribers.
const (
	EventMarkupUpdated   = "markup_updated"
	EventProductCreated  = "product_created"
	EventProductUpdated  = "product_updated"
	EventProductDeleted  = "product_deleted"
	EventCategoryCreated = "category_created"
	EventCategoryDeleted = "category_deleted"
	EventCatalogImported = "catalog_imported"
)

// CatalogEvent tells clients that prices or catalog rows changed.
type CatalogEvent struct {
	Type             string    `json:"type"`
	ProductID        uint      `json:"product_id,omitempty"`
	CategoryID       uint      `json:"category_id,omitempty"`
	MarkupPercentage *float64  `json:"markup_percentage,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// EventPublisher fans catalog events out. Publish must not block.
type EventPublisher interface {
	Publish(event CatalogEvent)
}

type noopPublisher struct{}

func (noopPublisher) Publish(CatalogEvent) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func newEvent(eventType string) CatalogEvent {
	return CatalogEvent{Type: eventType, OccurredAt: time.Now().UTC()}
}
