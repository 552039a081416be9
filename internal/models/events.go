package models

import (
	"encoding/json"
	"time"
)

// Catalog event types published to the message queue.
const (
	EventProductCreated  = "product_created"
	EventProductUpdated  = "product_updated"
	EventProductDeleted  = "product_deleted"
	EventCategoryCreated = "category_created"
	EventCategoryUpdated = "category_updated"
	EventCategoryDeleted = "category_deleted"
)

// CatalogEvent is the envelope for product and category change events.
type CatalogEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Timestamp time.Time   `json:"timestamp"`
	EntityID  string      `json:"entity_id"`
	Data      interface{} `json:"data,omitempty"`
}

// ToJSON marshals the event for publishing.
func (e *CatalogEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
