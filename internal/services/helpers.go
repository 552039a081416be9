package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"katalog/internal/apperrors"
	"katalog/internal/models"
)

// EventPublisher is the slice of the message queue client the services need.
// A nil publisher disables event publication.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// validateStruct runs struct validation and converts failures into a single
// validation error with the per-field messages joined by commas.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
		}
		return apperrors.Validation("%s", strings.Join(msgs, ","))
	}
	return apperrors.Validation("%s", err.Error())
}

// publishCatalogEvent publishes a catalog change event. Publication is
// best-effort: failures are logged and never fail the request.
func publishCatalogEvent(pub EventPublisher, eventType, entityID string, data interface{}) {
	if pub == nil {
		return
	}
	event := models.CatalogEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
		EntityID:  entityID,
		Data:      data,
	}
	body, err := event.ToJSON()
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := pub.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for %s: %v", eventType, entityID, err)
	}
}
