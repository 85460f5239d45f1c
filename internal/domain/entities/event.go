package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a domain change published on the event bus
type EventType string

const (
	EventAppointmentCreated  EventType = "appointment.created"
	EventAppointmentUpdated  EventType = "appointment.updated"
	EventAppointmentApproved EventType = "appointment.approved"
	EventAppointmentDeleted  EventType = "appointment.deleted"

	EventCatalogChanged EventType = "catalog.changed"

	EventOrderCreated EventType = "order.created"
)

// Aggregate names the resource an event is about
type Aggregate string

const (
	AggregateAppointment     Aggregate = "appointment"
	AggregateProduct         Aggregate = "product"
	AggregateCategory        Aggregate = "category"
	AggregateServiceCategory Aggregate = "service_category"
	AggregateTeamMember      Aggregate = "team_member"
	AggregateOrder           Aggregate = "order"
)

// DomainEvent is the envelope carried by every event sink
type DomainEvent struct {
	ID          string          `json:"id"`
	Type        EventType       `json:"type"`
	Aggregate   Aggregate       `json:"aggregate"`
	AggregateID string          `json:"aggregateId"`
	Timestamp   time.Time       `json:"timestamp"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// NewDomainEvent creates an event, encoding payload as JSON when it is non-nil
func NewDomainEvent(eventType EventType, aggregate Aggregate, aggregateID string, payload any) *DomainEvent {
	event := &DomainEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Aggregate:   aggregate,
		AggregateID: aggregateID,
		Timestamp:   time.Now().UTC(),
	}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			event.Payload = data
		}
	}
	return event
}
