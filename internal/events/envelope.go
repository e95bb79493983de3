package events

import (
	"fmt"
	"time"
)

const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductUpdated = "ProductUpdated"
	EventTypeProductDeleted = "ProductDeleted"

	productCreatedSchema = "product.created.v1.json"
	productUpdatedSchema = "product.updated.v1.json"
	productDeletedSchema = "product.deleted.v1.json"
)

// EventEnvelope is the shared header of every v1 product event.
type EventEnvelope struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
}

func (e EventEnvelope) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName %q", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	if e.EventID == "" {
		return fmt.Errorf("missing eventId")
	}
	return nil
}

type ProductPayload struct {
	ProductID   int64     `json:"productId"`
	Name        string    `json:"name,omitempty"`
	Quantity    int32     `json:"qty"`
	Price       float64   `json:"price"`
	Description *string   `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type ProductChangedEvent struct {
	EventEnvelope
	Payload ProductPayload `json:"payload"`
}

type ProductDeletedPayload struct {
	ProductID int64     `json:"productId"`
	Timestamp time.Time `json:"timestamp"`
}

type ProductDeletedEvent struct {
	EventEnvelope
	Payload ProductDeletedPayload `json:"payload"`
}
