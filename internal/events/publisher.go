package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/product"
)

type EventMeta struct {
	CorrelationID string
}

// Publisher emits product change events to the shared topic exchange.
type Publisher struct {
	ch                 channel
	producerIdentifier string
	now                func() time.Time
}

type PublisherOptions struct {
	Producer string
}

func NewPublisher(conn *amqp.Connection, opts PublisherOptions) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newPublisher(ch, opts)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newPublisher(ch channel, opts PublisherOptions) (*Publisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	producer := opts.Producer
	if producer == "" {
		producer = productServiceName
	}

	return &Publisher{
		ch:                 ch,
		producerIdentifier: producer,
		now:                func() time.Time { return time.Now().UTC() },
	}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishProductCreated(ctx context.Context, meta EventMeta, prod product.Product) error {
	ev := newProductChangedEvent(EventTypeProductCreated, productCreatedSchema, meta, p.producerIdentifier, prod, p.now())
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal ProductCreated: %w", err)
	}
	return p.publishJSON(ctx, ProductCreatedRoutingKey, body)
}

func (p *Publisher) PublishProductUpdated(ctx context.Context, meta EventMeta, prod product.Product) error {
	ev := newProductChangedEvent(EventTypeProductUpdated, productUpdatedSchema, meta, p.producerIdentifier, prod, p.now())
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal ProductUpdated: %w", err)
	}
	return p.publishJSON(ctx, ProductUpdatedRoutingKey, body)
}

func (p *Publisher) PublishProductDeleted(ctx context.Context, meta EventMeta, productID int64) error {
	ev := newProductDeletedEvent(meta, p.producerIdentifier, productID, p.now())
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal ProductDeleted: %w", err)
	}
	return p.publishJSON(ctx, ProductDeletedRoutingKey, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func newEnvelope(name, schema string, meta EventMeta, producer string, productID int64, occurredAt time.Time) EventEnvelope {
	return EventEnvelope{
		EventName:     name,
		EventVersion:  1,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		Producer:      producer,
		PartitionKey:  strconv.FormatInt(productID, 10),
		OccurredAt:    occurredAt,
		Schema:        schema,
	}
}

func newProductChangedEvent(name, schema string, meta EventMeta, producer string, prod product.Product, occurredAt time.Time) ProductChangedEvent {
	return ProductChangedEvent{
		EventEnvelope: newEnvelope(name, schema, meta, producer, prod.ID, occurredAt),
		Payload: ProductPayload{
			ProductID:   prod.ID,
			Name:        prod.Name,
			Quantity:    prod.Quantity,
			Price:       prod.Price,
			Description: prod.Description,
			Timestamp:   occurredAt,
		},
	}
}

func newProductDeletedEvent(meta EventMeta, producer string, productID int64, occurredAt time.Time) ProductDeletedEvent {
	return ProductDeletedEvent{
		EventEnvelope: newEnvelope(EventTypeProductDeleted, productDeletedSchema, meta, producer, productID, occurredAt),
		Payload: ProductDeletedPayload{
			ProductID: productID,
			Timestamp: occurredAt,
		},
	}
}

// NopPublisher drops every event; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishProductCreated(context.Context, EventMeta, product.Product) error {
	return nil
}

func (NopPublisher) PublishProductUpdated(context.Context, EventMeta, product.Product) error {
	return nil
}

func (NopPublisher) PublishProductDeleted(context.Context, EventMeta, int64) error {
	return nil
}
