// Package outbox holds the notifications a committed order change produces.
// Messages are written in the same transaction as the order and relayed to
// the message broker afterwards, so a change is never published without
// being stored nor stored without eventually being published.
package outbox

import (
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderChangedEvent is the name of the message emitted for every committed
// order or return request change.
const OrderChangedEvent = "order.changed"

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewOrderChangedMessage or RestoreMessage")

// Message is a pending broker notification.
type Message struct {
	id            kernel.UUID
	name          string
	aggregateKey  string
	payload       []byte
	occurredAt    time.Time
	processedAt   *time.Time
	isConstructed bool
}

// OrderChanged is the payload of an order.changed message.
type OrderChanged struct {
	OrderID        string    `json:"orderId"`
	Collection     string    `json:"collection"`
	Status         string    `json:"status"`
	DeliveryStatus string    `json:"deliveryStatus"`
	VendorDecision *bool     `json:"vendorDecision,omitempty"`
	VendorName     *string   `json:"vendorName,omitempty"`
	TrackingID     *string   `json:"trackingId,omitempty"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// NewOrderChangedMessage captures the current state of o.
func NewOrderChangedMessage(o *order.Order) (*Message, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	event := OrderChanged{
		OrderID:        o.ID().String(),
		Collection:     o.Collection().String(),
		Status:         o.Status().String(),
		DeliveryStatus: o.DeliveryStatus().String(),
		LastUpdated:    o.LastUpdated(),
	}
	if v := o.VendorAllotment(); v != nil {
		decision := v.Decision()
		event.VendorDecision = &decision
		event.VendorName = v.VendorName()
	}
	if c := o.CourierAllotment(); c != nil && c.TrackingID() != nil {
		id := c.TrackingID().String()
		event.TrackingID = &id
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &Message{
		id:            kernel.NewUUID(),
		name:          OrderChangedEvent,
		aggregateKey:  order.LockKey(o.Collection(), o.ID()),
		payload:       payload,
		occurredAt:    o.LastUpdated(),
		isConstructed: true,
	}, nil
}

// RestoreMessage rebuilds a stored message.
func RestoreMessage(
	id kernel.UUID,
	name, aggregateKey string,
	payload []byte,
	occurredAt time.Time,
	processedAt *time.Time,
) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Message{
		id:            id,
		name:          name,
		aggregateKey:  aggregateKey,
		payload:       payload,
		occurredAt:    occurredAt,
		processedAt:   processedAt,
		isConstructed: true,
	}, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) Name() string {
	return m.name
}

// AggregateKey is "<collection>/<order id>"; brokers use it as the partition key.
func (m *Message) AggregateKey() string {
	return m.aggregateKey
}

func (m *Message) Payload() []byte {
	return m.payload
}

func (m *Message) OccurredAt() time.Time {
	return m.occurredAt
}

func (m *Message) ProcessedAt() *time.Time {
	return m.processedAt
}

// MarkProcessed records when the message was handed to the broker.
func (m *Message) MarkProcessed(at time.Time) {
	at = at.UTC()
	m.processedAt = &at
}
