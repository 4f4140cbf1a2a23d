// Package outboxrepo stores outbox messages in the outbox table.
package outboxrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO is one row of the outbox table.
type MessageDTO struct {
	Seq          int64     `gorm:"autoIncrement;uniqueIndex;<-:false"`
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	AggregateKey string    `gorm:"not null"`
	Payload      string    `gorm:"type:jsonb;not null"`
	OccurredAt   time.Time `gorm:"not null"`
	ProcessedAt  *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox"
}

func fromDomain(msg *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:           msg.ID().Bytes(),
		Name:         msg.Name(),
		AggregateKey: msg.AggregateKey(),
		Payload:      string(msg.Payload()),
		OccurredAt:   msg.OccurredAt(),
		ProcessedAt:  msg.ProcessedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return outbox.RestoreMessage(id, dto.Name, dto.AggregateKey, []byte(dto.Payload), dto.OccurredAt, dto.ProcessedAt)
}
