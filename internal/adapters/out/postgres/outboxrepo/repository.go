package outboxrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/outbox"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores messages; the unit of work calls it inside its transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, msg := range messages {
		if err := msg.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(msg))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetUnprocessed returns the oldest pending messages.
func (r *GormOutboxRepository) GetUnprocessed(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("processed_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		msg, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// MarkProcessed stamps processed_at on a pending message.
func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, msg *outbox.Message, at time.Time) error {
	at = at.UTC()
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ? AND processed_at IS NULL", msg.ID().Bytes()).
		Update("processed_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxMessageId", msg.ID().String())
	}

	msg.MarkProcessed(at)
	return nil
}
