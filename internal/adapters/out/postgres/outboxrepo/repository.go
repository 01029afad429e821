package outboxrepo

import (
	"context"

	"roadside/internal/adapters/out/postgres/pgerr"
	"roadside/internal/core/domain/model/outbox"
	"roadside/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, fromDomain(m))
	}
	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgerr.Wrap("add outbox messages", err)
	}
	return nil
}

func (r *GormOutboxRepository) GetUnprocessedForUpdate(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_at IS NULL").
		Order("occurred_at ASC, id ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Wrap("get outbox messages", err)
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, message *outbox.Message) error {
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", message.ID.Bytes()).
		Update("processed_at", message.ProcessedAt)
	if result.Error != nil {
		return pgerr.Wrap("mark outbox message", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxMessage", message.ID.String())
	}
	return nil
}
