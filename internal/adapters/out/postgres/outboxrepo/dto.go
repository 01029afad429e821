// Package outboxrepo stores domain events awaiting publication.
package outboxrepo

import (
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO is a row of outbox. The partial index keeps the relay scan cheap
// once most rows are processed.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	AggregateID uuid.UUID `gorm:"type:uuid;not null"`
	Payload     string    `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time `gorm:"not null;index:idx_outbox_unprocessed,where:processed_at IS NULL"`
	ProcessedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox"
}

func fromDomain(m *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          m.ID.Bytes(),
		Name:        m.Name,
		AggregateID: m.AggregateID.Bytes(),
		Payload:     string(m.Payload),
		OccurredAt:  m.OccurredAt,
		ProcessedAt: m.ProcessedAt,
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	aggregateID, err := kernel.UUIDFromGoogle(dto.AggregateID)
	if err != nil {
		return nil, err
	}

	return &outbox.Message{
		ID:          id,
		Name:        dto.Name,
		AggregateID: aggregateID,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt,
		ProcessedAt: dto.ProcessedAt,
	}, nil
}
