// Package labelrepo provides data transfer objects and mapping functions for
// label persistence. Labels are write-once: the repository supports adding and
// reading, never updating.
package labelrepo

import (
	"time"

	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/core/domain/model/label"

	"github.com/google/uuid"
)

// LabelDTO represents the database structure for persisting label aggregates.
// The idempotency key carries a unique index per tenant so a retried action
// trips a duplicate-key error instead of storing a second label; the column
// is nullable because the key is optional.
type LabelDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       string    `gorm:"index;uniqueIndex:idx_labels_idempotency"`
	OrderID        int64     `gorm:"index"`
	Kind           string
	CreatedAt      time.Time
	Document       []byte  `gorm:"type:bytea"`
	IdempotencyKey *string `gorm:"uniqueIndex:idx_labels_idempotency"`
}

// TableName specifies the database table name for label entities.
func (LabelDTO) TableName() string {
	return "labels"
}

// fromDomain converts a label domain aggregate to its database representation.
func fromDomain(aggregate *label.Label) LabelDTO {
	var idempotencyKey *string
	if key := aggregate.IdempotencyKey(); key != "" {
		idempotencyKey = &key
	}

	return LabelDTO{
		ID:             aggregate.ID().Bytes(),
		TenantID:       aggregate.TenantID(),
		OrderID:        aggregate.OrderID(),
		Kind:           aggregate.Kind().String(),
		CreatedAt:      aggregate.CreatedAt(),
		Document:       aggregate.Document(),
		IdempotencyKey: idempotencyKey,
	}
}

// toDomain converts a database DTO to a label domain aggregate using RestoreLabel.
func toDomain(dto LabelDTO) (*label.Label, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var idempotencyKey string
	if dto.IdempotencyKey != nil {
		idempotencyKey = *dto.IdempotencyKey
	}

	return label.RestoreLabel(
		id,
		dto.TenantID,
		dto.OrderID,
		label.Kind(dto.Kind),
		dto.Document,
		dto.CreatedAt,
		idempotencyKey,
	)
}
