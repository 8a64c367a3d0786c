package labelrepo

import (
	"context"
	"errors"

	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/core/domain/model/label"
	"willowcommerce/internal/core/ports"
	"willowcommerce/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLabelRepository implements ports.LabelRepository using GORM.
type GormLabelRepository struct {
	db *gorm.DB
}

// NewGormLabelRepository creates a new GORM label repository.
func NewGormLabelRepository(db *gorm.DB) *GormLabelRepository {
	return &GormLabelRepository{db: db}
}

// Add saves a new label to the database. A duplicate id or a reused
// idempotency key surfaces as ports.ErrDuplicateLabel; relies on GORM's
// TranslateError to normalize the driver's unique-violation error.
func (r *GormLabelRepository) Add(ctx context.Context, aggregate *label.Label) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrDuplicateLabel
		}
		return err
	}

	return nil
}

// Get retrieves a label by its tenant-scoped identifier.
func (r *GormLabelRepository) Get(ctx context.Context, tenantID string, id kernel.UUID) (*label.Label, error) {
	if tenantID == "" {
		return nil, errs.NewValueIsRequiredError("tenantID")
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LabelDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID, id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("label", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByIdempotencyKey retrieves the label previously stored under a
// caller-supplied idempotency key.
func (r *GormLabelRepository) FindByIdempotencyKey(ctx context.Context, tenantID, key string) (*label.Label, error) {
	if tenantID == "" {
		return nil, errs.NewValueIsRequiredError("tenantID")
	}
	if key == "" {
		return nil, errs.NewValueIsRequiredError("key")
	}

	var dto LabelDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND idempotency_key = ?", tenantID, key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("label", key)
		}
		return nil, err
	}

	return toDomain(dto)
}
