package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/core/ports"
	"willowcommerce/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Get retrieves an order by its tenant-scoped identifier.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID string, orderID int64) (*order.Order, error) {
	if tenantID == "" {
		return nil, errs.NewValueIsRequiredError("tenantID")
	}
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"orderID", fmt.Errorf("%d is not greater than 0", orderID))
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND order_id = ?", tenantID, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus performs a conditional status transition. The write applies
// only when the stored status still equals expected; a zero-row result is
// disambiguated into not-found or concurrent-conflict by re-reading the row.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	tenantID string,
	orderID int64,
	expected order.Status,
	next order.Status,
) error {
	if err := next.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("tenant_id = ? AND order_id = ? AND status = ?", tenantID, orderID, string(expected)).
		Update("status", string(next))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", orderID)
	}

	return ports.ErrConcurrentConflict
}

// Update saves the mutable non-status state of an existing order. Status is
// deliberately excluded from the write set: transitions go through
// UpdateStatus so every status write is conditional on the expected value.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("tenant_id = ? AND order_id = ?", dto.TenantID, dto.OrderID).
		Select("OrderDate", "DeliversAt", "Quantity", "TotalPrice").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	return nil
}

// GetAllShippedOrderedBefore retrieves shipped orders placed on or before the cutoff day.
func (r *GormOrderRepository) GetAllShippedOrderedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND order_date <= ?", string(order.Shipped), cutoff).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
