// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"database/sql"
	"time"

	"willowcommerce/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Orders are keyed by the composite (tenant_id, order_id) pair; the status
// column is indexed to support the delivery-sync sweep over shipped orders.
type OrderDTO struct {
	TenantID   string `gorm:"primaryKey"`
	OrderID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Status     string `gorm:"index"`
	OrderDate  time.Time
	DeliversAt sql.NullTime
	Quantity   int
	TotalPrice float64
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var deliversAt sql.NullTime
	if d := aggregate.DeliversAt(); d != nil {
		deliversAt = sql.NullTime{Time: *d, Valid: true}
	}

	return OrderDTO{
		TenantID:   aggregate.TenantID(),
		OrderID:    aggregate.ID(),
		Status:     string(aggregate.Status()),
		OrderDate:  aggregate.OrderDate(),
		DeliversAt: deliversAt,
		Quantity:   aggregate.Quantity(),
		TotalPrice: aggregate.TotalPrice(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	var deliversAt *time.Time
	if dto.DeliversAt.Valid {
		d := dto.DeliversAt.Time
		deliversAt = &d
	}

	return order.RestoreOrder(
		dto.TenantID,
		dto.OrderID,
		order.Status(dto.Status),
		dto.OrderDate,
		deliversAt,
		dto.Quantity,
		dto.TotalPrice,
	)
}
