package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order straight from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the order
// does not exist for the tenant.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			tenant_id,
			status,
			order_date,
			delivers_at,
			quantity,
			total_price
		FROM orders
		WHERE tenant_id = ? AND order_id = ?
	`, query.TenantID(), query.OrderID()).Row()

	var resp GetOrderQueryResponse
	var status string
	var deliversAt sql.NullTime

	err := row.Scan(
		&resp.OrderID,
		&resp.TenantID,
		&status,
		&resp.OrderDate,
		&deliversAt,
		&resp.Quantity,
		&resp.TotalPrice,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Status = order.Status(status)
	if deliversAt.Valid {
		d := deliversAt.Time
		resp.DeliversAt = &d
	}
	resp.DaysSinceOrdered = wholeDaysBetween(resp.OrderDate, time.Now())

	return resp, nil
}

// wholeDaysBetween counts whole calendar days, truncating both instants to
// day granularity.
func wholeDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
