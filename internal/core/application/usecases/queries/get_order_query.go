// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read directly from the database, bypassing the domain
// aggregates, and return flat response shapes for the API layer.
package queries

import (
	"errors"
	"fmt"
	"time"

	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/pkg/errs"
	"willowcommerce/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order by its tenant-scoped identifier.
//
// Example:
//
//	query, err := NewGetOrderQuery("u1", 42)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	tenantID string
	orderID  int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(tenantID string, orderID int64) (GetOrderQuery, error) {
	query := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if tenantID == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("tenantID")
	}
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"orderID", fmt.Errorf("%d is not greater than 0", orderID))
	}

	query.tenantID = tenantID
	query.orderID = orderID
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// TenantID returns the tenant scoping the query.
func (q GetOrderQuery) TenantID() string {
	return q.tenantID
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// GetOrderQueryResponse is the read model for a single order, including the
// derived age of the order in whole days.
type GetOrderQueryResponse struct {
	OrderID          int64
	TenantID         string
	Status           order.Status
	OrderDate        time.Time
	DeliversAt       *time.Time
	Quantity         int
	TotalPrice       float64
	DaysSinceOrdered int
}
