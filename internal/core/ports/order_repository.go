// Package ports defines the contracts between the application core and
// infrastructure adapters: repositories, the unit of work, the label-printing
// service, and the event publisher.
package ports

import (
	"context"
	"errors"
	"time"

	"willowcommerce/internal/core/domain/model/order"
)

// ErrConcurrentConflict is returned by conditional updates when the stored
// status no longer matches the expected status, meaning another action
// transitioned the order between read and write. Callers may re-fetch and
// retry.
var ErrConcurrentConflict = errors.New("order status changed concurrently")

// OrderRepository defines the persistence contract for order aggregates.
// Orders are keyed by (tenant ID, order ID).
type OrderRepository interface {
	// Get retrieves an order by its tenant-scoped identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, tenantID string, orderID int64) (*order.Order, error)

	// UpdateStatus performs a conditional status transition: the stored status
	// must still equal expected for the write to apply. Returns
	// ErrConcurrentConflict when the status has moved on, or
	// errs.ObjectNotFoundError when the order does not exist. The update is
	// atomic at the storage layer; it is the sole concurrency-control
	// primitive for order transitions.
	UpdateStatus(ctx context.Context, tenantID string, orderID int64, expected, next order.Status) error

	// Update persists the mutable non-status state of an existing order.
	// Status is never written here; transitions go through UpdateStatus.
	// Used by the delivery-sync job, which stamps the delivery date after
	// claiming the order with a conditional transition.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetAllShippedOrderedBefore retrieves shipped orders placed on or before
	// the cutoff day. Used by the delivery-sync sweep to find orders whose
	// transit time has elapsed.
	GetAllShippedOrderedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
