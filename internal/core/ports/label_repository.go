package ports

import (
	"context"
	"errors"

	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/core/domain/model/label"
)

// ErrDuplicateLabel is returned by Add when a label with the same identity or
// the same tenant-scoped idempotency key already exists.
var ErrDuplicateLabel = errors.New("label already exists")

// LabelRepository defines the persistence contract for label aggregates.
// Labels are immutable: there is no update operation.
type LabelRepository interface {
	// Add persists a new label. Returns ErrDuplicateLabel when a label with
	// the same id or idempotency key is already stored.
	Add(ctx context.Context, aggregate *label.Label) error

	// Get retrieves a label by its tenant-scoped identifier.
	// Returns errs.ObjectNotFoundError when no such label exists.
	// Label downloads are served by the raw-SQL query layer; Get is the
	// aggregate-shaped read of the write-side contract, for callers that need
	// the label back inside a unit of work.
	Get(ctx context.Context, tenantID string, id kernel.UUID) (*label.Label, error)

	// FindByIdempotencyKey retrieves the label previously stored under a
	// caller-supplied idempotency key. Returns errs.ObjectNotFoundError when
	// the key has not been used.
	FindByIdempotencyKey(ctx context.Context, tenantID, key string) (*label.Label, error)
}
