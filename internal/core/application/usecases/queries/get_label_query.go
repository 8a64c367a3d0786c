package queries

import (
	"errors"
	"time"

	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/core/domain/model/label"
	"willowcommerce/internal/pkg/errs"
	"willowcommerce/internal/pkg/guard"
)

var (
	ErrGetLabelQueryIsNotConstructed = errors.New(
		"GetLabelQuery must be created via NewGetLabelQuery constructor",
	)
)

// GetLabelQuery retrieves a stored label document by id for viewing or
// downloading.
type GetLabelQuery struct { //nolint:recvcheck //using for validation
	tenantID string
	labelID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLabelQuery creates a query for a single label.
func NewGetLabelQuery(tenantID string, labelID kernel.UUID) (GetLabelQuery, error) {
	if tenantID == "" {
		return GetLabelQuery{}, errs.NewValueIsRequiredError("tenantID")
	}
	if err := labelID.Validate(); err != nil {
		return GetLabelQuery{}, err
	}

	return GetLabelQuery{
		tenantID: tenantID,
		labelID:  labelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLabelQuery) Validate() error {
	return q.guard.Validate(ErrGetLabelQueryIsNotConstructed)
}

// TenantID returns the tenant scoping the query.
func (q GetLabelQuery) TenantID() string {
	return q.tenantID
}

// LabelID returns the identifier of the requested label.
func (q GetLabelQuery) LabelID() kernel.UUID {
	return q.labelID
}

// GetLabelQueryResponse carries the label document and its metadata.
type GetLabelQueryResponse struct {
	ID        kernel.UUID
	OrderID   int64
	Kind      label.Kind
	CreatedAt time.Time
	Document  []byte
}
