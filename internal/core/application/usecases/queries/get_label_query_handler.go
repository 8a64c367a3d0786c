package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/core/domain/model/label"
	"willowcommerce/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLabelQueryHandler reads a stored label document straight from the database.
type GetLabelQueryHandler struct {
	db *gorm.DB
}

// NewGetLabelQueryHandler creates a handler for label downloads.
func NewGetLabelQueryHandler(db *gorm.DB) GetLabelQueryHandler {
	return GetLabelQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no label
// with the given id exists for the tenant.
func (h GetLabelQueryHandler) Handle(ctx context.Context, query GetLabelQuery) (GetLabelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLabelQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			kind,
			created_at,
			document
		FROM labels
		WHERE tenant_id = ? AND id = ?
	`, query.TenantID(), query.LabelID().Bytes()).Row()

	var id uuid.UUID
	var orderID int64
	var kind string
	var createdAt time.Time
	var document []byte

	err := row.Scan(&id, &orderID, &kind, &createdAt, &document)
	if errors.Is(err, sql.ErrNoRows) {
		return GetLabelQueryResponse{}, errs.NewObjectNotFoundError("label", query.LabelID().String())
	}
	if err != nil {
		return GetLabelQueryResponse{}, err
	}

	labelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetLabelQueryResponse{}, err
	}

	return GetLabelQueryResponse{
		ID:        labelID,
		OrderID:   orderID,
		Kind:      label.Kind(kind),
		CreatedAt: createdAt,
		Document:  document,
	}, nil
}
