// Package label contains the shipping-label aggregate. A label is created
// only as a side effect of a successful return or replacement action and is
// immutable once created; it is later retrieved by id for download.
package label

import (
	"errors"
	"fmt"
	"time"

	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/pkg/errs"
)

var (
	// ErrLabelIsNotConstructed is returned when a Label instance was not created
	// through NewLabel or RestoreLabel.
	ErrLabelIsNotConstructed = errors.New("Label must be created via NewLabel or RestoreLabel")
)

// Kind distinguishes the fulfillment purpose of a label.
type Kind string

const (
	// KindReplacement is a label printed for shipping a replacement item.
	KindReplacement Kind = "replacement"

	// KindReturn is a label printed for the customer to return an item.
	KindReturn Kind = "return"
)

// Validate checks that the kind is one of the supported label kinds.
func (k Kind) Validate() error {
	if k != KindReplacement && k != KindReturn {
		return errs.NewValueIsInvalidErrorWithCause(
			"kind",
			fmt.Errorf("%q is not a valid label kind", string(k)),
		)
	}
	return nil
}

// String returns the raw kind name.
func (k Kind) String() string {
	return string(k)
}

// Label is the persisted artifact of a fulfillment action: the raw document
// bytes returned by the label-printing service together with the order they
// belong to.
//
// Invariants:
//   - Identity is a generated UUID, immutable
//   - The document payload is never empty
//   - An optional idempotency key, when present, is unique per tenant so a
//     retried action reuses the stored label instead of creating a duplicate
type Label struct {
	id             kernel.UUID
	tenantID       string
	orderID        int64
	kind           Kind
	createdAt      time.Time
	document       []byte
	idempotencyKey string

	isConstructed bool
}

// NewLabel creates a Label from a freshly fetched document.
// The idempotency key may be empty when the caller did not supply one.
func NewLabel(
	id kernel.UUID,
	tenantID string,
	orderID int64,
	kind Kind,
	document []byte,
	createdAt time.Time,
	idempotencyKey string,
) (*Label, error) {
	l := &Label{
		createdAt:      createdAt.UTC(),
		idempotencyKey: idempotencyKey,
		isConstructed:  true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setTenantID(tenantID),
		l.setOrderID(orderID),
		l.setKind(kind),
		l.setDocument(document),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLabel reconstructs a Label from persisted state.
func RestoreLabel(
	id kernel.UUID,
	tenantID string,
	orderID int64,
	kind Kind,
	document []byte,
	createdAt time.Time,
	idempotencyKey string,
) (*Label, error) {
	return NewLabel(id, tenantID, orderID, kind, document, createdAt, idempotencyKey)
}

// Validate ensures the Label instance was properly constructed.
func (l *Label) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLabelIsNotConstructed
	}
	return nil
}

// ID returns the label's unique identifier.
func (l *Label) ID() kernel.UUID {
	return l.id
}

// TenantID returns the owning tenant's identifier.
func (l *Label) TenantID() string {
	return l.tenantID
}

// OrderID returns the identifier of the order the label belongs to.
func (l *Label) OrderID() int64 {
	return l.orderID
}

// Kind returns the fulfillment purpose of the label.
func (l *Label) Kind() Kind {
	return l.kind
}

// CreatedAt returns the creation timestamp.
func (l *Label) CreatedAt() time.Time {
	return l.createdAt
}

// Document returns the raw document bytes (for example a PDF).
func (l *Label) Document() []byte {
	return l.document
}

// IdempotencyKey returns the caller-supplied idempotency key, or an empty
// string when none was supplied.
func (l *Label) IdempotencyKey() string {
	return l.idempotencyKey
}

func (l *Label) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Label) setTenantID(tenantID string) error {
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}
	l.tenantID = tenantID
	return nil
}

func (l *Label) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%d is not greater than 0", orderID))
	}
	l.orderID = orderID
	return nil
}

func (l *Label) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	l.kind = kind
	return nil
}

func (l *Label) setDocument(document []byte) error {
	if len(document) == 0 {
		return errs.NewValueIsRequiredError("document")
	}
	l.document = document
	return nil
}
