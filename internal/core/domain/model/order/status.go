package order

import (
	"fmt"

	"willowcommerce/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The action engine only reasons about the statuses listed below. Upstream
// ingestion also reports intermediate carrier states (PACKED, OUT_FOR_DELIVERY
// and similar); those are carried through the store opaquely and are cited
// verbatim when an action is denied, which is why Status is a string value
// object rather than a closed numeric enum.
//
// Transitions driven by this service:
//
//	PLACED ──────┬──> CANCELLED
//	PROCESSING ──┘
//	SHIPPED ─────────> DELIVERED
//	DELIVERED ──┬──> REFUND_INITIATED
//	            ├──> REPLACEMENT_INITIATED
//	            └──> RETURN_INITIATED
type Status string

const (
	// Placed is the initial status of a freshly ingested order.
	Placed Status = "PLACED"

	// Processing indicates the order has been accepted and is being prepared.
	Processing Status = "PROCESSING"

	// Shipped indicates the order has been handed to a carrier.
	Shipped Status = "SHIPPED"

	// Delivered indicates the order has reached the customer.
	// DeliversAt is stamped when this status is reached.
	Delivered Status = "DELIVERED"

	// Cancelled is the terminal status of a cancelled order.
	Cancelled Status = "CANCELLED"

	// RefundInitiated is the status reached by a successful refund request.
	RefundInitiated Status = "REFUND_INITIATED"

	// ReplacementInitiated is the status reached by a successful replacement request.
	ReplacementInitiated Status = "REPLACEMENT_INITIATED"

	// ReturnInitiated is the status reached by a successful return request.
	ReturnInitiated Status = "RETURN_INITIATED"
)

// Validate checks that the status carries a value. Unknown carrier statuses
// are deliberately accepted; only an empty status is invalid.
func (s Status) Validate() error {
	if s == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return nil
}

// String returns the raw status value.
func (s Status) String() string {
	return string(s)
}

// IsKnown reports whether the status is one of the states the action engine
// transitions between, as opposed to an opaque carrier state.
func (s Status) IsKnown() bool {
	switch s {
	case Placed, Processing, Shipped, Delivered, Cancelled,
		RefundInitiated, ReplacementInitiated, ReturnInitiated:
		return true
	}
	return false
}

// IsCancellable reports whether an order in this status may still be cancelled.
func (s Status) IsCancellable() bool {
	return s == Placed || s == Processing
}

// MarkDelivered transitions the status to Delivered.
//
// Valid transitions:
//   - Shipped -> Delivered
//
// Anything else is a data error and returns a validation error.
func (s Status) MarkDelivered() (Status, error) {
	if s != Shipped {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to mark delivered", s),
		)
	}
	return Delivered, nil
}
