package services

import (
	"fmt"
	"time"

	"willowcommerce/internal/core/domain/model/order"
)

// RefundWindowDays is the number of whole calendar days after delivery during
// which refund, return, and replacement requests are accepted.
const RefundWindowDays = 7

// ReasonCode classifies why an action was denied. The closed set keeps
// user-facing text decoupled from internal control flow.
type ReasonCode string

const (
	// ReasonNotCancellable: the order has progressed past a cancellable state.
	ReasonNotCancellable ReasonCode = "order_not_cancellable"

	// ReasonNotYetDelivered: a refund-family action was requested on an order
	// that is still cancellable; cancellation is suggested instead.
	ReasonNotYetDelivered ReasonCode = "order_not_yet_delivered"

	// ReasonNotEligible: a refund-family action was requested on an order in a
	// state other than DELIVERED.
	ReasonNotEligible ReasonCode = "order_not_eligible"

	// ReasonWindowExpired: the order was delivered, but the request arrived
	// after the window closed (or no delivery date is on record).
	ReasonWindowExpired ReasonCode = "window_expired"
)

// Decision is the outcome of evaluating an action against an order snapshot:
// either an allowed transition to a next status, or a denial with a reason
// code and a human-readable message.
type Decision struct {
	allowed    bool
	nextStatus order.Status
	reasonCode ReasonCode
	message    string
}

// Allow creates a Decision permitting a transition to nextStatus.
func Allow(nextStatus order.Status) Decision {
	return Decision{allowed: true, nextStatus: nextStatus}
}

// Deny creates a Decision rejecting the action.
func Deny(code ReasonCode, message string) Decision {
	return Decision{reasonCode: code, message: message}
}

// IsAllowed reports whether the action may proceed.
func (d Decision) IsAllowed() bool {
	return d.allowed
}

// NextStatus returns the status the order transitions to when allowed.
func (d Decision) NextStatus() order.Status {
	return d.nextStatus
}

// ReasonCode returns the denial classification. Empty when allowed.
func (d Decision) ReasonCode() ReasonCode {
	return d.reasonCode
}

// Message returns the user-facing denial explanation. Empty when allowed.
func (d Decision) Message() string {
	return d.message
}

// ActionPolicy evaluates whether a requested action is currently permitted
// for an order. Evaluate is deterministic, performs no I/O, and has no side
// effects: the evaluation instant is an explicit argument.
//
// The rules are the product's actual business constraints:
//   - cancel: only while the order is PLACED or PROCESSING
//   - refund, return, replace: only while the order is DELIVERED and no more
//     than RefundWindowDays whole days have passed since the delivery date
//   - a missing delivery date never allows a refund-family action
type ActionPolicy struct{}

// NewActionPolicy creates the policy evaluator.
func NewActionPolicy() ActionPolicy {
	return ActionPolicy{}
}

// Evaluate maps (order snapshot, requested action, evaluation instant) to a
// Decision.
func (p ActionPolicy) Evaluate(o *order.Order, action order.Action, now time.Time) (Decision, error) {
	if err := o.Validate(); err != nil {
		return Decision{}, err
	}
	if err := action.Validate(); err != nil {
		return Decision{}, err
	}

	if action == order.ActionCancel {
		return p.evaluateCancel(o), nil
	}
	return p.evaluateRefundFamily(o, action, now), nil
}

func (p ActionPolicy) evaluateCancel(o *order.Order) Decision {
	if !o.Status().IsCancellable() {
		return Deny(ReasonNotCancellable,
			fmt.Sprintf("order cannot be canceled because order is %s", o.Status()))
	}
	return Allow(order.Cancelled)
}

// evaluateRefundFamily covers refund, return, and replace, which share the
// delivered-within-window eligibility rule and differ only in the status the
// order transitions to.
func (p ActionPolicy) evaluateRefundFamily(o *order.Order, action order.Action, now time.Time) Decision {
	status := o.Status()

	if status.IsCancellable() {
		return Deny(ReasonNotYetDelivered,
			fmt.Sprintf("%s not applicable as order is %s; you can cancel it instead", action, status))
	}
	if status != order.Delivered {
		return Deny(ReasonNotEligible,
			fmt.Sprintf("%s not applicable as order is %s", action, status))
	}

	days, ok := o.DaysSinceDelivery(now)
	if !ok || days > RefundWindowDays {
		return Deny(ReasonWindowExpired,
			fmt.Sprintf("%s period has expired", action))
	}

	return Allow(nextStatusFor(action))
}

func nextStatusFor(action order.Action) order.Status {
	switch action {
	case order.ActionRefund:
		return order.RefundInitiated
	case order.ActionReplace:
		return order.ReplacementInitiated
	case order.ActionReturn:
		return order.ReturnInitiated
	default:
		return order.Cancelled
	}
}
