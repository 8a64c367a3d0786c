package order

import (
	"fmt"

	"willowcommerce/internal/pkg/errs"
)

// Action identifies a customer-requested operation on an order.
type Action string

const (
	// ActionCancel cancels an order that has not shipped yet.
	ActionCancel Action = "cancel"

	// ActionRefund initiates a refund for a delivered order.
	ActionRefund Action = "refund"

	// ActionReturn initiates a return of a delivered order.
	// A return shipping label is generated as part of the action.
	ActionReturn Action = "return"

	// ActionReplace initiates a replacement of a delivered order.
	// A replacement shipping label is generated as part of the action.
	ActionReplace Action = "replace"
)

// ParseAction converts a raw string into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// Validate checks that the action is one of the supported operations.
func (a Action) Validate() error {
	switch a {
	case ActionCancel, ActionRefund, ActionReturn, ActionReplace:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"action",
		fmt.Errorf("%q is not a supported order action", string(a)),
	)
}

// String returns the raw action name.
func (a Action) String() string {
	return string(a)
}

// RequiresLabel reports whether completing the action involves fetching and
// persisting a shipping label from the label-printing service.
func (a Action) RequiresLabel() bool {
	return a == ActionReturn || a == ActionReplace
}
