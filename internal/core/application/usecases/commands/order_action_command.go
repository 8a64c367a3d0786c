package commands

import (
	"errors"
	"fmt"

	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/pkg/errs"
	"willowcommerce/internal/pkg/guard"
)

var (
	ErrOrderActionCommandIsNotConstructed = errors.New(
		"OrderActionCommand must be created via NewOrderActionCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required for refund, return, and replace actions")
)

// OrderActionCommand represents a customer request to perform an action
// (cancel, refund, return, replace) on an order. The command is ephemeral:
// only its effects are persisted.
//
// Example:
//
//	cmd, err := NewOrderActionCommand("u1", 42, order.ActionRefund, "item arrived damaged", "")
//	if err != nil {
//	    return fmt.Errorf("invalid action request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type OrderActionCommand struct { //nolint:recvcheck //using for validation
	tenantID       string
	orderID        int64
	action         order.Action
	reason         string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewOrderActionCommand creates an action command. The reason is required for
// every action except cancel; the idempotency key is optional and only
// meaningful for label-producing actions.
func NewOrderActionCommand(
	tenantID string,
	orderID int64,
	action order.Action,
	reason string,
	idempotencyKey string,
) (OrderActionCommand, error) {
	cmd := OrderActionCommand{
		idempotencyKey: idempotencyKey,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setAction(action),
		cmd.setReason(reason, action),
	); err != nil {
		return OrderActionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OrderActionCommand) Validate() error {
	return c.guard.Validate(ErrOrderActionCommandIsNotConstructed)
}

// TenantID returns the tenant scoping the request.
func (c OrderActionCommand) TenantID() string {
	return c.tenantID
}

// OrderID returns the identifier of the targeted order.
func (c OrderActionCommand) OrderID() int64 {
	return c.orderID
}

// Action returns the requested action.
func (c OrderActionCommand) Action() order.Action {
	return c.action
}

// Reason returns the customer's free-text reason.
func (c OrderActionCommand) Reason() string {
	return c.reason
}

// IdempotencyKey returns the caller-supplied idempotency key, or an empty
// string when none was supplied.
func (c OrderActionCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *OrderActionCommand) setTenantID(tenantID string) error {
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}
	c.tenantID = tenantID
	return nil
}

func (c *OrderActionCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID", fmt.Errorf("%d is not greater than 0", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *OrderActionCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	c.action = action
	return nil
}

func (c *OrderActionCommand) setReason(reason string, action order.Action) error {
	if reason == "" && action != order.ActionCancel {
		return ErrReasonIsRequired
	}
	c.reason = reason
	return nil
}
