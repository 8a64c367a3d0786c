package commands

import (
	"errors"

	"willowcommerce/internal/pkg/guard"
)

var (
	ErrSyncDeliveredOrdersCommandIsNotConstructed = errors.New(
		"SyncDeliveredOrdersCommand must be created via NewSyncDeliveredOrdersCommand constructor",
	)
)

// SyncDeliveredOrdersCommand sweeps shipped orders whose transit time has
// elapsed and promotes them to DELIVERED, stamping the delivery date.
// This is a parameterless command executed on a schedule.
type SyncDeliveredOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncDeliveredOrdersCommand creates the sweep command.
func NewSyncDeliveredOrdersCommand() SyncDeliveredOrdersCommand {
	return SyncDeliveredOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c SyncDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSyncDeliveredOrdersCommandIsNotConstructed)
}
