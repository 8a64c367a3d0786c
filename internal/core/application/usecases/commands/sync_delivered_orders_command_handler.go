package commands

import (
	"context"
	"errors"
	"time"

	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/core/ports"
	"willowcommerce/internal/pkg/errs"
)

// ErrNoOrdersDue is returned when no shipped order has reached the end of its
// transit window. Expected on most sweep runs; callers should not log it as a
// failure.
var ErrNoOrdersDue = errors.New("no shipped orders due for delivery")

// transitDays is the carrier transit allowance: a shipped order is assumed
// delivered once this many days have passed since it was placed.
const transitDays = 7

// SyncDeliveredOrdersCommandHandler promotes shipped orders whose transit
// time has elapsed to DELIVERED. It substitutes for a carrier webhook in
// deployments that lack one; the delivery date it stamps is what the refund
// window is later measured against.
type SyncDeliveredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewSyncDeliveredOrdersCommandHandler creates a handler for the delivery sweep.
func NewSyncDeliveredOrdersCommandHandler(uowFactory OrderUoWFactory) SyncDeliveredOrdersCommandHandler {
	return SyncDeliveredOrdersCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle marks all due shipped orders as delivered within one transaction.
// Returns ErrNoOrdersDue when the sweep found nothing to do.
func (h SyncDeliveredOrdersCommandHandler) Handle(ctx context.Context, cmd SyncDeliveredOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	now := h.now()
	cutoff := now.AddDate(0, 0, -transitDays)

	orders, err := orderRepo.GetAllShippedOrderedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return ErrNoOrdersDue
	}

	for _, o := range orders {
		// Claim the order with the same conditional transition customer
		// actions use. A conflict means someone else moved it between the
		// sweep's read and this write (another sweep run, a cancellation);
		// that order is skipped rather than overwritten.
		err = orderRepo.UpdateStatus(ctx, o.TenantID(), o.ID(), order.Shipped, order.Delivered)
		if errors.Is(err, ports.ErrConcurrentConflict) || errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		if err = o.MarkDelivered(now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
