package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/core/domain/model/label"
	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/core/domain/services"
	"willowcommerce/internal/core/ports"
	"willowcommerce/internal/pkg/errs"
)

// OrderActionCommandHandler drives a single order action end-to-end: fetch
// the order, evaluate policy, apply the status transition, and, for return
// and replace, fetch and persist a shipping label.
//
// Execution states of one action:
//
//	Fetching → Evaluating → Denied (terminal)
//	                      → Transitioning → Failed(Conflict) (terminal)
//	                                      → FulfillingLabel → Completed (terminal)
//	                                                        → Compensating → Failed(LabelService*) (terminal)
//	                                                                       → Failed(CompensationFailed) (terminal)
//
// The status transition commits in its own transaction before the label
// service is called, so no database transaction spans the network call. When
// the label step fails, the handler compensates with a conditional update
// back to the prior status; if that revert also fails the result is
// FailureCompensationFailed and the inconsistency is logged for manual
// reconciliation.
type OrderActionCommandHandler struct {
	uowFactory   UoWFactory
	labelService ports.LabelService
	publisher    ports.EventPublisher
	policy       services.ActionPolicy
	logger       *slog.Logger
	now          func() time.Time
}

// NewOrderActionCommandHandler creates the action orchestrator.
// The publisher may be nil; events are then skipped.
func NewOrderActionCommandHandler(
	uowFactory UoWFactory,
	labelService ports.LabelService,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) OrderActionCommandHandler {
	return OrderActionCommandHandler{
		uowFactory:   uowFactory,
		labelService: labelService,
		publisher:    publisher,
		policy:       services.NewActionPolicy(),
		logger:       logger.With("component", "order_action_handler"),
		now:          time.Now,
	}
}

// Handle processes one action request to a terminal state. Business outcomes
// (denial, not-found, conflict, label failures) are reported through the
// ActionResult; the error return is reserved for unexpected infrastructure
// failures.
func (h OrderActionCommandHandler) Handle(ctx context.Context, cmd OrderActionCommand) (ActionResult, error) {
	if err := cmd.Validate(); err != nil {
		return ActionResult{}, err
	}

	// A replayed idempotency key means this action already completed once:
	// return the stored label without touching the order again.
	if cmd.IdempotencyKey() != "" && cmd.Action().RequiresLabel() {
		result, replayed, err := h.replayFromIdempotencyKey(ctx, cmd)
		if err != nil {
			return ActionResult{}, err
		}
		if replayed {
			return result, nil
		}
	}

	prev, next, result, done, err := h.transition(ctx, cmd)
	if err != nil || done {
		return result, err
	}

	if !cmd.Action().RequiresLabel() {
		h.publishStatusChanged(ctx, cmd, prev, next, nil)
		return succeededResult(next, nil), nil
	}

	return h.fulfillLabel(ctx, cmd, prev, next)
}

// transition runs the Fetching, Evaluating, and Transitioning states in one
// transaction. done reports that a terminal result was reached.
func (h OrderActionCommandHandler) transition(
	ctx context.Context,
	cmd OrderActionCommand,
) (prev, next order.Status, result ActionResult, done bool, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", "", ActionResult{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.TenantID(), cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return "", "", failedResult(FailureNotFound), true, nil
	}
	if err != nil {
		return "", "", ActionResult{}, false, err
	}

	decision, err := h.policy.Evaluate(o, cmd.Action(), h.now())
	if err != nil {
		return "", "", ActionResult{}, false, err
	}
	if !decision.IsAllowed() {
		return "", "", deniedResult(decision), true, nil
	}

	prev = o.Status()
	next = decision.NextStatus()

	err = orderRepo.UpdateStatus(ctx, cmd.TenantID(), cmd.OrderID(), prev, next)
	if errors.Is(err, ports.ErrConcurrentConflict) {
		return "", "", failedResult(FailureConflict), true, nil
	}
	if errors.Is(err, errs.ErrObjectNotFound) {
		return "", "", failedResult(FailureNotFound), true, nil
	}
	if err != nil {
		return "", "", ActionResult{}, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", "", ActionResult{}, false, err
	}

	return prev, next, ActionResult{}, false, nil
}

// fulfillLabel runs the FulfillingLabel state: fetch the document, persist
// the label, and compensate the status transition on failure.
func (h OrderActionCommandHandler) fulfillLabel(
	ctx context.Context,
	cmd OrderActionCommand,
	prev, next order.Status,
) (ActionResult, error) {
	kind := labelKindFor(cmd.Action())

	document, err := h.labelService.PrintLabel(ctx, packageRef(cmd), kind, "pdf")
	if err != nil {
		h.logger.ErrorContext(ctx, "label fetch failed",
			"tenant_id", cmd.TenantID(), "order_id", cmd.OrderID(), "error", err)
		if !h.compensate(ctx, cmd, prev, next) {
			return failedResult(FailureCompensationFailed), nil
		}
		return failedResult(labelFailureKind(err)), nil
	}

	lbl, err := label.NewLabel(
		kernel.NewUUID(),
		cmd.TenantID(),
		cmd.OrderID(),
		kind,
		document,
		h.now().UTC(),
		cmd.IdempotencyKey(),
	)
	if err != nil {
		if !h.compensate(ctx, cmd, prev, next) {
			return failedResult(FailureCompensationFailed), nil
		}
		return failedResult(FailureLabelServiceRejected), nil
	}

	result, done, err := h.persistLabel(ctx, cmd, next, lbl)
	if err != nil {
		if !h.compensate(ctx, cmd, prev, next) {
			return failedResult(FailureCompensationFailed), nil
		}
		if errors.Is(err, ports.ErrDuplicateLabel) {
			return failedResult(FailureConflict), nil
		}
		return ActionResult{}, err
	}
	if done {
		return result, nil
	}

	labelID := lbl.ID()
	h.publishStatusChanged(ctx, cmd, prev, next, &labelID)
	return succeededResult(next, &labelID), nil
}

// persistLabel stores the label in its own transaction. done reports a
// terminal result (an idempotent duplicate was resolved to the stored label);
// a non-nil error means the label is not durable and the transition must be
// compensated.
func (h OrderActionCommandHandler) persistLabel(
	ctx context.Context,
	cmd OrderActionCommand,
	next order.Status,
	lbl *label.Label,
) (ActionResult, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ActionResult{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	err := uow.LabelRepository().Add(ctx, lbl)
	if errors.Is(err, ports.ErrDuplicateLabel) && cmd.IdempotencyKey() != "" {
		existing, findErr := uow.LabelRepository().FindByIdempotencyKey(ctx, cmd.TenantID(), cmd.IdempotencyKey())
		if findErr != nil {
			return ActionResult{}, false, findErr
		}

		if !labelMatchesRequest(existing, cmd) {
			return ActionResult{}, false, fmt.Errorf(
				"idempotency key bound to order %d: %w", existing.OrderID(), ports.ErrDuplicateLabel)
		}

		existingID := existing.ID()
		return succeededResult(next, &existingID), true, nil
	}
	if err != nil {
		return ActionResult{}, false, err
	}

	if err := uow.Commit(ctx); err != nil {
		return ActionResult{}, false, err
	}

	return ActionResult{}, false, nil
}

// compensate reverts the already-committed status transition after a label
// failure. Best-effort: it reports false when the revert could not be
// applied, in which case the order is flagged for manual reconciliation
// instead of masking the inconsistency.
func (h OrderActionCommandHandler) compensate(
	ctx context.Context,
	cmd OrderActionCommand,
	prev, next order.Status,
) bool {
	uow := h.uowFactory.Create()
	err := uow.Begin(ctx)
	if err == nil {
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		err = uow.OrderRepository().UpdateStatus(ctx, cmd.TenantID(), cmd.OrderID(), next, prev)
		if err == nil {
			err = uow.Commit(ctx)
		}
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "status compensation failed, manual reconciliation required",
			"tenant_id", cmd.TenantID(),
			"order_id", cmd.OrderID(),
			"stuck_status", next.String(),
			"expected_status", prev.String(),
			"error", err)
		return false
	}

	return true
}

// replayFromIdempotencyKey resolves a repeated request to the label stored on
// its first successful execution. Uses a non-transactional read. The stored
// label must match the request's order and action; a key reused for a
// different order or action is reported as a conflict, never replayed.
func (h OrderActionCommandHandler) replayFromIdempotencyKey(
	ctx context.Context,
	cmd OrderActionCommand,
) (ActionResult, bool, error) {
	uow := h.uowFactory.Create()
	existing, err := uow.LabelRepository().FindByIdempotencyKey(ctx, cmd.TenantID(), cmd.IdempotencyKey())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ActionResult{}, false, nil
	}
	if err != nil {
		return ActionResult{}, false, err
	}

	if !labelMatchesRequest(existing, cmd) {
		h.logger.WarnContext(ctx, "idempotency key reused for a different request",
			"tenant_id", cmd.TenantID(),
			"order_id", cmd.OrderID(),
			"stored_order_id", existing.OrderID(),
			"action", cmd.Action().String())
		return failedResult(FailureConflict), true, nil
	}

	existingID := existing.ID()
	return succeededResult(nextStatusForAction(cmd.Action()), &existingID), true, nil
}

// labelMatchesRequest reports whether a label stored under an idempotency key
// was produced by the same order and action as the current request.
func labelMatchesRequest(l *label.Label, cmd OrderActionCommand) bool {
	return l.OrderID() == cmd.OrderID() && l.Kind() == labelKindFor(cmd.Action())
}

func (h OrderActionCommandHandler) publishStatusChanged(
	ctx context.Context,
	cmd OrderActionCommand,
	prev, next order.Status,
	labelID *kernel.UUID,
) {
	if h.publisher == nil {
		return
	}

	event := order.StatusChangedEvent{
		TenantID:       cmd.TenantID(),
		OrderID:        cmd.OrderID(),
		Action:         cmd.Action().String(),
		PreviousStatus: prev,
		NewStatus:      next,
		OccurredAt:     h.now().UTC(),
	}
	if labelID != nil {
		event.LabelID = labelID.String()
	}

	if err := h.publisher.Publish(ctx, packageRef(cmd), event); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish status change event",
			"tenant_id", cmd.TenantID(), "order_id", cmd.OrderID(), "error", err)
	}
}

// packageRef builds the tenant-scoped package reference sent to the label
// service and used as the event partition key.
func packageRef(cmd OrderActionCommand) string {
	return fmt.Sprintf("%s-%d", cmd.TenantID(), cmd.OrderID())
}

func labelKindFor(action order.Action) label.Kind {
	if action == order.ActionReplace {
		return label.KindReplacement
	}
	return label.KindReturn
}

func labelFailureKind(err error) FailureKind {
	if errors.Is(err, ports.ErrLabelServiceUnreachable) {
		return FailureLabelServiceUnreachable
	}
	return FailureLabelServiceRejected
}

func nextStatusForAction(action order.Action) order.Status {
	switch action {
	case order.ActionCancel:
		return order.Cancelled
	case order.ActionRefund:
		return order.RefundInitiated
	case order.ActionReplace:
		return order.ReplacementInitiated
	default:
		return order.ReturnInitiated
	}
}
