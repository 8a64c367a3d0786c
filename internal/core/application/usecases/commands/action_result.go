package commands

import (
	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/core/domain/services"
)

// Outcome classifies how an action request ended.
type Outcome string

const (
	// OutcomeSucceeded: the status transition (and label, when applicable) is durable.
	OutcomeSucceeded Outcome = "succeeded"

	// OutcomeDenied: the policy evaluator rejected the action; nothing was mutated.
	OutcomeDenied Outcome = "denied"

	// OutcomeFailed: a technical failure prevented completion; see FailureKind.
	OutcomeFailed Outcome = "failed"
)

// FailureKind identifies the technical failure behind an OutcomeFailed result.
type FailureKind string

const (
	// FailureNotFound: the order does not exist for the tenant.
	FailureNotFound FailureKind = "not_found"

	// FailureConflict: the order's status changed between read and write;
	// the caller should re-fetch and retry.
	FailureConflict FailureKind = "conflict"

	// FailureLabelServiceUnreachable: transport-level label service fault;
	// the status transition was compensated back.
	FailureLabelServiceUnreachable FailureKind = "label_service_unreachable"

	// FailureLabelServiceRejected: the label service answered with a
	// non-success response; the status transition was compensated back.
	FailureLabelServiceRejected FailureKind = "label_service_rejected"

	// FailureCompensationFailed: the label step failed AND the compensating
	// status revert also failed. The order is potentially inconsistent and
	// needs manual reconciliation.
	FailureCompensationFailed FailureKind = "compensation_failed"
)

// ActionResult is the structured outcome of one action request. Exactly one
// of the three outcome shapes is populated:
//   - succeeded: NewStatus, and LabelID for label-producing actions
//   - denied: ReasonCode and Message from the policy evaluator
//   - failed: Failure
type ActionResult struct {
	Outcome    Outcome
	NewStatus  order.Status
	ReasonCode services.ReasonCode
	Message    string
	LabelID    *kernel.UUID
	Failure    FailureKind
}

func succeededResult(newStatus order.Status, labelID *kernel.UUID) ActionResult {
	return ActionResult{Outcome: OutcomeSucceeded, NewStatus: newStatus, LabelID: labelID}
}

func deniedResult(decision services.Decision) ActionResult {
	return ActionResult{
		Outcome:    OutcomeDenied,
		ReasonCode: decision.ReasonCode(),
		Message:    decision.Message(),
	}
}

func failedResult(kind FailureKind) ActionResult {
	return ActionResult{Outcome: OutcomeFailed, Failure: kind}
}
