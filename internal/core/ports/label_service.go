package ports

import (
	"context"
	"errors"

	"willowcommerce/internal/core/domain/model/label"
)

// Label service failure taxonomy. Both are surfaced as typed failures and are
// retried zero times by the client; retry policy, if any, belongs to the
// caller.
var (
	// ErrLabelServiceUnreachable is a transport-level fault: DNS failure,
	// connection refused, or the request timing out.
	ErrLabelServiceUnreachable = errors.New("label service unreachable")

	// ErrLabelServiceRejected means the service answered but not usefully:
	// a non-success status code or an empty document body.
	ErrLabelServiceRejected = errors.New("label service rejected request")
)

// LabelService is the outbound interface to the external label-printing
// endpoint. The call is synchronous with a bounded timeout; exceeding it is
// an ErrLabelServiceUnreachable failure, not a hang.
type LabelService interface {
	// PrintLabel fetches the raw label document (for example a PDF) for a
	// package reference. Failures wrap exactly one of
	// ErrLabelServiceUnreachable or ErrLabelServiceRejected.
	PrintLabel(ctx context.Context, packageRef string, kind label.Kind, format string) ([]byte, error)
}
