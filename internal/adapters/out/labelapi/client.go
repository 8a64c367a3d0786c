// Package labelapi implements the outbound client for the external
// label-printing service. The service exposes a single endpoint that returns
// the raw label document for a package reference.
package labelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"willowcommerce/internal/core/domain/model/label"
	"willowcommerce/internal/core/ports"
	"willowcommerce/internal/pkg/errs"
)

// DefaultTimeout bounds a single print call end to end.
const DefaultTimeout = 30 * time.Second

// Label type codes of the upstream print API.
const (
	labelTypeReplacement = 6
	labelTypeReturn      = 7
)

// printLabelRequest is the wire shape of the print endpoint's request body.
type printLabelRequest struct {
	PackageID   string `json:"packageId"`
	LabelType   int    `json:"labelType"`
	LabelFormat string `json:"labelFormat"`
	Type        string `json:"type"`
}

// Client calls the label-printing service over HTTP with bearer-token
// authentication. It implements ports.LabelService.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a label service client. The timeout bounds each print
// call; pass zero to use DefaultTimeout.
func NewClient(baseURL, authToken string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if authToken == "" {
		return nil, errs.NewValueIsRequiredError("authToken")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// PrintLabel fetches the raw label document for a package reference.
// Transport faults wrap ports.ErrLabelServiceUnreachable; answered-but-failed
// responses wrap ports.ErrLabelServiceRejected.
func (c *Client) PrintLabel(ctx context.Context, packageRef string, kind label.Kind, format string) ([]byte, error) {
	if packageRef == "" {
		return nil, errs.NewValueIsRequiredError("packageRef")
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if format == "" {
		format = "pdf"
	}

	body, err := json.Marshal(printLabelRequest{
		PackageID:   packageRef,
		LabelType:   labelTypeFor(kind),
		LabelFormat: format,
		Type:        format,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/orders/printlabel", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrLabelServiceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ports.ErrLabelServiceRejected, resp.StatusCode)
	}

	document, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrLabelServiceUnreachable, err)
	}
	if len(document) == 0 {
		return nil, fmt.Errorf("%w: empty document body", ports.ErrLabelServiceRejected)
	}

	return document, nil
}

func labelTypeFor(kind label.Kind) int {
	if kind == label.KindReturn {
		return labelTypeReturn
	}
	return labelTypeReplacement
}

var _ ports.LabelService = (*Client)(nil)
