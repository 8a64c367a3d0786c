// Package http exposes the order-action engine over a REST API built on Echo.
// Each action gets its own endpoint; the idempotency key for label-producing
// actions travels in the Idempotency-Key request header.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"willowcommerce/internal/core/application/usecases/commands"
	"willowcommerce/internal/core/application/usecases/queries"
	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// HeaderIdempotencyKey names the request header carrying the optional
// idempotency key for refund, return, and replace requests.
const HeaderIdempotencyKey = "Idempotency-Key"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	orderActionHandler commands.OrderActionCommandHandler

	// Query handlers
	getOrderHandler queries.GetOrderQueryHandler
	getLabelHandler queries.GetLabelQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	orderActionHandler commands.OrderActionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getLabelHandler queries.GetLabelQueryHandler,
) *Server {
	return &Server{
		orderActionHandler: orderActionHandler,
		getOrderHandler:    getOrderHandler,
		getLabelHandler:    getLabelHandler,
	}
}

// RegisterRoutes attaches all API routes to the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.GET("/tenants/:tenant_id/orders/:order_id", s.GetOrder)
	v1.POST("/tenants/:tenant_id/orders/:order_id/cancel", s.CancelOrder)
	v1.POST("/tenants/:tenant_id/orders/:order_id/refund", s.RefundOrder)
	v1.POST("/tenants/:tenant_id/orders/:order_id/return", s.ReturnOrder)
	v1.POST("/tenants/:tenant_id/orders/:order_id/replace", s.ReplaceOrder)
	v1.GET("/tenants/:tenant_id/labels/:label_id", s.GetLabel)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetOrder handles GET /api/v1/tenants/{tenant_id}/orders/{order_id}.
//
//	@Summary		Get an order
//	@Tags			orders
//	@Produce		json
//	@Param			tenant_id	path		string	true	"Tenant ID"
//	@Param			order_id	path		int		true	"Order ID"
//	@Success		200			{object}	OrderResponse
//	@Failure		404			{object}	Error
//	@Router			/tenants/{tenant_id}/orders/{order_id} [get]
func (s *Server) GetOrder(ctx echo.Context) error {
	tenantID, orderID, err := pathOrderRef(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(tenantID, orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "order not found",
			})
		}
		return internalError(ctx)
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		OrderID:          resp.OrderID,
		TenantID:         resp.TenantID,
		Status:           string(resp.Status),
		OrderDate:        resp.OrderDate,
		DeliversAt:       resp.DeliversAt,
		Quantity:         resp.Quantity,
		TotalPrice:       resp.TotalPrice,
		DaysSinceOrdered: resp.DaysSinceOrdered,
	})
}

// CancelOrder handles POST /api/v1/tenants/{tenant_id}/orders/{order_id}/cancel.
//
//	@Summary		Cancel an order
//	@Tags			actions
//	@Accept			json
//	@Produce		json
//	@Param			tenant_id	path		string			true	"Tenant ID"
//	@Param			order_id	path		int				true	"Order ID"
//	@Param			request		body		ActionRequest	false	"Action details"
//	@Success		200			{object}	ActionResponse
//	@Failure		404			{object}	Error
//	@Failure		409			{object}	DeniedResponse
//	@Router			/tenants/{tenant_id}/orders/{order_id}/cancel [post]
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.handleAction(ctx, order.ActionCancel)
}

// RefundOrder handles POST /api/v1/tenants/{tenant_id}/orders/{order_id}/refund.
//
//	@Summary		Request a refund
//	@Tags			actions
//	@Accept			json
//	@Produce		json
//	@Param			tenant_id	path		string			true	"Tenant ID"
//	@Param			order_id	path		int				true	"Order ID"
//	@Param			request		body		ActionRequest	true	"Action details"
//	@Success		200			{object}	ActionResponse
//	@Failure		404			{object}	Error
//	@Failure		409			{object}	DeniedResponse
//	@Router			/tenants/{tenant_id}/orders/{order_id}/refund [post]
func (s *Server) RefundOrder(ctx echo.Context) error {
	return s.handleAction(ctx, order.ActionRefund)
}

// ReturnOrder handles POST /api/v1/tenants/{tenant_id}/orders/{order_id}/return.
//
//	@Summary		Request a return
//	@Tags			actions
//	@Accept			json
//	@Produce		json
//	@Param			tenant_id		path		string			true	"Tenant ID"
//	@Param			order_id		path		int				true	"Order ID"
//	@Param			Idempotency-Key	header		string			false	"Idempotency key"
//	@Param			request			body		ActionRequest	true	"Action details"
//	@Success		200				{object}	ActionResponse
//	@Failure		404				{object}	Error
//	@Failure		409				{object}	DeniedResponse
//	@Failure		502				{object}	Error
//	@Router			/tenants/{tenant_id}/orders/{order_id}/return [post]
func (s *Server) ReturnOrder(ctx echo.Context) error {
	return s.handleAction(ctx, order.ActionReturn)
}

// ReplaceOrder handles POST /api/v1/tenants/{tenant_id}/orders/{order_id}/replace.
//
//	@Summary		Request a replacement
//	@Tags			actions
//	@Accept			json
//	@Produce		json
//	@Param			tenant_id		path		string			true	"Tenant ID"
//	@Param			order_id		path		int				true	"Order ID"
//	@Param			Idempotency-Key	header		string			false	"Idempotency key"
//	@Param			request			body		ActionRequest	true	"Action details"
//	@Success		200				{object}	ActionResponse
//	@Failure		404				{object}	Error
//	@Failure		409				{object}	DeniedResponse
//	@Failure		502				{object}	Error
//	@Router			/tenants/{tenant_id}/orders/{order_id}/replace [post]
func (s *Server) ReplaceOrder(ctx echo.Context) error {
	return s.handleAction(ctx, order.ActionReplace)
}

// GetLabel handles GET /api/v1/tenants/{tenant_id}/labels/{label_id}.
// Responds with the raw label document bytes.
//
//	@Summary		Download a shipping label
//	@Tags			labels
//	@Produce		application/pdf
//	@Param			tenant_id	path		string	true	"Tenant ID"
//	@Param			label_id	path		string	true	"Label ID"
//	@Success		200			{file}		binary
//	@Failure		404			{object}	Error
//	@Router			/tenants/{tenant_id}/labels/{label_id} [get]
func (s *Server) GetLabel(ctx echo.Context) error {
	tenantID := ctx.Param("tenant_id")
	labelID, err := kernel.UUIDFromString(ctx.Param("label_id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetLabelQuery(tenantID, labelID)
	if err != nil {
		return badRequest(ctx, err)
	}

	resp, err := s.getLabelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "label not found",
			})
		}
		return internalError(ctx)
	}

	return ctx.Blob(http.StatusOK, "application/pdf", resp.Document)
}

// handleAction runs one order action through the command handler and maps the
// structured result onto HTTP status codes.
func (s *Server) handleAction(ctx echo.Context, action order.Action) error {
	tenantID, orderID, err := pathOrderRef(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewOrderActionCommand(
		tenantID,
		orderID,
		action,
		req.Reason,
		ctx.Request().Header.Get(HeaderIdempotencyKey),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.orderActionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx)
	}

	switch result.Outcome {
	case commands.OutcomeSucceeded:
		resp := ActionResponse{
			OrderID: orderID,
			Status:  string(result.NewStatus),
		}
		if result.LabelID != nil {
			resp.LabelID = result.LabelID.String()
		}
		return ctx.JSON(http.StatusOK, resp)

	case commands.OutcomeDenied:
		return ctx.JSON(http.StatusConflict, DeniedResponse{
			ReasonCode: string(result.ReasonCode),
			Message:    result.Message,
		})

	default:
		return failureResponse(ctx, result.Failure)
	}
}

func failureResponse(ctx echo.Context, kind commands.FailureKind) error {
	switch kind {
	case commands.FailureNotFound:
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "order not found",
		})
	case commands.FailureConflict:
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "order status changed concurrently, retry the request",
		})
	case commands.FailureLabelServiceUnreachable, commands.FailureLabelServiceRejected:
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "label service unavailable, the order was not modified",
		})
	case commands.FailureCompensationFailed:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "action could not be completed and the order may need reconciliation",
		})
	default:
		return internalError(ctx)
	}
}

func pathOrderRef(ctx echo.Context) (string, int64, error) {
	tenantID := ctx.Param("tenant_id")
	orderID, err := strconv.ParseInt(ctx.Param("order_id"), 10, 64)
	if err != nil {
		return "", 0, errors.New("order_id must be an integer")
	}
	return tenantID, orderID, nil
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func internalError(ctx echo.Context) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}
