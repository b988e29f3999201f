// Package http exposes the valet use cases as the /api/v1 JSON API.
package http

import (
	"net/http"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/application/usecases/queries"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

// Server implements ServerInterface on top of the command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	advanceOrderHandler commands.AdvanceOrderCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler
	assignDriverHandler commands.AssignDriverCommandHandler
	rateOrderHandler    commands.RateOrderCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getTransactionsHandler queries.GetTransactionsQueryHandler

	logger *zap.Logger
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	AdvanceOrder    commands.AdvanceOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	AssignDriver    commands.AssignDriverCommandHandler
	RateOrder       commands.RateOrderCommandHandler
	GetOrder        queries.GetOrderQueryHandler
	GetActiveOrders queries.GetActiveOrdersQueryHandler
	GetTransactions queries.GetTransactionsQueryHandler
}

func NewServer(h Handlers, logger *zap.Logger) *Server {
	return &Server{
		createOrderHandler:     h.CreateOrder,
		advanceOrderHandler:    h.AdvanceOrder,
		cancelOrderHandler:     h.CancelOrder,
		assignDriverHandler:    h.AssignDriver,
		rateOrderHandler:       h.RateOrder,
		getOrderHandler:        h.GetOrder,
		getActiveOrdersHandler: h.GetActiveOrders,
		getTransactionsHandler: h.GetTransactions,
		logger:                 logger.With(zap.String("component", "http_server")),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.IsRoundTrip, body.ScheduledDate, body.ScheduledTime,
		order.Details{
			PickupLocation:  body.PickupLocation,
			DropoffLocation: body.DropoffLocation,
			VehicleInfo:     body.VehicleInfo,
			Notes:           body.Notes,
		})
	if err != nil {
		return s.respondError(ctx, err)
	}

	res, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	warning, err := s.localSyncWarning(ctx, err)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, BookingResult{
		OrderID:       toAPIUUID(res.OrderID),
		TransactionID: toAPIUUID(res.TransactionID),
		OrderNumber:   res.OrderNumber,
		Status:        res.Status.String(),
		StatusLabel:   res.Status.Label(),
		Warning:       warning,
	})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	views, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = toAPIOrder(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := fromAPIUUID(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAPIOrder(view))
}

// AdvanceOrder handles POST /api/v1/orders/{orderId}/advance.
func (s *Server) AdvanceOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := fromAPIUUID(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	res, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	return s.respondStatusChange(ctx, res, err)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := fromAPIUUID(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	res, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	return s.respondStatusChange(ctx, res, err)
}

// AssignDriver handles POST /api/v1/orders/{orderId}/driver.
func (s *Server) AssignDriver(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := fromAPIUUID(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var body NewDriver
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignDriverCommand(id, body.Name, body.Phone, body.Vehicle)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RateOrder handles POST /api/v1/orders/{orderId}/rating.
func (s *Server) RateOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := fromAPIUUID(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var body NewRating
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(id, body.Rating, body.Tip)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.rateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetTransactions handles GET /api/v1/transactions.
func (s *Server) GetTransactions(ctx echo.Context) error {
	views, err := s.getTransactionsHandler.Handle(ctx.Request().Context(), queries.NewGetTransactionsQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]Transaction, len(views))
	for i, v := range views {
		response[i] = Transaction{
			ID:            toAPIUUID(v.ID),
			Status:        v.Status.String(),
			StatusLabel:   v.Status.Label(),
			OrderNumber:   v.OrderNumber,
			Vehicle:       v.Vehicle,
			Destination:   v.Destination,
			ScheduledDate: v.ScheduledDate,
			ScheduledTime: v.ScheduledTime,
		}
		if v.OrderID != nil {
			orderID := toAPIUUID(*v.OrderID)
			response[i].OrderID = &orderID
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) respondStatusChange(ctx echo.Context, res commands.StatusChangeResult, err error) error {
	warning, err := s.localSyncWarning(ctx, err)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := StatusChange{
		OrderID:     toAPIUUID(res.OrderID),
		From:        res.From.String(),
		To:          res.To.String(),
		Status:      res.To.String(),
		StatusLabel: res.To.Label(),
		Changed:     res.Changed,
		Warning:     warning,
	}
	if res.TransactionID != nil {
		txID := toAPIUUID(*res.TransactionID)
		response.TransactionID = &txID
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func toAPIOrder(v queries.OrderView) Order {
	o := Order{
		ID:              toAPIUUID(v.ID),
		Status:          v.Status.String(),
		StatusLabel:     v.Status.Label(),
		IsRoundTrip:     v.IsRoundTrip,
		ScheduledDate:   v.ScheduledDate,
		ScheduledTime:   v.ScheduledTime,
		PickupLocation:  v.PickupLocation,
		DropoffLocation: v.DropoffLocation,
		VehicleInfo:     v.VehicleInfo,
		Notes:           v.Notes,
	}
	if d := v.Driver; d != nil {
		o.Driver = &Driver{Name: d.Name, Phone: d.Phone, Vehicle: d.Vehicle, RatedAt: d.RatedAt}
		if d.RatedAt != nil {
			rating, tip := d.Rating, d.Tip
			o.Driver.Rating, o.Driver.Tip = &rating, &tip
		}
	}
	return o
}

func toAPIUUID(id kernel.UUID) openapi_types.UUID {
	return uuid.MustParse(id.String())
}

func fromAPIUUID(id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return parsed, nil
}
