package http

import (
	"net/http"
	"strings"

	"fulfillment/internal/adapters/in/http/servers"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases; errors
// are returned to echo and rendered by NewErrorHandler.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	setStatusHandler    commands.SetStatusCommandHandler
	allotVendorHandler  commands.AllotVendorCommandHandler
	allotCourierHandler commands.AllotCourierCommandHandler
	fileReturnHandler   commands.FileReturnCommandHandler

	// Query handlers
	findOrdersHandler queries.FindOrdersQueryHandler
	getOrderHandler   queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	setStatusHandler commands.SetStatusCommandHandler,
	allotVendorHandler commands.AllotVendorCommandHandler,
	allotCourierHandler commands.AllotCourierCommandHandler,
	fileReturnHandler commands.FileReturnCommandHandler,
	findOrdersHandler queries.FindOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		setStatusHandler:    setStatusHandler,
		allotVendorHandler:  allotVendorHandler,
		allotCourierHandler: allotCourierHandler,
		fileReturnHandler:   fileReturnHandler,
		findOrdersHandler:   findOrdersHandler,
		getOrderHandler:     getOrderHandler,
	}
}

// ListOrders handles GET /orders - filters one collection.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	collection, err := parseCollection(params.Collection)
	if err != nil {
		return err
	}

	dateRange, err := parseDateRange(params.Start, params.End)
	if err != nil {
		return err
	}

	query, err := queries.NewFindOrdersQuery(collection, deref(params.Status), deref(params.OrderType), dateRange)
	if err != nil {
		return err
	}

	orders, err := s.findOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewOrderViews(orders))
}

// CreateOrder handles POST /orders - registers an order placed upstream.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	items := make([]commands.LineItemInput, 0, len(body.LineItems))
	for _, item := range body.LineItems {
		items = append(items, commands.LineItemInput{SizeLabel: item.Size, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(body.OrderID, body.PaymentStatus, body.OrderType, body.OrderedAt, items)
	if err != nil {
		return err
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, NewOrderView(created))
}

// GetOrder handles GET /orders/{id} - fetches one record.
func (s *Server) GetOrder(ctx echo.Context, id string, params servers.GetOrderParams) error {
	collection, err := parseCollection(params.Collection)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(collection, id)
	if err != nil {
		return err
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewOrderView(o))
}

// SetOrderStatus handles POST /orders/{id}/status.
func (s *Server) SetOrderStatus(ctx echo.Context, id string) error {
	var body servers.StatusChange
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	collection, err := parseCollection(body.Collection)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetStatusCommand(collection, id, body.NewStatus)
	if err != nil {
		return err
	}

	updated, err := s.setStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewOrderView(updated))
}

// AllotVendor handles POST /orders/{id}/vendor-allotment.
func (s *Server) AllotVendor(ctx echo.Context, id string) error {
	var body servers.VendorDecision
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	collection, err := parseCollection(body.Collection)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAllotVendorCommand(collection, id, body.Decision, body.VendorName)
	if err != nil {
		return err
	}

	updated, err := s.allotVendorHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewOrderView(updated))
}

// AllotCourier handles POST /orders/{id}/courier-allotment.
func (s *Server) AllotCourier(ctx echo.Context, id string) error {
	var body servers.CourierDecision
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	collection, err := parseCollection(body.Collection)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAllotCourierCommand(collection, id, body.Decision)
	if err != nil {
		return err
	}

	updated, err := s.allotCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewOrderView(updated))
}

// FileReturn handles POST /orders/{id}/returns - opens a return request.
func (s *Server) FileReturn(ctx echo.Context, id string) error {
	var body servers.NewReturn
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewFileReturnCommand(id, body.Reason)
	if err != nil {
		return err
	}

	created, err := s.fileReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, NewOrderView(created))
}

// parseCollection defaults to Orders when the parameter is absent.
func parseCollection(raw *string) (order.Collection, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return order.Orders, nil
	}
	return order.ParseCollection(*raw)
}

// parseDateRange requires both bounds or neither.
func parseDateRange(start, end *openapi_types.Date) (*kernel.DateRange, error) {
	switch {
	case start == nil && end == nil:
		return nil, nil
	case start == nil:
		return nil, errs.NewValueIsRequiredError("start")
	case end == nil:
		return nil, errs.NewValueIsRequiredError("end")
	}

	r, err := kernel.NewDateRange(start.Time, end.Time)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
