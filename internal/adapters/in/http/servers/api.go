// Package servers holds the HTTP contract of the fulfillment API: the
// OpenAPI document, its request and response types, and the echo glue that
// binds parameters before calling a ServerInterface.
package servers

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var openAPIDocument []byte

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LineItem defines model for LineItem.
type LineItem struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	OrderID       string     `json:"orderId"`
	PaymentStatus string     `json:"paymentStatus"`
	OrderType     string     `json:"orderType"`
	OrderedAt     time.Time  `json:"orderedAt"`
	LineItems     []LineItem `json:"lineItems,omitempty"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	NewStatus  string  `json:"newStatus"`
	Collection *string `json:"collection,omitempty"`
}

// VendorDecision defines model for VendorDecision.
type VendorDecision struct {
	Decision   bool    `json:"decision"`
	VendorName *string `json:"vendorName,omitempty"`
	Collection *string `json:"collection,omitempty"`
}

// CourierDecision defines model for CourierDecision.
type CourierDecision struct {
	Decision   bool    `json:"decision"`
	Collection *string `json:"collection,omitempty"`
}

// NewReturn defines model for NewReturn.
type NewReturn struct {
	Reason string `json:"reason"`
}

// VendorAllotment defines model for VendorAllotment.
type VendorAllotment struct {
	Decision   bool    `json:"decision"`
	VendorName *string `json:"vendorName"`
}

// CourierAllotment defines model for CourierAllotment.
type CourierAllotment struct {
	Decision   bool    `json:"decision"`
	TrackingID *string `json:"trackingId"`
}

// Order defines model for Order.
type Order struct {
	OrderID              string            `json:"orderId"`
	Collection           string            `json:"collection"`
	PaymentStatus        string            `json:"paymentStatus"`
	OrderType            string            `json:"orderType"`
	Status               string            `json:"status"`
	DeliveryStatus       string            `json:"deliveryStatus"`
	VendorAllotment      *VendorAllotment  `json:"vendorAllotment,omitempty"`
	CourierAllotment     *CourierAllotment `json:"courierAllotment,omitempty"`
	OrderedAt            time.Time         `json:"orderedAt"`
	LastUpdated          time.Time         `json:"lastUpdated"`
	LineItems            []LineItem        `json:"lineItems"`
	ReturnReason         string            `json:"returnReason,omitempty"`
	StatusColor          string            `json:"statusColor"`
	DeliveryStatusColor  string            `json:"deliveryStatusColor"`
	OrderedAtFormatted   string            `json:"orderedAtFormatted"`
	LastUpdatedFormatted string            `json:"lastUpdatedFormatted"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Collection *string             `form:"collection,omitempty" json:"collection,omitempty"`
	Status     *string             `form:"status,omitempty" json:"status,omitempty"`
	OrderType  *string             `form:"orderType,omitempty" json:"orderType,omitempty"`
	Start      *openapi_types.Date `form:"start,omitempty" json:"start,omitempty"`
	End        *openapi_types.Date `form:"end,omitempty" json:"end,omitempty"`
}

// GetOrderParams defines parameters for GetOrder.
type GetOrderParams struct {
	Collection *string `form:"collection,omitempty" json:"collection,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List the records of a collection, optionally filtered
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Register an order placed upstream
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// Fetch one record
	// (GET /orders/{id})
	GetOrder(ctx echo.Context, id string, params GetOrderParams) error
	// Move a record to a new status
	// (POST /orders/{id}/status)
	SetOrderStatus(ctx echo.Context, id string) error
	// Record the vendor decision
	// (POST /orders/{id}/vendor-allotment)
	AllotVendor(ctx echo.Context, id string) error
	// Record the courier decision
	// (POST /orders/{id}/courier-allotment)
	AllotCourier(ctx echo.Context, id string) error
	// Open a return request for an order
	// (POST /orders/{id}/returns)
	FileReturn(ctx echo.Context, id string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var err error
	var params ListOrdersParams

	err = runtime.BindQueryParameter("form", true, false, "collection", ctx.QueryParams(), &params.Collection)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter collection: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "orderType", ctx.QueryParams(), &params.OrderType)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderType: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "start", ctx.QueryParams(), &params.Start)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter start: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "end", ctx.QueryParams(), &params.End)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter end: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	var params GetOrderParams
	err = runtime.BindQueryParameter("form", true, false, "collection", ctx.QueryParams(), &params.Collection)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter collection: %s", err))
	}

	return w.Handler.GetOrder(ctx, id, params)
}

// SetOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) SetOrderStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SetOrderStatus(ctx, id)
}

// AllotVendor converts echo context to params.
func (w *ServerInterfaceWrapper) AllotVendor(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AllotVendor(ctx, id)
}

// AllotCourier converts echo context to params.
func (w *ServerInterfaceWrapper) AllotCourier(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AllotCourier(ctx, id)
}

// FileReturn converts echo context to params.
func (w *ServerInterfaceWrapper) FileReturn(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.FileReturn(ctx, id)
}

func bindOrderID(ctx echo.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the part of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/orders", wrapper.ListOrders)
	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/:id", wrapper.GetOrder)
	router.POST(baseURL+"/orders/:id/status", wrapper.SetOrderStatus)
	router.POST(baseURL+"/orders/:id/vendor-allotment", wrapper.AllotVendor)
	router.POST(baseURL+"/orders/:id/courier-allotment", wrapper.AllotCourier)
	router.POST(baseURL+"/orders/:id/returns", wrapper.FileReturn)
}

// RawSpec returns the OpenAPI document as served on /openapi.json.
func RawSpec() []byte {
	return openAPIDocument
}

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(openAPIDocument)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
