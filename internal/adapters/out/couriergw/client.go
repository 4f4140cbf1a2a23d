// Package couriergw obtains tracking numbers for positive courier allotments.
//
// Client asks a remote courier gateway over HTTP and retries transient
// failures; LocalGenerator issues numbers in-process and is used when no
// gateway is configured.
package couriergw

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
)

const serviceName = "courier gateway"

// ShipmentRequest is the body of POST /shipments.
type ShipmentRequest struct {
	OrderID   string             `json:"orderId"`
	OrderType string             `json:"orderType"`
	LineItems []ShipmentLineItem `json:"lineItems"`
}

type ShipmentLineItem struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// ShipmentResponse is the gateway's answer to a shipment request.
type ShipmentResponse struct {
	TrackingID string `json:"trackingId"`
}

// Config tunes the HTTP client.
type Config struct {
	BaseURL string
	// Retries is the number of extra attempts after the first failure.
	Retries      int
	Timeout      time.Duration
	RetryWait    time.Duration
	MaxRetryWait time.Duration
}

// Client implements ports.TrackingIDGenerator against the courier gateway.
type Client struct {
	http *resty.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 200 * time.Millisecond
	}
	if cfg.MaxRetryWait <= 0 {
		cfg.MaxRetryWait = 2 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.MaxRetryWait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(isTransient)

	return &Client{http: httpClient}
}

// isTransient retries transport errors, throttling and server errors.
func isTransient(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= http.StatusInternalServerError
}

// Generate books a shipment for o and returns the carrier's tracking number.
// Returns errs.UpstreamError once every attempt has failed or when the
// gateway answers with something unusable.
func (c *Client) Generate(ctx context.Context, o *order.Order) (kernel.TrackingID, error) {
	body := ShipmentRequest{
		OrderID:   o.ID().String(),
		OrderType: o.Type().String(),
		LineItems: make([]ShipmentLineItem, 0, len(o.LineItems())),
	}
	for _, item := range o.LineItems() {
		body.LineItems = append(body.LineItems, ShipmentLineItem{Size: item.SizeLabel(), Quantity: item.Quantity()})
	}

	var result ShipmentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/shipments")
	if err != nil {
		return kernel.TrackingID{}, errs.NewUpstreamError(serviceName, err)
	}
	if resp.IsError() {
		return kernel.TrackingID{}, errs.NewUpstreamError(serviceName,
			fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}

	trackingID, err := kernel.NewTrackingID(result.TrackingID)
	if err != nil {
		return kernel.TrackingID{}, errs.NewUpstreamError(serviceName, err)
	}
	return trackingID, nil
}

// LocalGenerator issues "TRK-" tracking numbers without leaving the process.
type LocalGenerator struct{}

func (LocalGenerator) Generate(_ context.Context, _ *order.Order) (kernel.TrackingID, error) {
	return kernel.GenerateTrackingID(), nil
}
