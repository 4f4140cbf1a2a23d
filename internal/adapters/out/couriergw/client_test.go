package couriergw

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(t *testing.T) *order.Order {
	item, err := order.NewLineItem("XL", 3)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.MustOrderID("ORD-7"), order.PaymentPaid, order.Prepaid,
		time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), []order.LineItem{item})
	require.NoError(t, err)
	return o
}

func testClient(url string, retries int) *Client {
	return NewClient(Config{
		BaseURL:      url,
		Retries:      retries,
		RetryWait:    time.Millisecond,
		MaxRetryWait: 5 * time.Millisecond,
	})
}

func TestClient(t *testing.T) {
	testCases := []struct {
		name          string
		responses     []int
		body          string
		retries       int
		expectedCalls int32
		expectedID    string
		expectedError bool
	}{
		{name: "created", responses: []int{http.StatusCreated}, body: `{"trackingId":"DHL-1"}`, expectedCalls: 1, expectedID: "DHL-1"},
		{name: "retries server errors", responses: []int{http.StatusBadGateway, http.StatusOK}, body: `{"trackingId":"DHL-2"}`, retries: 2, expectedCalls: 2, expectedID: "DHL-2"},
		{name: "retries throttling", responses: []int{http.StatusTooManyRequests, http.StatusOK}, body: `{"trackingId":"DHL-3"}`, retries: 1, expectedCalls: 2, expectedID: "DHL-3"},
		{name: "retries exhausted", responses: []int{http.StatusServiceUnavailable}, retries: 2, expectedCalls: 3, expectedError: true},
		{name: "client error is not retried", responses: []int{http.StatusBadRequest}, retries: 2, expectedCalls: 1, expectedError: true},
		{name: "blank tracking id", responses: []int{http.StatusOK}, body: `{"trackingId":"  "}`, expectedCalls: 1, expectedError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := int(calls.Add(1))
				code := tc.responses[len(tc.responses)-1]
				if n <= len(tc.responses) {
					code = tc.responses[n-1]
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(code)
				if code < http.StatusBadRequest {
					fmt.Fprint(w, tc.body)
				}
			}))
			defer svr.Close()

			id, err := testClient(svr.URL, tc.retries).Generate(context.Background(), testOrder(t))

			assert.Equal(t, tc.expectedCalls, calls.Load())
			if tc.expectedError {
				assert.ErrorIs(t, err, errs.ErrUpstream)
				var upstream *errs.UpstreamError
				if assert.ErrorAs(t, err, &upstream) {
					assert.Equal(t, "courier gateway", upstream.Service)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, id.String())
		})
	}
}

func TestClient_SendsShipment(t *testing.T) {
	var got ShipmentRequest
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shipments", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"trackingId":"UPS-9"}`)
	}))
	defer svr.Close()

	_, err := testClient(svr.URL, 0).Generate(context.Background(), testOrder(t))

	require.NoError(t, err)
	assert.Equal(t, ShipmentRequest{
		OrderID:   "ORD-7",
		OrderType: "Prepaid",
		LineItems: []ShipmentLineItem{{Size: "XL", Quantity: 3}},
	}, got)
}

func TestClient_Unreachable(t *testing.T) {
	svr := httptest.NewServer(http.NotFoundHandler())
	url := svr.URL
	svr.Close()

	_, err := testClient(url, 1).Generate(context.Background(), testOrder(t))

	assert.ErrorIs(t, err, errs.ErrUpstream)
}

func TestLocalGenerator(t *testing.T) {
	first, err := LocalGenerator{}.Generate(context.Background(), testOrder(t))
	require.NoError(t, err)
	second, err := LocalGenerator{}.Generate(context.Background(), testOrder(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.String(), kernel.TrackingIDPrefix))
	assert.False(t, first.IsEqual(second))
}
