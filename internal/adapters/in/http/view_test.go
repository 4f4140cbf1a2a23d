package http

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderView(t *testing.T) {
	item, err := order.NewLineItem("L", 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.MustOrderID("ORD-1"), order.PaymentPaid, order.COD,
		time.Date(2024, 2, 29, 22, 15, 0, 0, time.UTC), []order.LineItem{item})
	require.NoError(t, err)
	name := "Vendor 2"
	require.NoError(t, o.AllotVendor(true, &name, time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)))
	trackingID, err := kernel.NewTrackingID("TRK-1")
	require.NoError(t, err)
	require.NoError(t, o.AllotCourier(true, &trackingID, time.Date(2024, 3, 1, 9, 7, 0, 0, time.UTC)))

	view := NewOrderView(o)

	assert.Equal(t, "ORD-1", view.OrderID)
	assert.Equal(t, "orders", view.Collection)
	assert.Equal(t, "Pending", view.Status)
	assert.Equal(t, ColorYellow, view.StatusColor)
	assert.Equal(t, "Shipped", view.DeliveryStatus)
	assert.Equal(t, ColorBlue, view.DeliveryStatusColor)
	assert.Equal(t, "29 Feb 2024", view.OrderedAtFormatted)
	assert.Equal(t, "01 Mar 2024, 09:07 UTC", view.LastUpdatedFormatted)
	require.NotNil(t, view.VendorAllotment)
	assert.Equal(t, "Vendor 2", *view.VendorAllotment.VendorName)
	require.NotNil(t, view.CourierAllotment)
	assert.Equal(t, "TRK-1", *view.CourierAllotment.TrackingID)
	assert.Len(t, view.LineItems, 1)
	assert.Empty(t, view.ReturnReason)
}

func TestNewOrderView_NoAllotments(t *testing.T) {
	o, err := order.NewOrder(kernel.MustOrderID("ORD-2"), order.PaymentPending, order.Prepaid, time.Now(), nil)
	require.NoError(t, err)

	view := NewOrderView(o)

	assert.Nil(t, view.VendorAllotment)
	assert.Nil(t, view.CourierAllotment)
	assert.NotNil(t, view.LineItems)
	assert.Equal(t, ColorGray, view.DeliveryStatusColor)
}

func TestStatusColors(t *testing.T) {
	for _, s := range append(order.StatusesFor(order.Orders), order.StatusesFor(order.Returns)...) {
		assert.NotEmpty(t, StatusColor(s), s.String())
	}
	assert.Equal(t, ColorGray, StatusColor(order.Unknown))
	assert.Equal(t, ColorRed, DeliveryStatusColor(order.DeliveryCancelled))
	assert.Equal(t, ColorGray, DeliveryStatusColor(order.UnknownDelivery))
}

func TestNewOrderViews_Empty(t *testing.T) {
	views := NewOrderViews(nil)

	assert.NotNil(t, views)
	assert.Empty(t, views)
}
