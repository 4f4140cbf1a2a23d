package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected order.Status
	}{
		{"exact", "Processing", order.Processing},
		{"lower case", "delivered", order.Delivered},
		{"upper case", "CANCELLED", order.Cancelled},
		{"spaced label", "Allotted to Vendor", order.AllottedToVendor},
		{"snake case", "return_requested", order.ReturnRequested},
		{"surrounding spaces", "  Pending ", order.Pending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := order.ParseStatus(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}

	t.Run("should reject unknown labels", func(t *testing.T) {
		for _, input := range []string{"NotARealStatus", "", "Unknown"} {
			s, err := order.ParseStatus(input)

			assert.ErrorIs(t, err, errs.ErrStatusIsInvalid, input)
			assert.Equal(t, order.Unknown, s)
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "AllottedToVendor", order.AllottedToVendor.String())
	assert.Equal(t, "ReturnRejected", order.ReturnRejected.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_ValidateFor(t *testing.T) {
	t.Run("orders", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Processing, order.Accepted, order.AllottedToVendor,
			order.Shipped, order.Delivered, order.Cancelled, order.Rejected,
		} {
			assert.NoError(t, s.ValidateFor(order.Orders), s.String())
		}
		for _, s := range []order.Status{order.ReturnRequested, order.ReturnApproved, order.ReturnRejected} {
			assert.ErrorIs(t, s.ValidateFor(order.Orders), errs.ErrStatusIsInvalid, s.String())
		}
	})

	t.Run("returns", func(t *testing.T) {
		for _, s := range []order.Status{order.ReturnRequested, order.ReturnApproved, order.ReturnRejected, order.Rejected} {
			assert.NoError(t, s.ValidateFor(order.Returns), s.String())
		}
		for _, s := range []order.Status{order.Pending, order.Shipped, order.Delivered, order.Cancelled} {
			assert.ErrorIs(t, s.ValidateFor(order.Returns), errs.ErrStatusIsInvalid, s.String())
		}
	})

	t.Run("unknown collection", func(t *testing.T) {
		assert.ErrorIs(t, order.Pending.ValidateFor(order.UnknownCollection), errs.ErrStatusIsInvalid)
	})
}

func TestStatusesFor_ReturnsCopy(t *testing.T) {
	statuses := order.StatusesFor(order.Returns)
	statuses[0] = order.Pending

	assert.Equal(t, order.ReturnRequested, order.StatusesFor(order.Returns)[0])
}

func TestParseCollection(t *testing.T) {
	c, err := order.ParseCollection("Returns")
	require.NoError(t, err)
	assert.Equal(t, order.Returns, c)

	c, err = order.ParseCollection("orders")
	require.NoError(t, err)
	assert.Equal(t, order.Orders, c)

	_, err = order.ParseCollection("archive")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseEnumerations(t *testing.T) {
	p, err := order.ParsePaymentStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, p)

	typ, err := order.ParseType("partial paid")
	require.NoError(t, err)
	assert.Equal(t, order.PartialPaid, typ)

	typ, err = order.ParseType("cod")
	require.NoError(t, err)
	assert.Equal(t, order.COD, typ)

	d, err := order.ParseDeliveryStatus("Out for Delivery")
	require.NoError(t, err)
	assert.Equal(t, order.DeliveryOutForDelivery, d)

	_, err = order.ParseType("Credit")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = order.ParsePaymentStatus("Refunded")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = order.ParseDeliveryStatus("Lost")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
