package http

import (
	"time"

	"fulfillment/internal/adapters/in/http/servers"
	"fulfillment/internal/core/domain/model/order"
)

const (
	// OrderedAtLayout renders the order day.
	OrderedAtLayout = "02 Jan 2006"
	// LastUpdatedLayout renders the last change down to the minute, in UTC.
	LastUpdatedLayout = "02 Jan 2006, 15:04 MST"
)

// Badge colours of the dashboard.
const (
	ColorGray   = "gray"
	ColorYellow = "yellow"
	ColorBlue   = "blue"
	ColorIndigo = "indigo"
	ColorPurple = "purple"
	ColorOrange = "orange"
	ColorGreen  = "green"
	ColorRed    = "red"
)

var statusColors = map[order.Status]string{
	order.Pending:          ColorYellow,
	order.Processing:       ColorBlue,
	order.Accepted:         ColorIndigo,
	order.AllottedToVendor: ColorPurple,
	order.Shipped:          ColorOrange,
	order.Delivered:        ColorGreen,
	order.Cancelled:        ColorRed,
	order.Rejected:         ColorRed,
	order.ReturnRequested:  ColorYellow,
	order.ReturnApproved:   ColorGreen,
	order.ReturnRejected:   ColorRed,
}

var deliveryStatusColors = map[order.DeliveryStatus]string{
	order.DeliveryOrderPlaced:     ColorGray,
	order.DeliveryPendingShipment: ColorYellow,
	order.DeliveryShipped:         ColorBlue,
	order.DeliveryInTransit:       ColorIndigo,
	order.DeliveryOutForDelivery:  ColorPurple,
	order.DeliveryDelivered:       ColorGreen,
	order.DeliveryCancelled:       ColorRed,
	order.DeliveryReturned:        ColorOrange,
	order.DeliveryReturnRequested: ColorYellow,
	order.DeliveryReturnApproved:  ColorGreen,
	order.DeliveryReturnRejected:  ColorRed,
}

// StatusColor returns the badge colour of s; unknown values are gray.
func StatusColor(s order.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return ColorGray
}

// DeliveryStatusColor returns the badge colour of d; unknown values are gray.
func DeliveryStatusColor(d order.DeliveryStatus) string {
	if c, ok := deliveryStatusColors[d]; ok {
		return c
	}
	return ColorGray
}

// NewOrderView maps a record to its display form. The view shares no state
// with o.
func NewOrderView(o *order.Order) servers.Order {
	view := servers.Order{
		OrderID:              o.ID().String(),
		Collection:           o.Collection().String(),
		PaymentStatus:        o.PaymentStatus().String(),
		OrderType:            o.Type().String(),
		Status:               o.Status().String(),
		DeliveryStatus:       o.DeliveryStatus().String(),
		OrderedAt:            o.OrderedAt(),
		LastUpdated:          o.LastUpdated(),
		ReturnReason:         o.ReturnReason(),
		StatusColor:          StatusColor(o.Status()),
		DeliveryStatusColor:  DeliveryStatusColor(o.DeliveryStatus()),
		OrderedAtFormatted:   formatTime(o.OrderedAt(), OrderedAtLayout),
		LastUpdatedFormatted: formatTime(o.LastUpdated(), LastUpdatedLayout),
	}

	items := o.LineItems()
	view.LineItems = make([]servers.LineItem, 0, len(items))
	for _, item := range items {
		view.LineItems = append(view.LineItems, servers.LineItem{Size: item.SizeLabel(), Quantity: item.Quantity()})
	}

	if v := o.VendorAllotment(); v != nil {
		view.VendorAllotment = &servers.VendorAllotment{Decision: v.Decision(), VendorName: v.VendorName()}
	}
	if c := o.CourierAllotment(); c != nil {
		view.CourierAllotment = &servers.CourierAllotment{Decision: c.Decision()}
		if id := c.TrackingID(); id != nil {
			s := id.String()
			view.CourierAllotment.TrackingID = &s
		}
	}

	return view
}

// NewOrderViews maps records in order; the result is never nil.
func NewOrderViews(orders []*order.Order) []servers.Order {
	views := make([]servers.Order, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(layout)
}
