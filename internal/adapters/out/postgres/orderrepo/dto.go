// Package orderrepo maps order aggregates to the orders and return_requests
// tables. Both tables share one row layout; the aggregate's collection picks
// the table.
package orderrepo

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

const (
	OrdersTable         = "orders"
	ReturnRequestsTable = "return_requests"
)

// tableFor returns the table backing a collection.
func tableFor(c order.Collection) (string, error) {
	switch c {
	case order.Orders:
		return OrdersTable, nil
	case order.Returns:
		return ReturnRequestsTable, nil
	case order.UnknownCollection:
	}
	return "", fmt.Errorf("no table for collection %s", c)
}

// OrderDTO is one row of orders or return_requests. Enumerations are stored
// by name so the status and order type facets can be pushed into SQL.
type OrderDTO struct {
	Seq             int64  `gorm:"autoIncrement;uniqueIndex;<-:false"`
	ID              string `gorm:"primaryKey"`
	PaymentStatus   string `gorm:"not null"`
	OrderType       string `gorm:"not null"`
	Status          string `gorm:"not null"`
	DeliveryStatus  string `gorm:"not null"`
	VendorDecision  *bool
	VendorName      *string
	CourierDecision *bool
	TrackingID      *string
	OrderedAt       time.Time     `gorm:"not null"`
	OrderedOn       time.Time     `gorm:"type:date;not null"`
	LastUpdated     time.Time     `gorm:"not null"`
	LineItems       []LineItemDTO `gorm:"serializer:json;type:jsonb;not null"`
	ReturnReason    *string
}

// TableName is the default table; repositories switch to return_requests per query.
func (OrderDTO) TableName() string {
	return OrdersTable
}

// LineItemDTO is the JSON shape of one line item.
type LineItemDTO struct {
	SizeLabel string `json:"sizeLabel"`
	Quantity  int    `json:"quantity"`
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:             o.ID().String(),
		PaymentStatus:  o.PaymentStatus().String(),
		OrderType:      o.Type().String(),
		Status:         o.Status().String(),
		DeliveryStatus: o.DeliveryStatus().String(),
		OrderedAt:      o.OrderedAt(),
		OrderedOn:      kernel.CalendarDay(o.OrderedAt()),
		LastUpdated:    o.LastUpdated(),
		LineItems:      make([]LineItemDTO, 0, len(o.LineItems())),
	}

	if v := o.VendorAllotment(); v != nil {
		decision := v.Decision()
		dto.VendorDecision = &decision
		dto.VendorName = v.VendorName()
	}
	if c := o.CourierAllotment(); c != nil {
		decision := c.Decision()
		dto.CourierDecision = &decision
		if id := c.TrackingID(); id != nil {
			raw := id.String()
			dto.TrackingID = &raw
		}
	}
	for _, item := range o.LineItems() {
		dto.LineItems = append(dto.LineItems, LineItemDTO{SizeLabel: item.SizeLabel(), Quantity: item.Quantity()})
	}
	if reason := o.ReturnReason(); reason != "" {
		dto.ReturnReason = &reason
	}
	return dto
}

func toDomain(dto OrderDTO, collection order.Collection) (*order.Order, error) {
	id, err := kernel.NewOrderID(dto.ID)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	orderType, err := order.ParseType(dto.OrderType)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	deliveryStatus, err := order.ParseDeliveryStatus(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}

	snapshot := order.Snapshot{
		ID:             id,
		Collection:     collection,
		PaymentStatus:  paymentStatus,
		Type:           orderType,
		Status:         status,
		DeliveryStatus: deliveryStatus,
		OrderedAt:      dto.OrderedAt,
		LastUpdated:    dto.LastUpdated,
		LineItems:      make([]order.LineItem, 0, len(dto.LineItems)),
	}

	if dto.VendorDecision != nil {
		v, vErr := order.NewVendorAllotment(*dto.VendorDecision, dto.VendorName)
		if vErr != nil {
			return nil, vErr
		}
		snapshot.VendorAllotment = &v
	}
	if dto.CourierDecision != nil {
		var trackingID *kernel.TrackingID
		if dto.TrackingID != nil {
			tID, tErr := kernel.NewTrackingID(*dto.TrackingID)
			if tErr != nil {
				return nil, tErr
			}
			trackingID = &tID
		}
		c, cErr := order.NewCourierAllotment(*dto.CourierDecision, trackingID)
		if cErr != nil {
			return nil, cErr
		}
		snapshot.CourierAllotment = &c
	}
	for _, item := range dto.LineItems {
		li, liErr := order.NewLineItem(item.SizeLabel, item.Quantity)
		if liErr != nil {
			return nil, liErr
		}
		snapshot.LineItems = append(snapshot.LineItems, li)
	}
	if dto.ReturnReason != nil {
		snapshot.ReturnReason = *dto.ReturnReason
	}

	return order.RestoreOrder(snapshot)
}
