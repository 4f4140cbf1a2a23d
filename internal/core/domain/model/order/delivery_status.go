package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DeliveryStatus is the physical shipment state. It is derived:
//
//	created                 -> OrderPlaced
//	AllotCourier(true)      -> Shipped
//	AllotCourier(false)     -> PendingShipment
//	SetStatus(Delivered)    -> Delivered
//	SetStatus(Cancelled)    -> Cancelled
//	return filed            -> ReturnRequested
//	SetStatus(ReturnApproved)            -> ReturnApproved
//	SetStatus(ReturnRejected | Rejected) -> ReturnRejected  (returns only)
//
// InTransit, OutForDelivery and Returned belong to the vocabulary shared with
// carriers and are accepted when restoring records.
type DeliveryStatus int

const (
	UnknownDelivery DeliveryStatus = iota
	DeliveryOrderPlaced
	DeliveryPendingShipment
	DeliveryShipped
	DeliveryInTransit
	DeliveryOutForDelivery
	DeliveryDelivered
	DeliveryCancelled
	DeliveryReturned
	DeliveryReturnRequested
	DeliveryReturnApproved
	DeliveryReturnRejected
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryOrderPlaced:     "OrderPlaced",
		DeliveryPendingShipment: "PendingShipment",
		DeliveryShipped:         "Shipped",
		DeliveryInTransit:       "InTransit",
		DeliveryOutForDelivery:  "OutForDelivery",
		DeliveryDelivered:       "Delivered",
		DeliveryCancelled:       "Cancelled",
		DeliveryReturned:        "Returned",
		DeliveryReturnRequested: "ReturnRequested",
		DeliveryReturnApproved:  "ReturnApproved",
		DeliveryReturnRejected:  "ReturnRejected",
	}
}

// ParseDeliveryStatus resolves a delivery status label case-insensitively.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	key := NormalizeName(s)
	for ds, name := range getDeliveryStatusStrings() {
		if NormalizeName(name) == key {
			return ds, nil
		}
	}
	return UnknownDelivery, errs.NewValueIsInvalidErrorWithCause(
		"deliveryStatus",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

func (d DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%d is not a valid delivery status", d))
	}
	return nil
}

func (d DeliveryStatus) String() string {
	if s, ok := getDeliveryStatusStrings()[d]; ok {
		return s
	}
	return "Unknown"
}
