package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the administrative status of an order or return request.
//
// Orders may take any of Pending through Rejected; return requests are
// restricted to ReturnRequested, ReturnApproved, ReturnRejected and Rejected.
// Within those sets every status may follow every other one.
type Status int

const (
	// Unknown is the zero value and never legal.
	Unknown Status = iota
	Pending
	Processing
	Accepted
	AllottedToVendor
	Shipped
	Delivered
	Cancelled
	Rejected
	ReturnRequested
	ReturnApproved
	ReturnRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Pending:          "Pending",
		Processing:       "Processing",
		Accepted:         "Accepted",
		AllottedToVendor: "AllottedToVendor",
		Shipped:          "Shipped",
		Delivered:        "Delivered",
		Cancelled:        "Cancelled",
		Rejected:         "Rejected",
		ReturnRequested:  "ReturnRequested",
		ReturnApproved:   "ReturnApproved",
		ReturnRejected:   "ReturnRejected",
	}
}

// getCollectionStatuses lists the statuses legal for each collection.
func getCollectionStatuses() map[Collection][]Status {
	return map[Collection][]Status{
		Orders:  {Pending, Processing, Accepted, AllottedToVendor, Shipped, Delivered, Cancelled, Rejected},
		Returns: {ReturnRequested, ReturnApproved, ReturnRejected, Rejected},
	}
}

// StatusesFor returns the legal statuses of a collection in display order.
func StatusesFor(c Collection) []Status {
	statuses := getCollectionStatuses()[c]
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// ParseStatus resolves a status label case-insensitively (see NormalizeName).
// Unknown labels yield a StatusIsInvalidError.
func ParseStatus(s string) (Status, error) {
	key := NormalizeName(s)
	for status, name := range getStatusStrings() {
		if status != Unknown && NormalizeName(name) == key {
			return status, nil
		}
	}
	return Unknown, errs.NewStatusIsInvalidError(s)
}

// Validate checks that s is a known, non-zero status.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewStatusIsInvalidError(fmt.Sprintf("%d", s))
	}
	return nil
}

// ValidateFor checks that s is legal for collection c.
func (s Status) ValidateFor(c Collection) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, legal := range getCollectionStatuses()[c] {
		if legal == s {
			return nil
		}
	}
	return errs.NewStatusIsInvalidErrorForCollection(s.String(), c.String())
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// deliveryEffect returns the delivery status a change to s implies in
// collection c, if any.
func (s Status) deliveryEffect(c Collection) (DeliveryStatus, bool) {
	switch c {
	case Orders:
		switch s { //nolint:exhaustive // other order statuses do not move the shipment
		case Delivered:
			return DeliveryDelivered, true
		case Cancelled:
			return DeliveryCancelled, true
		}
	case Returns:
		switch s { //nolint:exhaustive // only return statuses are legal here
		case ReturnRequested:
			return DeliveryReturnRequested, true
		case ReturnApproved:
			return DeliveryReturnApproved, true
		case ReturnRejected, Rejected:
			return DeliveryReturnRejected, true
		}
	case UnknownCollection:
	}
	return UnknownDelivery, false
}
