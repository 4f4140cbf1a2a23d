package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder, NewReturnRequest or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the fulfillment aggregate root. The same type backs regular orders
// (collection Orders) and return requests (collection Returns); the collection
// decides which statuses are legal and how status changes move the shipment.
//
// Order follows these invariants:
//   - The identifier is non-empty and never changes
//   - The collection, payment status, order type, order date and line items never change
//   - Status is always legal for the collection
//   - A positive courier decision carries a tracking id, a negative one does not
//   - A vendor name is only present on a positive vendor decision
//   - A return request always carries its reason; a regular order never does
//
// Mutating methods validate first and only then touch state, so a rejected
// call leaves the order exactly as it was.
type Order struct {
	id            kernel.OrderID
	collection    Collection
	paymentStatus PaymentStatus
	orderType     Type
	status        Status

	// deliveryStatus is derived from allotment and status changes
	deliveryStatus DeliveryStatus

	// vendorAllotment and courierAllotment stay nil until the first decision
	vendorAllotment  *VendorAllotment
	courierAllotment *CourierAllotment

	orderedAt   time.Time
	lastUpdated time.Time
	lineItems   []LineItem

	// returnReason is set on return requests only
	returnReason string

	isConstructed bool
}

// Snapshot is a detached copy of every field of an Order. Adapters use it to
// move orders across persistence and transport boundaries.
type Snapshot struct {
	ID               kernel.OrderID
	Collection       Collection
	PaymentStatus    PaymentStatus
	Type             Type
	Status           Status
	DeliveryStatus   DeliveryStatus
	VendorAllotment  *VendorAllotment
	CourierAllotment *CourierAllotment
	OrderedAt        time.Time
	LastUpdated      time.Time
	LineItems        []LineItem
	ReturnReason     string
}

// NewOrder creates a newly placed order in the Orders collection.
//
// Parameters:
//   - id: the identifier assigned by the order-placement system
//   - paymentStatus: Pending or Paid
//   - orderType: Prepaid, COD or PartialPaid
//   - orderedAt: when the customer placed the order
//   - lineItems: the ordered size/quantity pairs, possibly empty
//
// The order starts Pending with delivery status OrderPlaced and no allotments.
// Order dates are kept in UTC; LastUpdated starts at the order date.
//
// Example:
//
//	item, _ := order.NewLineItem("M", 2)
//	o, err := order.NewOrder(kernel.MustOrderID("ORD-1"), order.PaymentPaid, order.Prepaid, time.Now(), []order.LineItem{item})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.OrderID,
	paymentStatus PaymentStatus,
	orderType Type,
	orderedAt time.Time,
	lineItems []LineItem,
) (*Order, error) {
	o := &Order{
		collection:     Orders,
		status:         Pending,
		deliveryStatus: DeliveryOrderPlaced,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPaymentStatus(paymentStatus),
		o.setType(orderType),
		o.setOrderedAt(orderedAt),
		o.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	o.lastUpdated = o.orderedAt
	return o, nil
}

// NewReturnRequest files a return for source in the Returns collection. The
// return shares the source's identifier, payment status, order type, order
// date and line items, starts as ReturnRequested on both status axes and has
// no allotments.
//
// Any order of the Orders collection may be returned; reason must not be blank.
func NewReturnRequest(source *Order, reason string, now time.Time) (*Order, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if source.collection != Orders {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"collection",
			fmt.Errorf("order %s is already a return request", source.id),
		)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}

	r := &Order{
		id:             source.id,
		collection:     Returns,
		paymentStatus:  source.paymentStatus,
		orderType:      source.orderType,
		status:         ReturnRequested,
		deliveryStatus: DeliveryReturnRequested,
		orderedAt:      source.orderedAt,
		lineItems:      cloneLineItems(source.lineItems),
		returnReason:   reason,
		isConstructed:  true,
	}
	r.touch(now)
	return r, nil
}

// RestoreOrder rebuilds an Order from a Snapshot, checking every invariant a
// constructor or mutation would have enforced. It is used by repositories
// when loading persisted records.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCollection(s.Collection),
		o.setPaymentStatus(s.PaymentStatus),
		o.setType(s.Type),
		o.setOrderedAt(s.OrderedAt),
		o.setLineItems(s.LineItems),
		s.DeliveryStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if err := s.Status.ValidateFor(o.collection); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(s.ReturnReason)
	switch {
	case o.collection == Returns && reason == "":
		return nil, errs.NewValueIsRequiredError("returnReason")
	case o.collection == Orders && reason != "":
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"returnReason",
			errors.New("regular orders carry no return reason"),
		)
	}

	if s.VendorAllotment != nil {
		v, err := NewVendorAllotment(s.VendorAllotment.decision, s.VendorAllotment.vendorName)
		if err != nil {
			return nil, err
		}
		o.vendorAllotment = &v
	}
	if s.CourierAllotment != nil {
		c, err := NewCourierAllotment(s.CourierAllotment.decision, s.CourierAllotment.trackingID)
		if err != nil {
			return nil, err
		}
		o.courierAllotment = &c
	}

	o.status = s.Status
	o.deliveryStatus = s.DeliveryStatus
	o.returnReason = reason
	o.lastUpdated = s.LastUpdated.UTC()
	if o.lastUpdated.IsZero() {
		o.lastUpdated = o.orderedAt
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by collection and identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.collection == other.collection && o.id.IsEqual(other.id)
}

// Snapshot returns a detached copy of the order's state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:               o.id,
		Collection:       o.collection,
		PaymentStatus:    o.paymentStatus,
		Type:             o.orderType,
		Status:           o.status,
		DeliveryStatus:   o.deliveryStatus,
		VendorAllotment:  o.VendorAllotment(),
		CourierAllotment: o.CourierAllotment(),
		OrderedAt:        o.orderedAt,
		LastUpdated:      o.lastUpdated,
		LineItems:        o.LineItems(),
		ReturnReason:     o.returnReason,
	}
}

// Clone returns a deep copy that shares no mutable state with o.
func (o *Order) Clone() *Order {
	c := *o
	c.vendorAllotment = o.VendorAllotment()
	c.courierAllotment = o.CourierAllotment()
	c.lineItems = cloneLineItems(o.lineItems)
	return &c
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// Collection returns whether this is a regular order or a return request.
func (o *Order) Collection() Collection {
	return o.collection
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) Type() Type {
	return o.orderType
}

// Status returns the administrative status.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryStatus returns the shipment state.
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// VendorAllotment returns a copy of the vendor decision, or nil before the first one.
func (o *Order) VendorAllotment() *VendorAllotment {
	if o.vendorAllotment == nil {
		return nil
	}
	v := VendorAllotment{decision: o.vendorAllotment.decision, vendorName: o.vendorAllotment.VendorName()}
	return &v
}

// CourierAllotment returns a copy of the courier decision, or nil before the first one.
func (o *Order) CourierAllotment() *CourierAllotment {
	if o.courierAllotment == nil {
		return nil
	}
	c := CourierAllotment{decision: o.courierAllotment.decision, trackingID: o.courierAllotment.TrackingID()}
	return &c
}

func (o *Order) OrderedAt() time.Time {
	return o.orderedAt
}

func (o *Order) LastUpdated() time.Time {
	return o.lastUpdated
}

// LineItems returns a copy of the line items.
func (o *Order) LineItems() []LineItem {
	return cloneLineItems(o.lineItems)
}

// ReturnReason is empty for regular orders.
func (o *Order) ReturnReason() string {
	return o.returnReason
}

// SetStatus moves the order to status.
//
// This method enforces the following business rules:
//   - status must be legal for the order's collection
//   - any legal status may follow any other, including itself
//   - Delivered and Cancelled move a regular order's shipment to the same state
//   - on a return request, each return status moves the shipment to its return
//     counterpart and Rejected counts as ReturnRejected
//
// Returns StatusIsInvalidError when the status is not legal; the order is
// left unchanged.
//
// Example:
//
//	if err := o.SetStatus(order.Delivered, time.Now()); err != nil {
//	    // status not legal for this collection
//	}
func (o *Order) SetStatus(status Status, now time.Time) error {
	if err := status.ValidateFor(o.collection); err != nil {
		return err
	}

	o.status = status
	if ds, ok := status.deliveryEffect(o.collection); ok {
		o.deliveryStatus = ds
	}
	o.touch(now)
	return nil
}

// AllotVendor records the vendor decision.
//
//   - decision false clears any vendor: {false, nil}
//   - decision true without a name records the request: {true, nil}
//   - decision true with a name allots to that vendor: {true, name}
//
// Neither Status nor DeliveryStatus changes. A blank vendor name on a positive
// decision is rejected with ValueIsRequiredError.
func (o *Order) AllotVendor(decision bool, vendorName *string, now time.Time) error {
	if !decision {
		vendorName = nil
	}
	allotment, err := NewVendorAllotment(decision, vendorName)
	if err != nil {
		return err
	}

	o.vendorAllotment = &allotment
	o.touch(now)
	return nil
}

// AllotCourier records the courier decision.
//
//   - decision true requires the tracking id the parcel ships under and moves
//     the shipment to Shipped
//   - decision false drops any tracking id and moves the shipment to
//     PendingShipment; trackingID is ignored
//
// Status never changes. Returns ValueIsRequiredError for a positive decision
// without a tracking id.
func (o *Order) AllotCourier(decision bool, trackingID *kernel.TrackingID, now time.Time) error {
	if !decision {
		trackingID = nil
	}
	allotment, err := NewCourierAllotment(decision, trackingID)
	if err != nil {
		return err
	}

	o.courierAllotment = &allotment
	if decision {
		o.deliveryStatus = DeliveryShipped
	} else {
		o.deliveryStatus = DeliveryPendingShipment
	}
	o.touch(now)
	return nil
}

// touch stamps lastUpdated. A zero now means the wall clock.
func (o *Order) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	o.lastUpdated = now.UTC()
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCollection(c Collection) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.collection = c
	return nil
}

func (o *Order) setPaymentStatus(p PaymentStatus) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.paymentStatus = p
	return nil
}

func (o *Order) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	o.orderType = t
	return nil
}

func (o *Order) setOrderedAt(orderedAt time.Time) error {
	if orderedAt.IsZero() {
		return errs.NewValueIsRequiredError("orderedAt")
	}
	o.orderedAt = orderedAt.UTC()
	return nil
}

func (o *Order) setLineItems(items []LineItem) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
	}
	o.lineItems = cloneLineItems(items)
	return nil
}

func cloneLineItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
