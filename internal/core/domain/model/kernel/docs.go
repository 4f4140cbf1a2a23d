// Package kernel provides the value objects shared by the fulfillment domain model.
//
// The package includes:
//   - UUID: a random identifier wrapper used for outbox messages and tracking numbers
//   - OrderID: the opaque, non-empty key of an order or return request
//   - TrackingID: the carrier reference produced by a positive courier allotment
//   - DateRange: an inclusive calendar-day range used by the order date filter
//
// Every value object has a zero value that fails Validate, so values read from
// the outside world must go through a constructor before the domain uses them.
package kernel
