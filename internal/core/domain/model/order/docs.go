// Package order provides the fulfillment aggregate: orders and return requests,
// their status vocabularies, the vendor and courier allotment decisions, and
// the filter used by the order query engine.
//
// The package includes:
//   - Order: the aggregate root shared by the Orders and Returns collections
//   - Status, DeliveryStatus, PaymentStatus, Type, Collection: enumerations
//   - VendorAllotment, CourierAllotment: the two independent allotment decisions
//   - LineItem: an immutable size/quantity pair
//   - Filter: the status / order type / date range facets of a query
//
// Key business rules:
//   - Any status legal for a collection may follow any other status
//   - A courier allotment carries a tracking id if and only if its decision is positive
//   - Delivery status is derived from allotment and status changes and cannot be set directly
//   - A negative vendor decision clears any previously chosen vendor
//   - Every mutation refreshes LastUpdated; a rejected mutation changes nothing
package order
