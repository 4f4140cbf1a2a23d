package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrOrderIDIsNotConstructed is returned when a zero OrderID reaches the domain.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("orderId must be created via NewOrderID")

// OrderID is the opaque primary key of an order or return request. The value
// is whatever the upstream order-placement system assigned; surrounding
// whitespace is trimmed and the result must not be empty.
type OrderID struct {
	value string
	guard guard.ConstructorGuard
}

// NewOrderID validates and wraps an upstream order identifier.
//
// Example:
//
//	id, err := kernel.NewOrderID("ORD-10021")
//	if err != nil {
//	    // empty identifier
//	}
func NewOrderID(value string) (OrderID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}
	return OrderID{value: value, guard: guard.NewConstructorGuard()}, nil
}

// MustOrderID is NewOrderID for identifiers known to be valid, such as test fixtures.
func MustOrderID(value string) OrderID {
	id, err := NewOrderID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the raw identifier.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// Validate returns ErrOrderIDIsNotConstructed for the zero value.
func (id OrderID) Validate() error {
	return id.guard.Validate(ErrOrderIDIsNotConstructed)
}
