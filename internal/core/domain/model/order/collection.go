package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Collection selects one of the two disjoint record sets: regular orders or
// return requests. Identifiers are unique per collection only.
type Collection int

const (
	UnknownCollection Collection = iota
	Orders
	Returns
)

func getCollectionStrings() map[Collection]string {
	return map[Collection]string{
		Orders:  "orders",
		Returns: "returns",
	}
}

// ParseCollection maps "orders" / "returns" (any case) to a Collection.
func ParseCollection(s string) (Collection, error) {
	key := NormalizeName(s)
	for c, name := range getCollectionStrings() {
		if name == key {
			return c, nil
		}
	}
	return UnknownCollection, errs.NewValueIsInvalidErrorWithCause(
		"collection",
		fmt.Errorf("%q is not one of orders, returns", s),
	)
}

// Validate reports whether c is Orders or Returns.
func (c Collection) Validate() error {
	if _, ok := getCollectionStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("collection", fmt.Errorf("%d is not a valid collection", c))
	}
	return nil
}

func (c Collection) String() string {
	if s, ok := getCollectionStrings()[c]; ok {
		return s
	}
	return "unknown"
}

// LockKey returns the key under which mutations of one record are serialized.
func LockKey(c Collection, id fmt.Stringer) string {
	return c.String() + "/" + id.String()
}
