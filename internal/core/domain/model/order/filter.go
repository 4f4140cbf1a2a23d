package order

import "fulfillment/internal/core/domain/model/kernel"

// Filter holds the optional facets of an order query. Facets combine with
// AND; an empty facet matches everything.
//
// Status and order type facets are free text compared against the record's
// value names with NormalizeName, so a facet naming no known value simply
// matches nothing.
type Filter struct {
	status    string
	orderType string
	dateRange *kernel.DateRange
}

// NewFilter builds a filter. A non-nil dateRange must be constructed.
func NewFilter(status, orderType string, dateRange *kernel.DateRange) (Filter, error) {
	f := Filter{status: NormalizeName(status), orderType: NormalizeName(orderType)}
	if dateRange != nil {
		if err := dateRange.Validate(); err != nil {
			return Filter{}, err
		}
		r := *dateRange
		f.dateRange = &r
	}
	return f, nil
}

// StatusKey returns the normalized status facet, or "".
func (f Filter) StatusKey() string {
	return f.status
}

// TypeKey returns the normalized order type facet, or "".
func (f Filter) TypeKey() string {
	return f.orderType
}

// DateRange returns a copy of the date facet, or nil.
func (f Filter) DateRange() *kernel.DateRange {
	if f.dateRange == nil {
		return nil
	}
	r := *f.dateRange
	return &r
}

func (f Filter) IsEmpty() bool {
	return f.status == "" && f.orderType == "" && f.dateRange == nil
}

// Matches reports whether o satisfies every present facet.
func (f Filter) Matches(o *Order) bool {
	if f.status != "" && NormalizeName(o.status.String()) != f.status {
		return false
	}
	if f.orderType != "" && NormalizeName(o.orderType.String()) != f.orderType {
		return false
	}
	if f.dateRange != nil && !f.dateRange.Contains(o.orderedAt) {
		return false
	}
	return true
}

// Apply returns the matching orders in their original order. The result is
// never nil.
func (f Filter) Apply(orders []*Order) []*Order {
	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}
