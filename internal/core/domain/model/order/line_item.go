package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a zero LineItem reaches the domain.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError("line item must be created via NewLineItem")

// LineItem is one size/quantity pair of an order. It is immutable.
type LineItem struct {
	sizeLabel string
	quantity  int
	guard     guard.ConstructorGuard
}

// NewLineItem validates a size label and a positive quantity.
func NewLineItem(sizeLabel string, quantity int) (LineItem, error) {
	sizeLabel = strings.TrimSpace(sizeLabel)
	if sizeLabel == "" {
		return LineItem{}, errs.NewValueIsRequiredError("sizeLabel")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return LineItem{sizeLabel: sizeLabel, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (l LineItem) SizeLabel() string {
	return l.sizeLabel
}

func (l LineItem) Quantity() int {
	return l.quantity
}

func (l LineItem) Validate() error {
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}
