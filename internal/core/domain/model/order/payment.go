package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus is owned by the payments collaborator; the core only records it.
type PaymentStatus int

const (
	UnknownPayment PaymentStatus = iota
	PaymentPending
	PaymentPaid
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentPending: "Pending",
		PaymentPaid:    "Paid",
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	key := NormalizeName(s)
	for ps, name := range getPaymentStatusStrings() {
		if NormalizeName(name) == key {
			return ps, nil
		}
	}
	return UnknownPayment, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not one of Pending, Paid", s),
	)
}

func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

func (p PaymentStatus) String() string {
	if s, ok := getPaymentStatusStrings()[p]; ok {
		return s
	}
	return "Unknown"
}

// Type is how the customer pays for the order. It never changes.
type Type int

const (
	UnknownType Type = iota
	Prepaid
	COD
	PartialPaid
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		Prepaid:     "Prepaid",
		COD:         "COD",
		PartialPaid: "PartialPaid",
	}
}

func ParseType(s string) (Type, error) {
	key := NormalizeName(s)
	for t, name := range getTypeStrings() {
		if NormalizeName(name) == key {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause(
		"orderType",
		fmt.Errorf("%q is not one of Prepaid, COD, PartialPaid", s),
	)
}

func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "Unknown"
}
