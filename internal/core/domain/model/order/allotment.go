package order

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// VendorAllotment records whether the order was handed to a vendor and, once
// chosen, which one. A vendor name is only ever present on a positive decision.
type VendorAllotment struct {
	decision   bool
	vendorName *string
}

// NewVendorAllotment validates a vendor decision.
//
//	NewVendorAllotment(false, nil)   // declined
//	NewVendorAllotment(true, nil)    // requested, vendor not chosen yet
//	NewVendorAllotment(true, &name)  // allotted to name
func NewVendorAllotment(decision bool, vendorName *string) (VendorAllotment, error) {
	if vendorName == nil {
		return VendorAllotment{decision: decision}, nil
	}
	if !decision {
		return VendorAllotment{}, errs.NewValueIsInvalidErrorWithCause(
			"vendorName",
			errors.New("a vendor cannot be named on a negative decision"),
		)
	}
	name := strings.TrimSpace(*vendorName)
	if name == "" {
		return VendorAllotment{}, errs.NewValueIsRequiredError("vendorName")
	}
	return VendorAllotment{decision: true, vendorName: &name}, nil
}

func (v VendorAllotment) Decision() bool {
	return v.decision
}

// VendorName returns a copy of the chosen vendor, or nil.
func (v VendorAllotment) VendorName() *string {
	if v.vendorName == nil {
		return nil
	}
	name := *v.vendorName
	return &name
}

// CourierAllotment records whether the order was handed to a courier. A
// positive decision always carries the tracking id it was shipped under; a
// negative one never does.
type CourierAllotment struct {
	decision   bool
	trackingID *kernel.TrackingID
}

// NewCourierAllotment validates a courier decision.
func NewCourierAllotment(decision bool, trackingID *kernel.TrackingID) (CourierAllotment, error) {
	if !decision {
		if trackingID != nil {
			return CourierAllotment{}, errs.NewValueIsInvalidErrorWithCause(
				"trackingId",
				errors.New("a tracking id cannot accompany a negative decision"),
			)
		}
		return CourierAllotment{}, nil
	}
	if trackingID == nil {
		return CourierAllotment{}, errs.NewValueIsRequiredError("trackingId")
	}
	if err := trackingID.Validate(); err != nil {
		return CourierAllotment{}, err
	}
	id := *trackingID
	return CourierAllotment{decision: true, trackingID: &id}, nil
}

func (c CourierAllotment) Decision() bool {
	return c.decision
}

// TrackingID returns a copy of the tracking id, or nil.
func (c CourierAllotment) TrackingID() *kernel.TrackingID {
	if c.trackingID == nil {
		return nil
	}
	id := *c.trackingID
	return &id
}
