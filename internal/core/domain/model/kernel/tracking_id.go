package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// TrackingIDPrefix marks locally generated tracking numbers.
const TrackingIDPrefix = "TRK-"

// ErrTrackingIDIsNotConstructed is returned when a zero TrackingID reaches the domain.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"trackingId must be created via NewTrackingID or GenerateTrackingID")

// TrackingID is the opaque carrier reference attached to a positive courier allotment.
type TrackingID struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingID wraps a tracking number issued by a carrier.
func NewTrackingID(value string) (TrackingID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return TrackingID{}, errs.NewValueIsRequiredError("trackingId")
	}
	return TrackingID{value: value, guard: guard.NewConstructorGuard()}, nil
}

// GenerateTrackingID returns a collision-resistant local tracking number
// of the form "TRK-" followed by 32 upper-case hex digits.
func GenerateTrackingID() TrackingID {
	raw := strings.ReplaceAll(NewUUID().String(), "-", "")
	return TrackingID{value: TrackingIDPrefix + strings.ToUpper(raw), guard: guard.NewConstructorGuard()}
}

// String returns the tracking number.
func (t TrackingID) String() string {
	return t.value
}

// IsEqual compares tracking numbers by value.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

// Validate returns ErrTrackingIDIsNotConstructed for the zero value.
func (t TrackingID) Validate() error {
	return t.guard.Validate(ErrTrackingIDIsNotConstructed)
}
