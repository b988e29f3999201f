package order

import (
	"fmt"

	"valet/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Forward transitions depend on the trip type:
//
//	one-way:    Scheduled ─> FindingDriver ─> DriverOnWay ─> CarInTransit ─────────────────────> CarDelivered
//	round-trip: Scheduled ─> FindingDriver ─> DriverOnWay ─> CarAtService ─> DriverReturning ─> CarDelivered
//
// Cancelled is reachable from every non-terminal status through Cancel and is
// never produced by Next. CarDelivered and Cancelled are terminal.
//
// The wire code returned by String ("DRIVER_ON_WAY") is the persisted form and
// is stable. Label is for display only and must never be parsed back.
type Status int

const (
	// Unknown is the zero value. It is never a valid persisted status.
	Unknown Status = iota

	// Scheduled orders were booked for a future pickup time.
	Scheduled

	// FindingDriver orders are waiting for a driver to accept.
	FindingDriver

	// DriverOnWay means a driver is heading to the pickup location.
	DriverOnWay

	// CarInTransit is the one-way branch: the car is driven to its destination.
	CarInTransit

	// CarAtService is the round-trip branch: the car is at the service location.
	CarAtService

	// DriverReturning is the round-trip leg back to the owner.
	DriverReturning

	// CarDelivered is terminal.
	CarDelivered

	// Cancelled is terminal and sits outside the progress ordering.
	Cancelled
)

var statusCodes = map[Status]string{
	Scheduled:       "SCHEDULED",
	FindingDriver:   "FINDING_DRIVER",
	DriverOnWay:     "DRIVER_ON_WAY",
	CarInTransit:    "CAR_IN_TRANSIT",
	CarAtService:    "CAR_AT_SERVICE",
	DriverReturning: "DRIVER_RETURNING",
	CarDelivered:    "CAR_DELIVERED",
	Cancelled:       "CANCELLED",
}

var statusLabels = map[Status]string{
	Scheduled:       "Scheduled",
	FindingDriver:   "Finding Driver",
	DriverOnWay:     "Driver On The Way",
	CarInTransit:    "Car In Transit",
	CarAtService:    "Car At Service",
	DriverReturning: "Driver Returning",
	CarDelivered:    "Car Delivered",
	Cancelled:       "Cancelled",
}

var (
	oneWayTransitions = map[Status]Status{
		Scheduled:     FindingDriver,
		FindingDriver: DriverOnWay,
		DriverOnWay:   CarInTransit,
		CarInTransit:  CarDelivered,
	}

	roundTripTransitions = map[Status]Status{
		Scheduled:       FindingDriver,
		FindingDriver:   DriverOnWay,
		DriverOnWay:     CarAtService,
		CarAtService:    DriverReturning,
		DriverReturning: CarDelivered,
	}
)

// progress ranks statuses along the happy path. The two branch statuses
// share a rank, so a one-way order in CarInTransit is as far along as a
// round-trip order in CarAtService. Cancelled has no rank.
var progress = map[Status]int{
	Scheduled:       1,
	FindingDriver:   2,
	DriverOnWay:     3,
	CarInTransit:    4,
	CarAtService:    4,
	DriverReturning: 5,
	CarDelivered:    6,
}

// ParseStatus converts a wire code into a Status.
// Unknown codes yield an InvalidStateError; they are never mapped to a default.
//
// Example:
//
//	s, err := order.ParseStatus("CAR_AT_SERVICE")
//	// s == order.CarAtService
func ParseStatus(code string) (Status, error) {
	for s, c := range statusCodes {
		if c == code {
			return s, nil
		}
	}
	return Unknown, errs.NewInvalidStateError("order status", code)
}

// AllStatuses returns every valid status in ordinal order.
func AllStatuses() []Status {
	return []Status{
		Scheduled, FindingDriver, DriverOnWay, CarInTransit,
		CarAtService, DriverReturning, CarDelivered, Cancelled,
	}
}

// Validate returns an InvalidStateError for values outside the enumeration.
func (s Status) Validate() error {
	if _, ok := statusCodes[s]; !ok {
		return errs.NewInvalidStateError("order status", int(s))
	}
	return nil
}

// String returns the wire code, or "UNKNOWN" for values outside the enumeration.
func (s Status) String() string {
	if code, ok := statusCodes[s]; ok {
		return code
	}
	return "UNKNOWN"
}

// Label returns the human-readable name shown to riders and admins.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == CarDelivered || s == Cancelled
}

// AtLeast reports whether s is at or beyond other along the happy path.
// It is false whenever either side is Cancelled or not a valid status, so
// callers need not special-case cancellation before comparing.
//
// Example:
//
//	if o.Status().AtLeast(order.DriverOnWay) {
//	    // show driver details
//	}
func (s Status) AtLeast(other Status) bool {
	a, okA := progress[s]
	b, okB := progress[other]
	return okA && okB && a >= b
}

// Next returns the status that follows s for the given trip type.
//
// Returns:
//   - (next, true, nil) when a forward transition exists
//   - (s, false, nil) when s is terminal; callers treat this as a no-op
//   - (Unknown, false, InvalidStateError) when s is not a valid status, or
//     when s belongs only to the other trip type's path
func (s Status) Next(roundTrip bool) (Status, bool, error) {
	if err := s.Validate(); err != nil {
		return Unknown, false, err
	}
	if s.IsTerminal() {
		return s, false, nil
	}

	table := oneWayTransitions
	if roundTrip {
		table = roundTripTransitions
	}

	next, ok := table[s]
	if !ok {
		return Unknown, false, errs.NewInvalidStateError(tripType(roundTrip)+" order status", s.String())
	}
	return next, true, nil
}

// Cancel returns Cancelled for any non-terminal status.
// Terminal statuses are returned unchanged with changed == false.
func (s Status) Cancel() (Status, bool, error) {
	if err := s.Validate(); err != nil {
		return Unknown, false, err
	}
	if s.IsTerminal() {
		return s, false, nil
	}
	return Cancelled, true, nil
}

// ValidateCanHaveDriver checks that a driver may be attached in status s.
func (s Status) ValidateCanHaveDriver() error {
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign a driver", s),
		)
	}
	return s.Validate()
}

// ValidateRate checks that an order in status s may be rated.
func (s Status) ValidateRate() error {
	if s != CarDelivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to rate", s),
		)
	}
	return nil
}

func tripType(roundTrip bool) string {
	if roundTrip {
		return "round-trip"
	}
	return "one-way"
}
