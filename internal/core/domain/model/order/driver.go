package order

import (
	"errors"
	"strings"
	"time"

	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ErrDriverIsNotConstructed is returned when a Driver bypassed NewDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver")

// ErrAlreadyRated is returned when a delivered order is rated a second time.
var ErrAlreadyRated = errs.NewValueIsInvalidErrorWithCause("rating", errors.New("order has already been rated"))

// Driver describes the driver assigned to an order and, once the order is
// delivered, the rider's rating of the trip.
type Driver struct {
	name    string
	phone   string
	vehicle string

	rating  int
	tip     float64
	ratedAt *time.Time

	guard guard.ConstructorGuard
}

// NewDriver validates and returns an unrated driver.
//
// Example:
//
//	d, err := order.NewDriver("Marcus Lee", "+1 555 0100", "Honda Civic, 7KLM123")
func NewDriver(name, phone, vehicle string) (Driver, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	vehicle = strings.TrimSpace(vehicle)

	var err error
	if name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("driver name"))
	}
	if phone == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("driver phone"))
	}
	if err != nil {
		return Driver{}, err
	}

	return Driver{name: name, phone: phone, vehicle: vehicle, guard: guard.NewConstructorGuard()}, nil
}

// RestoreDriver rebuilds a driver from persistence without re-running rules.
func RestoreDriver(name, phone, vehicle string, rating int, tip float64, ratedAt *time.Time) Driver {
	return Driver{
		name:    name,
		phone:   phone,
		vehicle: vehicle,
		rating:  rating,
		tip:     tip,
		ratedAt: ratedAt,
		guard:   guard.NewConstructorGuard(),
	}
}

func (d Driver) Name() string        { return d.name }
func (d Driver) Phone() string       { return d.phone }
func (d Driver) Vehicle() string     { return d.vehicle }
func (d Driver) Rating() int         { return d.rating }
func (d Driver) Tip() float64        { return d.tip }
func (d Driver) RatedAt() *time.Time { return d.ratedAt }

// IsRated reports whether the trip has been rated.
func (d Driver) IsRated() bool {
	return d.ratedAt != nil
}

// Validate reports whether d came from NewDriver or RestoreDriver.
func (d Driver) Validate() error {
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d Driver) rated(rating int, tip float64, at time.Time) (Driver, error) {
	if d.IsRated() {
		return d, ErrAlreadyRated
	}

	var err error
	if rating < MinRating || rating > MaxRating {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating))
	}
	if tip < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("tip", errors.New("must not be negative")))
	}
	if err != nil {
		return d, err
	}

	d.rating = rating
	d.tip = tip
	d.ratedAt = &at
	return d, nil
}
