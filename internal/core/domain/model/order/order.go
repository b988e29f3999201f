package order

import (
	"errors"
	"strings"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order bypassed NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// ErrNoDriverAssigned is returned when rating an order that never had a driver.
var ErrNoDriverAssigned = errs.NewValueIsRequiredError("driver")

// Order is the authoritative record of a pickup, delivery or service request.
//
// Order follows these invariants:
//   - the identifier and trip type are fixed at creation
//   - status only moves forward along the table selected by the trip type,
//     or to Cancelled from a non-terminal status
//   - descriptive fields are never changed by status transitions
//   - a rating is recorded at most once, only after delivery
type Order struct {
	id        kernel.UUID
	status    Status
	roundTrip bool
	schedule  *Schedule

	pickupLocation  string
	dropoffLocation string
	vehicleInfo     string
	notes           string

	driver *Driver

	events        []StatusChanged
	isConstructed bool
}

// Details holds the descriptive booking fields of an order.
type Details struct {
	PickupLocation  string
	DropoffLocation string
	VehicleInfo     string
	Notes           string
}

// NewOrder books a new order. With a schedule it starts in Scheduled,
// otherwise it enters the active flow at FindingDriver.
//
// Parameters:
//   - id: order identifier
//   - roundTrip: true for full-service orders that return the car to its owner
//   - schedule: requested pickup slot, nil for an immediate booking
//   - details: pickup, dropoff, vehicle and free-form notes
//
// Example:
//
//	slot, _ := order.NewSchedule("2025-06-01", "09:30")
//	o, err := order.NewOrder(kernel.NewUUID(), false, &slot, order.Details{
//	    PickupLocation:  "12 Oak St",
//	    DropoffLocation: "Downtown Garage",
//	    VehicleInfo:     "Tesla Model 3",
//	})
func NewOrder(id kernel.UUID, roundTrip bool, schedule *Schedule, details Details) (*Order, error) {
	o := &Order{
		status:        FindingDriver,
		roundTrip:     roundTrip,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSchedule(schedule),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from storage. The status must belong
// to the enumeration; anything else is reported as an InvalidStateError.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	roundTrip bool,
	schedule *Schedule,
	details Details,
	driver *Driver,
) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		status:          status,
		roundTrip:       roundTrip,
		schedule:        schedule,
		pickupLocation:  details.PickupLocation,
		dropoffLocation: details.DropoffLocation,
		vehicleInfo:     details.VehicleInfo,
		notes:           details.Notes,
		driver:          driver,
		isConstructed:   true,
	}, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID     { return o.id }
func (o *Order) Status() Status      { return o.status }
func (o *Order) IsRoundTrip() bool   { return o.roundTrip }
func (o *Order) Schedule() *Schedule { return o.schedule }
func (o *Order) Driver() *Driver     { return o.driver }
func (o *Order) Details() Details {
	return Details{
		PickupLocation:  o.pickupLocation,
		DropoffLocation: o.dropoffLocation,
		VehicleInfo:     o.vehicleInfo,
		Notes:           o.notes,
	}
}

// Advance moves the order to the next status of its trip type.
// A terminal order is left untouched and the returned transition reports
// no change.
func (o *Order) Advance() (Transition, error) {
	next, ok, err := o.status.Next(o.roundTrip)
	if err != nil {
		return Transition{}, err
	}
	if !ok {
		return Transition{From: o.status, To: o.status}, nil
	}
	return o.moveTo(next), nil
}

// Activate moves a Scheduled order into the active flow. An order in any
// other status is left untouched and the returned transition reports no change.
func (o *Order) Activate() (Transition, error) {
	if err := o.status.Validate(); err != nil {
		return Transition{}, err
	}
	if o.status != Scheduled {
		return Transition{From: o.status, To: o.status}, nil
	}
	return o.Advance()
}

// Cancel moves a non-terminal order to Cancelled. Delivered and already
// cancelled orders are left untouched.
func (o *Order) Cancel() (Transition, error) {
	next, ok, err := o.status.Cancel()
	if err != nil {
		return Transition{}, err
	}
	if !ok {
		return Transition{From: o.status, To: o.status}, nil
	}
	return o.moveTo(next), nil
}

// AssignDriver attaches a driver. Reassignment is allowed until the order
// reaches a terminal status.
func (o *Order) AssignDriver(driver Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateCanHaveDriver(); err != nil {
		return err
	}
	o.driver = &driver
	return nil
}

// Rate records the rider's rating and tip for a delivered order.
func (o *Order) Rate(rating int, tip float64, at time.Time) error {
	if err := o.status.ValidateRate(); err != nil {
		return err
	}
	if o.driver == nil {
		return ErrNoDriverAssigned
	}

	rated, err := o.driver.rated(rating, tip, at)
	if err != nil {
		return err
	}
	o.driver = &rated
	return nil
}

// Events returns the status changes recorded since the last ClearEvents.
func (o *Order) Events() []StatusChanged {
	return append([]StatusChanged(nil), o.events...)
}

// ClearEvents drops recorded status changes once they have been dispatched.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) moveTo(next Status) Transition {
	t := Transition{From: o.status, To: next}
	o.status = next
	o.events = append(o.events, StatusChanged{
		OrderID:    o.id,
		From:       t.From,
		To:         t.To,
		OccurredAt: time.Now().UTC(),
	})
	return t
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSchedule(schedule *Schedule) error {
	if schedule == nil {
		return nil
	}
	if err := schedule.Validate(); err != nil {
		return err
	}
	s := *schedule
	o.schedule = &s
	o.status = Scheduled
	return nil
}

func (o *Order) setDetails(d Details) error {
	var err error
	if strings.TrimSpace(d.PickupLocation) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("pickupLocation"))
	}
	if strings.TrimSpace(d.DropoffLocation) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("dropoffLocation"))
	}
	if strings.TrimSpace(d.VehicleInfo) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("vehicleInfo"))
	}
	if err != nil {
		return err
	}

	o.pickupLocation = strings.TrimSpace(d.PickupLocation)
	o.dropoffLocation = strings.TrimSpace(d.DropoffLocation)
	o.vehicleInfo = strings.TrimSpace(d.VehicleInfo)
	o.notes = strings.TrimSpace(d.Notes)
	return nil
}
