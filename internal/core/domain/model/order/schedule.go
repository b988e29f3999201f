package order

import (
	"errors"
	"fmt"
	"time"

	"valet/internal/pkg/errs"
	"valet/internal/pkg/guard"
)

const (
	// ScheduleDateLayout is the accepted layout of a scheduled pickup date.
	ScheduleDateLayout = "2006-01-02"
	// ScheduleTimeLayout is the accepted layout of a scheduled pickup time.
	ScheduleTimeLayout = "15:04"
)

// ErrScheduleIsNotConstructed is returned when a Schedule bypassed NewSchedule.
var ErrScheduleIsNotConstructed = errors.New("Schedule must be created via NewSchedule")

// Schedule is the requested pickup slot of a booking made in advance.
// Date and time are kept in the textual form the rider entered.
type Schedule struct {
	date  string
	time  string
	guard guard.ConstructorGuard
}

// NewSchedule validates date ("2006-01-02") and time ("15:04").
func NewSchedule(date, clock string) (Schedule, error) {
	if err := errors.Join(
		validateLayout("scheduledDate", date, ScheduleDateLayout),
		validateLayout("scheduledTime", clock, ScheduleTimeLayout),
	); err != nil {
		return Schedule{}, err
	}

	return Schedule{date: date, time: clock, guard: guard.NewConstructorGuard()}, nil
}

func (s Schedule) Date() string {
	return s.date
}

func (s Schedule) Time() string {
	return s.time
}

// Validate reports whether s came from NewSchedule.
func (s Schedule) Validate() error {
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

// At returns the pickup instant in loc.
func (s Schedule) At(loc *time.Location) time.Time {
	// Both parts were validated by NewSchedule.
	at, _ := time.ParseInLocation(ScheduleDateLayout+" "+ScheduleTimeLayout, s.date+" "+s.time, loc)
	return at
}

// IsDue reports whether the pickup slot has been reached at now.
func (s Schedule) IsDue(now time.Time) bool {
	return !s.At(now.Location()).After(now)
}

func validateLayout(param, value, layout string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	if _, err := time.Parse(layout, value); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q does not match %s", value, layout))
	}
	return nil
}
