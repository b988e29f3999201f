package order_test

import (
	"testing"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() order.Details {
	return order.Details{
		PickupLocation:  "12 Oak St",
		DropoffLocation: "Downtown Garage",
		VehicleInfo:     "Tesla Model 3, blue",
		Notes:           "keys with concierge",
	}
}

func newOrder(t *testing.T, roundTrip bool, schedule *order.Schedule) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), roundTrip, schedule, validDetails())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should start immediate bookings in FindingDriver", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, false, nil, validDetails())

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.FindingDriver, o.Status())
		assert.False(t, o.IsRoundTrip())
		assert.Nil(t, o.Schedule())
		assert.Nil(t, o.Driver())
		assert.Equal(t, validDetails(), o.Details())
		assert.Empty(t, o.Events())
	})

	t.Run("should start scheduled bookings in Scheduled", func(t *testing.T) {
		slot, err := order.NewSchedule("2030-01-15", "08:45")
		require.NoError(t, err)

		o, err := order.NewOrder(kernel.NewUUID(), true, &slot, validDetails())

		require.NoError(t, err)
		assert.Equal(t, order.Scheduled, o.Status())
		assert.True(t, o.IsRoundTrip())
		require.NotNil(t, o.Schedule())
		assert.Equal(t, "2030-01-15", o.Schedule().Date())
		assert.Equal(t, "08:45", o.Schedule().Time())
	})

	t.Run("should trim descriptive fields", func(t *testing.T) {
		d := validDetails()
		d.PickupLocation = "  12 Oak St  "

		o, err := order.NewOrder(kernel.NewUUID(), false, nil, d)

		require.NoError(t, err)
		assert.Equal(t, "12 Oak St", o.Details().PickupLocation)
	})

	t.Run("should join every validation failure", func(t *testing.T) {
		var id kernel.UUID

		o, err := order.NewOrder(id, false, nil, order.Details{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "pickupLocation")
		assert.Contains(t, err.Error(), "dropoffLocation")
		assert.Contains(t, err.Error(), "vehicleInfo")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a zero value schedule", func(t *testing.T) {
		var slot order.Schedule

		_, err := order.NewOrder(kernel.NewUUID(), false, &slot, validDetails())

		require.ErrorIs(t, err, order.ErrScheduleIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore persisted state", func(t *testing.T) {
		id := kernel.NewUUID()
		driver := order.RestoreDriver("Ana", "555", "Civic", 0, 0, nil)

		o, err := order.RestoreOrder(id, order.CarAtService, true, nil, validDetails(), &driver)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.CarAtService, o.Status())
		assert.Equal(t, "Ana", o.Driver().Name())
	})

	t.Run("should reject statuses outside the enumeration", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), order.Status(99), false, nil, validDetails(), nil)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject zero value and nil orders", func(t *testing.T) {
		var o order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())

		var nilOrder *order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
	})
}

func TestOrder_Advance(t *testing.T) {
	t.Run("should advance and record an event", func(t *testing.T) {
		o := newOrder(t, false, nil)

		tr, err := o.Advance()

		require.NoError(t, err)
		assert.True(t, tr.Changed())
		assert.Equal(t, order.FindingDriver, tr.From)
		assert.Equal(t, order.DriverOnWay, tr.To)
		assert.Equal(t, order.DriverOnWay, o.Status())

		events := o.Events()
		require.Len(t, events, 1)
		assert.True(t, events[0].OrderID.IsEqual(o.ID()))
		assert.Equal(t, order.FindingDriver, events[0].From)
		assert.Equal(t, order.DriverOnWay, events[0].To)
		assert.False(t, events[0].OccurredAt.IsZero())
	})

	t.Run("should be a no-op once delivered", func(t *testing.T) {
		o := newOrder(t, false, nil)
		for range 3 {
			_, err := o.Advance()
			require.NoError(t, err)
		}
		require.Equal(t, order.CarDelivered, o.Status())
		o.ClearEvents()

		tr, err := o.Advance()

		require.NoError(t, err)
		assert.False(t, tr.Changed())
		assert.Equal(t, order.CarDelivered, o.Status())
		assert.Empty(t, o.Events())
	})

	t.Run("should not change descriptive fields", func(t *testing.T) {
		o := newOrder(t, true, nil)

		_, err := o.Advance()

		require.NoError(t, err)
		assert.Equal(t, validDetails(), o.Details())
		assert.True(t, o.IsRoundTrip())
	})
}

func TestOrder_Activate(t *testing.T) {
	t.Run("should move a scheduled order to FindingDriver", func(t *testing.T) {
		slot, err := order.NewSchedule("2030-01-01", "09:00")
		require.NoError(t, err)
		o := newOrder(t, true, &slot)

		tr, err := o.Activate()

		require.NoError(t, err)
		assert.True(t, tr.Changed())
		assert.Equal(t, order.Scheduled, tr.From)
		assert.Equal(t, order.FindingDriver, o.Status())
		assert.Len(t, o.Events(), 1)
	})

	t.Run("should leave an already active order alone", func(t *testing.T) {
		o := newOrder(t, false, nil)

		tr, err := o.Activate()

		require.NoError(t, err)
		assert.False(t, tr.Changed())
		assert.Equal(t, order.FindingDriver, o.Status())
		assert.Empty(t, o.Events())
	})

	t.Run("should leave terminal orders alone", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), order.Cancelled, false, nil, validDetails(), nil)
		require.NoError(t, err)

		tr, err := o.Activate()

		require.NoError(t, err)
		assert.False(t, tr.Changed())
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel an active order", func(t *testing.T) {
		o := newOrder(t, false, nil)

		tr, err := o.Cancel()

		require.NoError(t, err)
		assert.True(t, tr.Changed())
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Len(t, o.Events(), 1)
	})

	t.Run("should be a no-op when already cancelled", func(t *testing.T) {
		o := newOrder(t, false, nil)
		_, err := o.Cancel()
		require.NoError(t, err)

		tr, err := o.Cancel()

		require.NoError(t, err)
		assert.False(t, tr.Changed())
		assert.Len(t, o.Events(), 1)
	})

	t.Run("should not cancel a delivered order", func(t *testing.T) {
		id := kernel.NewUUID()
		o, err := order.RestoreOrder(id, order.CarDelivered, false, nil, validDetails(), nil)
		require.NoError(t, err)

		tr, err := o.Cancel()

		require.NoError(t, err)
		assert.False(t, tr.Changed())
		assert.Equal(t, order.CarDelivered, o.Status())
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	driver, err := order.NewDriver("Marcus Lee", "+1 555 0100", "Honda Civic")
	require.NoError(t, err)

	t.Run("should assign a driver to an active order", func(t *testing.T) {
		o := newOrder(t, false, nil)

		require.NoError(t, o.AssignDriver(driver))

		require.NotNil(t, o.Driver())
		assert.Equal(t, "Marcus Lee", o.Driver().Name())
		assert.False(t, o.Driver().IsRated())
	})

	t.Run("should reject terminal orders", func(t *testing.T) {
		o := newOrder(t, false, nil)
		_, err := o.Cancel()
		require.NoError(t, err)

		err = o.AssignDriver(driver)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "CANCELLED is not a valid status to assign a driver")
	})

	t.Run("should reject a zero value driver", func(t *testing.T) {
		o := newOrder(t, false, nil)

		err := o.AssignDriver(order.Driver{})

		assert.ErrorIs(t, err, order.ErrDriverIsNotConstructed)
	})
}

func TestOrder_Rate(t *testing.T) {
	ratedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	delivered := func(t *testing.T, withDriver bool) *order.Order {
		t.Helper()
		var driver *order.Driver
		if withDriver {
			d := order.RestoreDriver("Ana", "555", "Civic", 0, 0, nil)
			driver = &d
		}
		o, err := order.RestoreOrder(kernel.NewUUID(), order.CarDelivered, false, nil, validDetails(), driver)
		require.NoError(t, err)
		return o
	}

	t.Run("should store rating and tip", func(t *testing.T) {
		o := delivered(t, true)

		require.NoError(t, o.Rate(5, 7.5, ratedAt))

		assert.Equal(t, 5, o.Driver().Rating())
		assert.InDelta(t, 7.5, o.Driver().Tip(), 0.001)
		require.NotNil(t, o.Driver().RatedAt())
		assert.Equal(t, ratedAt, *o.Driver().RatedAt())
	})

	t.Run("should reject a second rating", func(t *testing.T) {
		o := delivered(t, true)
		require.NoError(t, o.Rate(4, 0, ratedAt))

		err := o.Rate(5, 0, ratedAt)

		assert.ErrorIs(t, err, order.ErrAlreadyRated)
		assert.Equal(t, 4, o.Driver().Rating())
	})

	t.Run("should reject out of range ratings and negative tips", func(t *testing.T) {
		o := delivered(t, true)

		err := o.Rate(6, -1, ratedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, o.Driver().IsRated())
	})

	t.Run("should reject orders without a driver", func(t *testing.T) {
		o := delivered(t, false)

		assert.ErrorIs(t, o.Rate(5, 0, ratedAt), errs.ErrValueIsRequired)
	})

	t.Run("should reject orders not yet delivered", func(t *testing.T) {
		o := newOrder(t, false, nil)

		err := o.Rate(5, 0, ratedAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "FINDING_DRIVER is not a valid status to rate")
	})
}
