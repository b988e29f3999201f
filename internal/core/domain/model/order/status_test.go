package order_test

import (
	"fmt"
	"testing"

	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should keep happy path ordinals increasing", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Less(t, order.Scheduled, order.FindingDriver)
		assert.Less(t, order.FindingDriver, order.DriverOnWay)
		assert.Less(t, order.DriverOnWay, order.CarInTransit)
		assert.Less(t, order.CarAtService, order.DriverReturning)
		assert.Less(t, order.DriverReturning, order.CarDelivered)
	})

	t.Run("should list every valid status once", func(t *testing.T) {
		all := order.AllStatuses()

		assert.Len(t, all, 8)
		seen := map[order.Status]bool{}
		for _, s := range all {
			assert.False(t, seen[s], "duplicate %s", s)
			seen[s] = true
			require.NoError(t, s.Validate())
		}
	})
}

func TestStatus_Codes(t *testing.T) {
	codes := map[order.Status]string{
		order.Scheduled:       "SCHEDULED",
		order.FindingDriver:   "FINDING_DRIVER",
		order.DriverOnWay:     "DRIVER_ON_WAY",
		order.CarInTransit:    "CAR_IN_TRANSIT",
		order.CarAtService:    "CAR_AT_SERVICE",
		order.DriverReturning: "DRIVER_RETURNING",
		order.CarDelivered:    "CAR_DELIVERED",
		order.Cancelled:       "CANCELLED",
	}

	for status, code := range codes {
		t.Run(fmt.Sprintf("should round trip %s", code), func(t *testing.T) {
			assert.Equal(t, code, status.String())

			parsed, err := order.ParseStatus(code)
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		})
	}

	t.Run("should not parse display labels", func(t *testing.T) {
		_, err := order.ParseStatus(order.DriverOnWay.Label())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should reject unknown codes", func(t *testing.T) {
		s, err := order.ParseStatus("PARKED")

		require.Error(t, err)
		assert.Equal(t, order.Unknown, s)
		assert.IsType(t, &errs.InvalidStateError{}, err)
		assert.Contains(t, err.Error(), "PARKED")
	})

	t.Run("should render unknown values safely", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", order.Status(42).String())
		assert.Equal(t, "Unknown", order.Status(42).Label())
	})

	t.Run("should expose display labels", func(t *testing.T) {
		assert.Equal(t, "Driver On The Way", order.DriverOnWay.Label())
		assert.Equal(t, "Car At Service", order.CarAtService.Label())
	})
}

func TestStatus_Validate(t *testing.T) {
	invalid := []order.Status{order.Unknown, order.Status(-1), order.Status(9), order.Status(100)}

	for _, s := range invalid {
		t.Run(fmt.Sprintf("should reject status value %d", int(s)), func(t *testing.T) {
			err := s.Validate()

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidState)
		})
	}
}

func TestStatus_Next(t *testing.T) {
	t.Run("should walk the one-way path", func(t *testing.T) {
		expected := []order.Status{
			order.FindingDriver, order.DriverOnWay, order.CarInTransit, order.CarDelivered,
		}

		current := order.Scheduled
		for _, want := range expected {
			next, ok, err := current.Next(false)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, next)
			current = next
		}

		next, ok, err := current.Next(false)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, order.CarDelivered, next)
	})

	t.Run("should walk the round-trip path", func(t *testing.T) {
		expected := []order.Status{
			order.FindingDriver, order.DriverOnWay, order.CarAtService, order.DriverReturning, order.CarDelivered,
		}

		current := order.Scheduled
		for _, want := range expected {
			next, ok, err := current.Next(true)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, next)
			current = next
		}

		_, ok, err := current.Next(true)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should never produce Cancelled", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			for _, roundTrip := range []bool{false, true} {
				next, _, err := s.Next(roundTrip)
				if err != nil {
					continue
				}
				if s != order.Cancelled {
					assert.NotEqual(t, order.Cancelled, next, "from %s", s)
				}
			}
		}
	})

	t.Run("should treat Cancelled as terminal", func(t *testing.T) {
		next, ok, err := order.Cancelled.Next(true)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, order.Cancelled, next)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, ok, err := order.Status(77).Next(false)

		require.Error(t, err)
		assert.False(t, ok)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should reject a status from the other trip type", func(t *testing.T) {
		_, _, err := order.CarAtService.Next(false)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "one-way")

		_, _, err = order.CarInTransit.Next(true)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "round-trip")
	})
}

func TestStatus_Cancel(t *testing.T) {
	nonTerminal := []order.Status{
		order.Scheduled, order.FindingDriver, order.DriverOnWay,
		order.CarInTransit, order.CarAtService, order.DriverReturning,
	}

	for _, s := range nonTerminal {
		t.Run(fmt.Sprintf("should cancel from %s", s), func(t *testing.T) {
			next, ok, err := s.Cancel()

			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, order.Cancelled, next)
		})
	}

	for _, s := range []order.Status{order.CarDelivered, order.Cancelled} {
		t.Run(fmt.Sprintf("should be a no-op from %s", s), func(t *testing.T) {
			next, ok, err := s.Cancel()

			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, s, next)
		})
	}

	t.Run("should reject unknown status", func(t *testing.T) {
		_, _, err := order.Unknown.Cancel()
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestStatus_AtLeast(t *testing.T) {
	t.Run("should compare along the happy path", func(t *testing.T) {
		assert.True(t, order.DriverOnWay.AtLeast(order.FindingDriver))
		assert.True(t, order.DriverOnWay.AtLeast(order.DriverOnWay))
		assert.False(t, order.FindingDriver.AtLeast(order.DriverOnWay))
		assert.True(t, order.CarDelivered.AtLeast(order.Scheduled))
	})

	t.Run("should rank both branch statuses equally", func(t *testing.T) {
		assert.True(t, order.CarInTransit.AtLeast(order.CarAtService))
		assert.True(t, order.CarAtService.AtLeast(order.CarInTransit))
		assert.False(t, order.CarInTransit.AtLeast(order.DriverReturning))
	})

	t.Run("should be false whenever Cancelled is involved", func(t *testing.T) {
		assert.False(t, order.Cancelled.AtLeast(order.Scheduled))
		assert.False(t, order.CarDelivered.AtLeast(order.Cancelled))
		assert.False(t, order.Cancelled.AtLeast(order.Cancelled))
	})

	t.Run("should be false for unknown values", func(t *testing.T) {
		assert.False(t, order.Unknown.AtLeast(order.Scheduled))
		assert.False(t, order.Scheduled.AtLeast(order.Status(99)))
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range order.AllStatuses() {
		expected := s == order.CarDelivered || s == order.Cancelled
		assert.Equal(t, expected, s.IsTerminal(), s.String())
	}
}
