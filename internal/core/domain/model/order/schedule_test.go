package order_test

import (
	"testing"
	"time"

	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule(t *testing.T) {
	t.Run("should accept date and time", func(t *testing.T) {
		s, err := order.NewSchedule("2025-03-09", "17:05")

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, "2025-03-09", s.Date())
		assert.Equal(t, "17:05", s.Time())
	})

	t.Run("should require both parts", func(t *testing.T) {
		_, err := order.NewSchedule("", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "scheduledDate")
		assert.Contains(t, err.Error(), "scheduledTime")
	})

	t.Run("should reject malformed parts", func(t *testing.T) {
		_, err := order.NewSchedule("09/03/2025", "5pm")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSchedule_IsDue(t *testing.T) {
	s, err := order.NewSchedule("2025-03-09", "17:05")
	require.NoError(t, err)

	t.Run("should resolve the slot in the given location", func(t *testing.T) {
		assert.Equal(t, time.Date(2025, 3, 9, 17, 5, 0, 0, time.UTC), s.At(time.UTC))
	})

	t.Run("should be due at and after the slot", func(t *testing.T) {
		assert.True(t, s.IsDue(time.Date(2025, 3, 9, 17, 5, 0, 0, time.UTC)))
		assert.True(t, s.IsDue(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("should not be due before the slot", func(t *testing.T) {
		assert.False(t, s.IsDue(time.Date(2025, 3, 9, 17, 4, 59, 0, time.UTC)))
	})
}
