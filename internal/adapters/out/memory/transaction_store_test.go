package memory_test

import (
	"testing"

	"valet/internal/adapters/out/memory"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/domain/model/transaction"
	"valet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransaction(t *testing.T, orderID *kernel.UUID) *transaction.Transaction {
	t.Helper()
	tx, err := transaction.NewTransaction(kernel.NewUUID(), orderID, order.Scheduled, transaction.Snapshot{
		OrderNumber: "VLT-ABC123",
		Vehicle:     "Tesla Model 3",
		Destination: "Downtown Garage",
	})
	require.NoError(t, err)
	return tx
}

func TestTransactionStore(t *testing.T) {
	t.Run("should list in insertion order", func(t *testing.T) {
		ctx := t.Context()
		store := memory.NewTransactionStore()
		orderID := kernel.NewUUID()
		first := newTransaction(t, nil)
		second := newTransaction(t, &orderID)

		require.NoError(t, store.Add(ctx, first))
		require.NoError(t, store.Add(ctx, second))

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.True(t, all[0].ID().IsEqual(first.ID()))
		assert.True(t, all[1].CorrelatesWith(orderID))
	})

	t.Run("should overwrite status in place", func(t *testing.T) {
		ctx := t.Context()
		store := memory.NewTransactionStore()
		tx := newTransaction(t, nil)
		require.NoError(t, store.Add(ctx, tx))

		require.NoError(t, store.UpdateStatus(ctx, tx.ID(), order.DriverOnWay))
		require.NoError(t, store.UpdateStatus(ctx, tx.ID(), order.DriverOnWay))

		got, err := store.Get(ctx, tx.ID())
		require.NoError(t, err)
		assert.Equal(t, order.DriverOnWay, got.Status())
		assert.Equal(t, 1, store.Len())
	})

	t.Run("should keep the stored status when the new one is invalid", func(t *testing.T) {
		ctx := t.Context()
		store := memory.NewTransactionStore()
		orderID := kernel.NewUUID()
		tx := newTransaction(t, &orderID)
		require.NoError(t, store.Add(ctx, tx))

		err := store.UpdateStatus(ctx, tx.ID(), order.Status(42))

		require.ErrorIs(t, err, errs.ErrInvalidState)
		got, err := store.Get(ctx, tx.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Scheduled, got.Status())
		assert.True(t, got.CorrelatesWith(orderID))
		assert.Equal(t, tx.Snapshot(), got.Snapshot())
	})

	t.Run("should report unknown and duplicate transactions", func(t *testing.T) {
		ctx := t.Context()
		store := memory.NewTransactionStore()
		tx := newTransaction(t, nil)
		require.NoError(t, store.Add(ctx, tx))

		assert.ErrorIs(t, store.Add(ctx, tx), memory.ErrDuplicateTransaction)
		assert.ErrorIs(t, store.UpdateStatus(ctx, kernel.NewUUID(), order.Cancelled), errs.ErrObjectNotFound)
		_, err := store.Get(ctx, kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
