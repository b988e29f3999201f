package commands_test

import (
	"errors"
	"testing"

	"valet/internal/core/application/usecases/commands"
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler(t *testing.T) {
	t.Run("should book a scheduled order with its mirror", func(t *testing.T) {
		f := newStoresFixture()
		id := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(id, true, "2030-05-01", "10:15", testDetails())
		require.NoError(t, err)

		res, err := commands.NewCreateOrderCommandHandler(f.uowFactory, f.transactions).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, res.OrderID.IsEqual(id))
		assert.Equal(t, order.Scheduled, res.Status)
		assert.Regexp(t, `^VLT-[0-9A-F]{6}$`, res.OrderNumber)
		assert.Equal(t, order.Scheduled, f.remoteStatus(t, id))

		tx, err := f.transactions.Get(t.Context(), res.TransactionID)
		require.NoError(t, err)
		assert.True(t, tx.CorrelatesWith(id))
		assert.Equal(t, order.Scheduled, tx.Status())
		assert.Equal(t, "Tesla Model 3", tx.Snapshot().Vehicle)
		assert.Equal(t, "Downtown Garage", tx.Snapshot().Destination)
		require.NotNil(t, tx.Snapshot().Schedule)
		assert.Equal(t, "2030-05-01", tx.Snapshot().Schedule.Date())
	})

	t.Run("should start immediate bookings in FindingDriver", func(t *testing.T) {
		f := newStoresFixture()
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), false, "", "", testDetails())
		require.NoError(t, err)

		res, err := commands.NewCreateOrderCommandHandler(f.uowFactory, f.transactions).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.FindingDriver, res.Status)
		assert.Equal(t, order.FindingDriver, f.mirrorStatus(t, res.TransactionID))
	})

	t.Run("should not create a mirror when the remote write fails", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		factory := new(MockOrderUoWFactory)
		txRepo := new(MockTransactionRepository)

		factory.On("Create").Return(uow).Once()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("duplicate key")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), false, "", "", testDetails())
		require.NoError(t, err)

		_, err = commands.NewCreateOrderCommandHandler(factory, txRepo).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrRemoteWrite)
		txRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("should report a failed mirror write as LocalSyncError", func(t *testing.T) {
		f := newStoresFixture()
		txRepo := new(MockTransactionRepository)
		txRepo.On("Add", mock.Anything, mock.AnythingOfType("*transaction.Transaction")).
			Return(errors.New("quota exceeded")).Once()

		id := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(id, false, "", "", testDetails())
		require.NoError(t, err)

		res, err := commands.NewCreateOrderCommandHandler(f.uowFactory, txRepo).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrLocalSync)
		assert.True(t, res.OrderID.IsEqual(id))
		assert.Equal(t, order.FindingDriver, f.remoteStatus(t, id))
	})

	t.Run("should reject invalid details before writing", func(t *testing.T) {
		factory := new(MockOrderUoWFactory)
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), false, "", "", order.Details{})
		require.NoError(t, err)

		_, err = commands.NewCreateOrderCommandHandler(factory, new(MockTransactionRepository)).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("should reject unconstructed commands", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), new(MockTransactionRepository)).
			Handle(t.Context(), commands.CreateOrderCommand{})

		assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
