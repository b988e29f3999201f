package queries

import (
	"context"
	"errors"

	"valet/internal/pkg/guard"
)

var ErrGetTransactionsQueryIsNotConstructed = errors.New(
	"GetTransactionsQuery must be created via NewGetTransactionsQuery constructor",
)

// GetTransactionsQuery lists the whole local transaction mirror.
type GetTransactionsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetTransactionsQuery() GetTransactionsQuery {
	return GetTransactionsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrGetTransactionsQueryIsNotConstructed)
}

type GetTransactionsQueryHandler struct {
	transactions TransactionReader
}

func NewGetTransactionsQueryHandler(transactions TransactionReader) GetTransactionsQueryHandler {
	return GetTransactionsQueryHandler{transactions: transactions}
}

func (h GetTransactionsQueryHandler) Handle(ctx context.Context, query GetTransactionsQuery) ([]TransactionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.transactions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, 0, len(all))
	for _, tx := range all {
		views = append(views, transactionViewOf(tx))
	}
	return views, nil
}
