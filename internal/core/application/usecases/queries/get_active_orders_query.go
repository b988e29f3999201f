package queries

import (
	"context"
	"errors"

	"valet/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery lists orders that are neither delivered nor cancelled.
//
// Example:
//
//	handler := NewGetActiveOrdersQueryHandler(orderRepo)
//	views, err := handler.Handle(ctx, NewGetActiveOrdersQuery())
//	if err != nil {
//	    return fmt.Errorf("failed to list active orders: %w", err)
//	}
//	for _, v := range views {
//	    fmt.Printf("%s %s\n", v.ID, v.Status.Label())
//	}
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

type GetActiveOrdersQueryHandler struct {
	orders OrderReader
}

func NewGetActiveOrdersQueryHandler(orders OrderReader) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{orders: orders}
}

// Handle returns active orders sorted by id. The result is never nil.
func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active, err := h.orders.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(active))
	for _, o := range active {
		views = append(views, orderViewOf(o))
	}
	return views, nil
}
