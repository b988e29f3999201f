package ports

import (
	"context"

	"valet/internal/core/domain/model/order"
)

// StatusChangeNotifier is told about every committed order status change.
// Implementations report their own failures; a failed notification never
// affects the status change itself.
type StatusChangeNotifier interface {
	Notify(ctx context.Context, event order.StatusChanged)
}
