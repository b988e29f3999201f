package order

import (
	"time"

	"valet/internal/core/domain/model/kernel"
)

// StatusChanged is raised by Order whenever its status actually changes.
type StatusChanged struct {
	OrderID    kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
}

// Transition is the outcome of Advance or Cancel. From equals To when the
// order was already terminal and nothing was written.
type Transition struct {
	From Status
	To   Status
}

// Changed reports whether the transition moved the order.
func (t Transition) Changed() bool {
	return t.From != t.To
}
