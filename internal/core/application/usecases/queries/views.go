// Package queries contains the read side of the application. Handlers map
// aggregates into flat views for the HTTP layer and never write.
package queries

import (
	"context"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/domain/model/transaction"
)

// OrderReader is the read-only part of the remote order store.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}

// TransactionReader is the read-only part of the local transaction mirror.
type TransactionReader interface {
	ListAll(ctx context.Context) ([]*transaction.Transaction, error)
}

// DriverView is the assigned driver of an order.
type DriverView struct {
	Name    string
	Phone   string
	Vehicle string
	Rating  int
	Tip     float64
	RatedAt *time.Time
}

// OrderView is the flat form of an order.
type OrderView struct {
	ID              kernel.UUID
	Status          order.Status
	IsRoundTrip     bool
	ScheduledDate   string
	ScheduledTime   string
	PickupLocation  string
	DropoffLocation string
	VehicleInfo     string
	Notes           string
	Driver          *DriverView
}

// TransactionView is the flat form of a mirror record. OrderID is nil for
// purely local transactions.
type TransactionView struct {
	ID            kernel.UUID
	OrderID       *kernel.UUID
	Status        order.Status
	OrderNumber   string
	Vehicle       string
	Destination   string
	ScheduledDate string
	ScheduledTime string
}

func orderViewOf(o *order.Order) OrderView {
	d := o.Details()
	v := OrderView{
		ID:              o.ID(),
		Status:          o.Status(),
		IsRoundTrip:     o.IsRoundTrip(),
		PickupLocation:  d.PickupLocation,
		DropoffLocation: d.DropoffLocation,
		VehicleInfo:     d.VehicleInfo,
		Notes:           d.Notes,
	}
	if s := o.Schedule(); s != nil {
		v.ScheduledDate, v.ScheduledTime = s.Date(), s.Time()
	}
	if dr := o.Driver(); dr != nil {
		v.Driver = &DriverView{
			Name:    dr.Name(),
			Phone:   dr.Phone(),
			Vehicle: dr.Vehicle(),
			Rating:  dr.Rating(),
			Tip:     dr.Tip(),
			RatedAt: dr.RatedAt(),
		}
	}
	return v
}

func transactionViewOf(tx *transaction.Transaction) TransactionView {
	s := tx.Snapshot()
	v := TransactionView{
		ID:          tx.ID(),
		OrderID:     tx.OrderID(),
		Status:      tx.Status(),
		OrderNumber: s.OrderNumber,
		Vehicle:     s.Vehicle,
		Destination: s.Destination,
	}
	if s.Schedule != nil {
		v.ScheduledDate, v.ScheduledTime = s.Schedule.Date(), s.Schedule.Time()
	}
	return v
}
