// Package orderrepo persists order aggregates in PostgreSQL through GORM.
package orderrepo

import (
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table. Status is stored as its
// wire code so the persisted value never depends on enum ordinals.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status          string    `gorm:"type:varchar(32);not null;index"`
	IsRoundTrip     bool      `gorm:"not null"`
	ScheduledDate   *string   `gorm:"type:varchar(10)"`
	ScheduledTime   *string   `gorm:"type:varchar(5)"`
	PickupLocation  string    `gorm:"not null"`
	DropoffLocation string    `gorm:"not null"`
	VehicleInfo     string    `gorm:"not null"`
	Notes           string
	Driver          DriverDTO `gorm:"embedded;embeddedPrefix:driver_"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// DriverDTO holds the embedded driver columns. Name is nil while no driver
// is assigned.
type DriverDTO struct {
	Name    *string
	Phone   *string
	Vehicle *string
	Rating  *int
	Tip     *float64
	RatedAt *time.Time
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	dto := OrderDTO{
		ID:              dbID(o.ID()),
		Status:          o.Status().String(),
		IsRoundTrip:     o.IsRoundTrip(),
		PickupLocation:  d.PickupLocation,
		DropoffLocation: d.DropoffLocation,
		VehicleInfo:     d.VehicleInfo,
		Notes:           d.Notes,
	}

	if s := o.Schedule(); s != nil {
		date, clock := s.Date(), s.Time()
		dto.ScheduledDate, dto.ScheduledTime = &date, &clock
	}

	if dr := o.Driver(); dr != nil {
		name, phone, vehicle := dr.Name(), dr.Phone(), dr.Vehicle()
		dto.Driver = DriverDTO{Name: &name, Phone: &phone, Vehicle: &vehicle}
		if dr.IsRated() {
			rating, tip := dr.Rating(), dr.Tip()
			dto.Driver.Rating, dto.Driver.Tip, dto.Driver.RatedAt = &rating, &tip, dr.RatedAt()
		}
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var schedule *order.Schedule
	if dto.ScheduledDate != nil && dto.ScheduledTime != nil {
		slot, slotErr := order.NewSchedule(*dto.ScheduledDate, *dto.ScheduledTime)
		if slotErr != nil {
			return nil, slotErr
		}
		schedule = &slot
	}

	return order.RestoreOrder(id, status, dto.IsRoundTrip, schedule, order.Details{
		PickupLocation:  dto.PickupLocation,
		DropoffLocation: dto.DropoffLocation,
		VehicleInfo:     dto.VehicleInfo,
		Notes:           dto.Notes,
	}, driverToDomain(dto.Driver))
}

func driverToDomain(dto DriverDTO) *order.Driver {
	if dto.Name == nil {
		return nil
	}

	var rating int
	var tip float64
	if dto.Rating != nil {
		rating = *dto.Rating
	}
	if dto.Tip != nil {
		tip = *dto.Tip
	}

	d := order.RestoreDriver(*dto.Name, deref(dto.Phone), deref(dto.Vehicle), rating, tip, dto.RatedAt)
	return &d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dbID(id kernel.UUID) uuid.UUID {
	return uuid.MustParse(id.String())
}
