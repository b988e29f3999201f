package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewOrder is the body of POST /orders.
type NewOrder struct {
	IsRoundTrip     bool   `json:"isRoundTrip"`
	ScheduledDate   string `json:"scheduledDate,omitempty"`
	ScheduledTime   string `json:"scheduledTime,omitempty"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	VehicleInfo     string `json:"vehicleInfo"`
	Notes           string `json:"notes,omitempty"`
}

// BookingResult is returned by POST /orders.
type BookingResult struct {
	OrderID       openapi_types.UUID `json:"orderId"`
	TransactionID openapi_types.UUID `json:"transactionId"`
	OrderNumber   string             `json:"orderNumber"`
	Status        string             `json:"status"`
	StatusLabel   string             `json:"statusLabel"`
	Warning       string             `json:"warning,omitempty"`
}

// Driver describes the driver assigned to an order.
type Driver struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Vehicle string     `json:"vehicle,omitempty"`
	Rating  *int       `json:"rating,omitempty"`
	Tip     *float64   `json:"tip,omitempty"`
	RatedAt *time.Time `json:"ratedAt,omitempty"`
}

// Order is the remote order as returned by the read endpoints.
type Order struct {
	ID              openapi_types.UUID `json:"id"`
	Status          string             `json:"status"`
	StatusLabel     string             `json:"statusLabel"`
	IsRoundTrip     bool               `json:"isRoundTrip"`
	ScheduledDate   string             `json:"scheduledDate,omitempty"`
	ScheduledTime   string             `json:"scheduledTime,omitempty"`
	PickupLocation  string             `json:"pickupLocation"`
	DropoffLocation string             `json:"dropoffLocation"`
	VehicleInfo     string             `json:"vehicleInfo"`
	Notes           string             `json:"notes,omitempty"`
	Driver          *Driver            `json:"driver,omitempty"`
}

// StatusChange is returned by the advance and cancel endpoints.
type StatusChange struct {
	OrderID       openapi_types.UUID  `json:"orderId"`
	From          string              `json:"from"`
	To            string              `json:"to"`
	Status        string              `json:"status"`
	StatusLabel   string              `json:"statusLabel"`
	Changed       bool                `json:"changed"`
	TransactionID *openapi_types.UUID `json:"transactionId,omitempty"`
	Warning       string              `json:"warning,omitempty"`
}

// NewDriver is the body of POST /orders/{orderId}/driver.
type NewDriver struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle,omitempty"`
}

// NewRating is the body of POST /orders/{orderId}/rating.
type NewRating struct {
	Rating int     `json:"rating"`
	Tip    float64 `json:"tip"`
}

// Transaction is a local mirror record.
type Transaction struct {
	ID            openapi_types.UUID  `json:"id"`
	OrderID       *openapi_types.UUID `json:"orderId,omitempty"`
	Status        string              `json:"status"`
	StatusLabel   string              `json:"statusLabel"`
	OrderNumber   string              `json:"orderNumber"`
	Vehicle       string              `json:"vehicle,omitempty"`
	Destination   string              `json:"destination,omitempty"`
	ScheduledDate string              `json:"scheduledDate,omitempty"`
	ScheduledTime string              `json:"scheduledTime,omitempty"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}
