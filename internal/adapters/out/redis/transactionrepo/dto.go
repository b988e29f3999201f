// Package transactionrepo stores the local transaction mirror in Redis.
//
// Each transaction is a JSON document under "transaction:<id>". The list
// "transactions" holds ids in insertion order and drives ListAll.
package transactionrepo

import (
	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/domain/model/transaction"
)

type transactionDTO struct {
	ID            string  `json:"id"`
	OrderID       *string `json:"order_id,omitempty"`
	Status        string  `json:"status"`
	OrderNumber   string  `json:"order_number"`
	Vehicle       string  `json:"vehicle"`
	Destination   string  `json:"destination"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`
	ScheduledTime *string `json:"scheduled_time,omitempty"`
}

func fromDomain(tx *transaction.Transaction) transactionDTO {
	s := tx.Snapshot()
	dto := transactionDTO{
		ID:          tx.ID().String(),
		Status:      tx.Status().String(),
		OrderNumber: s.OrderNumber,
		Vehicle:     s.Vehicle,
		Destination: s.Destination,
	}

	if id := tx.OrderID(); id != nil {
		orderID := id.String()
		dto.OrderID = &orderID
	}
	if s.Schedule != nil {
		date, clock := s.Schedule.Date(), s.Schedule.Time()
		dto.ScheduledDate, dto.ScheduledTime = &date, &clock
	}

	return dto
}

func toDomain(dto transactionDTO) (*transaction.Transaction, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		parsed, parseErr := kernel.UUIDFromString(*dto.OrderID)
		if parseErr != nil {
			return nil, parseErr
		}
		orderID = &parsed
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	snapshot := transaction.Snapshot{
		OrderNumber: dto.OrderNumber,
		Vehicle:     dto.Vehicle,
		Destination: dto.Destination,
	}
	if dto.ScheduledDate != nil && dto.ScheduledTime != nil {
		slot, slotErr := order.NewSchedule(*dto.ScheduledDate, *dto.ScheduledTime)
		if slotErr != nil {
			return nil, slotErr
		}
		snapshot.Schedule = &slot
	}

	return transaction.RestoreTransaction(id, orderID, status, snapshot)
}
