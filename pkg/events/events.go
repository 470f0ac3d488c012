// Package events defines the Kafka topics and payloads exchanged by the hotel service.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TopicBookingEvents  = "hotel.booking.events"
	TopicPaymentEvents  = "hotel.payment.events"
	TopicStayEvents     = "hotel.stay.events"
	TopicStayDeadLetter = "hotel.stay.events.dlq"
)

const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"
	PaymentCompleted = "payment.completed"
	StayCheckedOut   = "stay.checked_out"
)

// BookingCreatedEvent is emitted when a pending booking is stored.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID       `json:"booking_id"`
	GuestID    uuid.UUID       `json:"guest_id"`
	RoomID     uuid.UUID       `json:"room_id"`
	CheckIn    string          `json:"check_in"`
	CheckOut   string          `json:"check_out"`
	Guests     int             `json:"guests"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// BookingStatusEvent is emitted when a booking is cancelled or completed.
type BookingStatusEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	Status     string    `json:"status"`
	ByStaff    bool      `json:"by_staff"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentCompletedEvent is emitted after a payment confirms its booking.
type PaymentCompletedEvent struct {
	PaymentID     uuid.UUID       `json:"payment_id"`
	BookingID     uuid.UUID       `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transaction_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// StayCheckedOutEvent is published by the front desk when a guest leaves.
type StayCheckedOutEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
