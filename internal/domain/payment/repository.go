package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines the persistence contract for Payment aggregates.
type PaymentRepository interface {
	// FindByBookingID retrieves the payment recorded for a booking.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)

	// ExistsForBooking reports whether a payment has been recorded for a booking.
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)

	// TotalRevenue sums the amounts of completed payments.
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)

	// Save persists a new payment. A second payment for the same booking fails with ErrAlreadyPaid.
	Save(ctx context.Context, payment *Payment) error
}
