package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grandstay/service-hotel/pkg/domain"
)

// Status represents the state of a payment record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

// Payment is the aggregate root for the single payment recorded against a booking.
type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	amount        decimal.Decimal
	method        Method
	status        Status
	transactionID string
	paidAt        *time.Time
	createdAt     time.Time
}

// NewPayment creates a pending payment for bookingID.
func NewPayment(bookingID uuid.UUID, amount decimal.Decimal, method Method, now time.Time) *Payment {
	return &Payment{
		id:        uuid.New(),
		bookingID: bookingID,
		amount:    amount,
		method:    method,
		status:    StatusPending,
		createdAt: now.UTC(),
	}
}

func (p *Payment) ID() uuid.UUID           { return p.id }
func (p *Payment) BookingID() uuid.UUID    { return p.bookingID }
func (p *Payment) Amount() decimal.Decimal { return p.amount }
func (p *Payment) Method() Method          { return p.method }
func (p *Payment) Status() Status          { return p.status }
func (p *Payment) TransactionID() string   { return p.transactionID }
func (p *Payment) PaidAt() *time.Time      { return p.paidAt }
func (p *Payment) CreatedAt() time.Time    { return p.createdAt }

// Complete records the gateway transaction id on a pending payment.
func (p *Payment) Complete(transactionID string, now time.Time) error {
	if p.status != StatusPending {
		return domain.NewInvalidStateError(string(p.status), string(StatusCompleted))
	}
	paidAt := now.UTC()
	p.status = StatusCompleted
	p.transactionID = transactionID
	p.paidAt = &paidAt
	return nil
}

// Reconstitute rebuilds a Payment from persisted data.
func Reconstitute(
	id, bookingID uuid.UUID,
	amount decimal.Decimal,
	method Method,
	status Status,
	transactionID string,
	paidAt *time.Time,
	createdAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		amount:        amount,
		method:        method,
		status:        status,
		transactionID: transactionID,
		paidAt:        paidAt,
		createdAt:     createdAt,
	}
}
