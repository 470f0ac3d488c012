package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grandstay/service-hotel/internal/domain/payment"
	"github.com/grandstay/service-hotel/pkg/domain"
)

// PaymentRepository implements payment.PaymentRepository.
type PaymentRepository struct {
	store *Store
}

// NewPaymentRepository creates a PaymentRepository over store.
func NewPaymentRepository(store *Store) *PaymentRepository {
	return &PaymentRepository{store: store}
}

// FindByBookingID returns the payment for a booking, or a NotFound error.
func (r *PaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	var out *payment.Payment
	err := r.store.read(func(d *state) error {
		id, ok := d.paidBookings[bookingID]
		if !ok {
			return domain.NewNotFoundError("Payment for booking", bookingID.String())
		}
		rec := d.payments[id]
		out = payment.Reconstitute(rec.ID, rec.BookingID, rec.Amount, rec.Method, rec.Status,
			rec.TransactionID, rec.PaidAt, rec.CreatedAt)
		return nil
	})
	return out, err
}

// ExistsForBooking reports whether a booking already has a payment.
func (r *PaymentRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.store.read(func(d *state) error {
		_, exists = d.paidBookings[bookingID]
		return nil
	})
	return exists, err
}

// TotalRevenue sums completed payments.
func (r *PaymentRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.store.read(func(d *state) error {
		for _, rec := range d.payments {
			if rec.Status == payment.StatusCompleted {
				total = total.Add(rec.Amount)
			}
		}
		return nil
	})
	return total, err
}

// Save stores a payment, rejecting a second one for the same booking.
func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return r.store.write(ctx, func(d *state) error {
		if _, paid := d.paidBookings[p.BookingID()]; paid {
			return payment.NewAlreadyPaidError()
		}
		d.payments[p.ID()] = paymentRecord{
			ID:            p.ID(),
			BookingID:     p.BookingID(),
			Amount:        p.Amount(),
			Method:        p.Method(),
			Status:        p.Status(),
			TransactionID: p.TransactionID(),
			PaidAt:        p.PaidAt(),
			CreatedAt:     p.CreatedAt(),
		}
		d.paidBookings[p.BookingID()] = p.ID()
		return nil
	})
}
