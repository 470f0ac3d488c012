package saga

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/adapter"
	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/domain/payment"
	"github.com/grandstay/service-hotel/pkg/domain"
)

// Transactor runs fn in one database transaction carried by the context.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SettlementRequest is a guest's attempt to pay for a booking.
type SettlementRequest struct {
	BookingID uuid.UUID
	GuestID   uuid.UUID
	Method    payment.Method
	Amount    decimal.Decimal
	Card      *payment.CardDetails
}

// SettlementSaga charges the gateway and then records the payment, confirms the booking
// and occupies the room in a single transaction. A failed transaction voids the charge.
type SettlementSaga struct {
	tx       Transactor
	bookings booking.BookingRepository
	rooms    catalog.RoomRepository
	payments payment.PaymentRepository
	gateway  adapter.PaymentGateway
	now      func() time.Time
	logger   *zap.Logger
}

// NewSettlementSaga creates a SettlementSaga. now supplies payment timestamps.
func NewSettlementSaga(
	tx Transactor,
	bookings booking.BookingRepository,
	rooms catalog.RoomRepository,
	payments payment.PaymentRepository,
	gateway adapter.PaymentGateway,
	now func() time.Time,
	logger *zap.Logger,
) *SettlementSaga {
	return &SettlementSaga{
		tx:       tx,
		bookings: bookings,
		rooms:    rooms,
		payments: payments,
		gateway:  gateway,
		now:      now,
		logger:   logger,
	}
}

// Settle runs the settlement. Every rule is checked once before charging and again under
// the booking row lock.
func (s *SettlementSaga) Settle(ctx context.Context, req SettlementRequest) (*payment.Payment, error) {
	b, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if err := s.verify(ctx, b, req); err != nil {
		return nil, err
	}

	p := payment.NewPayment(b.ID(), b.TotalPrice(), req.Method, s.now())
	var transactionID string

	settle := New("settle_booking", s.logger)

	settle.AddStep(Step{
		Name: "charge_gateway",
		Execute: func(ctx context.Context) error {
			var err error
			transactionID, err = s.gateway.Charge(ctx, b.ID(), b.TotalPrice(), string(req.Method))
			return err
		},
		Compensate: func(ctx context.Context) error {
			return s.gateway.Void(ctx, transactionID)
		},
	})

	settle.AddStep(Step{
		Name: "record_payment",
		Execute: func(ctx context.Context) error {
			return s.tx.WithinTx(ctx, func(ctx context.Context) error {
				locked, err := s.bookings.FindByIDForUpdate(ctx, req.BookingID)
				if err != nil {
					return err
				}
				if err := s.verify(ctx, locked, req); err != nil {
					return err
				}
				if err := p.Complete(transactionID, s.now()); err != nil {
					return err
				}
				if err := s.payments.Save(ctx, p); err != nil {
					return err
				}
				if err := locked.Confirm(); err != nil {
					return err
				}
				locked.IncrementVersion()
				if err := s.bookings.Update(ctx, locked); err != nil {
					return err
				}
				return s.rooms.SetStatus(ctx, locked.RoomID(), catalog.RoomOccupied)
			})
		},
	})

	if err := settle.Execute(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// verify applies the payment rules in order: ownership, single payment, exact amount,
// card format, and a confirmable booking status.
func (s *SettlementSaga) verify(ctx context.Context, b *booking.Booking, req SettlementRequest) error {
	if !b.IsOwnedBy(req.GuestID) {
		return domain.NewUnauthorizedError("only the booking's guest can pay for it")
	}
	paid, err := s.payments.ExistsForBooking(ctx, b.ID())
	if err != nil {
		return err
	}
	if paid {
		return payment.NewAlreadyPaidError()
	}
	if err := payment.CheckAmount(b.TotalPrice(), req.Amount); err != nil {
		return err
	}
	if err := payment.ValidateCard(req.Method, req.Card); err != nil {
		return err
	}
	if !b.Status().CanTransitionTo(booking.StatusConfirmed) {
		return booking.NewIllegalTransitionError(b.Status(), booking.StatusConfirmed)
	}
	return nil
}
