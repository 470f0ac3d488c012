package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/payment"
	"github.com/grandstay/service-hotel/internal/metrics"
	"github.com/grandstay/service-hotel/internal/saga"
	"github.com/grandstay/service-hotel/pkg/domain"
	"github.com/grandstay/service-hotel/pkg/events"
)

// PayRequest is the DTO for paying a booking. Card is required for card methods.
type PayRequest struct {
	Method string               `json:"payment_method" binding:"required"`
	Amount decimal.Decimal      `json:"amount"`
	Card   *payment.CardDetails `json:"card,omitempty"`
}

// Settler runs the payment settlement saga.
type Settler interface {
	Settle(ctx context.Context, req saga.SettlementRequest) (*payment.Payment, error)
}

// PaymentService is the application service that records booking payments.
type PaymentService struct {
	settler   Settler
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(settler Settler, publisher EventPublisher, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		settler:   settler,
		publisher: publisher,
		logger:    logger,
	}
}

// Pay settles bookingID for guestID. On success the payment is completed, the booking confirmed,
// and the room occupied.
func (s *PaymentService) Pay(ctx context.Context, bookingID, guestID uuid.UUID, req PayRequest) (*PaymentDTO, error) {
	s.logger.Info("processing payment",
		zap.String("booking_id", bookingID.String()),
		zap.String("guest_id", guestID.String()),
		zap.String("method", req.Method),
		zap.String("amount", money(req.Amount)),
	)

	method, err := payment.ParseMethod(req.Method)
	if err != nil {
		metrics.PaymentAttempt(req.Method, "invalid_method")
		return nil, err
	}

	p, err := s.settler.Settle(ctx, saga.SettlementRequest{
		BookingID: bookingID,
		GuestID:   guestID,
		Method:    method,
		Amount:    req.Amount,
		Card:      req.Card,
	})
	if err != nil {
		metrics.PaymentAttempt(string(method), paymentFailureReason(err))
		s.logger.Warn("payment failed",
			zap.String("booking_id", bookingID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.PaymentAttempt(string(method), string(payment.StatusCompleted))
	metrics.BookingTransition(booking.StatusConfirmed.String())
	s.logger.Info("payment completed",
		zap.String("payment_id", p.ID().String()),
		zap.String("booking_id", bookingID.String()),
		zap.String("transaction_id", p.TransactionID()),
	)
	publish(ctx, s.publisher, s.logger, events.TopicPaymentEvents, events.PaymentCompleted, events.PaymentCompletedEvent{
		PaymentID:     p.ID(),
		BookingID:     p.BookingID(),
		Amount:        p.Amount(),
		Method:        string(p.Method()),
		TransactionID: p.TransactionID(),
		OccurredAt:    *p.PaidAt(),
	})

	dto := toPaymentDTO(p)
	return &dto, nil
}

func paymentFailureReason(err error) string {
	switch {
	case errors.Is(err, payment.ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, payment.ErrAmountMismatch):
		return "amount_mismatch"
	case errors.Is(err, payment.ErrInvalidCardDetails):
		return "invalid_card"
	case errors.Is(err, booking.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
