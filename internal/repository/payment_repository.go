package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	paymentDomain "github.com/grandstay/service-hotel/internal/domain/payment"
	"github.com/grandstay/service-hotel/pkg/domain"
)

// PaymentRepositoryImpl is the GORM-based implementation of PaymentRepository.
type PaymentRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new GORM-based payment repository.
func NewPaymentRepository(db *gorm.DB) *PaymentRepositoryImpl {
	return &PaymentRepositoryImpl{db: db}
}

// FindByBookingID retrieves a payment by the associated booking ID.
func (r *PaymentRepositoryImpl) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*paymentDomain.Payment, error) {
	var model PaymentModel
	if err := conn(ctx, r.db).Where("booking_id = ?", bookingID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Payment for booking", bookingID.String())
		}
		return nil, err
	}
	return toPaymentDomain(&model), nil
}

// ExistsForBooking reports whether a payment row exists for bookingID.
func (r *PaymentRepositoryImpl) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&PaymentModel{}).Where("booking_id = ?", bookingID).Count(&n).Error
	return n > 0, err
}

// TotalRevenue sums completed payments.
func (r *PaymentRepositoryImpl) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := conn(ctx, r.db).Model(&PaymentModel{}).
		Where("status = ?", string(paymentDomain.StatusCompleted)).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	return total, err
}

// Save persists a new payment. The unique booking_id index turns a second payment into ErrAlreadyPaid.
func (r *PaymentRepositoryImpl) Save(ctx context.Context, payment *paymentDomain.Payment) error {
	model := toPaymentModel(payment)
	if err := conn(ctx, r.db).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return paymentDomain.NewAlreadyPaidError()
		}
		return err
	}
	return nil
}

func toPaymentDomain(model *PaymentModel) *paymentDomain.Payment {
	return paymentDomain.Reconstitute(
		model.ID,
		model.BookingID,
		model.Amount,
		paymentDomain.Method(model.Method),
		paymentDomain.Status(model.Status),
		model.TransactionID,
		model.PaidAt,
		model.CreatedAt,
	)
}

func toPaymentModel(p *paymentDomain.Payment) PaymentModel {
	return PaymentModel{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		Amount:        p.Amount(),
		Method:        string(p.Method()),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		PaidAt:        p.PaidAt(),
		CreatedAt:     p.CreatedAt(),
	}
}
