package payment

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/grandstay/service-hotel/pkg/domain"
	"github.com/grandstay/service-hotel/pkg/validation"
)

var (
	ErrAlreadyPaid        = errors.New("booking already paid")
	ErrAmountMismatch     = errors.New("amount mismatch")
	ErrInvalidCardDetails = errors.New("invalid card details")
	ErrInvalidMethod      = errors.New("invalid payment method")
)

// Method is how the guest settles a booking.
type Method string

const (
	MethodUPI        Method = "upi"
	MethodCreditCard Method = "credit_card"
	MethodDebitCard  Method = "debit_card"
	MethodCash       Method = "cash"
)

// ParseMethod converts s to a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	switch m {
	case MethodUPI, MethodCreditCard, MethodDebitCard, MethodCash:
		return m, nil
	}
	return "", domain.NewError(domain.CodeValidation, ErrInvalidMethod, "invalid payment method: "+s)
}

// RequiresCard returns true for credit and debit card payments.
func (m Method) RequiresCard() bool {
	return m == MethodCreditCard || m == MethodDebitCard
}

// CardDetails are checked at submission and never stored.
type CardDetails struct {
	Number string `json:"card_number" validate:"required,len=16,number"`
	Expiry string `json:"expiry" validate:"required,mmyy"`
	CVV    string `json:"cvv" validate:"required,len=3,number"`
}

// ValidateCard checks card for card methods and ignores it otherwise.
func ValidateCard(method Method, card *CardDetails) error {
	if !method.RequiresCard() {
		return nil
	}
	if card == nil {
		return domain.NewError(domain.CodeValidation, ErrInvalidCardDetails, "card details are required for "+string(method))
	}
	if err := validation.Struct(card); err != nil {
		return domain.NewError(domain.CodeValidation, ErrInvalidCardDetails, validation.Describe(err))
	}
	return nil
}

// CheckAmount requires the submitted amount to equal the booking total exactly.
func CheckAmount(total, amount decimal.Decimal) error {
	if !amount.Equal(total) {
		return domain.NewError(domain.CodeValidation, ErrAmountMismatch,
			"payment amount "+amount.StringFixed(2)+" does not match booking total "+total.StringFixed(2))
	}
	return nil
}

// NewAlreadyPaidError reports a second payment attempt on a booking.
func NewAlreadyPaidError() error {
	return domain.NewError(domain.CodeConflict, ErrAlreadyPaid, "booking has already been paid")
}
