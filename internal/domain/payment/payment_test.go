package payment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandstay/service-hotel/pkg/domain"
)

func TestPayment_Complete(t *testing.T) {
	p := NewPayment(uuid.New(), decimal.RequireFromString("5000.00"), MethodUPI, time.Now())
	assert.Equal(t, StatusPending, p.Status())
	assert.Nil(t, p.PaidAt())

	require.NoError(t, p.Complete("TXN-1", time.Now()))
	assert.Equal(t, StatusCompleted, p.Status())
	assert.Equal(t, "TXN-1", p.TransactionID())
	assert.NotNil(t, p.PaidAt())

	err := p.Complete("TXN-2", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("credit_card")
	require.NoError(t, err)
	assert.True(t, m.RequiresCard())
	assert.False(t, MethodCash.RequiresCard())

	_, err = ParseMethod("bitcoin")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestValidateCard(t *testing.T) {
	valid := &CardDetails{Number: "4111111111111111", Expiry: "08/28", CVV: "123"}

	tests := []struct {
		name    string
		method  Method
		card    *CardDetails
		wantErr bool
	}{
		{"valid credit card", MethodCreditCard, valid, false},
		{"upi ignores card", MethodUPI, nil, false},
		{"missing card", MethodDebitCard, nil, true},
		{"short number", MethodCreditCard, &CardDetails{Number: "4111", Expiry: "08/28", CVV: "123"}, true},
		{"letters in number", MethodCreditCard, &CardDetails{Number: "4111abcd11111111", Expiry: "08/28", CVV: "123"}, true},
		{"bad expiry", MethodCreditCard, &CardDetails{Number: "4111111111111111", Expiry: "8/2028", CVV: "123"}, true},
		{"bad cvv", MethodCreditCard, &CardDetails{Number: "4111111111111111", Expiry: "08/28", CVV: "12"}, true},
		{"plus sign in number", MethodCreditCard, &CardDetails{Number: "+411111111111111", Expiry: "08/28", CVV: "123"}, true},
		{"minus sign in number", MethodCreditCard, &CardDetails{Number: "-411111111111111", Expiry: "08/28", CVV: "123"}, true},
		{"decimal point in number", MethodCreditCard, &CardDetails{Number: "41111111111111.1", Expiry: "08/28", CVV: "123"}, true},
		{"decimal point in cvv", MethodCreditCard, &CardDetails{Number: "4111111111111111", Expiry: "08/28", CVV: "1.5"}, true},
		{"signed cvv", MethodCreditCard, &CardDetails{Number: "4111111111111111", Expiry: "08/28", CVV: "-12"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCard(tc.method, tc.card)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCardDetails)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckAmount(t *testing.T) {
	total := decimal.RequireFromString("5000.00")
	assert.NoError(t, CheckAmount(total, decimal.RequireFromString("5000")))

	err := CheckAmount(total, decimal.RequireFromString("4000.00"))
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Contains(t, err.Error(), "4000.00")
}
