package adapter

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentGateway is the boundary to whatever settles guest payments.
type PaymentGateway interface {
	// Charge settles amount for a booking and returns the gateway transaction id.
	Charge(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal, method string) (transactionID string, err error)

	// Void reverses a charge whose booking could not be confirmed.
	Void(ctx context.Context, transactionID string) error
}

// SimulatedGateway accepts every well-formed charge. No money moves.
type SimulatedGateway struct {
	logger *zap.Logger
}

// NewSimulatedGateway creates a gateway that always succeeds.
func NewSimulatedGateway(logger *zap.Logger) *SimulatedGateway {
	return &SimulatedGateway{logger: logger}
}

// Charge issues a unique transaction id.
func (g *SimulatedGateway) Charge(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal, method string) (string, error) {
	transactionID := "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))

	g.logger.Info("[SIMULATED GATEWAY] charge accepted",
		zap.String("transaction_id", transactionID),
		zap.String("booking_id", bookingID.String()),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("method", method),
	)
	return transactionID, nil
}

// Void logs the reversal.
func (g *SimulatedGateway) Void(ctx context.Context, transactionID string) error {
	g.logger.Info("[SIMULATED GATEWAY] charge voided",
		zap.String("transaction_id", transactionID),
	)
	return nil
}
