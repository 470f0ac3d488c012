package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/domain/payment"
)

// DashboardService aggregates figures for staff.
type DashboardService struct {
	bookings booking.BookingRepository
	payments payment.PaymentRepository
	rooms    catalog.RoomRepository
	logger   *zap.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(
	bookings booking.BookingRepository,
	payments payment.PaymentRepository,
	rooms catalog.RoomRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{bookings: bookings, payments: payments, rooms: rooms, logger: logger}
}

// Stats returns booking counts, revenue from completed payments, and occupied rooms.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.payments.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := s.rooms.CountByStatus(ctx, catalog.RoomOccupied)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	return &DashboardStatsDTO{
		TotalBookings:     total,
		ConfirmedBookings: counts[booking.StatusConfirmed],
		CancelledBookings: counts[booking.StatusCancelled],
		TotalRevenue:      money(revenue),
		OccupiedRooms:     occupied,
	}, nil
}
