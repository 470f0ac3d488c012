package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/pkg/domain"
)

// SearchRequest is the query of the room search form. Dates are YYYY-MM-DD; Guests 0 means any.
type SearchRequest struct {
	CheckIn  string `form:"check_in"`
	CheckOut string `form:"check_out"`
	Guests   int    `form:"guests"`
}

// HasDates reports whether the request asks for a date-filtered search.
func (r SearchRequest) HasDates() bool {
	return r.CheckIn != "" || r.CheckOut != ""
}

// AvailabilityService answers which rooms can be booked.
type AvailabilityService struct {
	rooms    catalog.RoomRepository
	bookings booking.BookingRepository
	clock    Clock
	logger   *zap.Logger
}

// NewAvailabilityService creates an AvailabilityService.
func NewAvailabilityService(
	rooms catalog.RoomRepository,
	bookings booking.BookingRepository,
	clock Clock,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{rooms: rooms, bookings: bookings, clock: clock, logger: logger}
}

// ListAvailable returns every room whose status is available.
func (s *AvailabilityService) ListAvailable(ctx context.Context) ([]RoomDTO, error) {
	rooms, err := s.rooms.ListByStatus(ctx, catalog.RoomAvailable)
	if err != nil {
		return nil, err
	}
	return toRoomDTOs(rooms), nil
}

// Search returns available rooms with no active booking overlapping [CheckIn, CheckOut)
// and, when Guests is set, a capacity of at least Guests.
func (s *AvailabilityService) Search(ctx context.Context, req SearchRequest) ([]RoomDTO, error) {
	if !req.HasDates() {
		if err := validateGuestFilter(req.Guests); err != nil {
			return nil, err
		}
		rooms, err := s.rooms.ListByStatus(ctx, catalog.RoomAvailable)
		if err != nil {
			return nil, err
		}
		return toRoomDTOs(filterByCapacity(rooms, req.Guests)), nil
	}

	checkIn, err := booking.ParseDate(req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := booking.ParseDate(req.CheckOut)
	if err != nil {
		return nil, err
	}
	stay, err := booking.NewStay(checkIn, checkOut, s.clock.Today())
	if err != nil {
		return nil, err
	}
	if err := validateGuestFilter(req.Guests); err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListByStatus(ctx, catalog.RoomAvailable)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookings.BookedRoomIDs(ctx, stay)
	if err != nil {
		return nil, err
	}
	excluded := make(map[uuid.UUID]struct{}, len(booked))
	for _, id := range booked {
		excluded[id] = struct{}{}
	}

	free := make([]catalog.Room, 0, len(rooms))
	for _, room := range rooms {
		if _, ok := excluded[room.ID]; ok {
			continue
		}
		free = append(free, room)
	}
	free = filterByCapacity(free, req.Guests)

	s.logger.Debug("availability search",
		zap.String("stay", stay.String()),
		zap.Int("guests", req.Guests),
		zap.Int("results", len(free)),
	)
	return toRoomDTOs(free), nil
}

// MaxSearchGuests caps the guests filter on room search. Zero means no filter.
const MaxSearchGuests = 10

func validateGuestFilter(guests int) error {
	if guests < 0 {
		return domain.NewError(domain.CodeValidation, booking.ErrInvalidGuestCount, "number of guests cannot be negative")
	}
	if guests > MaxSearchGuests {
		return domain.NewError(domain.CodeValidation, booking.ErrInvalidGuestCount,
			fmt.Sprintf("number of guests cannot exceed %d", MaxSearchGuests))
	}
	return nil
}

func filterByCapacity(rooms []catalog.Room, guests int) []catalog.Room {
	if guests <= 0 {
		return rooms
	}
	out := rooms[:0:0]
	for _, room := range rooms {
		if room.Capacity() >= guests {
			out = append(out, room)
		}
	}
	return out
}

func toRoomDTOs(rooms []catalog.Room) []RoomDTO {
	dtos := make([]RoomDTO, len(rooms))
	for i, r := range rooms {
		dtos[i] = toRoomDTO(r)
	}
	return dtos
}
