package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/domain/payment"
	"github.com/grandstay/service-hotel/internal/metrics"
	"github.com/grandstay/service-hotel/pkg/domain"
	"github.com/grandstay/service-hotel/pkg/events"
)

// CreateBookingRequest is the DTO for booking a room.
type CreateBookingRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests"`
}

// BookingService is the application service for the booking ledger.
type BookingService struct {
	tx        Transactor
	bookings  booking.BookingRepository
	rooms     catalog.RoomRepository
	payments  payment.PaymentRepository
	publisher EventPublisher
	clock     Clock
	logger    *zap.Logger
}

// NewBookingService creates a BookingService.
func NewBookingService(
	tx Transactor,
	bookings booking.BookingRepository,
	rooms catalog.RoomRepository,
	payments payment.PaymentRepository,
	publisher EventPublisher,
	clock Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		tx:        tx,
		bookings:  bookings,
		rooms:     rooms,
		payments:  payments,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// CreateBooking books roomID for guestID. The room row is locked while the overlap check and
// the insert run, so two guests cannot both book the same nights.
func (s *BookingService) CreateBooking(ctx context.Context, guestID, roomID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	b, err := s.createBooking(ctx, guestID, roomID, req)
	if err != nil {
		metrics.BookingRejected(rejectionReason(err))
		s.logger.Info("booking rejected",
			zap.String("guest_id", guestID.String()),
			zap.String("room_id", roomID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.BookingTransition(b.Status().String())
	s.logger.Info("booking created",
		zap.String("booking_id", b.ID().String()),
		zap.String("room_id", roomID.String()),
		zap.String("stay", b.Stay().String()),
		zap.String("total_price", money(b.TotalPrice())),
	)
	publish(ctx, s.publisher, s.logger, events.TopicBookingEvents, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:  b.ID(),
		GuestID:    b.GuestID(),
		RoomID:     b.RoomID(),
		CheckIn:    b.CheckIn().Format(booking.DateLayout),
		CheckOut:   b.CheckOut().Format(booking.DateLayout),
		Guests:     b.Guests(),
		TotalPrice: b.TotalPrice(),
		OccurredAt: b.CreatedAt(),
	})

	dto := toBookingDTO(b)
	return &dto, nil
}

func (s *BookingService) createBooking(ctx context.Context, guestID, roomID uuid.UUID, req CreateBookingRequest) (*booking.Booking, error) {
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
	if err := booking.ValidateGuestCount(req.Guests, 0); err != nil {
		return nil, err
	}

	var created *booking.Booking
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		room, err := s.rooms.FindByIDForUpdate(ctx, roomID)
		if err != nil {
			return err
		}
		if room.RoomType == nil {
			return domain.NewNotFoundError("RoomType", room.RoomTypeID.String())
		}
		if !room.Bookable() {
			return booking.NewRoomNotBookableError(room.RoomNumber)
		}

		taken, err := s.bookings.HasActiveOverlap(ctx, room.ID, stay)
		if err != nil {
			return err
		}
		if taken {
			return booking.NewRoomUnavailableError(room.RoomNumber)
		}

		b, err := booking.NewBooking(guestID, room.ID, stay, req.Guests, room.Capacity(), room.RoomType.PricePerNight, s.clock.Now())
		if err != nil {
			return err
		}
		if err := s.bookings.Save(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel cancels a pending or confirmed booking on behalf of its guest and frees the room.
func (s *BookingService) Cancel(ctx context.Context, bookingID, guestID uuid.UUID) (*BookingDTO, error) {
	return s.release(ctx, bookingID, booking.StatusCancelled, func(b *booking.Booking) error {
		if !b.IsOwnedBy(guestID) {
			return domain.NewUnauthorizedError("you can only cancel your own bookings")
		}
		return nil
	})
}

// StaffCancel cancels any pending or confirmed booking and frees the room.
func (s *BookingService) StaffCancel(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.release(ctx, bookingID, booking.StatusCancelled, nil)
}

// Complete closes a confirmed booking after checkout and frees the room.
func (s *BookingService) Complete(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.release(ctx, bookingID, booking.StatusCompleted, nil)
}

// release moves a booking to a status that gives the room back, in one transaction with the
// room status update. authorize, when set, runs against the locked booking.
func (s *BookingService) release(
	ctx context.Context,
	bookingID uuid.UUID,
	target booking.Status,
	authorize func(b *booking.Booking) error,
) (*BookingDTO, error) {
	var updated *booking.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.bookings.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(b); err != nil {
				return err
			}
		}
		if err := b.TransitionTo(target); err != nil {
			return err
		}
		b.IncrementVersion()
		if err := s.bookings.Update(ctx, b); err != nil {
			return err
		}
		if err := s.rooms.SetStatus(ctx, b.RoomID(), catalog.RoomAvailable); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		s.logger.Warn("booking transition failed",
			zap.String("booking_id", bookingID.String()),
			zap.String("target", target.String()),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.BookingTransition(target.String())
	s.logger.Info("booking transitioned",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", target.String()),
		zap.Bool("by_staff", authorize == nil),
	)

	eventType := events.BookingCancelled
	if target == booking.StatusCompleted {
		eventType = events.BookingCompleted
	}
	publish(ctx, s.publisher, s.logger, events.TopicBookingEvents, eventType, events.BookingStatusEvent{
		BookingID:  updated.ID(),
		RoomID:     updated.RoomID(),
		Status:     target.String(),
		ByStaff:    authorize == nil,
		OccurredAt: updated.UpdatedAt(),
	})

	dto := toBookingDTO(updated)
	return &dto, nil
}

// GetForGuest lists a guest's bookings, most recent first.
func (s *BookingService) GetForGuest(ctx context.Context, guestID uuid.UUID) ([]BookingDTO, error) {
	bookings, err := s.bookings.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos, nil
}

// GetDetails returns one of the guest's bookings with its payment, if any.
func (s *BookingService) GetDetails(ctx context.Context, bookingID, guestID uuid.UUID) (*BookingDetailDTO, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(guestID) {
		return nil, domain.NewUnauthorizedError("you can only view your own bookings")
	}

	detail := &BookingDetailDTO{Booking: toBookingDTO(b)}
	p, err := s.payments.FindByBookingID(ctx, bookingID)
	switch {
	case err == nil:
		dto := toPaymentDTO(p)
		detail.Payment = &dto
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return detail, nil
}

// HandleStayCheckedOut completes the booking named by a front-desk checkout event.
// Redelivered events for bookings that are already completed are ignored.
func (s *BookingService) HandleStayCheckedOut(ctx context.Context, event events.StayCheckedOutEvent) error {
	s.logger.Info("handling stay checked out event", zap.String("booking_id", event.BookingID.String()))

	_, err := s.Complete(ctx, event.BookingID)
	if err == nil {
		return nil
	}
	if errors.Is(err, booking.ErrIllegalTransition) {
		b, findErr := s.bookings.FindByID(ctx, event.BookingID)
		if findErr == nil && b.Status() == booking.StatusCompleted {
			s.logger.Info("booking already completed, skipping",
				zap.String("booking_id", event.BookingID.String()),
			)
			return nil
		}
	}
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, booking.ErrInvalidDateRange):
		return "invalid_date_range"
	case errors.Is(err, booking.ErrInvalidGuestCount):
		return "invalid_guest_count"
	case errors.Is(err, booking.ErrRoomUnavailable):
		return "room_unavailable"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
