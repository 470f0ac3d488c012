package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking is the aggregate root for a guest's reservation of one room.
type Booking struct {
	id         uuid.UUID
	guestID    uuid.UUID
	roomID     uuid.UUID
	stay       Stay
	guests     int
	totalPrice decimal.Decimal
	status     Status
	version    int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking prices a pending booking. capacity is the room type's maximum occupancy.
func NewBooking(guestID, roomID uuid.UUID, stay Stay, guests, capacity int, pricePerNight decimal.Decimal, now time.Time) (*Booking, error) {
	if err := ValidateGuestCount(guests, capacity); err != nil {
		return nil, err
	}
	if stay.Nights() < 1 {
		return nil, invalidDateRange("check-out date must be after check-in date")
	}
	now = now.UTC()
	return &Booking{
		id:         uuid.New(),
		guestID:    guestID,
		roomID:     roomID,
		stay:       stay,
		guests:     guests,
		totalPrice: TotalPrice(stay, pricePerNight),
		status:     StatusPending,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ValidateGuestCount requires at least one guest and, when capacity is known, no more than capacity.
func ValidateGuestCount(guests, capacity int) error {
	if guests < 1 {
		return invalidGuestCount("number of guests must be at least 1")
	}
	if capacity > 0 && guests > capacity {
		return invalidGuestCount(fmt.Sprintf("number of guests exceeds room capacity of %d", capacity))
	}
	return nil
}

// TotalPrice is nights times the nightly rate.
func TotalPrice(stay Stay, pricePerNight decimal.Decimal) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(stay.Nights())))
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) GuestID() uuid.UUID          { return b.guestID }
func (b *Booking) RoomID() uuid.UUID           { return b.roomID }
func (b *Booking) Stay() Stay                  { return b.stay }
func (b *Booking) CheckIn() time.Time          { return b.stay.CheckIn }
func (b *Booking) CheckOut() time.Time         { return b.stay.CheckOut }
func (b *Booking) Nights() int                 { return b.stay.Nights() }
func (b *Booking) Guests() int                 { return b.guests }
func (b *Booking) TotalPrice() decimal.Decimal { return b.totalPrice }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) Version() int64              { return b.version }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }

// IsOwnedBy returns true if guestID made this booking.
func (b *Booking) IsOwnedBy(guestID uuid.UUID) bool {
	return b.guestID == guestID
}

// TransitionTo moves the booking to target or returns ErrIllegalTransition leaving it unchanged.
func (b *Booking) TransitionTo(target Status) error {
	if !b.status.CanTransitionTo(target) {
		return NewIllegalTransitionError(b.status, target)
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// Confirm marks a pending booking as paid.
func (b *Booking) Confirm() error { return b.TransitionTo(StatusConfirmed) }

// Cancel releases a pending or confirmed booking.
func (b *Booking) Cancel() error { return b.TransitionTo(StatusCancelled) }

// Complete closes a confirmed booking after checkout.
func (b *Booking) Complete() error { return b.TransitionTo(StatusCompleted) }

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}

// Reconstitute rebuilds a Booking from persisted data.
func Reconstitute(
	id, guestID, roomID uuid.UUID,
	stay Stay,
	guests int,
	totalPrice decimal.Decimal,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		guestID:    guestID,
		roomID:     roomID,
		stay:       stay,
		guests:     guests,
		totalPrice: totalPrice,
		status:     status,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}
