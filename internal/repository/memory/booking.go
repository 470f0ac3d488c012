package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/pkg/domain"
)

// BookingRepository implements booking.BookingRepository.
type BookingRepository struct {
	store *Store
}

// NewBookingRepository creates a BookingRepository over store.
func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store}
}

func toBookingRecord(b *booking.Booking) bookingRecord {
	return bookingRecord{
		ID:         b.ID(),
		GuestID:    b.GuestID(),
		RoomID:     b.RoomID(),
		Stay:       b.Stay(),
		Guests:     b.Guests(),
		TotalPrice: b.TotalPrice(),
		Status:     b.Status(),
		Version:    b.Version(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
}

func (r bookingRecord) toDomain() *booking.Booking {
	return booking.Reconstitute(r.ID, r.GuestID, r.RoomID, r.Stay, r.Guests, r.TotalPrice,
		r.Status, r.Version, r.CreatedAt, r.UpdatedAt)
}

// FindByID returns the booking with id, or a NotFound error.
func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var out *booking.Booking
	err := r.store.read(func(d *state) error {
		rec, ok := d.bookings[id]
		if !ok {
			return domain.NewNotFoundError("Booking", id.String())
		}
		out = rec.toDomain()
		return nil
	})
	return out, err
}

// FindByIDForUpdate is FindByID; transactions on the store are already exclusive.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

// ListByGuest returns a guest's bookings, most recent first.
func (r *BookingRepository) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*booking.Booking, error) {
	var out []*booking.Booking
	err := r.store.read(func(d *state) error {
		for _, id := range slices.Backward(d.bookingOrder) {
			if rec := d.bookings[id]; rec.GuestID == guestID {
				out = append(out, rec.toDomain())
			}
		}
		return nil
	})
	return out, err
}

func activeOverlap(d *state, roomID uuid.UUID, stay booking.Stay, exclude uuid.UUID) bool {
	for _, rec := range d.bookings {
		if rec.ID != exclude && rec.RoomID == roomID && rec.Status.IsActive() && rec.Stay.Overlaps(stay) {
			return true
		}
	}
	return false
}

// BookedRoomIDs returns the rooms with an active booking overlapping stay.
func (r *BookingRepository) BookedRoomIDs(ctx context.Context, stay booking.Stay) ([]uuid.UUID, error) {
	var out []uuid.UUID
	err := r.store.read(func(d *state) error {
		seen := make(map[uuid.UUID]bool)
		for _, id := range d.bookingOrder {
			rec := d.bookings[id]
			if rec.Status.IsActive() && rec.Stay.Overlaps(stay) && !seen[rec.RoomID] {
				seen[rec.RoomID] = true
				out = append(out, rec.RoomID)
			}
		}
		return nil
	})
	return out, err
}

// HasActiveOverlap reports whether roomID has an active booking overlapping stay.
func (r *BookingRepository) HasActiveOverlap(ctx context.Context, roomID uuid.UUID, stay booking.Stay) (bool, error) {
	var found bool
	err := r.store.read(func(d *state) error {
		found = activeOverlap(d, roomID, stay, uuid.Nil)
		return nil
	})
	return found, err
}

// HasCompletedStay reports whether the guest has a completed booking for the room.
func (r *BookingRepository) HasCompletedStay(ctx context.Context, guestID, roomID uuid.UUID) (bool, error) {
	var found bool
	err := r.store.read(func(d *state) error {
		for _, rec := range d.bookings {
			if rec.GuestID == guestID && rec.RoomID == roomID && rec.Status == booking.StatusCompleted {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

// CountByStatus counts bookings per status.
func (r *BookingRepository) CountByStatus(ctx context.Context) (map[booking.Status]int64, error) {
	counts := make(map[booking.Status]int64)
	err := r.store.read(func(d *state) error {
		for _, rec := range d.bookings {
			counts[rec.Status]++
		}
		return nil
	})
	return counts, err
}

// Save stores a new booking, rejecting it when an active booking already holds the room.
func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	return r.store.write(ctx, func(d *state) error {
		if b.Status().IsActive() && activeOverlap(d, b.RoomID(), b.Stay(), b.ID()) {
			return booking.NewRoomUnavailableError(d.rooms[b.RoomID()].RoomNumber)
		}
		d.bookings[b.ID()] = toBookingRecord(b)
		d.bookingOrder = append(d.bookingOrder, b.ID())
		return nil
	})
}

// Update applies optimistic locking: the stored version must be one behind b's.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	return r.store.write(ctx, func(d *state) error {
		stored, ok := d.bookings[b.ID()]
		if !ok {
			return domain.NewNotFoundError("Booking", b.ID().String())
		}
		if stored.Version != b.Version()-1 {
			return domain.NewConflictError("booking was modified concurrently")
		}
		d.bookings[b.ID()] = toBookingRecord(b)
		return nil
	})
}
