package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines persistence operations for the Booking aggregate.
type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	// FindByIDForUpdate locks the booking row for the rest of the enclosing transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*Booking, error)
	// BookedRoomIDs returns the rooms holding an active booking that overlaps stay.
	BookedRoomIDs(ctx context.Context, stay Stay) ([]uuid.UUID, error)
	HasActiveOverlap(ctx context.Context, roomID uuid.UUID, stay Stay) (bool, error)
	HasCompletedStay(ctx context.Context, guestID, roomID uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	Save(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
}
