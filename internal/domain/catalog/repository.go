package catalog

import (
	"context"

	"github.com/google/uuid"
)

// RoomTypeRepository defines persistence operations for room types.
type RoomTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomType, error)
	// ListActive returns active types in insertion order. limit <= 0 means no limit.
	ListActive(ctx context.Context, limit int) ([]RoomType, error)
	Save(ctx context.Context, rt *RoomType) error
}

// RoomRepository defines persistence operations for rooms. Returned rooms carry their RoomType.
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	// FindByIDForUpdate locks the room row for the rest of the enclosing transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Room, error)
	// ListByStatus returns active rooms with status in creation order.
	ListByStatus(ctx context.Context, status RoomStatus) ([]Room, error)
	SetStatus(ctx context.Context, id uuid.UUID, status RoomStatus) error
	CountByStatus(ctx context.Context, status RoomStatus) (int64, error)
	Save(ctx context.Context, room *Room) error
}
