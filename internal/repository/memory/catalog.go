package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/pkg/domain"
)

// RoomTypeRepository implements catalog.RoomTypeRepository.
type RoomTypeRepository struct {
	store *Store
}

// NewRoomTypeRepository creates a RoomTypeRepository over store.
func NewRoomTypeRepository(store *Store) *RoomTypeRepository {
	return &RoomTypeRepository{store: store}
}

// FindByID returns the room type with id, or a NotFound error.
func (r *RoomTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.RoomType, error) {
	var out *catalog.RoomType
	err := r.store.read(func(d *state) error {
		rt, ok := d.roomTypes[id]
		if !ok {
			return domain.NewNotFoundError("RoomType", id.String())
		}
		out = &rt
		return nil
	})
	return out, err
}

// ListActive returns active room types in insertion order, at most limit when limit > 0.
func (r *RoomTypeRepository) ListActive(ctx context.Context, limit int) ([]catalog.RoomType, error) {
	var out []catalog.RoomType
	err := r.store.read(func(d *state) error {
		for _, id := range d.roomTypeOrder {
			if rt := d.roomTypes[id]; rt.IsActive {
				out = append(out, rt)
			}
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// Save stores rt. A re-saved type keeps its listing position.
func (r *RoomTypeRepository) Save(ctx context.Context, rt *catalog.RoomType) error {
	return r.store.write(ctx, func(d *state) error {
		if _, exists := d.roomTypes[rt.ID]; !exists {
			d.roomTypeOrder = append(d.roomTypeOrder, rt.ID)
		}
		d.roomTypes[rt.ID] = *rt
		return nil
	})
}

// RoomRepository implements catalog.RoomRepository.
type RoomRepository struct {
	store *Store
}

// NewRoomRepository creates a RoomRepository over store.
func NewRoomRepository(store *Store) *RoomRepository {
	return &RoomRepository{store: store}
}

func withType(d *state, room catalog.Room) catalog.Room {
	if rt, ok := d.roomTypes[room.RoomTypeID]; ok {
		room.RoomType = &rt
	}
	return room
}

// FindByID returns the room with its type, or a NotFound error.
func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Room, error) {
	var out *catalog.Room
	err := r.store.read(func(d *state) error {
		room, ok := d.rooms[id]
		if !ok {
			return domain.NewNotFoundError("Room", id.String())
		}
		room = withType(d, room)
		out = &room
		return nil
	})
	return out, err
}

// FindByIDForUpdate is FindByID; transactions on the store are already exclusive.
func (r *RoomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Room, error) {
	return r.FindByID(ctx, id)
}

// ListByStatus returns active rooms in status.
func (r *RoomRepository) ListByStatus(ctx context.Context, status catalog.RoomStatus) ([]catalog.Room, error) {
	var out []catalog.Room
	err := r.store.read(func(d *state) error {
		for _, id := range d.roomOrder {
			room := d.rooms[id]
			if room.IsActive && room.Status == status {
				out = append(out, withType(d, room))
			}
		}
		return nil
	})
	return out, err
}

// SetStatus overwrites a room's status.
func (r *RoomRepository) SetStatus(ctx context.Context, id uuid.UUID, status catalog.RoomStatus) error {
	return r.store.write(ctx, func(d *state) error {
		room, ok := d.rooms[id]
		if !ok {
			return domain.NewNotFoundError("Room", id.String())
		}
		room.Status = status
		d.rooms[id] = room
		return nil
	})
}

// CountByStatus counts rooms in status.
func (r *RoomRepository) CountByStatus(ctx context.Context, status catalog.RoomStatus) (int64, error) {
	var n int64
	err := r.store.read(func(d *state) error {
		for _, room := range d.rooms {
			if room.Status == status {
				n++
			}
		}
		return nil
	})
	return n, err
}

// Save stores a new room, rejecting a duplicate room number.
func (r *RoomRepository) Save(ctx context.Context, room *catalog.Room) error {
	return r.store.write(ctx, func(d *state) error {
		if _, ok := d.roomTypes[room.RoomTypeID]; !ok {
			return domain.NewNotFoundError("RoomType", room.RoomTypeID.String())
		}
		if owner, taken := d.roomNumbers[room.RoomNumber]; taken && owner != room.ID {
			return domain.NewConflictError("room number " + room.RoomNumber + " already exists")
		}
		if _, exists := d.rooms[room.ID]; !exists {
			d.roomOrder = append(d.roomOrder, room.ID)
		}
		stored := *room
		stored.RoomType = nil
		d.rooms[room.ID] = stored
		d.roomNumbers[room.RoomNumber] = room.ID
		return nil
	})
}
