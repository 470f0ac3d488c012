package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/pkg/domain"
)

// RoomTypeRepositoryImpl is the GORM-based implementation of catalog.RoomTypeRepository.
type RoomTypeRepositoryImpl struct {
	db *gorm.DB
}

// NewRoomTypeRepository creates a new GORM-based room type repository.
func NewRoomTypeRepository(db *gorm.DB) *RoomTypeRepositoryImpl {
	return &RoomTypeRepositoryImpl{db: db}
}

// FindByID retrieves a room type by id.
func (r *RoomTypeRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*catalog.RoomType, error) {
	var model RoomTypeModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("RoomType", id.String())
		}
		return nil, err
	}
	rt := toRoomTypeDomain(&model)
	return &rt, nil
}

// ListActive returns active room types in insertion order.
func (r *RoomTypeRepositoryImpl) ListActive(ctx context.Context, limit int) ([]catalog.RoomType, error) {
	query := conn(ctx, r.db).Where("is_active = ?", true).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []RoomTypeModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.RoomType, len(models))
	for i := range models {
		out[i] = toRoomTypeDomain(&models[i])
	}
	return out, nil
}

// Save inserts a room type.
func (r *RoomTypeRepositoryImpl) Save(ctx context.Context, rt *catalog.RoomType) error {
	model := toRoomTypeModel(rt)
	return conn(ctx, r.db).Create(&model).Error
}

// RoomRepositoryImpl is the GORM-based implementation of catalog.RoomRepository.
type RoomRepositoryImpl struct {
	db *gorm.DB
}

// NewRoomRepository creates a new GORM-based room repository.
func NewRoomRepository(db *gorm.DB) *RoomRepositoryImpl {
	return &RoomRepositoryImpl{db: db}
}

// FindByID retrieves a room with its type.
func (r *RoomRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Room, error) {
	var model RoomModel
	if err := conn(ctx, r.db).Preload("RoomType").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, err
	}
	room := toRoomDomain(&model)
	return &room, nil
}

// FindByIDForUpdate takes a row lock on the room, then loads its type unlocked.
func (r *RoomRepositoryImpl) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Room, error) {
	db := conn(ctx, r.db)

	var model RoomModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, err
	}
	if err := db.Where("id = ?", model.RoomTypeID).First(&model.RoomType).Error; err != nil {
		return nil, err
	}
	room := toRoomDomain(&model)
	return &room, nil
}

// ListByStatus returns active rooms in the given status, oldest first.
func (r *RoomRepositoryImpl) ListByStatus(ctx context.Context, status catalog.RoomStatus) ([]catalog.Room, error) {
	var models []RoomModel
	if err := conn(ctx, r.db).Preload("RoomType").
		Where("status = ? AND is_active = ?", string(status), true).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Room, len(models))
	for i := range models {
		out[i] = toRoomDomain(&models[i])
	}
	return out, nil
}

// SetStatus overwrites a room's status.
func (r *RoomRepositoryImpl) SetStatus(ctx context.Context, id uuid.UUID, status catalog.RoomStatus) error {
	result := conn(ctx, r.db).Model(&RoomModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Room", id.String())
	}
	return nil
}

// CountByStatus counts rooms in status.
func (r *RoomRepositoryImpl) CountByStatus(ctx context.Context, status catalog.RoomStatus) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&RoomModel{}).Where("status = ?", string(status)).Count(&n).Error
	return n, err
}

// Save inserts a room. A taken room number is a conflict.
func (r *RoomRepositoryImpl) Save(ctx context.Context, room *catalog.Room) error {
	model := toRoomModel(room)
	err := conn(ctx, r.db).Omit(clause.Associations).Create(&model).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewConflictError("room number " + room.RoomNumber + " already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.NewNotFoundError("RoomType", room.RoomTypeID.String())
	}
	return err
}

func toRoomTypeDomain(m *RoomTypeModel) catalog.RoomType {
	return catalog.RoomType{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		PricePerNight: m.PricePerNight,
		Capacity:      m.Capacity,
		Amenities:     m.Amenities,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}
}

func toRoomTypeModel(rt *catalog.RoomType) RoomTypeModel {
	return RoomTypeModel{
		ID:            rt.ID,
		Name:          rt.Name,
		Description:   rt.Description,
		PricePerNight: rt.PricePerNight,
		Capacity:      rt.Capacity,
		Amenities:     rt.Amenities,
		IsActive:      rt.IsActive,
		CreatedAt:     rt.CreatedAt,
	}
}

func toRoomDomain(m *RoomModel) catalog.Room {
	room := catalog.Room{
		ID:         m.ID,
		RoomNumber: m.RoomNumber,
		RoomTypeID: m.RoomTypeID,
		Floor:      m.Floor,
		Status:     catalog.RoomStatus(m.Status),
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
	}
	if m.RoomType.ID != uuid.Nil {
		rt := toRoomTypeDomain(&m.RoomType)
		room.RoomType = &rt
	}
	return room
}

func toRoomModel(room *catalog.Room) RoomModel {
	return RoomModel{
		ID:         room.ID,
		RoomNumber: room.RoomNumber,
		RoomTypeID: room.RoomTypeID,
		Floor:      room.Floor,
		Status:     string(room.Status),
		IsActive:   room.IsActive,
		CreatedAt:  room.CreatedAt,
	}
}
