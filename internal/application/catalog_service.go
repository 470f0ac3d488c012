package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/domain/review"
)

// CatalogService serves room types and rooms.
type CatalogService struct {
	roomTypes catalog.RoomTypeRepository
	rooms     catalog.RoomRepository
	reviews   review.ReviewRepository
	cache     RoomTypeCache
	clock     Clock
	logger    *zap.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil.
func NewCatalogService(
	roomTypes catalog.RoomTypeRepository,
	rooms catalog.RoomRepository,
	reviews review.ReviewRepository,
	cache RoomTypeCache,
	clock Clock,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		roomTypes: roomTypes,
		rooms:     rooms,
		reviews:   reviews,
		cache:     cache,
		clock:     clock,
		logger:    logger,
	}
}

// ListActiveRoomTypes returns active room types in insertion order. limit <= 0 returns all of them.
func (s *CatalogService) ListActiveRoomTypes(ctx context.Context, limit int) ([]RoomTypeDTO, error) {
	if limit < 0 {
		limit = 0
	}

	var types []catalog.RoomType
	cached := false
	if s.cache != nil {
		types, cached = s.cache.Get(ctx, limit)
	}
	if !cached {
		var err error
		types, err = s.roomTypes.ListActive(ctx, limit)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(ctx, limit, types)
		}
	}

	dtos := make([]RoomTypeDTO, len(types))
	for i, rt := range types {
		dtos[i] = toRoomTypeDTO(rt)
	}
	return dtos, nil
}

// GetRoom returns a room with its type.
func (s *CatalogService) GetRoom(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	dto := toRoomDTO(*room)
	return &dto, nil
}

// RoomDetail returns a room with its reviews, newest first, and their average rating.
func (s *CatalogService) RoomDetail(ctx context.Context, roomID uuid.UUID) (*RoomDetailDTO, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviews.AverageRating(ctx, roomID)
	if err != nil {
		return nil, err
	}

	detail := &RoomDetailDTO{
		Room:    toRoomDTO(*room),
		Reviews: make([]ReviewDTO, len(reviews)),
	}
	for i, r := range reviews {
		detail.Reviews[i] = toReviewDTO(r)
	}
	if avg.Valid {
		rating := avg.Decimal.StringFixed(2)
		detail.AverageRating = &rating
	}
	return detail, nil
}

// CreateRoomType adds a room type and drops the cached listing.
func (s *CatalogService) CreateRoomType(ctx context.Context, input catalog.NewRoomTypeInput) (*RoomTypeDTO, error) {
	rt, err := catalog.NewRoomType(input, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.roomTypes.Save(ctx, rt); err != nil {
		s.logger.Error("failed to save room type", zap.String("name", rt.Name), zap.Error(err))
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	s.logger.Info("room type created",
		zap.String("room_type_id", rt.ID.String()),
		zap.String("name", rt.Name),
		zap.String("price_per_night", rt.PricePerNight.StringFixed(2)),
	)
	dto := toRoomTypeDTO(*rt)
	return &dto, nil
}

// CreateRoom adds a room of an existing type. Room numbers are unique.
func (s *CatalogService) CreateRoom(ctx context.Context, input catalog.NewRoomInput) (*RoomDTO, error) {
	room, err := catalog.NewRoom(input, s.clock.Now())
	if err != nil {
		return nil, err
	}
	rt, err := s.roomTypes.FindByID(ctx, room.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if err := s.rooms.Save(ctx, room); err != nil {
		return nil, err
	}
	room.RoomType = rt

	s.logger.Info("room created",
		zap.String("room_id", room.ID.String()),
		zap.String("room_number", room.RoomNumber),
	)
	dto := toRoomDTO(*room)
	return &dto, nil
}
