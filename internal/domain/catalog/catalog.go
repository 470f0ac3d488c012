// Package catalog holds room types and the physical rooms that belong to them.
package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grandstay/service-hotel/pkg/domain"
	"github.com/grandstay/service-hotel/pkg/validation"
)

// RoomStatus is the housekeeping state of a physical room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// IsValid returns true if s is a recognized room status.
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

// RoomType is a bookable category of room with a nightly rate.
type RoomType struct {
	ID            uuid.UUID
	Name          string
	Description   string
	PricePerNight decimal.Decimal
	Capacity      int
	Amenities     string
	IsActive      bool
	CreatedAt     time.Time
}

// Room is a physical room of one RoomType. RoomType is populated when the repository preloads it.
type Room struct {
	ID         uuid.UUID
	RoomNumber string
	RoomTypeID uuid.UUID
	RoomType   *RoomType
	Floor      int
	Status     RoomStatus
	IsActive   bool
	CreatedAt  time.Time
}

// Capacity returns the preloaded type's capacity, or 0 when the type is not loaded.
func (r *Room) Capacity() int {
	if r.RoomType == nil {
		return 0
	}
	return r.RoomType.Capacity
}

// Bookable reports whether the room can take new bookings: active, not under
// maintenance, and of an active type.
func (r *Room) Bookable() bool {
	if !r.IsActive || r.Status == RoomMaintenance {
		return false
	}
	return r.RoomType == nil || r.RoomType.IsActive
}

// NewRoomTypeInput carries the fields staff supply when adding a room type.
type NewRoomTypeInput struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Description   string          `json:"description"`
	PricePerNight decimal.Decimal `json:"price_per_night" validate:"gte=0"`
	Capacity      int             `json:"capacity" validate:"min=1"`
	Amenities     string          `json:"amenities"`
}

// NewRoomType validates input and builds an active RoomType.
func NewRoomType(input NewRoomTypeInput, now time.Time) (*RoomType, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewError(domain.CodeValidation, domain.ErrValidation, validation.Describe(err))
	}
	return &RoomType{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		PricePerNight: input.PricePerNight.Round(2),
		Capacity:      input.Capacity,
		Amenities:     input.Amenities,
		IsActive:      true,
		CreatedAt:     now.UTC(),
	}, nil
}

// NewRoomInput carries the fields staff supply when adding a room.
type NewRoomInput struct {
	RoomNumber string     `json:"room_number" validate:"required,max=10"`
	RoomTypeID uuid.UUID  `json:"room_type_id" validate:"required"`
	Floor      int        `json:"floor" validate:"min=0"`
	Status     RoomStatus `json:"status"`
}

// NewRoom validates input and builds an active Room, available unless a status is given.
func NewRoom(input NewRoomInput, now time.Time) (*Room, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domain.NewError(domain.CodeValidation, domain.ErrValidation, validation.Describe(err))
	}
	status := input.Status
	if status == "" {
		status = RoomAvailable
	}
	if !status.IsValid() {
		return nil, domain.NewError(domain.CodeValidation, domain.ErrValidation,
			fmt.Sprintf("invalid room status: %s", status))
	}
	return &Room{
		ID:         uuid.New(),
		RoomNumber: input.RoomNumber,
		RoomTypeID: input.RoomTypeID,
		Floor:      input.Floor,
		Status:     status,
		IsActive:   true,
		CreatedAt:  now.UTC(),
	}, nil
}
