package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/pkg/domain"
)

// BookingRepositoryImpl is the GORM-based implementation of booking.BookingRepository.
type BookingRepositoryImpl struct {
	db *gorm.DB
}

// NewBookingRepository creates a new GORM-based booking repository.
func NewBookingRepository(db *gorm.DB) *BookingRepositoryImpl {
	return &BookingRepositoryImpl{db: db}
}

func activeStatuses() []string {
	out := make([]string, len(booking.ActiveStatuses))
	for i, s := range booking.ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

// dateParam binds a calendar date as text so Postgres compares it as a date regardless of
// the session time zone.
func dateParam(t time.Time) string {
	return t.Format(booking.DateLayout)
}

// FindByID retrieves a booking by id.
func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.find(conn(ctx, r.db), id)
}

// FindByIDForUpdate retrieves a booking and locks its row.
func (r *BookingRepositoryImpl) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.find(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *BookingRepositoryImpl) find(db *gorm.DB, id uuid.UUID) (*booking.Booking, error) {
	var model BookingModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, err
	}
	return toBookingDomain(&model), nil
}

// ListByGuest returns a guest's bookings, most recent first.
func (r *BookingRepositoryImpl) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*booking.Booking, error) {
	var models []BookingModel
	if err := conn(ctx, r.db).Where("guest_id = ?", guestID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*booking.Booking, len(models))
	for i := range models {
		out[i] = toBookingDomain(&models[i])
	}
	return out, nil
}

// BookedRoomIDs returns rooms with an active booking overlapping stay under the half-open rule.
func (r *BookingRepositoryImpl) BookedRoomIDs(ctx context.Context, stay booking.Stay) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Model(&BookingModel{}).
		Distinct("room_id").
		Where("status IN ? AND check_in < ? AND check_out > ?", activeStatuses(), dateParam(stay.CheckOut), dateParam(stay.CheckIn)).
		Pluck("room_id", &ids).Error
	return ids, err
}

// HasActiveOverlap reports whether roomID has an active booking overlapping stay.
func (r *BookingRepositoryImpl) HasActiveOverlap(ctx context.Context, roomID uuid.UUID, stay booking.Stay) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&BookingModel{}).
		Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			roomID, activeStatuses(), dateParam(stay.CheckOut), dateParam(stay.CheckIn)).
		Count(&n).Error
	return n > 0, err
}

// HasCompletedStay reports whether guestID completed a booking of roomID.
func (r *BookingRepositoryImpl) HasCompletedStay(ctx context.Context, guestID, roomID uuid.UUID) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&BookingModel{}).
		Where("guest_id = ? AND room_id = ? AND status = ?", guestID, roomID, string(booking.StatusCompleted)).
		Count(&n).Error
	return n > 0, err
}

// CountByStatus groups all bookings by status.
func (r *BookingRepositoryImpl) CountByStatus(ctx context.Context) (map[booking.Status]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	if err := conn(ctx, r.db).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[booking.Status]int64, len(rows))
	for _, row := range rows {
		counts[booking.Status(row.Status)] = row.Count
	}
	return counts, nil
}

// Save inserts a booking. The overlap exclusion constraint surfaces as ErrRoomUnavailable.
func (r *BookingRepositoryImpl) Save(ctx context.Context, b *booking.Booking) error {
	model := toBookingModel(b)
	if err := conn(ctx, r.db).Create(&model).Error; err != nil {
		if isExclusionViolation(err) {
			return booking.NewRoomUnavailableError("")
		}
		return err
	}
	return nil
}

// Update writes the booking's status with optimistic locking on version.
func (r *BookingRepositoryImpl) Update(ctx context.Context, b *booking.Booking) error {
	result := conn(ctx, r.db).Model(&BookingModel{}).
		Where("id = ? AND version = ?", b.ID(), b.Version()-1).
		Updates(map[string]interface{}{
			"status":     string(b.Status()),
			"version":    b.Version(),
			"updated_at": b.UpdatedAt(),
		})
	if result.Error != nil {
		if isExclusionViolation(result.Error) {
			return booking.NewRoomUnavailableError("")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

func toBookingDomain(m *BookingModel) *booking.Booking {
	return booking.Reconstitute(
		m.ID,
		m.GuestID,
		m.RoomID,
		booking.Stay{CheckIn: booking.DateOf(m.CheckIn), CheckOut: booking.DateOf(m.CheckOut)},
		m.Guests,
		m.TotalPrice,
		booking.Status(m.Status),
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toBookingModel(b *booking.Booking) BookingModel {
	return BookingModel{
		ID:         b.ID(),
		GuestID:    b.GuestID(),
		RoomID:     b.RoomID(),
		CheckIn:    b.CheckIn(),
		CheckOut:   b.CheckOut(),
		Guests:     b.Guests(),
		TotalPrice: b.TotalPrice(),
		Status:     string(b.Status()),
		Version:    b.Version(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
}
