package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/grandstay/service-hotel/internal/domain/review"
)

// ReviewRepositoryImpl is the GORM-based implementation of review.ReviewRepository.
type ReviewRepositoryImpl struct {
	db *gorm.DB
}

// NewReviewRepository creates a new GORM-based review repository.
func NewReviewRepository(db *gorm.DB) *ReviewRepositoryImpl {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Exists(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&ReviewModel{}).Where("user_id = ? AND room_id = ?", userID, roomID).Count(&n).Error
	return n > 0, err
}

func (r *ReviewRepositoryImpl) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]review.Review, error) {
	var models []ReviewModel
	if err := conn(ctx, r.db).Where("room_id = ?", roomID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]review.Review, len(models))
	for i, m := range models {
		out[i] = review.Review{
			ID:        m.ID,
			UserID:    m.UserID,
			RoomID:    m.RoomID,
			Rating:    m.Rating,
			Comment:   m.Comment,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

// AverageRating is rounded to two places and invalid for a room without reviews.
func (r *ReviewRepositoryImpl) AverageRating(ctx context.Context, roomID uuid.UUID) (decimal.NullDecimal, error) {
	var avg decimal.NullDecimal
	if err := conn(ctx, r.db).Model(&ReviewModel{}).
		Where("room_id = ?", roomID).
		Select("AVG(rating)").
		Row().Scan(&avg); err != nil {
		return decimal.NullDecimal{}, err
	}
	if avg.Valid {
		avg.Decimal = avg.Decimal.Round(2)
	}
	return avg, nil
}

func (r *ReviewRepositoryImpl) Save(ctx context.Context, rv *review.Review) error {
	model := ReviewModel{
		ID:        rv.ID,
		UserID:    rv.UserID,
		RoomID:    rv.RoomID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
	if err := conn(ctx, r.db).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return review.NewDuplicateReviewError()
		}
		return err
	}
	return nil
}
