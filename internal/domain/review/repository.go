package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Exists(ctx context.Context, userID, roomID uuid.UUID) (bool, error)
	// ListByRoom returns a room's reviews, newest first.
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]Review, error)
	// AverageRating is invalid when the room has no reviews.
	AverageRating(ctx context.Context, roomID uuid.UUID) (decimal.NullDecimal, error)
	// Save persists a new review. A second review by the same user fails with ErrDuplicateReview.
	Save(ctx context.Context, r *Review) error
}
