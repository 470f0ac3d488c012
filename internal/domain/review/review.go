// Package review records one rating per guest and room.
package review

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grandstay/service-hotel/pkg/domain"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrNotEligible     = errors.New("not eligible to review")
	ErrDuplicateReview = errors.New("duplicate review")
	ErrInvalidRating   = errors.New("invalid rating")
)

// Review is a guest's rating and comment for a room they stayed in.
type Review struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	RoomID    uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ValidateRating rejects ratings outside 1..5.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return domain.NewError(domain.CodeValidation, ErrInvalidRating, "rating must be between 1 and 5")
	}
	return nil
}

// NewReview builds a review after validating its rating.
func NewReview(userID, roomID uuid.UUID, rating int, comment string, now time.Time) (*Review, error) {
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	return &Review{
		ID:        uuid.New(),
		UserID:    userID,
		RoomID:    roomID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now.UTC(),
	}, nil
}

// NewNotEligibleError reports a review attempt without a completed stay.
func NewNotEligibleError() error {
	return domain.NewError(domain.CodeUnauthorized, ErrNotEligible, "you can only review rooms you have stayed in")
}

// NewDuplicateReviewError reports a second review of the same room by the same guest.
func NewDuplicateReviewError() error {
	return domain.NewError(domain.CodeConflict, ErrDuplicateReview, "you have already reviewed this room")
}
