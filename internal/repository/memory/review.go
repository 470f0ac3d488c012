package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grandstay/service-hotel/internal/domain/review"
)

// ReviewRepository implements review.ReviewRepository.
type ReviewRepository struct {
	store *Store
}

// NewReviewRepository creates a ReviewRepository over store.
func NewReviewRepository(store *Store) *ReviewRepository {
	return &ReviewRepository{store: store}
}

// Exists reports whether the user has already reviewed the room.
func (r *ReviewRepository) Exists(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	var exists bool
	err := r.store.read(func(d *state) error {
		_, exists = d.reviewed[reviewKey{userID: userID, roomID: roomID}]
		return nil
	})
	return exists, err
}

// ListByRoom returns a room's reviews, newest first.
func (r *ReviewRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]review.Review, error) {
	var out []review.Review
	err := r.store.read(func(d *state) error {
		for _, id := range slices.Backward(d.reviewOrder) {
			if rv := d.reviews[id]; rv.RoomID == roomID {
				out = append(out, rv)
			}
		}
		return nil
	})
	return out, err
}

// AverageRating returns the mean rating for a room, null when it has no reviews.
func (r *ReviewRepository) AverageRating(ctx context.Context, roomID uuid.UUID) (decimal.NullDecimal, error) {
	var sum, n int64
	err := r.store.read(func(d *state) error {
		for _, rv := range d.reviews {
			if rv.RoomID == roomID {
				sum += int64(rv.Rating)
				n++
			}
		}
		return nil
	})
	if err != nil || n == 0 {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(n), 2)), nil
}

// Save stores a review, rejecting a second one by the same user for the room.
func (r *ReviewRepository) Save(ctx context.Context, rv *review.Review) error {
	return r.store.write(ctx, func(d *state) error {
		key := reviewKey{userID: rv.UserID, roomID: rv.RoomID}
		if _, exists := d.reviewed[key]; exists {
			return review.NewDuplicateReviewError()
		}
		d.reviews[rv.ID] = *rv
		d.reviewOrder = append(d.reviewOrder, rv.ID)
		d.reviewed[key] = rv.ID
		return nil
	})
}
