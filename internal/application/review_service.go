package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/domain/review"
)

// AddReviewRequest is the DTO for reviewing a room.
type AddReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewService records guest reviews of rooms they stayed in.
type ReviewService struct {
	reviews  review.ReviewRepository
	bookings booking.BookingRepository
	rooms    catalog.RoomRepository
	clock    Clock
	logger   *zap.Logger
}

// NewReviewService creates a ReviewService.
func NewReviewService(
	reviews review.ReviewRepository,
	bookings booking.BookingRepository,
	rooms catalog.RoomRepository,
	clock Clock,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings, rooms: rooms, clock: clock, logger: logger}
}

// AddReview stores userID's review of roomID. The rating is checked before any read; the guest
// must have a completed stay in the room and may review it only once.
func (s *ReviewService) AddReview(ctx context.Context, userID, roomID uuid.UUID, req AddReviewRequest) (*ReviewDTO, error) {
	r, err := review.NewReview(userID, roomID, req.Rating, req.Comment, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		return nil, err
	}

	stayed, err := s.bookings.HasCompletedStay(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if !stayed {
		return nil, review.NewNotEligibleError()
	}

	exists, err := s.reviews.Exists(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, review.NewDuplicateReviewError()
	}

	if err := s.reviews.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("review added",
		zap.String("review_id", r.ID.String()),
		zap.String("room_id", roomID.String()),
		zap.Int("rating", r.Rating),
	)
	dto := toReviewDTO(*r)
	return &dto, nil
}

// ListForRoom returns a room's reviews, newest first.
func (s *ReviewService) ListForRoom(ctx context.Context, roomID uuid.UUID) ([]ReviewDTO, error) {
	reviews, err := s.reviews.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ReviewDTO, len(reviews))
	for i, r := range reviews {
		dtos[i] = toReviewDTO(r)
	}
	return dtos, nil
}

// AverageRating returns the room's mean rating rounded to two places, or nil without reviews.
func (s *ReviewService) AverageRating(ctx context.Context, roomID uuid.UUID) (*string, error) {
	avg, err := s.reviews.AverageRating(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	rating := avg.Decimal.StringFixed(2)
	return &rating, nil
}
