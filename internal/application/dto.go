package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/domain/payment"
	"github.com/grandstay/service-hotel/internal/domain/review"
)

// RoomTypeDTO is the API response DTO for a room type.
type RoomTypeDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	PricePerNight string    `json:"price_per_night"`
	Capacity      int       `json:"capacity"`
	Amenities     string    `json:"amenities,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RoomDTO is the API response DTO for a room.
type RoomDTO struct {
	ID         uuid.UUID    `json:"id"`
	RoomNumber string       `json:"room_number"`
	Floor      int          `json:"floor"`
	Status     string       `json:"status"`
	RoomType   *RoomTypeDTO `json:"room_type,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// RoomDetailDTO is a room with its reviews. AverageRating is null when the room has no reviews.
type RoomDetailDTO struct {
	Room          RoomDTO     `json:"room"`
	Reviews       []ReviewDTO `json:"reviews"`
	AverageRating *string     `json:"average_rating"`
}

// BookingDTO is the API response DTO for a booking.
type BookingDTO struct {
	ID         uuid.UUID `json:"id"`
	GuestID    uuid.UUID `json:"guest_id"`
	RoomID     uuid.UUID `json:"room_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Nights     int       `json:"nights"`
	Guests     int       `json:"guests"`
	TotalPrice string    `json:"total_price"`
	Status     string    `json:"status"`
	Version    int64     `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BookingDetailDTO is a booking together with its payment, if any.
type BookingDetailDTO struct {
	Booking BookingDTO  `json:"booking"`
	Payment *PaymentDTO `json:"payment"`
}

// PaymentDTO is the API response DTO for a payment.
type PaymentDTO struct {
	ID            uuid.UUID  `json:"id"`
	BookingID     uuid.UUID  `json:"booking_id"`
	Amount        string     `json:"amount"`
	Method        string     `json:"payment_method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ReviewDTO is the API response DTO for a review.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	RoomID    uuid.UUID `json:"room_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardStatsDTO holds the staff dashboard aggregates.
type DashboardStatsDTO struct {
	TotalBookings     int64  `json:"total_bookings"`
	ConfirmedBookings int64  `json:"confirmed_bookings"`
	CancelledBookings int64  `json:"cancelled_bookings"`
	TotalRevenue      string `json:"total_revenue"`
	OccupiedRooms     int64  `json:"occupied_rooms"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toRoomTypeDTO(rt catalog.RoomType) RoomTypeDTO {
	return RoomTypeDTO{
		ID:            rt.ID,
		Name:          rt.Name,
		Description:   rt.Description,
		PricePerNight: money(rt.PricePerNight),
		Capacity:      rt.Capacity,
		Amenities:     rt.Amenities,
		CreatedAt:     rt.CreatedAt,
	}
}

func toRoomDTO(r catalog.Room) RoomDTO {
	dto := RoomDTO{
		ID:         r.ID,
		RoomNumber: r.RoomNumber,
		Floor:      r.Floor,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
	if r.RoomType != nil {
		rt := toRoomTypeDTO(*r.RoomType)
		dto.RoomType = &rt
	}
	return dto
}

func toBookingDTO(b *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:         b.ID(),
		GuestID:    b.GuestID(),
		RoomID:     b.RoomID(),
		CheckIn:    b.CheckIn().Format(booking.DateLayout),
		CheckOut:   b.CheckOut().Format(booking.DateLayout),
		Nights:     b.Nights(),
		Guests:     b.Guests(),
		TotalPrice: money(b.TotalPrice()),
		Status:     b.Status().String(),
		Version:    b.Version(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
}

func toPaymentDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		Amount:        money(p.Amount()),
		Method:        string(p.Method()),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		PaidAt:        p.PaidAt(),
		CreatedAt:     p.CreatedAt(),
	}
}

func toReviewDTO(r review.Review) ReviewDTO {
	return ReviewDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		RoomID:    r.RoomID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
