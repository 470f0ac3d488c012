package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoomTypeModel is the GORM persistence model for the room_types table.
type RoomTypeModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"type:text"`
	PricePerNight decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Capacity      int             `gorm:"not null"`
	Amenities     string          `gorm:"type:text"`
	IsActive      bool            `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"type:timestamptz;not null"`
}

func (RoomTypeModel) TableName() string { return "room_types" }

// RoomModel is the GORM persistence model for the rooms table.
type RoomModel struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	RoomNumber string        `gorm:"type:varchar(10);uniqueIndex;not null"`
	RoomTypeID uuid.UUID     `gorm:"type:uuid;index;not null"`
	RoomType   RoomTypeModel `gorm:"foreignKey:RoomTypeID"`
	Floor      int           `gorm:"not null"`
	Status     string        `gorm:"type:varchar(20);index;not null"`
	IsActive   bool          `gorm:"not null"`
	CreatedAt  time.Time     `gorm:"type:timestamptz;not null"`
}

func (RoomModel) TableName() string { return "rooms" }

// BookingModel is the GORM persistence model for the bookings table.
type BookingModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GuestID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	RoomID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	CheckIn    time.Time       `gorm:"column:check_in;type:date;not null"`
	CheckOut   time.Time       `gorm:"column:check_out;type:date;not null"`
	Guests     int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status     string          `gorm:"type:varchar(20);index;not null"`
	Version    int64           `gorm:"not null"`
	CreatedAt  time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt  time.Time       `gorm:"type:timestamptz;not null"`
}

func (BookingModel) TableName() string { return "bookings" }

// PaymentModel is the GORM persistence model for the payments table.
type PaymentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingID     uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Method        string          `gorm:"type:varchar(20);not null"`
	Status        string          `gorm:"type:varchar(20);not null"`
	TransactionID string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	PaidAt        *time.Time      `gorm:"type:timestamptz"`
	CreatedAt     time.Time       `gorm:"type:timestamptz;not null"`
}

func (PaymentModel) TableName() string { return "payments" }

// ReviewModel is the GORM persistence model for the reviews table.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_room"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_room;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (ReviewModel) TableName() string { return "reviews" }

// Models lists every table for AutoMigrate in development.
func Models() []interface{} {
	return []interface{}{&RoomTypeModel{}, &RoomModel{}, &BookingModel{}, &PaymentModel{}, &ReviewModel{}}
}
