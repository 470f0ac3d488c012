package booking

import (
	"errors"

	"github.com/grandstay/service-hotel/pkg/domain"
)

var (
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidGuestCount = errors.New("invalid guest count")
	ErrRoomUnavailable   = errors.New("room unavailable")
	ErrIllegalTransition = errors.New("illegal booking transition")
)

func invalidDateRange(message string) error {
	return domain.NewError(domain.CodeValidation, ErrInvalidDateRange, message)
}

func invalidGuestCount(message string) error {
	return domain.NewError(domain.CodeValidation, ErrInvalidGuestCount, message)
}

// NewRoomUnavailableError reports an overlapping active booking on the requested room.
// roomNumber may be empty when only the database constraint caught the overlap.
func NewRoomUnavailableError(roomNumber string) error {
	if roomNumber == "" {
		return domain.NewError(domain.CodeConflict, ErrRoomUnavailable, "room is already booked for the selected dates")
	}
	return domain.NewError(domain.CodeConflict, ErrRoomUnavailable,
		"room "+roomNumber+" is already booked for the selected dates")
}

// NewRoomNotBookableError reports a room that is inactive or under maintenance.
func NewRoomNotBookableError(roomNumber string) error {
	return domain.NewError(domain.CodeConflict, ErrRoomUnavailable,
		"room "+roomNumber+" is not open for booking")
}

// NewIllegalTransitionError reports a move outside the booking state machine.
func NewIllegalTransitionError(from, to Status) error {
	return domain.NewError(domain.CodeInvalidState, ErrIllegalTransition,
		"cannot move booking from "+from.String()+" to "+to.String())
}
