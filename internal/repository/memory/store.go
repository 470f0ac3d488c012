// Package memory implements the repository ports on process-local maps. Transactions are
// serialized and roll back to a snapshot on error.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/domain/payment"
	"github.com/grandstay/service-hotel/internal/domain/review"
)

type txKey struct{}

type bookingRecord struct {
	ID         uuid.UUID
	GuestID    uuid.UUID
	RoomID     uuid.UUID
	Stay       booking.Stay
	Guests     int
	TotalPrice decimal.Decimal
	Status     booking.Status
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type paymentRecord struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Amount        decimal.Decimal
	Method        payment.Method
	Status        payment.Status
	TransactionID string
	PaidAt        *time.Time
	CreatedAt     time.Time
}

type reviewKey struct {
	userID uuid.UUID
	roomID uuid.UUID
}

type state struct {
	roomTypes     map[uuid.UUID]catalog.RoomType
	roomTypeOrder []uuid.UUID
	rooms         map[uuid.UUID]catalog.Room
	roomOrder     []uuid.UUID
	roomNumbers   map[string]uuid.UUID
	bookings      map[uuid.UUID]bookingRecord
	bookingOrder  []uuid.UUID
	payments      map[uuid.UUID]paymentRecord
	paidBookings  map[uuid.UUID]uuid.UUID
	reviews       map[uuid.UUID]review.Review
	reviewOrder   []uuid.UUID
	reviewed      map[reviewKey]uuid.UUID
}

func newState() state {
	return state{
		roomTypes:    make(map[uuid.UUID]catalog.RoomType),
		rooms:        make(map[uuid.UUID]catalog.Room),
		roomNumbers:  make(map[string]uuid.UUID),
		bookings:     make(map[uuid.UUID]bookingRecord),
		payments:     make(map[uuid.UUID]paymentRecord),
		paidBookings: make(map[uuid.UUID]uuid.UUID),
		reviews:      make(map[uuid.UUID]review.Review),
		reviewed:     make(map[reviewKey]uuid.UUID),
	}
}

func (s state) clone() state {
	return state{
		roomTypes:     maps.Clone(s.roomTypes),
		roomTypeOrder: slices.Clone(s.roomTypeOrder),
		rooms:         maps.Clone(s.rooms),
		roomOrder:     slices.Clone(s.roomOrder),
		roomNumbers:   maps.Clone(s.roomNumbers),
		bookings:      maps.Clone(s.bookings),
		bookingOrder:  slices.Clone(s.bookingOrder),
		payments:      maps.Clone(s.payments),
		paidBookings:  maps.Clone(s.paidBookings),
		reviews:       maps.Clone(s.reviews),
		reviewOrder:   slices.Clone(s.reviewOrder),
		reviewed:      maps.Clone(s.reviewed),
	}
}

// Store holds every aggregate of the service. Repositories are views over one Store.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newState()}
}

// WithinTx runs fn with exclusive write access. Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// PingContext reports the store as always reachable.
func (s *Store) PingContext(ctx context.Context) error {
	return ctx.Err()
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write applies fn under the data lock, joining the transaction in ctx or starting a
// single-statement one.
func (s *Store) write(ctx context.Context, fn func(d *state) error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

func (s *Store) read(fn func(d *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.data)
}
