package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/internal/domain/payment"
	"github.com/grandstay/service-hotel/internal/repository/memory"
	"github.com/grandstay/service-hotel/internal/saga"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time   { return c.now }
func (c fixedClock) Today() time.Time { return booking.DateOf(c.now) }

type publishedEvent struct {
	Topic string
	Type  string
	Data  interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, eventType string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Type: eventType, Data: data})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type spyGateway struct {
	mu      sync.Mutex
	charges int
	voided  []string
}

func (g *spyGateway) Charge(_ context.Context, _ uuid.UUID, _ decimal.Decimal, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charges++
	return "TXN-" + uuid.NewString(), nil
}

func (g *spyGateway) Void(_ context.Context, transactionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.voided = append(g.voided, transactionID)
	return nil
}

// failingPayments fails every Save after delegating the read methods.
type failingPayments struct {
	payment.PaymentRepository
}

func (failingPayments) Save(context.Context, *payment.Payment) error {
	return errors.New("disk full")
}

// hotel wires every service over one in-memory store.
type hotel struct {
	store     *memory.Store
	clock     fixedClock
	publisher *recordingPublisher
	gateway   *spyGateway

	roomTypes *memory.RoomTypeRepository
	rooms     *memory.RoomRepository
	bookings  *memory.BookingRepository
	payments  *memory.PaymentRepository
	reviews   *memory.ReviewRepository

	catalog      *CatalogService
	availability *AvailabilityService
	booking      *BookingService
	payment      *PaymentService
	review       *ReviewService
	dashboard    *DashboardService
}

func newHotel(t *testing.T, today string) *hotel {
	t.Helper()
	d, err := booking.ParseDate(today)
	require.NoError(t, err)

	h := &hotel{
		store:     memory.NewStore(),
		clock:     fixedClock{now: d.Add(9 * time.Hour)},
		publisher: &recordingPublisher{},
		gateway:   &spyGateway{},
	}
	h.roomTypes = memory.NewRoomTypeRepository(h.store)
	h.rooms = memory.NewRoomRepository(h.store)
	h.bookings = memory.NewBookingRepository(h.store)
	h.payments = memory.NewPaymentRepository(h.store)
	h.reviews = memory.NewReviewRepository(h.store)
	h.wire(h.payments)
	return h
}

func (h *hotel) wire(payments payment.PaymentRepository) {
	logger := zap.NewNop()
	settlement := saga.NewSettlementSaga(h.store, h.bookings, h.rooms, payments, h.gateway, h.clock.Now, logger)

	h.catalog = NewCatalogService(h.roomTypes, h.rooms, h.reviews, nil, h.clock, logger)
	h.availability = NewAvailabilityService(h.rooms, h.bookings, h.clock, logger)
	h.booking = NewBookingService(h.store, h.bookings, h.rooms, h.payments, h.publisher, h.clock, logger)
	h.payment = NewPaymentService(settlement, h.publisher, logger)
	h.review = NewReviewService(h.reviews, h.bookings, h.rooms, h.clock, logger)
	h.dashboard = NewDashboardService(h.bookings, h.payments, h.rooms, logger)
}

func (h *hotel) addRoom(t *testing.T, number string, capacity int, price string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	rt, err := h.catalog.CreateRoomType(ctx, catalog.NewRoomTypeInput{
		Name:          "Type " + number,
		PricePerNight: decimal.RequireFromString(price),
		Capacity:      capacity,
	})
	require.NoError(t, err)
	room, err := h.catalog.CreateRoom(ctx, catalog.NewRoomInput{RoomNumber: number, RoomTypeID: rt.ID, Floor: 1})
	require.NoError(t, err)
	return room.ID
}

func (h *hotel) book(t *testing.T, guestID, roomID uuid.UUID, in, out string, guests int) *BookingDTO {
	t.Helper()
	b, err := h.booking.CreateBooking(context.Background(), guestID, roomID,
		CreateBookingRequest{CheckIn: in, CheckOut: out, Guests: guests})
	require.NoError(t, err)
	return b
}

func (h *hotel) roomStatus(t *testing.T, roomID uuid.UUID) catalog.RoomStatus {
	t.Helper()
	room, err := h.rooms.FindByID(context.Background(), roomID)
	require.NoError(t, err)
	return room.Status
}

func roomNumbers(rooms []RoomDTO) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.RoomNumber
	}
	return out
}
