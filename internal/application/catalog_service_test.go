package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/booking"
	"github.com/grandstay/service-hotel/internal/domain/catalog"
	"github.com/grandstay/service-hotel/pkg/domain"
)

type stubCache struct {
	entries     map[int][]catalog.RoomType
	hits        int
	invalidated int
}

func (c *stubCache) Get(_ context.Context, limit int) ([]catalog.RoomType, bool) {
	types, ok := c.entries[limit]
	if ok {
		c.hits++
	}
	return types, ok
}

func (c *stubCache) Set(_ context.Context, limit int, types []catalog.RoomType) {
	c.entries[limit] = types
}

func (c *stubCache) Invalidate(context.Context) {
	c.invalidated++
	c.entries = map[int][]catalog.RoomType{}
}

func TestListActiveRoomTypes_UsesCache(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t, "2024-05-20")
	cache := &stubCache{entries: map[int][]catalog.RoomType{}}
	svc := NewCatalogService(h.roomTypes, h.rooms, h.reviews, cache, h.clock, zap.NewNop())

	_, err := svc.CreateRoomType(ctx, catalog.NewRoomTypeInput{Name: "Single", PricePerNight: decimal.NewFromInt(80), Capacity: 1})
	require.NoError(t, err)
	_, err = svc.CreateRoomType(ctx, catalog.NewRoomTypeInput{Name: "Double", PricePerNight: decimal.NewFromInt(120), Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidated)

	first, err := svc.ListActiveRoomTypes(ctx, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Single", first[0].Name)
	assert.Equal(t, "80.00", first[0].PricePerNight)
	assert.Zero(t, cache.hits)

	second, err := svc.ListActiveRoomTypes(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)

	limited, err := svc.ListActiveRoomTypes(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = svc.CreateRoomType(ctx, catalog.NewRoomTypeInput{Name: "Suite", PricePerNight: decimal.NewFromInt(300), Capacity: 4})
	require.NoError(t, err)
	all, err := svc.ListActiveRoomTypes(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateRoomType_Validation(t *testing.T) {
	h := newHotel(t, "2024-05-20")
	_, err := h.catalog.CreateRoomType(context.Background(), catalog.NewRoomTypeInput{
		Name: "", PricePerNight: decimal.NewFromInt(-1), Capacity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t, "2024-05-20")
	roomID := h.addRoom(t, "101", 2, "100")

	room, err := h.catalog.GetRoom(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, "available", room.Status)
	require.NotNil(t, room.RoomType)
	assert.Equal(t, 2, room.RoomType.Capacity)

	_, err = h.catalog.CreateRoom(ctx, catalog.NewRoomInput{RoomNumber: "101", RoomTypeID: room.RoomType.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = h.catalog.CreateRoom(ctx, catalog.NewRoomInput{RoomNumber: "102", RoomTypeID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.catalog.GetRoom(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomDetail_NoReviews(t *testing.T) {
	h := newHotel(t, "2024-05-20")
	roomID := h.addRoom(t, "101", 2, "100")

	detail, err := h.catalog.RoomDetail(context.Background(), roomID)
	require.NoError(t, err)
	assert.Empty(t, detail.Reviews)
	assert.NotNil(t, detail.Reviews)
	assert.Nil(t, detail.AverageRating)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t, "2024-05-20")
	single := h.addRoom(t, "101", 1, "80")
	h.addRoom(t, "102", 2, "120")
	h.addRoom(t, "201", 4, "300")
	require.NoError(t, h.rooms.SetStatus(ctx, single, catalog.RoomMaintenance))

	all, err := h.availability.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"102", "201"}, roomNumbers(all))

	h.book(t, uuid.New(), all[0].ID, "2024-06-01", "2024-06-03", 1)

	tests := []struct {
		name string
		req  SearchRequest
		want []string
	}{
		{"no filters", SearchRequest{}, []string{"102", "201"}},
		{"guests only", SearchRequest{Guests: 3}, []string{"201"}},
		{"overlapping stay", SearchRequest{CheckIn: "2024-06-02", CheckOut: "2024-06-04"}, []string{"201"}},
		{"back to back", SearchRequest{CheckIn: "2024-06-03", CheckOut: "2024-06-05"}, []string{"102", "201"}},
		{"ends on check-in", SearchRequest{CheckIn: "2024-05-30", CheckOut: "2024-06-01"}, []string{"102", "201"}},
		{"capacity filter", SearchRequest{CheckIn: "2024-07-01", CheckOut: "2024-07-02", Guests: 2}, []string{"102", "201"}},
		{"too many guests", SearchRequest{CheckIn: "2024-07-01", CheckOut: "2024-07-02", Guests: 5}, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rooms, err := h.availability.Search(ctx, tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, roomNumbers(rooms))
		})
	}
}

func TestSearch_Validation(t *testing.T) {
	h := newHotel(t, "2024-05-20")
	ctx := context.Background()

	_, err := h.availability.Search(ctx, SearchRequest{CheckIn: "2024-05-01", CheckOut: "2024-05-03"})
	assert.ErrorIs(t, err, booking.ErrInvalidDateRange)

	_, err = h.availability.Search(ctx, SearchRequest{CheckIn: "2024-06-03", CheckOut: "2024-06-01"})
	assert.ErrorIs(t, err, booking.ErrInvalidDateRange)

	_, err = h.availability.Search(ctx, SearchRequest{CheckIn: "2024-06-01"})
	assert.ErrorIs(t, err, booking.ErrInvalidDateRange)

	_, err = h.availability.Search(ctx, SearchRequest{CheckIn: "2024-06-01", CheckOut: "2024-06-03", Guests: -1})
	assert.ErrorIs(t, err, booking.ErrInvalidGuestCount)

	_, err = h.availability.Search(ctx, SearchRequest{CheckIn: "2024-06-01", CheckOut: "2024-06-03", Guests: MaxSearchGuests + 1})
	assert.ErrorIs(t, err, booking.ErrInvalidGuestCount)

	_, err = h.availability.Search(ctx, SearchRequest{Guests: 11})
	assert.ErrorIs(t, err, booking.ErrInvalidGuestCount)

	_, err = h.availability.Search(ctx, SearchRequest{CheckIn: "2024-06-01", CheckOut: "2024-06-03", Guests: MaxSearchGuests})
	assert.NoError(t, err)
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	h := newHotel(t, "2024-05-20")
	room := h.addRoom(t, "101", 2, "100")
	other := h.addRoom(t, "102", 2, "150")
	guest := uuid.New()

	paid := h.book(t, guest, room, "2024-06-01", "2024-06-03", 1)
	_, err := h.payment.Pay(ctx, paid.ID, guest, PayRequest{Method: "cash", Amount: decimal.NewFromInt(200)})
	require.NoError(t, err)

	cancelled := h.book(t, guest, other, "2024-06-01", "2024-06-02", 1)
	_, err = h.booking.Cancel(ctx, cancelled.ID, guest)
	require.NoError(t, err)
	h.book(t, guest, other, "2024-06-10", "2024-06-12", 1)

	stats, err := h.dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.ConfirmedBookings)
	assert.Equal(t, int64(1), stats.CancelledBookings)
	assert.Equal(t, "200.00", stats.TotalRevenue)
	assert.Equal(t, int64(1), stats.OccupiedRooms)
}
