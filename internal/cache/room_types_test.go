package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grandstay/service-hotel/internal/domain/catalog"
)

func sampleTypes() []catalog.RoomType {
	return []catalog.RoomType{{
		ID:            uuid.MustParse("0b6d2c34-6a4f-4b39-9a4c-3b1f0d5e8a11"),
		Name:          "Deluxe",
		PricePerNight: decimal.RequireFromString("2500.00"),
		Capacity:      2,
		IsActive:      true,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
}

func TestRoomTypeCache_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRoomTypeCache(client, time.Minute, zap.NewNop())

	raw, err := json.Marshal(sampleTypes())
	require.NoError(t, err)
	mock.ExpectHGet(roomTypesKey, "0").SetVal(string(raw))

	got, ok := c.Get(context.Background(), 0)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Deluxe", got[0].Name)
	assert.True(t, decimal.RequireFromString("2500").Equal(got[0].PricePerNight))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomTypeCache_MissAndError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRoomTypeCache(client, time.Minute, zap.NewNop())

	mock.ExpectHGet(roomTypesKey, "5").RedisNil()
	_, ok := c.Get(context.Background(), 5)
	assert.False(t, ok)

	mock.ExpectHGet(roomTypesKey, "5").SetErr(errors.New("connection refused"))
	_, ok = c.Get(context.Background(), 5)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomTypeCache_SetAndInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRoomTypeCache(client, 5*time.Minute, zap.NewNop())

	raw, err := json.Marshal(sampleTypes())
	require.NoError(t, err)
	mock.ExpectHSet(roomTypesKey, "3", raw).SetVal(1)
	mock.ExpectExpire(roomTypesKey, 5*time.Minute).SetVal(true)
	mock.ExpectDel(roomTypesKey).SetVal(1)

	c.Set(context.Background(), 3, sampleTypes())
	c.Invalidate(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}
