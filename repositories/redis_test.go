package repositories

import (
	"context"
	"testing"
	"time"

	"golden-elegance/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCartStorage(t *testing.T) {
	_, client := newTestRedis(t)
	testCartStorage(t, NewRedisCartStorage(client))
}

func TestRedisCartStorage_NoExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	storage := NewRedisCartStorage(client)

	require.NoError(t, storage.Set(context.Background(), "queenOrangeCart:abc", []byte(`[]`)))
	assert.Equal(t, time.Duration(0), mr.TTL("queenOrangeCart:abc"))
}

func TestRedisCartStorage_ServerDown(t *testing.T) {
	mr, client := newTestRedis(t)
	storage := NewRedisCartStorage(client)
	mr.Close()

	_, err := storage.Get(context.Background(), "queenOrangeCart:abc")
	assert.Error(t, err)
	assert.Error(t, storage.Set(context.Background(), "queenOrangeCart:abc", []byte(`[]`)))
}

func TestRedisOTPRepository(t *testing.T) {
	_, client := newTestRedis(t)
	testOTPRepository(t, NewRedisOTPRepository(client), "a@b.co")
}

func TestRedisOTPRepository_ExpiresWithCode(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewRedisOTPRepository(client)
	ctx := context.Background()

	rec := &models.OTPRecord{Email: "a@b.co", Hash: "h", ExpiresAt: time.Now().Add(10 * time.Minute)}
	require.NoError(t, repo.Replace(ctx, rec))

	ttl := mr.TTL("otp_request_a@b.co")
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)

	mr.FastForward(11 * time.Minute)
	latest, err := repo.Latest(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRedisOTPRepository_CorruptRecord(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set("otp_request_a@b.co", "{not json"))

	_, err := NewRedisOTPRepository(client).Latest(context.Background(), "a@b.co")
	assert.Error(t, err)
}

func TestRedisOrderRepository(t *testing.T) {
	_, client := newTestRedis(t)
	testOrderRepository(t, NewRedisOrderRepository(client), "a@b.co", "QO")
}
