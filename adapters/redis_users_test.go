package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/service"
)

func TestNewRedisUniversalClientRejectsBadURL(t *testing.T) {
	client, err := NewRedisUniversalClient("://invalid")
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestRedisUserStore(t *testing.T) {
	client, err := NewRedisUniversalClient("redis://localhost:6379")
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	store := NewRedisUserStore(client)
	user := domain.User{
		UserID:   "u-" + uuid.NewString() + "@alpha",
		FullName: "Test User",
		Email:    "test@example.org",
		Password: "secret",
	}
	defer client.Del(ctx, userKey(user.UserID))

	require.NoError(t, store.Create(ctx, user))
	assert.True(t, service.IsConflictError(store.Create(ctx, user)))

	got, err := store.Get(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	user.FullName = "Renamed User"
	require.NoError(t, store.Update(ctx, user))
	got, err = store.Get(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", got.FullName)

	users, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, users, user)

	require.NoError(t, store.Delete(ctx, user.UserID))
	assert.True(t, service.IsEntityNotFoundError(store.Delete(ctx, user.UserID)))

	_, err = store.Get(ctx, user.UserID)
	assert.True(t, service.IsEntityNotFoundError(err))

	assert.True(t, service.IsEntityNotFoundError(store.Update(ctx, user)))
}
