package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	rediscache "github.com/AleFeri/cof-me-up/internal/cache"
	"github.com/AleFeri/cof-me-up/internal/config"
	"github.com/AleFeri/cof-me-up/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) error {
	return m.Called(ctx, userID, upd).Error(0)
}

func (m *MockRepository) CountSucceededDonations(ctx context.Context, creatorID string) (int, error) {
	args := m.Called(ctx, creatorID)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

var alice = &models.User{ID: "creator-1", Name: "Alice", Username: strPtr("alice"), IsCreator: true}

func newRedis(t *testing.T) *rediscache.Cache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := rediscache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	return c
}

func TestService_GetByUsername_CachesSupporterCount(t *testing.T) {
	repo := &MockRepository{}
	repo.On("GetUserByUsername", mock.Anything, "alice").Return(alice, nil)
	repo.On("CountSucceededDonations", mock.Anything, "creator-1").Return(3, nil).Once()

	redis := newRedis(t)
	svc := New(repo, redis, newNoopLogger())

	for range 2 {
		p, err := svc.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, 3, p.SupporterCount)
		assert.True(t, p.IsCreator)
	}
	repo.AssertNumberOfCalls(t, "CountSucceededDonations", 1)

	// после инвалидации счётчик пересчитывается
	require.NoError(t, redis.Invalidate(context.Background(), rediscache.SupportersKey("creator-1")))
	repo.On("CountSucceededDonations", mock.Anything, "creator-1").Return(4, nil).Once()

	p, err := svc.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 4, p.SupporterCount)
}

func TestService_GetByID(t *testing.T) {
	t.Run("non-creator has no supporter count", func(t *testing.T) {
		repo := &MockRepository{}
		repo.On("GetUserByID", mock.Anything, "fan-1").Return(&models.User{ID: "fan-1", Name: "Dan"}, nil)

		p, err := New(repo, nil, newNoopLogger()).GetByID(context.Background(), "fan-1")
		require.NoError(t, err)
		assert.False(t, p.IsCreator)
		assert.Zero(t, p.SupporterCount)
		repo.AssertNotCalled(t, "CountSucceededDonations", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &MockRepository{}
		repo.On("GetUserByID", mock.Anything, "ghost").Return(nil, models.ErrNotFound)

		_, err := New(repo, nil, newNoopLogger()).GetByID(context.Background(), "ghost")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("cache failure falls back to database", func(t *testing.T) {
		repo := &MockRepository{}
		repo.On("GetUserByID", mock.Anything, "creator-1").Return(alice, nil)
		repo.On("CountSucceededDonations", mock.Anything, "creator-1").Return(2, nil)

		c := &MockCache{}
		c.On("Get", mock.Anything, "supporters:creator-1", mock.Anything).Return(false, errors.New("redis down"))
		c.On("Set", mock.Anything, "supporters:creator-1", 2, rediscache.SupportersTTL).Return(errors.New("redis down"))

		p, err := New(repo, c, newNoopLogger()).GetByID(context.Background(), "creator-1")
		require.NoError(t, err)
		assert.Equal(t, 2, p.SupporterCount)
		c.AssertExpectations(t)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("updates and returns profile", func(t *testing.T) {
		repo := &MockRepository{}
		repo.On("UpdateProfile", mock.Anything, "fan-1", models.ProfileUpdate{Bio: "hello"}).Return(nil)
		repo.On("GetUserByID", mock.Anything, "fan-1").Return(&models.User{ID: "fan-1", Bio: "hello"}, nil)

		p, err := New(repo, nil, newNoopLogger()).Update(context.Background(), models.Identity{ID: "fan-1"}, UpdateInput{Bio: " hello "})
		require.NoError(t, err)
		assert.Equal(t, "hello", p.Bio)
		repo.AssertExpectations(t)
	})

	t.Run("invalid image", func(t *testing.T) {
		repo := &MockRepository{}

		_, err := New(repo, nil, newNoopLogger()).Update(context.Background(), models.Identity{ID: "fan-1"}, UpdateInput{Image: "nope"})
		assert.ErrorIs(t, err, models.ErrValidation)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}
