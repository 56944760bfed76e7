package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AleFeri/cof-me-up/internal/migrations"
	"github.com/AleFeri/cof-me-up/internal/models"
)

// testDataFactory создает тестовые данные напрямую через SQL.
type testDataFactory struct {
	storage *Storage
}

func (f *testDataFactory) createUser(t *testing.T, isCreator bool) *models.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	username := "user_" + suffix
	u := models.User{
		Name:         "User " + suffix,
		Email:        suffix + "@example.com",
		Username:     &username,
		PasswordHash: "hashedpassword",
		IsCreator:    isCreator,
	}
	id, err := f.storage.CreateUser(context.Background(), u)
	require.NoError(t, err)
	u.ID = id
	return &u
}

func (f *testDataFactory) createDonation(t *testing.T, donorID, creatorID string, cents int64) string {
	t.Helper()
	id, err := f.storage.CreateDonation(context.Background(), models.Donation{
		DonorID:     donorID,
		CreatorID:   creatorID,
		AmountCents: cents,
		Message:     "thanks",
	})
	require.NoError(t, err)
	return id
}

func (f *testDataFactory) statusOf(t *testing.T, donationID string) string {
	t.Helper()
	var status string
	err := f.storage.DB.QueryRow(`SELECT status FROM donations WHERE id = $1`, donationID).Scan(&status)
	require.NoError(t, err)
	return status
}

// setupTestDatabase поднимает контейнер PostgreSQL и применяет миграции проекта.
func setupTestDatabase(t *testing.T) (*Storage, *testDataFactory, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, &testDataFactory{storage: storage}, cleanup
}
