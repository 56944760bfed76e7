package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleFeri/cof-me-up/internal/models"
)

func TestStorage_AttachPaymentIntent(t *testing.T) {
	storage, factory, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	donor := factory.createUser(t, false)
	creator := factory.createUser(t, true)
	id := factory.createDonation(t, donor.ID, creator.ID, 1000)

	require.NoError(t, storage.AttachPaymentIntent(ctx, id, "pi_1"))
	// повтор с тем же intent
	require.NoError(t, storage.AttachPaymentIntent(ctx, id, "pi_1"))

	err := storage.AttachPaymentIntent(ctx, id, "pi_2")
	assert.ErrorIs(t, err, models.ErrConflict)

	d, err := storage.GetDonation(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, d.PaymentIntentID)
	assert.Equal(t, "pi_1", *d.PaymentIntentID)
	assert.Equal(t, models.DonationStatusPending, d.Status)
	assert.Equal(t, int64(1000), d.AmountCents)

	err = storage.AttachPaymentIntent(ctx, uuid.NewString(), "pi_3")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStorage_UpdateStatusByPaymentIntent(t *testing.T) {
	storage, factory, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	donor := factory.createUser(t, false)
	creator := factory.createUser(t, true)

	tests := []struct {
		name       string
		steps      []string
		wantStatus string
	}{
		{name: "pending to succeeded", steps: []string{"succeeded"}, wantStatus: "succeeded"},
		{name: "in-flight then succeeded", steps: []string{"processing", "succeeded"}, wantStatus: "succeeded"},
		{name: "succeeded is a sink", steps: []string{"succeeded", "failed"}, wantStatus: "succeeded"},
		{name: "failed is a sink", steps: []string{"failed", "succeeded"}, wantStatus: "failed"},
		{name: "pending never set", steps: []string{"processing", "pending"}, wantStatus: "processing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := factory.createDonation(t, donor.ID, creator.ID, 500)
			intent := "pi_" + uuid.NewString()
			require.NoError(t, storage.AttachPaymentIntent(ctx, id, intent))

			for _, status := range tt.steps {
				_, err := storage.UpdateStatusByPaymentIntent(ctx, intent, status)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, factory.statusOf(t, id))
		})
	}

	t.Run("unknown intent is a no-op", func(t *testing.T) {
		d, err := storage.UpdateStatusByPaymentIntent(ctx, "pi_unknown", "succeeded")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("concurrent signals transition exactly once", func(t *testing.T) {
		id := factory.createDonation(t, donor.ID, creator.ID, 700)
		intent := "pi_" + uuid.NewString()
		require.NoError(t, storage.AttachPaymentIntent(ctx, id, intent))

		var wg sync.WaitGroup
		var mu sync.Mutex
		transitions := 0
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d, err := storage.UpdateStatusByPaymentIntent(ctx, intent, "succeeded")
				assert.NoError(t, err)
				if d != nil {
					mu.Lock()
					transitions++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, transitions)
		assert.Equal(t, "succeeded", factory.statusOf(t, id))
	})
}

func TestStorage_UpdateStatusByID(t *testing.T) {
	storage, factory, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	donor := factory.createUser(t, false)
	creator := factory.createUser(t, true)
	id := factory.createDonation(t, donor.ID, creator.ID, 300)

	d, err := storage.UpdateStatusByID(ctx, id, "failed")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "failed", d.Status)

	d, err = storage.UpdateStatusByID(ctx, id, "succeeded")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Equal(t, "failed", factory.statusOf(t, id))
}

func TestStorage_ListSucceededDonationsForCreator(t *testing.T) {
	storage, factory, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	donor := factory.createUser(t, false)
	creator := factory.createUser(t, true)
	other := factory.createUser(t, true)

	first := factory.createDonation(t, donor.ID, creator.ID, 1000)
	second := factory.createDonation(t, donor.ID, creator.ID, 250)
	pending := factory.createDonation(t, donor.ID, creator.ID, 400)
	foreign := factory.createDonation(t, donor.ID, other.ID, 900)

	for _, id := range []string{first, second, foreign} {
		_, err := storage.UpdateStatusByID(ctx, id, "succeeded")
		require.NoError(t, err)
	}

	list, err := storage.ListSucceededDonationsForCreator(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, "2.50", list[0].Amount)
	assert.Equal(t, first, list[1].ID)
	assert.Equal(t, "10.00", list[1].Amount)
	assert.Equal(t, donor.ID, list[0].Donor.ID)
	assert.Equal(t, donor.Name, list[0].Donor.Name)
	for _, d := range list {
		assert.NotEqual(t, pending, d.ID)
	}

	count, err := storage.CountSucceededDonations(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	empty, err := storage.ListSucceededDonationsForCreator(ctx, donor.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
