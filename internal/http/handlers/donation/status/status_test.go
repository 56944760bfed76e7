package status

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/AleFeri/cof-me-up/internal/http/middlewarectx"
	"github.com/AleFeri/cof-me-up/internal/models"
)

const donationID = "6f1c2d3e-4a5b-4c6d-8e7f-9a0b1c2d3e4f"

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UpdateStatus(ctx context.Context, identity models.Identity, id, reported string) (*models.Donation, error) {
	args := m.Called(ctx, identity, id, reported)
	d, _ := args.Get(0).(*models.Donation)
	return d, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestStatusHandler(t *testing.T) {
	donor := models.Identity{ID: "donor-1"}

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name: "succeeded reported",
			body: `{"donationId":"` + donationID + `","status":"succeeded"}`,
			setupMock: func(m *ServiceMock) {
				m.On("UpdateStatus", mock.Anything, donor, donationID, "succeeded").
					Return(&models.Donation{ID: donationID, Status: models.DonationStatusSucceeded}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"OK","data":{"id":"` + donationID + `","status":"succeeded"}}`,
		},
		{
			name: "stale report keeps terminal status",
			body: `{"donationId":"` + donationID + `","status":"processing"}`,
			setupMock: func(m *ServiceMock) {
				m.On("UpdateStatus", mock.Anything, donor, donationID, "processing").
					Return(&models.Donation{ID: donationID, Status: models.DonationStatusFailed}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"OK","data":{"id":"` + donationID + `","status":"failed"}}`,
		},
		{
			name:           "donation id is not a uuid",
			body:           `{"donationId":"abc","status":"succeeded"}`,
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       `{"status":"Error","error":"field DonationID can contain only uuid"}`,
		},
		{
			name: "unknown donation",
			body: `{"donationId":"` + donationID + `","status":"succeeded"}`,
			setupMock: func(m *ServiceMock) {
				m.On("UpdateStatus", mock.Anything, donor, donationID, "succeeded").
					Return(nil, fmt.Errorf("donation.UpdateStatus: %w", models.ErrNotFound))
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       `{"status":"Error","error":"not found"}`,
		},
		{
			name: "another donor",
			body: `{"donationId":"` + donationID + `","status":"succeeded"}`,
			setupMock: func(m *ServiceMock) {
				m.On("UpdateStatus", mock.Anything, donor, donationID, "succeeded").
					Return(nil, fmt.Errorf("donation.UpdateStatus: %w", models.ErrUnauthorized))
			},
			wantStatusCode: http.StatusForbidden,
			wantBody:       `{"status":"Error","error":"unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/donations/status", bytes.NewBufferString(tt.body))
			req = req.WithContext(middlewarectx.WithIdentity(req.Context(), donor))
			rr := httptest.NewRecorder()

			New(newNoopLogger(), svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
