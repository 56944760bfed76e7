package update

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/AleFeri/cof-me-up/internal/http/middlewarectx"
	"github.com/AleFeri/cof-me-up/internal/models"
	"github.com/AleFeri/cof-me-up/internal/services/profile"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Update(ctx context.Context, identity models.Identity, in profile.UpdateInput) (*models.Profile, error) {
	args := m.Called(ctx, identity, in)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func TestUpdateProfileHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := models.Identity{ID: "user-1", Name: "Old"}

	tests := []struct {
		name           string
		body           string
		withIdentity   bool
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantContains   string
	}{
		{
			name:         "bio updated",
			body:         `{"bio":"I draw things"}`,
			withIdentity: true,
			setupMock: func(m *ServiceMock) {
				m.On("Update", mock.Anything, user, profile.UpdateInput{Bio: "I draw things"}).
					Return(&models.Profile{ID: "user-1", Name: "Old", Bio: "I draw things"}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantContains:   `"bio":"I draw things"`,
		},
		{
			name:           "invalid image",
			body:           `{"image":"not-a-url"}`,
			withIdentity:   true,
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantContains:   `field Image must be a valid url`,
		},
		{
			name:           "unauthenticated",
			body:           `{"bio":"x"}`,
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantContains:   `"error":"unauthorized"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPut, "/me/profile", bytes.NewBufferString(tt.body))
			if tt.withIdentity {
				req = req.WithContext(middlewarectx.WithIdentity(req.Context(), user))
			}
			rr := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantContains)
			svc.AssertExpectations(t)
		})
	}
}
