package remove

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/AleFeri/cof-me-up/internal/http/middlewarectx"
	"github.com/AleFeri/cof-me-up/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Delete(ctx context.Context, identity models.Identity, postID string) error {
	args := m.Called(ctx, identity, postID)
	return args.Error(0)
}

func TestRemovePostHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	author := models.Identity{ID: "creator-1", IsCreator: true}

	tests := []struct {
		name           string
		serviceErr     error
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "deleted",
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"OK","data":{"id":"post-1"}}`,
		},
		{
			name:           "unknown post",
			serviceErr:     fmt.Errorf("post.Delete: %w", models.ErrNotFound),
			wantStatusCode: http.StatusNotFound,
			wantBody:       `{"status":"Error","error":"not found"}`,
		},
		{
			name:           "not the author",
			serviceErr:     fmt.Errorf("post.Delete: %w", models.ErrUnauthorized),
			wantStatusCode: http.StatusForbidden,
			wantBody:       `{"status":"Error","error":"unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Delete", mock.Anything, author, "post-1").Return(tt.serviceErr)

			r := chi.NewRouter()
			r.Delete("/posts/{id}", New(logger, svc).ServeHTTP)

			req := httptest.NewRequest(http.MethodDelete, "/posts/post-1", nil)
			req = req.WithContext(middlewarectx.WithIdentity(req.Context(), author))
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
