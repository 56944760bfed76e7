package webhook

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

	"github.com/AleFeri/cof-me-up/internal/models"
	"github.com/AleFeri/cof-me-up/internal/paymentprovider"
)

type VerifierMock struct {
	mock.Mock
}

func (m *VerifierMock) VerifyAndParse(payload []byte, signature string) (*paymentprovider.Event, error) {
	args := m.Called(payload, signature)
	event, _ := args.Get(0).(*paymentprovider.Event)
	return event, args.Error(1)
}

type ReconcilerMock struct {
	mock.Mock
}

func (m *ReconcilerMock) ReconcileBySignal(ctx context.Context, intentID, reported string) error {
	args := m.Called(ctx, intentID, reported)
	return args.Error(0)
}

type MetricsMock struct {
	mock.Mock
}

func (m *MetricsMock) WebhookEvent(eventType, result string) {
	m.Called(eventType, result)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestStripeWebhook(t *testing.T) {
	const payload = `{"id":"evt_1"}`

	tests := []struct {
		name           string
		setupMocks     func(v *VerifierMock, r *ReconcilerMock, m *MetricsMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name: "succeeded event reconciled",
			setupMocks: func(v *VerifierMock, r *ReconcilerMock, m *MetricsMock) {
				v.On("VerifyAndParse", []byte(payload), "t=1,v1=sig").Return(&paymentprovider.Event{
					ID: "evt_1", Type: paymentprovider.EventPaymentIntentSucceeded,
					IntentID: "pi_1", Signal: paymentprovider.SignalSucceeded,
				}, nil)
				r.On("ReconcileBySignal", mock.Anything, "pi_1", "succeeded").Return(nil)
				m.On("WebhookEvent", paymentprovider.EventPaymentIntentSucceeded, resultProcessed).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"received":true}`,
		},
		{
			name: "unhandled event acknowledged",
			setupMocks: func(v *VerifierMock, _ *ReconcilerMock, m *MetricsMock) {
				v.On("VerifyAndParse", []byte(payload), "t=1,v1=sig").
					Return(&paymentprovider.Event{ID: "evt_2", Type: "charge.refunded"}, nil)
				m.On("WebhookEvent", "charge.refunded", resultIgnored).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"received":true}`,
		},
		{
			name: "bad signature",
			setupMocks: func(v *VerifierMock, _ *ReconcilerMock, m *MetricsMock) {
				v.On("VerifyAndParse", []byte(payload), "t=1,v1=sig").
					Return(nil, fmt.Errorf("paymentprovider.VerifyAndParse: %w", models.ErrWebhookVerification))
				m.On("WebhookEvent", "unknown", resultRejected).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"status":"Error","error":"webhook verification failed"}`,
		},
		{
			name: "storage failure asks for redelivery",
			setupMocks: func(v *VerifierMock, r *ReconcilerMock, m *MetricsMock) {
				v.On("VerifyAndParse", []byte(payload), "t=1,v1=sig").Return(&paymentprovider.Event{
					ID: "evt_3", Type: paymentprovider.EventPaymentIntentFailed,
					IntentID: "pi_3", Signal: paymentprovider.SignalPaymentFailed,
				}, nil)
				r.On("ReconcileBySignal", mock.Anything, "pi_3", "payment_failed").
					Return(fmt.Errorf("donation.ReconcileBySignal: %w", models.ErrPersistence))
				m.On("WebhookEvent", paymentprovider.EventPaymentIntentFailed, resultFailed).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"status":"Error","error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, reconciler, metrics := new(VerifierMock), new(ReconcilerMock), new(MetricsMock)
			tt.setupMocks(verifier, reconciler, metrics)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBufferString(payload))
			req.Header.Set("Stripe-Signature", "t=1,v1=sig")
			rr := httptest.NewRecorder()

			New(newNoopLogger(), verifier, reconciler, metrics).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			verifier.AssertExpectations(t)
			reconciler.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}

func TestStripeWebhook_NilMetrics(t *testing.T) {
	verifier, reconciler := new(VerifierMock), new(ReconcilerMock)
	verifier.On("VerifyAndParse", mock.Anything, "").
		Return(&paymentprovider.Event{ID: "evt_4", Type: "customer.created"}, nil)

	rr := httptest.NewRecorder()
	New(newNoopLogger(), verifier, reconciler, nil).
		ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBufferString("{}")))

	assert.Equal(t, http.StatusOK, rr.Code)
	reconciler.AssertNotCalled(t, "ReconcileBySignal", mock.Anything, mock.Anything, mock.Anything)
}
