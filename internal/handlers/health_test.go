package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheckHandler(t *testing.T) {
	rr := serve(http.MethodGet, "/health-check", "/health-check", "", NewHealthCheckHandler())

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"status":"ok","info":{"api":{"status":"up"}},"error":{},"details":{"api":{"status":"up"}}}`,
		rr.Body.String())
}

func TestDBHealthCheckHandler(t *testing.T) {
	tests := []struct {
		name         string
		pingErr      error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "database up",
			expectedCode: http.StatusOK,
			expectedBody: `{"status":"ok","info":{"database":{"status":"up"}},"error":{},"details":{"database":{"status":"up"}}}`,
		},
		{
			name:         "database down",
			pingErr:      errors.New("connection refused"),
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"status":"error","info":{},"error":{"database":{"status":"down","message":"connection refused"}},"details":{"database":{"status":"down","message":"connection refused"}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pinger := NewMockPinger(ctrl)
			pinger.EXPECT().PingContext(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return tt.pingErr
			})

			rr := serve(http.MethodGet, "/health-check/db", "/health-check/db", "",
				NewDBHealthCheckHandler(pinger, time.Second))

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}
