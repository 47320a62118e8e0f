package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brenofinance/dashboard/internal/modules/networth"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	gotUser string
	gotDays int
	err     error
}

func (s *stubService) History(_ context.Context, userID string, days int) (networth.Series, error) {
	s.gotUser = userID
	s.gotDays = days
	if s.err != nil {
		return networth.Series{}, s.err
	}
	return networth.Series{
		Currency: "USD",
		Points:   []networth.Point{{Date: "2025-01-10", Accounts: 1, Investments: 2, Total: 3}},
	}, nil
}

func newRouter(service HistoryService) http.Handler {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	r := chi.NewRouter()
	r.Use(users.Identify("user-1"))
	NewHandler(service, logger).RegisterRoutes(r)
	return r
}

func TestHandleGetNetWorth(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		expectedDays int
	}{
		{name: "default", query: "", expectedDays: 90},
		{name: "explicit", query: "?days=30", expectedDays: 30},
		{name: "unparsable", query: "?days=abc", expectedDays: 90},
		{name: "out of range passes through for clamping", query: "?days=1000", expectedDays: 1000},
		{name: "fractional", query: "?days=14.5", expectedDays: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubService{}
			router := newRouter(service)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/net-worth"+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedDays, service.gotDays)
			assert.Equal(t, "user-1", service.gotUser)
			assert.JSONEq(t,
				`{"currency":"USD","points":[{"date":"2025-01-10","accounts":1,"investments":2,"total":3}]}`,
				w.Body.String())
		})
	}
}

func TestHandleGetNetWorth_StoreError(t *testing.T) {
	router := newRouter(&stubService{err: errors.New("disk I/O error")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/net-worth", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Unable to build net worth history"}`, w.Body.String())
}
