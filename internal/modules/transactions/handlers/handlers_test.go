package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brenofinance/dashboard/internal/modules/transactions"
	"github.com/brenofinance/dashboard/internal/modules/users"
	testingpkg "github.com/brenofinance/dashboard/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	db, _ := testingpkg.NewTestDB(t, "app")
	testingpkg.SeedFixtures(t, db.Conn())

	logger := zerolog.New(nil).Level(zerolog.Disabled)
	handler := NewHandler(transactions.NewRepository(db.Conn(), logger), logger)

	r := chi.NewRouter()
	r.Use(users.Identify(testingpkg.TestUserID))
	handler.RegisterRoutes(r)
	return r
}

func TestHandleList(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/transactions?type=EXPENSE&pageSize=1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var page transactions.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "tx-c", page.Items[0].ID)
}

func TestHandleCreate(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "expense",
			body:           `{"accountId":"acc-a","categoryId":"cat-4","description":"Dinner","type":"EXPENSE","amount":42,"date":"2025-01-09"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown account",
			body:           `{"accountId":"acc-zzz","categoryId":"cat-4","description":"Dinner","type":"EXPENSE","amount":42,"date":"2025-01-09"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid payload",
			body:           `{"accountId":"acc-a","description":"D","type":"EXPENSE","amount":42,"date":"2025-01-09"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("POST", "/transactions", bytes.NewBufferString(tt.body)))
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var tx map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tx))
				assert.Equal(t, -42.0, tx["amount"])
				assert.Equal(t, "USD", tx["currency"])
				assert.NotEmpty(t, tx["id"])
			}
		})
	}
}
