package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/modules/users"
	testingpkg "github.com/brenofinance/dashboard/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	db, _ := testingpkg.NewTestDB(t, "app")
	testingpkg.InsertUser(t, db.Conn(), testingpkg.NewUserFixture())
	testingpkg.InsertAccounts(t, db.Conn(), testingpkg.NewAccountFixtures()...)

	logger := zerolog.New(nil).Level(zerolog.Disabled)
	clock := func() time.Time { return time.Date(2025, time.March, 3, 23, 30, 0, 0, time.UTC) }
	handler := NewHandler(accounts.NewRepository(db.Conn(), logger), clock, logger)

	r := chi.NewRouter()
	r.Use(users.Identify(testingpkg.TestUserID))
	handler.RegisterRoutes(r)
	return r
}

func TestHandleList(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/accounts", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var list []domain.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestHandleList_OtherUserSeesNothing(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest("GET", "/accounts", nil)
	req.Header.Set(users.UserIDHeader, "someone-else")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandleCreate(t *testing.T) {
	router := setupRouter(t)

	body := `{"name":"Travel Wallet","type":"WALLET","currency":"CAD","balance":250.5}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/accounts", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	_, err := uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, testingpkg.TestUserID, created.UserID)
	assert.Equal(t, "2025-03-03", created.LastUpdated)
	assert.Equal(t, 250.5, created.Balance)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/accounts", nil))
	var list []domain.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 3)
}

func TestHandleCreate_Invalid(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing balance", body: `{"name":"Wallet","type":"WALLET","currency":"USD"}`},
		{name: "unknown type", body: `{"name":"Wallet","type":"LOAN","currency":"USD","balance":1}`},
		{name: "unsupported currency", body: `{"name":"Wallet","type":"WALLET","currency":"EUR","balance":1}`},
		{name: "malformed", body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("POST", "/accounts", bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"message":"Invalid account payload"}`, w.Body.String())
		})
	}
}
