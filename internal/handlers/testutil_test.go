package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brightforge-studio/brightforge/db"
	"github.com/brightforge-studio/brightforge/internal/middleware"
	"github.com/brightforge-studio/brightforge/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() {
		db.DB = prev
		sqlDB.Close()
	})

	return mock
}

// setUser mimics what AuthMiddleware leaves in the context.
func setUser(userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{ID: userID, Email: "test@example.com"})
	}
}

func newTestRouter(method, path string, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Handle(method, path, handlers...)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(http.MethodGet, "/api/health", HealthCheck)

	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
