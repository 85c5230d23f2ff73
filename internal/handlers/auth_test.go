package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brightforge-studio/brightforge/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetTokenStore(t *testing.T) *auth.MemoryResetTokenStore {
	t.Helper()

	prev := ResetTokens
	store := auth.NewMemoryResetTokenStore()
	ResetTokens = store
	t.Cleanup(func() { ResetTokens = prev })
	return store
}

// The admin flag comes from the roles table, not from the identity.
func TestRoleReportsAdminFromRoleTable(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_roles"`).
		WithArgs(1, "admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	r := newTestRouter(http.MethodGet, "/api/auth/role", setUser(1), Role)

	w := doJSON(t, r, http.MethodGet, "/api/auth/role", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"is_admin": true}`, w.Body.String())
}

func TestRoleReportsNonAdmin(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "user_roles"`).
		WithArgs(1, "admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	r := newTestRouter(http.MethodGet, "/api/auth/role", setUser(1), Role)

	w := doJSON(t, r, http.MethodGet, "/api/auth/role", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"is_admin": false}`, w.Body.String())
}

// The response does not reveal whether the address exists.
func TestForgotPasswordUnknownEmail(t *testing.T) {
	mock := setupMockDB(t)
	resetTokenStore(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("ghost@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	r := newTestRouter(http.MethodPost, "/api/auth/forgot_password", ForgotPassword)

	w := doJSON(t, r, http.MethodPost, "/api/auth/forgot_password", map[string]string{
		"email": "ghost@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestResetPasswordWithValidToken(t *testing.T) {
	mock := setupMockDB(t)
	store := resetTokenStore(t)

	require.NoError(t, store.Save(context.Background(), "tok-1", 7))

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := newTestRouter(http.MethodPost, "/api/auth/reset_password", ResetPassword)

	w := doJSON(t, r, http.MethodPost, "/api/auth/reset_password", map[string]string{
		"token":        "tok-1",
		"new_password": "newpass123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())

	// The token is single use.
	_, err := store.Consume(context.Background(), "tok-1")
	assert.ErrorIs(t, err, auth.ErrTokenNotFound)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	mock := setupMockDB(t)
	resetTokenStore(t)

	r := newTestRouter(http.MethodPost, "/api/auth/reset_password", ResetPassword)

	w := doJSON(t, r, http.MethodPost, "/api/auth/reset_password", map[string]string{
		"token":        "missing",
		"new_password": "newpass123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordWeakPassword(t *testing.T) {
	setupMockDB(t)
	store := resetTokenStore(t)

	require.NoError(t, store.Save(context.Background(), "tok-1", 7))

	r := newTestRouter(http.MethodPost, "/api/auth/reset_password", ResetPassword)

	w := doJSON(t, r, http.MethodPost, "/api/auth/reset_password", map[string]string{
		"token":        "tok-1",
		"new_password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Validation failed before the token was consumed.
	userID, err := store.Consume(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}
