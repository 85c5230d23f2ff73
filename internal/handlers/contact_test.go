package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A malformed address is rejected before anything touches the database.
func TestCreateContactSubmissionInvalidEmail(t *testing.T) {
	mock := setupMockDB(t)

	r := newTestRouter(http.MethodPost, "/api/contact", CreateContactSubmission)

	w := doJSON(t, r, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "not-an-email",
		"message": "Hi there",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email address")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateContactSubmissionAnonymous(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO "contact_submissions"`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Jane Doe", "jane@example.com", "I need a new site", "E-commerce", "$5k-$10k", nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	r := newTestRouter(http.MethodPost, "/api/contact", CreateContactSubmission)

	w := doJSON(t, r, http.MethodPost, "/api/contact", map[string]string{
		"name":         "Jane Doe",
		"email":        " Jane@Example.COM ",
		"message":      "I need a new site",
		"project_type": "E-commerce",
		"budget":       "$5k-$10k",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateContactSubmissionLinksSignedInUser(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO "contact_submissions"`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Jane Doe", "jane@example.com", "Question about my project", "", "", 42,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	r := newTestRouter(http.MethodPost, "/api/contact", setUser(42), CreateContactSubmission)

	w := doJSON(t, r, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": "Question about my project",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
