package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brightforge-studio/brightforge/internal/leadcapture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLeadCapture(t *testing.T) {
	t.Helper()

	prev := LeadCapture
	LeadCapture = leadcapture.NewCoordinator(leadcapture.NewMemorySessionStore())
	t.Cleanup(func() { LeadCapture = prev })
}

func TestLeadCaptureEventShowsOncePerSession(t *testing.T) {
	resetLeadCapture(t)

	r := newTestRouter(http.MethodPost, "/api/lead-capture/events", LeadCaptureEvent)

	body := map[string]interface{}{
		"session_id":     "sess-1",
		"page":           "/",
		"variant":        "scroll",
		"signal":         "scroll",
		"scroll_percent": 92,
	}

	w := doJSON(t, r, http.MethodPost, "/api/lead-capture/events", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"show": true}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/lead-capture/events", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"show": false}`, w.Body.String())
}

func TestLeadCaptureEventSuppressedForSignedInUser(t *testing.T) {
	resetLeadCapture(t)

	r := newTestRouter(http.MethodPost, "/api/lead-capture/events", setUser(1), LeadCaptureEvent)

	w := doJSON(t, r, http.MethodPost, "/api/lead-capture/events", map[string]interface{}{
		"session_id":     "sess-1",
		"page":           "/",
		"variant":        "scroll",
		"signal":         "scroll",
		"scroll_percent": 92,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"show": false}`, w.Body.String())
}

// A successful submit stores the lead under the lead magnet project type and
// responds with the guide as a download.
func TestLeadCaptureSubmit(t *testing.T) {
	resetLeadCapture(t)
	mock := setupMockDB(t)

	guide := filepath.Join(t.TempDir(), "guide.txt")
	require.NoError(t, os.WriteFile(guide, []byte("Step 1: define your goal.\n"), 0o600))
	t.Setenv("GUIDE_PATH", guide)

	mock.ExpectQuery(`INSERT INTO "contact_submissions"`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Jane Doe", "jane@example.com", "Requested the website guide", "Lead Magnet Download", "", nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	r := newTestRouter(http.MethodPost, "/api/lead-capture/submit", LeadCaptureSubmit)

	w := doJSON(t, r, http.MethodPost, "/api/lead-capture/submit", map[string]string{
		"session_id": "sess-1",
		"name":       "Jane Doe",
		"email":      "jane@example.com",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "10-Essential-Steps-Website-Guide.txt")
	assert.Equal(t, "Step 1: define your goal.\n", w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadCaptureSubmitInvalidEmail(t *testing.T) {
	resetLeadCapture(t)
	mock := setupMockDB(t)

	r := newTestRouter(http.MethodPost, "/api/lead-capture/submit", LeadCaptureSubmit)

	w := doJSON(t, r, http.MethodPost, "/api/lead-capture/submit", map[string]string{
		"session_id": "sess-1",
		"name":       "Jane Doe",
		"email":      "nope",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
