package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brightforge-studio/brightforge/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectOwnedProject(mock sqlmock.Sqlmock, projectID, userID uint) {
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE \(id = \$1 AND user_id = \$2\)`).
		WithArgs(projectID, userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "status"}).
			AddRow(projectID, userID, "Marketing Site", "in_progress"))
}

func TestUpdateMilestoneSetsCompletionDate(t *testing.T) {
	mock := setupMockDB(t)

	expectOwnedProject(mock, 10, 1)

	mock.ExpectQuery(`SELECT \* FROM "milestones" WHERE \(id = \$1 AND project_id = \$2\)`).
		WithArgs(3, 10, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "status"}).
			AddRow(3, 10, "Design review", "in_progress"))

	mock.ExpectExec(`UPDATE "milestones" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := newTestRouter(http.MethodPatch, "/api/projects/:project_id/milestones/:milestone_id", setUser(1), UpdateMilestone)

	w := doJSON(t, r, http.MethodPatch, "/api/projects/10/milestones/3", map[string]string{
		"title":  "Design review",
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var milestone models.Milestone
	decodeBody(t, w, &milestone)
	assert.Equal(t, "completed", milestone.Status)
	require.NotNil(t, milestone.CompletionDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMilestoneClearsCompletionDate(t *testing.T) {
	mock := setupMockDB(t)

	expectOwnedProject(mock, 10, 1)

	mock.ExpectQuery(`SELECT \* FROM "milestones" WHERE \(id = \$1 AND project_id = \$2\)`).
		WithArgs(3, 10, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "status", "completion_date"}).
			AddRow(3, 10, "Design review", "completed", time.Now()))

	mock.ExpectExec(`UPDATE "milestones" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := newTestRouter(http.MethodPatch, "/api/projects/:project_id/milestones/:milestone_id", setUser(1), UpdateMilestone)

	w := doJSON(t, r, http.MethodPatch, "/api/projects/10/milestones/3", map[string]string{
		"title":  "Design review",
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var milestone models.Milestone
	decodeBody(t, w, &milestone)
	assert.Equal(t, "in_progress", milestone.Status)
	assert.Nil(t, milestone.CompletionDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMilestonesEmpty(t *testing.T) {
	mock := setupMockDB(t)

	expectOwnedProject(mock, 10, 1)

	mock.ExpectQuery(`SELECT \* FROM "milestones" WHERE project_id = \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "status"}))

	r := newTestRouter(http.MethodGet, "/api/projects/:project_id/milestones", setUser(1), ListMilestones)

	w := doJSON(t, r, http.MethodGet, "/api/projects/10/milestones", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
