package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakerbureau/internal/models"
)

func newDealRepoTest(t *testing.T) (*DealRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDealRepository(db), mock
}

func dealTestRows(id int, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "owner_id", "client_name", "client_email", "client_phone", "company",
		"event_title", "event_date", "event_location", "event_type", "attendee_count",
		"deal_value", "status", "priority", "notes", "firm_offer_id", "created_at", "updated_at",
	}).AddRow(
		id, 1, "Dana Reyes", "dana@acme.example", "", "Acme",
		"Acme Summit", nil, "Austin, TX", "Keynote", 300,
		15000.0, status, "high", "", nil, now, now,
	)
}

func TestDealGetByIDFound(t *testing.T) {
	repo, mock := newDealRepoTest(t)

	mock.ExpectQuery("FROM deals WHERE id").
		WithArgs(42).
		WillReturnRows(dealTestRows(42, models.DealStatusNegotiation))

	d, err := repo.GetByID(42)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 42, d.ID)
	assert.Equal(t, "Dana Reyes", d.ClientName)
	assert.Equal(t, models.DealStatusNegotiation, d.Status)
}

func TestDealGetByIDMissingReturnsNil(t *testing.T) {
	repo, mock := newDealRepoTest(t)

	mock.ExpectQuery("FROM deals WHERE id").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	d, err := repo.GetByID(99)
	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestDealDeleteMissingRow(t *testing.T) {
	repo, mock := newDealRepoTest(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM deal_events").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE proposals SET deal_id = NULL").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM deals").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A deal whose status ever changed carries deal_events rows; deletion must
// clear them (and detach proposals) in the same transaction or the deal
// row delete is rejected by the foreign keys.
func TestDealDeleteClearsAuditTrailAndDetachesProposals(t *testing.T) {
	repo, mock := newDealRepoTest(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM deal_events").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE proposals SET deal_id = NULL").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM deals").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(42)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDealListAppliesFilters(t *testing.T) {
	repo, mock := newDealRepoTest(t)

	mock.ExpectQuery("FROM deals WHERE 1=1 AND status = .+ AND priority = .+").
		WithArgs(models.DealStatusQualified, "high", 50, 0).
		WillReturnRows(dealTestRows(42, models.DealStatusQualified))

	deals, err := repo.List(models.DealStatusQualified, "high", 50, 0)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, models.DealStatusQualified, deals[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDealListNoFilters(t *testing.T) {
	repo, mock := newDealRepoTest(t)

	mock.ExpectQuery("FROM deals WHERE 1=1 ORDER BY created_at").
		WithArgs(100, 0).
		WillReturnRows(dealTestRows(1, models.DealStatusLead))

	deals, err := repo.List("", "", 100, 0)
	require.NoError(t, err)
	assert.Len(t, deals, 1)
}
