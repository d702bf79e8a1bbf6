package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
)

func newDealServiceTest(t *testing.T) (*DealService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewDealService(
		repositories.NewDealRepository(db),
		repositories.NewDealEventRepository(db),
		NewProjectService(repositories.NewProjectRepository(db)),
		NewNotifier("", 0, zap.NewNop()),
		zap.NewNop(),
	)
	return svc, mock
}

func strPtr(s string) *string { return &s }

func TestApplyUpdateWonTransitionSynthesizesProject(t *testing.T) {
	svc, mock := newDealServiceTest(t)

	current := &models.Deal{
		ID:            42,
		ClientName:    "Dana Reyes",
		EventTitle:    "Acme Leadership Summit",
		EventType:     "Keynote",
		EventLocation: "Austin, TX",
		DealValue:     15000,
		Status:        models.DealStatusNegotiation,
	}

	mock.ExpectExec("UPDATE deals").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO deal_events").
		WithArgs(42, models.DealEventStatusChange, models.DealStatusNegotiation, models.DealStatusWon, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("INSERT INTO projects").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectExec("INSERT INTO deal_events").
		WithArgs(42, models.DealEventProjectCreated, "", "", "project #9", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	updated, err := svc.ApplyUpdate(current, &models.DealPatch{Status: strPtr(models.DealStatusWon)})
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusWon, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyUpdateNonWonTransitionSkipsSynthesis(t *testing.T) {
	svc, mock := newDealServiceTest(t)

	current := &models.Deal{ID: 5, ClientName: "Acme", Status: models.DealStatusLead}

	mock.ExpectExec("UPDATE deals").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO deal_events").
		WithArgs(5, models.DealEventStatusChange, models.DealStatusLead, models.DealStatusQualified, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	updated, err := svc.ApplyUpdate(current, &models.DealPatch{Status: strPtr(models.DealStatusQualified)})
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusQualified, updated.Status)
	// no INSERT INTO projects expectation: synthesis must not run
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyUpdateWonToWonDoesNotResynthesize(t *testing.T) {
	svc, mock := newDealServiceTest(t)

	current := &models.Deal{ID: 6, ClientName: "Acme", Status: models.DealStatusWon}

	mock.ExpectExec("UPDATE deals").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := svc.ApplyUpdate(current, &models.DealPatch{
		Status:    strPtr(models.DealStatusWon),
		DealValue: func() *float64 { v := 20000.0; return &v }(),
	})
	require.NoError(t, err)
	assert.Equal(t, 20000.0, updated.DealValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyUpdateSynthesisFailureIsSwallowed(t *testing.T) {
	svc, mock := newDealServiceTest(t)

	current := &models.Deal{ID: 42, ClientName: "Acme", Status: models.DealStatusNegotiation}

	mock.ExpectExec("UPDATE deals").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO deal_events").
		WithArgs(42, models.DealEventStatusChange, models.DealStatusNegotiation, models.DealStatusWon, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("INSERT INTO projects").
		WillReturnError(errors.New("projects table unavailable"))
	mock.ExpectExec("INSERT INTO deal_events").
		WithArgs(42, models.DealEventProjectCreateErr, "", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	// the deal update still succeeds; the failure leaves an audit row
	updated, err := svc.ApplyUpdate(current, &models.DealPatch{Status: strPtr(models.DealStatusWon)})
	require.NoError(t, err)
	assert.Equal(t, models.DealStatusWon, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDefaultsToLead(t *testing.T) {
	svc, mock := newDealServiceTest(t)

	mock.ExpectQuery("INSERT INTO deals").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	deal := &models.Deal{ClientName: "Walk-in Inquiry"}
	id, err := svc.Create(deal)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Equal(t, models.DealStatusLead, deal.Status)
	assert.Equal(t, "medium", deal.Priority)
}

func TestApplyDealPatchPartialMerge(t *testing.T) {
	d := &models.Deal{
		ID:          1,
		ClientName:  "Original Client",
		ClientEmail: "orig@example.com",
		DealValue:   5000,
		Status:      models.DealStatusLead,
		Priority:    "medium",
	}

	applyDealPatch(d, &models.DealPatch{
		DealValue: func() *float64 { v := 7500.0; return &v }(),
		Priority:  strPtr("high"),
	})

	assert.Equal(t, "Original Client", d.ClientName)
	assert.Equal(t, "orig@example.com", d.ClientEmail)
	assert.Equal(t, 7500.0, d.DealValue)
	assert.Equal(t, models.DealStatusLead, d.Status)
	assert.Equal(t, "high", d.Priority)
}
