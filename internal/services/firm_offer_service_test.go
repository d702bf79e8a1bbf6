package services

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
)

func newFirmOfferServiceTest(t *testing.T) (*FirmOfferService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewFirmOfferService(
		repositories.NewFirmOfferRepository(db),
		repositories.NewProposalRepository(db),
		repositories.NewSpeakerRepository(db),
		nil,
		NewNotifier("", 0, zap.NewNop()),
		"https://bureau.example.com",
		zap.NewNop(),
	)
	return svc, mock
}

var firmOfferTestColumns = []string{
	"id", "proposal_id", "speaker_id", "event_overview", "speaker_program", "financial_details",
	"status", "speaker_access_token", "speaker_viewed_at", "speaker_confirmed",
	"speaker_notes", "speaker_responded_at", "created_at", "updated_at",
}

func pendingOfferRow(id int, viewedAt *time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(firmOfferTestColumns).AddRow(
		id, 10, nil, []byte(`{"event":"Summit"}`), []byte(`{}`), []byte(`{"fee":12000}`),
		models.FirmOfferStatusPending, "tok-abc", viewedAt, nil,
		"", nil, now, now,
	)
}

func respondedOfferRow(id int, confirmed bool) *sqlmock.Rows {
	now := time.Now()
	status := models.FirmOfferStatusDeclined
	if confirmed {
		status = models.FirmOfferStatusConfirmed
	}
	return sqlmock.NewRows(firmOfferTestColumns).AddRow(
		id, 10, nil, []byte(`{}`), []byte(`{}`), []byte(`{}`),
		status, "tok-abc", &now, confirmed,
		"prior notes", &now, now, now,
	)
}

func proposalRow(id int, status string) *sqlmock.Rows {
	now := time.Now()
	cols := []string{
		"id", "deal_id", "client_name", "client_email", "event_title",
		"speaker_fee", "travel_expenses", "total_amount", "status", "access_token",
		"valid_until", "sent_at", "viewed_at", "created_at", "updated_at",
	}
	return sqlmock.NewRows(cols).AddRow(
		id, nil, "Dana Reyes", "dana@acme.example", "Acme Summit",
		12000.0, 1500.0, 13500.0, status, "client-tok",
		nil, nil, nil, now, now,
	)
}

func TestFirmOfferCreateUnknownProposal(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM proposals WHERE id").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Create(&models.FirmOffer{ProposalID: 99})
	assert.ErrorIs(t, err, ErrProposalNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFirmOfferCreateDuplicate(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM proposals WHERE id").
		WithArgs(10).
		WillReturnRows(proposalRow(10, models.ProposalStatusAccepted))
	mock.ExpectQuery("FROM firm_offers WHERE proposal_id").
		WithArgs(10).
		WillReturnRows(pendingOfferRow(3, nil))

	_, err := svc.Create(&models.FirmOffer{ProposalID: 10})
	assert.ErrorIs(t, err, ErrOfferExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFirmOfferCreateMintsTokenAndDefaults(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM proposals WHERE id").
		WithArgs(10).
		WillReturnRows(proposalRow(10, models.ProposalStatusAccepted))
	mock.ExpectQuery("FROM firm_offers WHERE proposal_id").
		WithArgs(10).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO firm_offers").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	o := &models.FirmOffer{ProposalID: 10}
	id, err := svc.Create(o)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, models.FirmOfferStatusPending, o.Status)
	assert.Len(t, o.SpeakerAccessToken, 64) // 32 random bytes, hex encoded
	assert.Equal(t, json.RawMessage("{}"), o.EventOverview)
	assert.Equal(t, json.RawMessage("{}"), o.SpeakerProgram)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerViewStampsFirstView(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE speaker_access_token").
		WithArgs("tok-abc").
		WillReturnRows(pendingOfferRow(3, nil))
	mock.ExpectExec("UPDATE firm_offers SET speaker_viewed_at").
		WithArgs(sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	view, err := svc.SpeakerView("tok-abc")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.NotNil(t, view.Confirmation.ViewedAt)
	assert.Equal(t, models.FirmOfferStatusPending, view.Confirmation.Status)
	assert.False(t, view.ReadOnly)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerViewRepeatKeepsFirstTimestamp(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	firstView := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("FROM firm_offers WHERE speaker_access_token").
		WithArgs("tok-abc").
		WillReturnRows(pendingOfferRow(3, &firstView))

	// no UPDATE expected: the stamp is write-once
	view, err := svc.SpeakerView("tok-abc")
	require.NoError(t, err)
	require.NotNil(t, view.Confirmation.ViewedAt)
	assert.True(t, view.Confirmation.ViewedAt.Equal(firstView))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerViewUnknownToken(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE speaker_access_token").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	view, err := svc.SpeakerView("nope")
	assert.NoError(t, err)
	assert.Nil(t, view)
}

func TestSpeakerRespondConfirms(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE speaker_access_token").
		WithArgs("tok-abc").
		WillReturnRows(pendingOfferRow(3, nil))
	mock.ExpectExec("UPDATE firm_offers").
		WithArgs(models.FirmOfferStatusConfirmed, true, "Looking forward to it!", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	o, err := svc.SpeakerRespond("tok-abc", true, "Looking forward to it!")
	require.NoError(t, err)
	assert.Equal(t, models.FirmOfferStatusConfirmed, o.Status)
	require.NotNil(t, o.SpeakerConfirmed)
	assert.True(t, *o.SpeakerConfirmed)
	assert.Equal(t, "Looking forward to it!", o.SpeakerNotes)
	assert.NotNil(t, o.SpeakerRespondedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerRespondLatchIsOneWay(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE speaker_access_token").
		WithArgs("tok-abc").
		WillReturnRows(respondedOfferRow(3, true))

	// a decline after a confirm must bounce without touching the row
	_, err := svc.SpeakerRespond("tok-abc", false, "changed my mind")
	assert.ErrorIs(t, err, ErrAlreadyResponded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerRespondConcurrentSubmissionLoses(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	// the in-memory copy is still pending, but another request latched the
	// row first: zero rows affected
	mock.ExpectQuery("FROM firm_offers WHERE speaker_access_token").
		WithArgs("tok-abc").
		WillReturnRows(pendingOfferRow(3, nil))
	mock.ExpectExec("UPDATE firm_offers").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.SpeakerRespond("tok-abc", true, "")
	assert.ErrorIs(t, err, ErrAlreadyResponded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdateConfirmationFrozenAfterResponse(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE id").
		WithArgs(3).
		WillReturnRows(respondedOfferRow(3, false))

	confirmed := true
	_, err := svc.AdminUpdate(3, &models.FirmOfferPatch{SpeakerConfirmed: &confirmed})
	assert.ErrorIs(t, err, ErrAlreadyResponded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdateStatusCannotForgeConfirmation(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE id").
		WithArgs(3).
		WillReturnRows(pendingOfferRow(3, nil))

	// the offer is pending: writing the terminal label directly would leave
	// status claiming a response while speaker_confirmed stays NULL
	status := models.FirmOfferStatusConfirmed
	_, err := svc.AdminUpdate(3, &models.FirmOfferPatch{Status: &status})
	assert.ErrorIs(t, err, ErrConfirmationViaStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdateStatusDeclineLabelAlsoRejected(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE id").
		WithArgs(3).
		WillReturnRows(pendingOfferRow(3, nil))

	status := models.FirmOfferStatusDeclined
	_, err := svc.AdminUpdate(3, &models.FirmOfferPatch{Status: &status})
	assert.ErrorIs(t, err, ErrConfirmationViaStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdateSectionsWhilePending(t *testing.T) {
	svc, mock := newFirmOfferServiceTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE id").
		WithArgs(3).
		WillReturnRows(pendingOfferRow(3, nil))
	mock.ExpectExec("UPDATE firm_offers").
		WillReturnResult(sqlmock.NewResult(0, 1))

	patch := &models.FirmOfferPatch{
		EventOverview: json.RawMessage(`{"event":"Renamed Summit"}`),
	}
	o, err := svc.AdminUpdate(3, patch)
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`{"event":"Renamed Summit"}`), o.EventOverview)
	assert.Equal(t, json.RawMessage(`{"fee":12000}`), o.FinancialDetails)
	assert.NoError(t, mock.ExpectationsWereMet())
}
