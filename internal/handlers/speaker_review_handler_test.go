package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"speakerbureau/internal/models"
	"speakerbureau/internal/repositories"
	"speakerbureau/internal/services"
)

func newSpeakerReviewTest(t *testing.T) (sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	offers := services.NewFirmOfferService(
		repositories.NewFirmOfferRepository(db),
		repositories.NewProposalRepository(db),
		repositories.NewSpeakerRepository(db),
		nil,
		services.NewNotifier("", 0, zap.NewNop()),
		"https://bureau.example.com",
		zap.NewNop(),
	)
	proposals := services.NewProposalService(
		repositories.NewProposalRepository(db), nil, "https://bureau.example.com", zap.NewNop())
	h := NewSpeakerReviewHandler(offers, proposals)

	r := gin.New()
	r.GET("/speaker-review/:token", h.ViewOffer)
	r.POST("/speaker-review/:token/respond", h.RespondOffer)
	return mock, r
}

func respondedOfferTestRow(confirmed bool) *sqlmock.Rows {
	now := time.Now()
	status := models.FirmOfferStatusDeclined
	if confirmed {
		status = models.FirmOfferStatusConfirmed
	}
	return sqlmock.NewRows([]string{
		"id", "proposal_id", "speaker_id", "event_overview", "speaker_program", "financial_details",
		"status", "speaker_access_token", "speaker_viewed_at", "speaker_confirmed",
		"speaker_notes", "speaker_responded_at", "created_at", "updated_at",
	}).AddRow(
		3, 10, nil, []byte(`{}`), []byte(`{}`), []byte(`{}`),
		status, "tok-abc", &now, confirmed,
		"", &now, now, now,
	)
}

func TestViewOfferUnknownToken(t *testing.T) {
	mock, r := newSpeakerReviewTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE speaker_access_token").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/speaker-review/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondOfferRepeatedSubmissionConflicts(t *testing.T) {
	mock, r := newSpeakerReviewTest(t)

	mock.ExpectQuery("FROM firm_offers WHERE speaker_access_token").
		WithArgs("tok-abc").
		WillReturnRows(respondedOfferTestRow(true))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/speaker-review/tok-abc/respond",
		strings.NewReader(`{"confirmed":false,"notes":"second thoughts"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRespondOfferMissingConfirmedField(t *testing.T) {
	_, r := newSpeakerReviewTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/speaker-review/tok-abc/respond",
		strings.NewReader(`{"notes":"no verdict"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
