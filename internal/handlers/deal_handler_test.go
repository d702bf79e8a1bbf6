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

	"speakerbureau/internal/authz"
	"speakerbureau/internal/repositories"
	"speakerbureau/internal/services"
)

func newDealHandlerTest(t *testing.T) (*DealHandler, sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := services.NewDealService(
		repositories.NewDealRepository(db),
		repositories.NewDealEventRepository(db),
		services.NewProjectService(repositories.NewProjectRepository(db)),
		services.NewNotifier("", 0, zap.NewNop()),
		zap.NewNop(),
	)
	h := NewDealHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Set("role_id", authz.RoleSales)
	})
	r.GET("/api/deals/:id", h.GetByID)
	r.PATCH("/api/deals/:id", h.Update)
	return h, mock, r
}

func TestDealGetByIDInvalidID(t *testing.T) {
	_, _, r := newDealHandlerTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/deals/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestDealGetByIDNotFound(t *testing.T) {
	_, mock, r := newDealHandlerTest(t)

	mock.ExpectQuery("FROM deals WHERE id").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/deals/99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "deal not found")
}

func TestDealUpdateNotFound(t *testing.T) {
	_, mock, r := newDealHandlerTest(t)

	mock.ExpectQuery("FROM deals WHERE id").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/deals/99",
		strings.NewReader(`{"status":"won"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDealUpdateMalformedBody(t *testing.T) {
	_, mock, r := newDealHandlerTest(t)

	now := time.Now()
	dealRows := sqlmock.NewRows([]string{
		"id", "owner_id", "client_name", "client_email", "client_phone", "company",
		"event_title", "event_date", "event_location", "event_type", "attendee_count",
		"deal_value", "status", "priority", "notes", "firm_offer_id", "created_at", "updated_at",
	}).AddRow(
		7, 1, "Acme", "", "", "",
		"", nil, "", "", 0,
		0.0, "lead", "medium", "", nil, now, now,
	)
	mock.ExpectQuery("FROM deals WHERE id").
		WithArgs(7).
		WillReturnRows(dealRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/deals/7",
		strings.NewReader(`{"status":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
