package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

func newLookupHandler(t *testing.T) (*LookupHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewLookupHandler(repository.NewReservationRepo(db)), mock
}

func checkCode(t *testing.T, h *LookupHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CheckReservation(e.NewContext(req, rec)))
	return rec
}

func TestCheckReservationRequiresCode(t *testing.T) {
	h, mock := newLookupHandler(t)
	rec := checkCode(t, h, "/v1/reservations/check")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckReservationUnknownCode(t *testing.T) {
	h, mock := newLookupHandler(t)
	mock.ExpectQuery(`FROM reservations res`).
		WithArgs("RSV999999").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := checkCode(t, h, "/v1/reservations/check?code=RSV999999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
