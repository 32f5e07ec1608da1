package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

func newGuestHandler(t *testing.T) (*GuestHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewGuestHandler(repository.NewGuestRepo(db)), mock
}

func TestUpsertGuest(t *testing.T) {
	h, mock := newGuestHandler(t)
	mock.ExpectExec(`INSERT INTO guests`).
		WithArgs("3174012345678901", "Budi Santoso", "budi@example.com", "08123456789").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := postJSON(t, h.UpsertGuest, "/v1/guests",
		`{"nik":" 3174012345678901 ","name":"Budi Santoso","email":"budi@example.com","phone":"08123456789"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"saved":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertGuestRequiresAllFields(t *testing.T) {
	h, mock := newGuestHandler(t)

	for _, body := range []string{
		`{"nik":"","name":"a","email":"b","phone":"c"}`,
		`{"nik":"1","name":"","email":"b","phone":"c"}`,
		`{"nik":"1","name":"a","email":"","phone":"c"}`,
		`{"nik":"1","name":"a","email":"b","phone":""}`,
		`{"nik":"   ","name":"a","email":"b","phone":"c"}`,
	} {
		rec := postJSON(t, h.UpsertGuest, "/v1/guests", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
