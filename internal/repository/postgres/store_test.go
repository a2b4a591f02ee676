package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaly/booking-api/internal/model"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

func TestStoreCreateTxSlugCollision(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &storeRepository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO stores").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "stores_slug_key"})
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	err = repo.CreateTx(context.Background(), tx, &model.Store{
		Slug: "corte-e-cor", Name: "Corte e Cor", Timezone: "Europe/Lisbon",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetBySlugNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &storeRepository{db: db}

	mock.ExpectQuery("SELECT (.+) FROM stores").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "timezone", "created_at", "updated_at"}))

	_, err := repo.GetBySlug(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkingHoursReplaceForStaff(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &workingHourRepository{db: db}

	storeID := uuid.New()
	staffID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM working_hour_rules").
		WithArgs(storeID, staffID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO working_hour_rules").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO working_hour_rules").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rules := []*model.WorkingHourRule{
		{Weekday: 1, Position: 1, IsOpen: true, StartTime: "09:00", EndTime: "13:00"},
		{Weekday: 1, Position: 2, IsOpen: true, StartTime: "14:00", EndTime: "18:00"},
	}
	require.NoError(t, repo.ReplaceForStaff(context.Background(), storeID, staffID, rules))

	for _, rule := range rules {
		assert.Equal(t, storeID, rule.StoreID)
		assert.Equal(t, staffID, rule.StaffID)
		assert.NotEqual(t, uuid.Nil, rule.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
