package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cec-hub/cec-timetable-api/internal/models"
	"github.com/cec-hub/cec-timetable-api/internal/timetable"
)

func newScheduleRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "class_id", "term", "academic_year", "week", "day_of_week", "period",
		"subject_code", "subject_name", "teacher_id", "teacher_name", "delivery_mode",
		"room_id", "created_at", "updated_at",
	})
}

func TestScheduleRepositoryListByClassTerm(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := scheduleRows().
		AddRow("s1", "class-1", "HK1", 2025, 40, "Monday", "Morning",
			"ENG101", "English 1", "t1", "Teacher A", "IN_PERSON", "room-1", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM schedules s").
		WithArgs("class-1", "HK1", 2025).
		WillReturnRows(rows)

	entries, err := repo.ListByClassTerm(context.Background(), "class-1", models.TermFirst, 2025)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "English 1", entries[0].SubjectName)
	assert.Equal(t, timetable.SlotKey{Week: 40, Day: timetable.Monday, Period: timetable.Morning}, entries[0].Slot())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryFindAtSlot(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	slot := timetable.SlotKey{Week: 40, Day: timetable.Tuesday, Period: timetable.Evening}
	rows := scheduleRows().
		AddRow("s2", "class-2", "HK1", 2025, 40, "Tuesday", "Evening",
			"MAT201", "Calculus", "t2", "Teacher B", "REMOTE", nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM schedules s").
		WithArgs("HK1", 2025, 40, "Tuesday", "Evening").
		WillReturnRows(rows)

	entries, err := repo.FindAtSlot(context.Background(), models.TermFirst, 2025, slot)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "class-2", entries[0].ClassID)
	assert.Nil(t, entries[0].RoomID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), "class-1", "HK1", 2025, 40, "Monday", "Morning",
			"ENG101", "t1", "IN_PERSON", "room-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	room := "room-1"
	id, err := repo.Insert(context.Background(), &models.ScheduleEntry{
		ClassID:      "class-1",
		Term:         models.TermFirst,
		AcademicYear: 2025,
		Week:         40,
		Day:          timetable.Monday,
		Period:       timetable.Morning,
		SubjectCode:  "ENG101",
		TeacherID:    "t1",
		DeliveryMode: timetable.InPerson,
		RoomID:       &room,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedules WHERE id = $1")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
