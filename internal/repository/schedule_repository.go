package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cec-hub/cec-timetable-api/internal/models"
	"github.com/cec-hub/cec-timetable-api/internal/timetable"
)

const scheduleColumns = `s.id, s.class_id, s.term, s.academic_year, s.week, s.day_of_week, s.period, s.subject_code, c.name AS subject_name, s.teacher_id, t.full_name AS teacher_name, s.delivery_mode, s.room_id, s.created_at, s.updated_at`

const scheduleJoins = `FROM schedules s
	JOIN courses c ON c.code = s.subject_code
	JOIN teachers t ON t.id = s.teacher_id`

// ScheduleRepository manages persistence for committed timetable entries.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByClassTerm returns all entries of one class for a term.
func (r *ScheduleRepository) ListByClassTerm(ctx context.Context, classID string, term models.Term, academicYear int) ([]models.ScheduleEntry, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE s.class_id = $1 AND s.term = $2 AND s.academic_year = $3 ORDER BY s.week, s.day_of_week, s.period`, scheduleColumns, scheduleJoins)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, classID, term, academicYear); err != nil {
		return nil, fmt.Errorf("list schedules by class and term: %w", err)
	}
	return entries, nil
}

// FindByID fetches one entry by identifier.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE s.id = $1`, scheduleColumns, scheduleJoins)
	var entry models.ScheduleEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindAtSlot returns every entry of any class occupying the given slot in a
// term. Used to detect teacher and room double-booking across classes.
func (r *ScheduleRepository) FindAtSlot(ctx context.Context, term models.Term, academicYear int, slot timetable.SlotKey) ([]models.ScheduleEntry, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE s.term = $1 AND s.academic_year = $2 AND s.week = $3 AND s.day_of_week = $4 AND s.period = $5`, scheduleColumns, scheduleJoins)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, term, academicYear, slot.Week, slot.Day, slot.Period); err != nil {
		return nil, fmt.Errorf("find schedules at slot: %w", err)
	}
	return entries, nil
}

// Insert stores one entry and returns its generated identifier.
func (r *ScheduleRepository) Insert(ctx context.Context, entry *models.ScheduleEntry) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	const query = `INSERT INTO schedules (id, class_id, term, academic_year, week, day_of_week, period, subject_code, teacher_id, delivery_mode, room_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := r.db.ExecContext(ctx, query,
		id, entry.ClassID, entry.Term, entry.AcademicYear, entry.Week, entry.Day, entry.Period,
		entry.SubjectCode, entry.TeacherID, entry.DeliveryMode, entry.RoomID, now, now,
	); err != nil {
		return "", fmt.Errorf("insert schedule: %w", err)
	}
	return id, nil
}

// Delete removes one entry. Returns sql.ErrNoRows if nothing matched.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM schedules WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
