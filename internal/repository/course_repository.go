package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cec-hub/cec-timetable-api/internal/models"
)

// CourseRepository manages persistence for program courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListByProgram returns the courses of a program, identified by the intake
// year and major of the class being scheduled.
func (r *CourseRepository) ListByProgram(ctx context.Context, intakeYear int, majorID string) ([]models.Course, error) {
	const query = `SELECT c.code, c.name, c.credits, c.major_id, c.created_at
		FROM courses c
		JOIN program_courses pc ON pc.course_code = c.code
		WHERE pc.intake_year = $1 AND c.major_id = $2
		ORDER BY c.code ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, intakeYear, majorID); err != nil {
		return nil, fmt.Errorf("list courses by program: %w", err)
	}
	return courses, nil
}

// FindByCode fetches a course by its code.
func (r *CourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	const query = `SELECT code, name, credits, major_id, created_at FROM courses WHERE code = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, code); err != nil {
		return nil, err
	}
	return &course, nil
}
