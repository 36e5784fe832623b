package models

import (
	"time"

	"github.com/cec-hub/cec-timetable-api/internal/timetable"
)

// ScheduleEntry is a persisted timetable assignment for a class.
type ScheduleEntry struct {
	ID           string                 `db:"id" json:"id"`
	ClassID      string                 `db:"class_id" json:"class_id"`
	Term         Term                   `db:"term" json:"term"`
	AcademicYear int                    `db:"academic_year" json:"academic_year"`
	Week         int                    `db:"week" json:"week"`
	Day          timetable.Day          `db:"day_of_week" json:"day"`
	Period       timetable.Period       `db:"period" json:"period"`
	SubjectCode  string                 `db:"subject_code" json:"subject_code"`
	SubjectName  string                 `db:"subject_name" json:"subject_name"`
	TeacherID    string                 `db:"teacher_id" json:"teacher_id"`
	TeacherName  string                 `db:"teacher_name" json:"teacher_name"`
	DeliveryMode timetable.DeliveryMode `db:"delivery_mode" json:"delivery_mode"`
	RoomID       *string                `db:"room_id" json:"room_id,omitempty"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time              `db:"updated_at" json:"updated_at"`
}

// Slot returns the entry's grid address.
func (e ScheduleEntry) Slot() timetable.SlotKey {
	return timetable.SlotKey{Week: e.Week, Day: e.Day, Period: e.Period}
}

// Assignment converts the persisted entry into its core representation.
func (e ScheduleEntry) Assignment() timetable.Assignment {
	id := e.ID
	return timetable.Assignment{
		PersistedID:  &id,
		Slot:         e.Slot(),
		SubjectCode:  e.SubjectCode,
		SubjectName:  e.SubjectName,
		TeacherID:    e.TeacherID,
		TeacherName:  e.TeacherName,
		DeliveryMode: e.DeliveryMode,
		RoomID:       e.RoomID,
	}
}
