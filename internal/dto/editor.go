package dto

import "github.com/cec-hub/cec-timetable-api/internal/timetable"

// CreateSessionRequest opens an editing session for a class timetable.
type CreateSessionRequest struct {
	ClassID      string `json:"class_id" validate:"required"`
	Term         string `json:"term" validate:"required,oneof=HK1 HK2 HK3"`
	AcademicYear int    `json:"academic_year" validate:"required,min=2000,max=2100"`
}

// CreateSessionResponse returns the new session and the committed grid.
type CreateSessionResponse struct {
	SessionID string                 `json:"session_id"`
	Grid      []timetable.Assignment `json:"grid"`
	Pairs     []timetable.StagedPair `json:"pairs"`
}

// StagePairRequest stages a subject-teacher pair for placement.
type StagePairRequest struct {
	SubjectCode string `json:"subject_code" validate:"required"`
	SubjectName string `json:"subject_name" validate:"required"`
	Credits     int    `json:"credits" validate:"omitempty,min=0"`
	TeacherID   string `json:"teacher_id" validate:"required"`
	TeacherName string `json:"teacher_name" validate:"required"`
}

// SelectionRequest picks the active pair and delivery settings. Empty
// subject and teacher clear the selection.
type SelectionRequest struct {
	SubjectCode  string  `json:"subject_code"`
	TeacherID    string  `json:"teacher_id"`
	DeliveryMode string  `json:"delivery_mode" validate:"omitempty,oneof=IN_PERSON REMOTE"`
	RoomID       *string `json:"room_id"`
}

// ClickRequest addresses one grid cell.
type ClickRequest struct {
	Week   int    `json:"week" validate:"required,min=1,max=53"`
	Day    string `json:"day" validate:"required"`
	Period string `json:"period" validate:"required"`
}

// PreviewQuery addresses the cell a placement preview is asked for.
type PreviewQuery struct {
	Week   int    `form:"week" validate:"required,min=1,max=53"`
	Day    string `form:"day" validate:"required"`
	Period string `form:"period" validate:"required"`
}

// PreviewResponse reports what a click at the cell would run into.
type PreviewResponse struct {
	CellState string               `json:"cell_state"`
	Conflicts []timetable.Conflict `json:"conflicts"`
}

// SessionStateResponse is the current grid and staged pairs of a session.
type SessionStateResponse struct {
	Grid  []timetable.Assignment `json:"grid"`
	Pairs []timetable.StagedPair `json:"pairs"`
}

// ValidateResponse reports whole-grid findings.
type ValidateResponse struct {
	Valid     bool                 `json:"valid"`
	Conflicts []timetable.Conflict `json:"conflicts"`
}
