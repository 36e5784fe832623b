package dto

// ScheduleQuery selects one class timetable for a term.
type ScheduleQuery struct {
	ClassID      string `form:"class_id" validate:"required"`
	Term         string `form:"term" validate:"required,oneof=HK1 HK2 HK3"`
	AcademicYear int    `form:"academic_year" validate:"required,min=2000,max=2100"`
}

// ExportQuery selects the timetable weeks to render as PDF.
type ExportQuery struct {
	ScheduleQuery
	FromWeek int `form:"from_week" validate:"omitempty,min=1,max=53"`
	ToWeek   int `form:"to_week" validate:"omitempty,min=1,max=53"`
}

// CommitItem is one assignment of a direct batch commit.
type CommitItem struct {
	Week         int     `json:"week" validate:"required,min=1,max=53"`
	Day          string  `json:"day" validate:"required"`
	Period       string  `json:"period" validate:"required"`
	SubjectCode  string  `json:"subject_code" validate:"required"`
	TeacherID    string  `json:"teacher_id" validate:"required"`
	DeliveryMode string  `json:"delivery_mode" validate:"required,oneof=IN_PERSON REMOTE"`
	RoomID       *string `json:"room_id"`
}

// CommitRequest stores a batch of assignments without an editing session.
type CommitRequest struct {
	ClassID      string       `json:"class_id" validate:"required"`
	Term         string       `json:"term" validate:"required,oneof=HK1 HK2 HK3"`
	AcademicYear int          `json:"academic_year" validate:"required,min=2000,max=2100"`
	Items        []CommitItem `json:"items" validate:"required,min=1,dive"`
}
