package dto

// RoomQuery selects the rooms of one facility.
type RoomQuery struct {
	FacilityID string `form:"facility_id" validate:"required"`
}

// CourseQuery selects the program courses of one intake and major.
type CourseQuery struct {
	IntakeYear int    `form:"intake_year" validate:"required,min=2000,max=2100"`
	MajorID    string `form:"major_id" validate:"required"`
}
