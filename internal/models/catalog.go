package models

import "time"

// Facility is a training site hosting rooms.
type Facility struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Room is a physical teaching room inside a facility.
type Room struct {
	ID         string    `db:"id" json:"id"`
	FacilityID string    `db:"facility_id" json:"facility_id"`
	Number     string    `db:"room_number" json:"room_number"`
	Building   *string   `db:"building" json:"building,omitempty"`
	Capacity   *int      `db:"capacity" json:"capacity,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Class is a cohort of students following a program at a facility.
type Class struct {
	ID         string    `db:"id" json:"id"`
	Code       string    `db:"code" json:"code"`
	Name       string    `db:"name" json:"name"`
	FacilityID string    `db:"facility_id" json:"facility_id"`
	MajorID    string    `db:"major_id" json:"major_id"`
	IntakeYear int       `db:"intake_year" json:"intake_year"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Teacher represents an instructor record.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Expertise *string   `db:"expertise" json:"expertise,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Course is a subject offered within a program, looked up by intake year
// and major when building a class timetable.
type Course struct {
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Credits   int       `db:"credits" json:"credits"`
	MajorID   string    `db:"major_id" json:"major_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ClassFilter defines filter criteria for listing classes.
type ClassFilter struct {
	FacilityID string
	MajorID    string
	Search     string
	Page       int
	PageSize   int
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search   string
	Active   *bool
	Page     int
	PageSize int
}
