package timetable

import "fmt"

// Day identifies a weekday column in the timetable grid. The zero-based
// ordering matches the grid layout, Monday first.
type Day string

const (
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
	Saturday  Day = "SATURDAY"
	Sunday    Day = "SUNDAY"
)

// Days returns the weekday columns in grid order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether d is one of the seven known weekdays.
func (d Day) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Index returns the zero-based grid column for the day, -1 if unknown.
func (d Day) Index() int {
	for i, day := range Days() {
		if day == d {
			return i
		}
	}
	return -1
}

// Period identifies a teaching session within a day.
type Period string

const (
	Morning   Period = "MORNING"
	Afternoon Period = "AFTERNOON"
	Evening   Period = "EVENING"
)

// Periods returns the teaching sessions in grid order.
func Periods() []Period {
	return []Period{Morning, Afternoon, Evening}
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case Morning, Afternoon, Evening:
		return true
	}
	return false
}

// Index returns the zero-based grid row for the period, -1 if unknown.
func (p Period) Index() int {
	for i, period := range Periods() {
		if period == p {
			return i
		}
	}
	return -1
}

// DeliveryMode determines whether a session needs a physical room.
type DeliveryMode string

const (
	InPerson DeliveryMode = "IN_PERSON"
	Remote   DeliveryMode = "REMOTE"
)

// Valid reports whether m is a known delivery mode.
func (m DeliveryMode) Valid() bool {
	return m == InPerson || m == Remote
}

// SlotKey is the unique address of a cell in the timetable grid. Two
// assignments with an equal SlotKey are scheduled simultaneously.
type SlotKey struct {
	Week   int    `json:"week"`
	Day    Day    `json:"day"`
	Period Period `json:"period"`
}

// Valid reports whether the key addresses a real grid cell.
func (k SlotKey) Valid() bool {
	return k.Week > 0 && k.Day.Valid() && k.Period.Valid()
}

// String renders the key for log and notification text.
func (k SlotKey) String() string {
	return fmt.Sprintf("week %d, %s, %s", k.Week, k.Day, k.Period)
}

// Assignment is the record occupying a slot: a subject taught by a teacher
// in a given delivery mode. PersistedID is set once the assignment exists on
// the remote store; assignments staged only in this session carry none.
type Assignment struct {
	PersistedID  *string      `json:"persisted_id,omitempty"`
	Slot         SlotKey      `json:"slot"`
	SubjectCode  string       `json:"subject_code"`
	SubjectName  string       `json:"subject_name"`
	TeacherID    string       `json:"teacher_id"`
	TeacherName  string       `json:"teacher_name"`
	DeliveryMode DeliveryMode `json:"delivery_mode"`
	RoomID       *string      `json:"room_id,omitempty"`
}

// Persisted reports whether the assignment already exists on the remote store.
func (a Assignment) Persisted() bool {
	return a.PersistedID != nil && *a.PersistedID != ""
}

// SamePair reports whether the assignment holds the given subject/teacher pair.
func (a Assignment) SamePair(subjectCode, teacherID string) bool {
	return a.SubjectCode == subjectCode && a.TeacherID == teacherID
}

// CheckDelivery enforces the delivery/room pairing: in-person assignments
// must carry a room, remote assignments must not.
func (a Assignment) CheckDelivery() error {
	switch a.DeliveryMode {
	case InPerson:
		if a.RoomID == nil || *a.RoomID == "" {
			return fmt.Errorf("in-person assignment at %s has no room", a.Slot)
		}
	case Remote:
		if a.RoomID != nil {
			return fmt.Errorf("remote assignment at %s carries room %s", a.Slot, *a.RoomID)
		}
	default:
		return fmt.Errorf("unknown delivery mode %q at %s", a.DeliveryMode, a.Slot)
	}
	return nil
}

// StagedPair is a subject/teacher combination prepared for placement but not
// yet placed anywhere. The same pair may later occupy many slots.
type StagedPair struct {
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	Credits     int    `json:"credits,omitempty"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
}

// Label renders the pair for prompts and notifications.
func (p StagedPair) Label() string {
	return fmt.Sprintf("%s - %s", p.SubjectName, p.TeacherName)
}

// Severity classifies user-facing notifications.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Notification is the output boundary towards the presentation layer: every
// conflict, prompt and reconciliation result can be expressed as one without
// requiring any value back into the core.
type Notification struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
}
