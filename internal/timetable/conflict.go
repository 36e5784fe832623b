package timetable

import "fmt"

// ConflictKind classifies the dimension on which a placement collides.
type ConflictKind string

const (
	ConflictTeacher      ConflictKind = "TEACHER"
	ConflictRoom         ConflictKind = "ROOM"
	ConflictSlotOccupied ConflictKind = "SLOT_OCCUPIED"
	ConflictMissingRoom  ConflictKind = "MISSING_ROOM"
)

// Conflict describes a single collision, carrying a human-readable reason
// and the identity of the assignment already holding the contested resource.
type Conflict struct {
	Kind     ConflictKind `json:"kind"`
	Slot     SlotKey      `json:"slot"`
	Reason   string       `json:"reason"`
	Existing *Assignment  `json:"existing,omitempty"`
}

// Notification renders the conflict for the presentation layer.
func (c Conflict) Notification() Notification {
	return Notification{Severity: SeverityError, Title: string(c.Kind), Detail: c.Reason}
}

// Candidate is a placement under consideration by the conflict detector.
type Candidate struct {
	Slot         SlotKey
	TeacherID    string
	TeacherName  string
	DeliveryMode DeliveryMode
	RoomID       *string
}

// DetectConflicts reports every invariant the candidate placement would
// violate against the current grid. It is pure: the grid is never mutated
// and identical inputs always yield identical output.
//
// exclude, when non-nil, names a slot whose current occupant is about to be
// overwritten and must therefore not be counted as conflicting with itself.
func DetectConflicts(candidate Candidate, grid *Grid, exclude *SlotKey) []Conflict {
	var conflicts []Conflict
	for _, existing := range grid.Assignments() {
		if existing.Slot.Week != candidate.Slot.Week ||
			existing.Slot.Day != candidate.Slot.Day ||
			existing.Slot.Period != candidate.Slot.Period {
			continue
		}
		if exclude != nil && existing.Slot == *exclude {
			continue
		}

		occupant := existing

		if existing.TeacherID == candidate.TeacherID {
			conflicts = append(conflicts, Conflict{
				Kind: ConflictTeacher,
				Slot: existing.Slot,
				Reason: fmt.Sprintf("%s already teaches %s at %s",
					existing.TeacherName, existing.SubjectName, existing.Slot),
				Existing: &occupant,
			})
		}

		if candidate.DeliveryMode == InPerson && existing.DeliveryMode == InPerson &&
			candidate.RoomID != nil && existing.RoomID != nil && *candidate.RoomID == *existing.RoomID {
			conflicts = append(conflicts, Conflict{
				Kind: ConflictRoom,
				Slot: existing.Slot,
				Reason: fmt.Sprintf("room %s is already booked for %s at %s",
					*existing.RoomID, existing.SubjectName, existing.Slot),
				Existing: &occupant,
			})
		}

		// A slot may only ever hold one assignment for this class, so the
		// bare occupancy conflict is reported even when teacher and room
		// checks both pass.
		conflicts = append(conflicts, Conflict{
			Kind: ConflictSlotOccupied,
			Slot: existing.Slot,
			Reason: fmt.Sprintf("slot %s is already occupied by %s",
				existing.Slot, existing.SubjectName),
			Existing: &occupant,
		})
	}
	return conflicts
}
