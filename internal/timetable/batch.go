package timetable

import "fmt"

// ValidateBatch runs the exhaustive pre-commit scan over a snapshot of grid
// content, independent of the incremental checks done while editing. It is
// the safety net for states the interactive path never saw, such as
// assignments that already conflicted on the server before this session.
//
// The scan is pairwise: any two assignments sharing (week, day, period)
// produce a teacher conflict when the teacher matches and a room conflict
// when both are in-person in the same room. It also enforces pre-commit
// completeness: every in-person assignment must carry a room.
func ValidateBatch(assignments []Assignment) []Conflict {
	var conflicts []Conflict

	for i := range assignments {
		a := assignments[i]
		if a.DeliveryMode == InPerson && (a.RoomID == nil || *a.RoomID == "") {
			conflicts = append(conflicts, Conflict{
				Kind:   ConflictMissingRoom,
				Slot:   a.Slot,
				Reason: fmt.Sprintf("in-person session %s at %s has no room assigned", a.SubjectName, a.Slot),
			})
		}

		for j := i + 1; j < len(assignments); j++ {
			b := assignments[j]
			if a.Slot.Week != b.Slot.Week || a.Slot.Day != b.Slot.Day || a.Slot.Period != b.Slot.Period {
				continue
			}

			if a.TeacherID == b.TeacherID {
				existing := a
				conflicts = append(conflicts, Conflict{
					Kind: ConflictTeacher,
					Slot: b.Slot,
					Reason: fmt.Sprintf("%s is double-booked at %s (%s and %s)",
						a.TeacherName, a.Slot, a.SubjectName, b.SubjectName),
					Existing: &existing,
				})
			}

			if a.DeliveryMode == InPerson && b.DeliveryMode == InPerson &&
				a.RoomID != nil && b.RoomID != nil && *a.RoomID == *b.RoomID {
				existing := a
				conflicts = append(conflicts, Conflict{
					Kind: ConflictRoom,
					Slot: b.Slot,
					Reason: fmt.Sprintf("room %s is double-booked at %s (%s and %s)",
						*a.RoomID, a.Slot, a.SubjectName, b.SubjectName),
					Existing: &existing,
				})
			}
		}
	}

	return conflicts
}

// BatchInvalidError rejects a commit before any network call is made.
type BatchInvalidError struct {
	Conflicts []Conflict
}

// Error implements the error interface.
func (e *BatchInvalidError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("batch validation failed with %d conflict(s)", len(e.Conflicts))
}
