package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBatchCleanGrid(t *testing.T) {
	assignments := []Assignment{
		{Slot: SlotKey{Week: 1, Day: Monday, Period: Morning}, SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote},
		{Slot: SlotKey{Week: 1, Day: Monday, Period: Afternoon}, SubjectCode: "PHYS1", TeacherID: "T1", DeliveryMode: Remote},
		{Slot: SlotKey{Week: 1, Day: Tuesday, Period: Morning}, SubjectCode: "CHEM1", TeacherID: "T2", DeliveryMode: InPerson, RoomID: strPtr("5")},
	}

	assert.Empty(t, ValidateBatch(assignments))
}

func TestValidateBatchMissingRoom(t *testing.T) {
	assignments := []Assignment{
		{Slot: SlotKey{Week: 1, Day: Monday, Period: Morning}, SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1", DeliveryMode: InPerson},
	}

	conflicts := ValidateBatch(assignments)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictMissingRoom, conflicts[0].Kind)
	assert.Contains(t, conflicts[0].Reason, "MATH1")
}

func TestValidateBatchTeacherDoubleBooked(t *testing.T) {
	// The interactive path cannot produce this state; it mimics pre-existing
	// server data that conflicted before the session started.
	slot := SlotKey{Week: 3, Day: Thursday, Period: Evening}
	assignments := []Assignment{
		{Slot: slot, SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1", TeacherName: "T1", DeliveryMode: Remote},
		{Slot: slot, SubjectCode: "PHYS1", SubjectName: "PHYS1", TeacherID: "T1", TeacherName: "T1", DeliveryMode: Remote},
	}

	conflicts := ValidateBatch(assignments)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictTeacher, conflicts[0].Kind)
	assert.Contains(t, conflicts[0].Reason, "T1")
}

func TestValidateBatchRoomDoubleBooked(t *testing.T) {
	slot := SlotKey{Week: 2, Day: Friday, Period: Morning}
	assignments := []Assignment{
		{Slot: slot, SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1", DeliveryMode: InPerson, RoomID: strPtr("12")},
		{Slot: slot, SubjectCode: "CHEM1", SubjectName: "CHEM1", TeacherID: "T2", DeliveryMode: InPerson, RoomID: strPtr("12")},
	}

	conflicts := ValidateBatch(assignments)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictRoom, conflicts[0].Kind)
	assert.Contains(t, conflicts[0].Reason, "12")
}

func TestValidateBatchRemoteSharingSlotNoRoomConflict(t *testing.T) {
	slot := SlotKey{Week: 2, Day: Friday, Period: Morning}
	assignments := []Assignment{
		{Slot: slot, SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote},
		{Slot: slot, SubjectCode: "CHEM1", TeacherID: "T2", DeliveryMode: InPerson, RoomID: strPtr("12")},
	}

	// Different teachers, only one of the pair is in a room.
	assert.Empty(t, ValidateBatch(assignments))
}

func TestValidateBatchIdempotent(t *testing.T) {
	slot := SlotKey{Week: 1, Day: Monday, Period: Morning}
	assignments := []Assignment{
		{Slot: slot, SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote},
		{Slot: slot, SubjectCode: "PHYS1", TeacherID: "T1", DeliveryMode: Remote},
	}

	assert.Equal(t, ValidateBatch(assignments), ValidateBatch(assignments))
}
