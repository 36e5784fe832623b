package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridPlaceRejectsOccupiedSlot(t *testing.T) {
	grid := NewGrid()
	slot := mondayMorning(1)

	require.NoError(t, grid.Place(Assignment{Slot: slot, SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote}))
	err := grid.Place(Assignment{Slot: slot, SubjectCode: "PHYS1", TeacherID: "T2", DeliveryMode: Remote})

	require.Error(t, err)
	occupant, ok := grid.At(slot)
	require.True(t, ok)
	assert.Equal(t, "MATH1", occupant.SubjectCode)
	assert.Equal(t, 1, grid.Len())
}

func TestGridSeedRejectsDuplicateSlots(t *testing.T) {
	grid := NewGrid()
	slot := mondayMorning(3)

	rejected := grid.Seed([]Assignment{
		{Slot: slot, SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote},
		{Slot: slot, SubjectCode: "PHYS1", TeacherID: "T2", DeliveryMode: Remote},
		{Slot: SlotKey{}, SubjectCode: "CHEM1", TeacherID: "T3", DeliveryMode: Remote},
	})

	require.Len(t, rejected, 2)
	assert.Equal(t, "PHYS1", rejected[0].SubjectCode)
	assert.Equal(t, "CHEM1", rejected[1].SubjectCode)
	assert.Equal(t, 1, grid.Len())
}

func TestGridAssignmentsSorted(t *testing.T) {
	grid := NewGrid()
	require.NoError(t, grid.Place(Assignment{Slot: SlotKey{Week: 2, Day: Monday, Period: Morning}, SubjectCode: "B", TeacherID: "T1", DeliveryMode: Remote}))
	require.NoError(t, grid.Place(Assignment{Slot: SlotKey{Week: 1, Day: Friday, Period: Evening}, SubjectCode: "A", TeacherID: "T2", DeliveryMode: Remote}))
	require.NoError(t, grid.Place(Assignment{Slot: SlotKey{Week: 1, Day: Friday, Period: Morning}, SubjectCode: "C", TeacherID: "T3", DeliveryMode: Remote}))

	all := grid.Assignments()
	require.Len(t, all, 3)
	assert.Equal(t, "C", all[0].SubjectCode)
	assert.Equal(t, "A", all[1].SubjectCode)
	assert.Equal(t, "B", all[2].SubjectCode)
}

func TestGridMarkPersisted(t *testing.T) {
	grid := NewGrid()
	slot := mondayMorning(1)
	require.NoError(t, grid.Place(Assignment{Slot: slot, SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote}))

	require.True(t, grid.MarkPersisted(slot, "sched-9"))
	occupant, _ := grid.At(slot)
	require.NotNil(t, occupant.PersistedID)
	assert.Equal(t, "sched-9", *occupant.PersistedID)
	assert.Empty(t, grid.Staged())

	assert.False(t, grid.MarkPersisted(mondayMorning(9), "sched-10"))
}

func TestGridWeekOccurrences(t *testing.T) {
	grid := NewGrid()
	require.NoError(t, grid.Place(Assignment{Slot: SlotKey{Week: 1, Day: Monday, Period: Morning}, SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote}))
	require.NoError(t, grid.Place(Assignment{Slot: SlotKey{Week: 1, Day: Wednesday, Period: Morning}, SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote}))
	require.NoError(t, grid.Place(Assignment{Slot: SlotKey{Week: 2, Day: Monday, Period: Morning}, SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote}))

	assert.Len(t, grid.WeekOccurrences("MATH1", "T1", 1), 2)
	assert.Len(t, grid.WeekOccurrences("MATH1", "T1", 2), 1)
	assert.Empty(t, grid.WeekOccurrences("MATH1", "T2", 1))
}
