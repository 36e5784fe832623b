package timetable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type committerStub struct {
	resp  *CommitResponse
	err   error
	calls int
	last  []Assignment
}

func (s *committerStub) CommitSchedule(ctx context.Context, ref ScheduleRef, items []Assignment) (*CommitResponse, error) {
	s.calls++
	s.last = items
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func testRef() ScheduleRef {
	return ScheduleRef{ClassID: "class-1", Term: "HK1", AcademicYear: 2025}
}

func TestCommitMarksAddedAndReportsSkipped(t *testing.T) {
	grid := NewGrid()
	slots := []SlotKey{
		{Week: 1, Day: Monday, Period: Morning},
		{Week: 1, Day: Tuesday, Period: Morning},
		{Week: 1, Day: Wednesday, Period: Morning},
	}
	for _, slot := range slots {
		require.NoError(t, grid.Place(Assignment{
			Slot: slot, SubjectCode: "MATH1", SubjectName: "MATH1",
			TeacherID: "T1", TeacherName: "T1", DeliveryMode: Remote,
		}))
	}

	store := &committerStub{resp: &CommitResponse{
		Message: "added 2 items, skipped 1 duplicate",
		Added: []AddedSlot{
			{ID: "sched-1", Slot: slots[1]},
			{ID: "sched-2", Slot: slots[2]},
		},
		Skipped: []SlotKey{slots[0]},
	}}

	result, err := Commit(context.Background(), store, testRef(), grid)
	require.NoError(t, err)
	require.Len(t, store.last, 3)

	assert.Equal(t, []SlotKey{slots[1], slots[2]}, result.Committed)
	assert.Equal(t, []SlotKey{slots[0]}, result.Skipped)

	// Committed slots are now persisted; the skipped one stays staged.
	staged := grid.Staged()
	require.Len(t, staged, 1)
	assert.Equal(t, slots[0], staged[0].Slot)

	// One warn notification per skipped slot, plus the server message.
	var warns int
	for _, n := range result.Notifications {
		if n.Severity == SeverityWarn {
			warns++
			assert.Contains(t, n.Detail, "week 1")
		}
	}
	assert.Equal(t, 1, warns)
}

func TestCommitRejectsInvalidBatchBeforeNetwork(t *testing.T) {
	grid := NewGrid()
	require.NoError(t, grid.Place(Assignment{
		Slot:        SlotKey{Week: 1, Day: Monday, Period: Morning},
		SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1",
		DeliveryMode: InPerson, // no room
	}))

	store := &committerStub{}
	_, err := Commit(context.Background(), store, testRef(), grid)

	var batchErr *BatchInvalidError
	require.ErrorAs(t, err, &batchErr)
	require.Len(t, batchErr.Conflicts, 1)
	assert.Equal(t, ConflictMissingRoom, batchErr.Conflicts[0].Kind)
	assert.Equal(t, 0, store.calls)
}

func TestCommitTransportFailureLeavesGridStaged(t *testing.T) {
	grid := NewGrid()
	require.NoError(t, grid.Place(Assignment{
		Slot:        SlotKey{Week: 1, Day: Monday, Period: Morning},
		SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote,
	}))

	store := &committerStub{err: errors.New("connection refused")}
	_, err := Commit(context.Background(), store, testRef(), grid)

	require.Error(t, err)
	assert.Len(t, grid.Staged(), 1)
}

func TestCommitNothingStaged(t *testing.T) {
	grid := NewGrid()
	require.NoError(t, grid.Place(Assignment{
		PersistedID: strPtr("sched-1"),
		Slot:        SlotKey{Week: 1, Day: Monday, Period: Morning},
		SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote,
	}))

	store := &committerStub{}
	result, err := Commit(context.Background(), store, testRef(), grid)

	require.NoError(t, err)
	assert.Equal(t, 0, store.calls)
	assert.Empty(t, result.Committed)
}

func TestCommitOnlySendsStagedItems(t *testing.T) {
	grid := NewGrid()
	require.NoError(t, grid.Place(Assignment{
		PersistedID: strPtr("sched-1"),
		Slot:        SlotKey{Week: 1, Day: Monday, Period: Morning},
		SubjectCode: "MATH1", TeacherID: "T1", DeliveryMode: Remote,
	}))
	newSlot := SlotKey{Week: 1, Day: Tuesday, Period: Morning}
	require.NoError(t, grid.Place(Assignment{
		Slot: newSlot, SubjectCode: "PHYS1", TeacherID: "T2", DeliveryMode: Remote,
	}))

	store := &committerStub{resp: &CommitResponse{
		Message: "added 1 item",
		Added:   []AddedSlot{{ID: "sched-2", Slot: newSlot}},
	}}

	result, err := Commit(context.Background(), store, testRef(), grid)
	require.NoError(t, err)
	require.Len(t, store.last, 1)
	assert.Equal(t, "PHYS1", store.last[0].SubjectCode)
	assert.Equal(t, []SlotKey{newSlot}, result.Committed)
	assert.Empty(t, grid.Staged())
}
