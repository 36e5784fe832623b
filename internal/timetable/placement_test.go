package timetable

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deleterStub struct {
	deleted []string
	err     error
}

func (s *deleterStub) DeleteAssignment(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestEditor(t *testing.T, deleter AssignmentDeleter) *Editor {
	t.Helper()
	editor := NewEditor(NewGrid(), NewStagedList(0), deleter)
	require.NoError(t, editor.Staged().Add(StagedPair{SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1", TeacherName: "T1"}))
	require.NoError(t, editor.Staged().Add(StagedPair{SubjectCode: "PHYS1", SubjectName: "PHYS1", TeacherID: "T1", TeacherName: "T1"}))
	require.NoError(t, editor.Staged().Add(StagedPair{SubjectCode: "CHEM1", SubjectName: "CHEM1", TeacherID: "T2", TeacherName: "T2"}))
	return editor
}

func TestClickWithoutSelection(t *testing.T) {
	editor := newTestEditor(t, nil)

	outcome := editor.Click(mondayMorning(1))

	assert.Equal(t, OutcomeNotice, outcome.Kind)
	require.NotNil(t, outcome.Notice)
	assert.Equal(t, SeverityWarn, outcome.Notice.Severity)
	assert.Equal(t, 0, editor.Grid().Len())
}

func TestClickInPersonWithoutRoom(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.Select("MATH1", "T1"))
	require.NoError(t, editor.SetDelivery(InPerson, nil))

	outcome := editor.Click(mondayMorning(1))

	assert.Equal(t, OutcomeNotice, outcome.Kind)
	assert.Equal(t, 0, editor.Grid().Len())
}

func TestPlaceOnEmptyCell(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.Select("MATH1", "T1"))
	require.NoError(t, editor.SetDelivery(Remote, nil))

	outcome := editor.Click(mondayMorning(1))

	require.Equal(t, OutcomePlaced, outcome.Kind)
	require.NotNil(t, outcome.Assignment)
	assert.Nil(t, outcome.Assignment.PersistedID)
	assert.Equal(t, CellOccupiedBySame, editor.CellState(mondayMorning(1)))
}

func TestPlaceBlockedByTeacherConflict(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))
	require.Equal(t, OutcomePlaced, editor.Click(mondayMorning(1)).Kind)

	// Same teacher, same week/day/period, different empty... the cell is
	// occupied, so the replace prompt applies; a true empty-cell teacher
	// block needs a second assignment path, covered via Preview here.
	require.NoError(t, editor.Select("PHYS1", "T1"))
	conflicts := editor.Preview(mondayMorning(1))
	require.NotEmpty(t, conflicts)
	assert.Equal(t, ConflictTeacher, conflicts[0].Kind)
}

func TestDeleteOwnPlacement(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))
	slot := mondayMorning(1)
	require.Equal(t, OutcomePlaced, editor.Click(slot).Kind)

	// Clicking the same pair's cell offers deletion.
	outcome := editor.Click(slot)
	require.Equal(t, OutcomeNeedsConfirmation, outcome.Kind)
	require.NotNil(t, outcome.Prompt)
	assert.Equal(t, PromptDelete, outcome.Prompt.Kind)

	confirmed, err := editor.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, confirmed.Kind)
	assert.Equal(t, CellEmpty, editor.CellState(slot))
}

func TestDeletePersistedCallsRemoteFirst(t *testing.T) {
	deleter := &deleterStub{}
	editor := newTestEditor(t, deleter)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))

	slot := mondayMorning(1)
	editor.Grid().Replace(Assignment{
		PersistedID: strPtr("sched-1"), Slot: slot,
		SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1", TeacherName: "T1",
		DeliveryMode: Remote,
	})

	require.Equal(t, OutcomeNeedsConfirmation, editor.Click(slot).Kind)
	outcome, err := editor.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome.Kind)
	assert.Equal(t, []string{"sched-1"}, deleter.deleted)
}

func TestDeleteAbortsWhenRemoteFails(t *testing.T) {
	deleter := &deleterStub{err: errors.New("store unavailable")}
	editor := newTestEditor(t, deleter)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))

	slot := mondayMorning(1)
	editor.Grid().Replace(Assignment{
		PersistedID: strPtr("sched-1"), Slot: slot,
		SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1", TeacherName: "T1",
		DeliveryMode: Remote,
	})

	require.Equal(t, OutcomeNeedsConfirmation, editor.Click(slot).Kind)
	_, err := editor.Confirm(context.Background())
	require.Error(t, err)

	// The failed delete aborted the local removal; re-clicking retries.
	assert.Equal(t, CellOccupiedBySame, editor.CellState(slot))
	_, pending := editor.Pending()
	assert.False(t, pending)
}

func TestDeleteToleratesNotDeletable(t *testing.T) {
	deleter := &deleterStub{err: ErrNotDeletable}
	editor := newTestEditor(t, deleter)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))

	slot := mondayMorning(1)
	editor.Grid().Replace(Assignment{
		PersistedID: strPtr("sched-1"), Slot: slot,
		SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1", TeacherName: "T1",
		DeliveryMode: Remote,
	})

	require.Equal(t, OutcomeNeedsConfirmation, editor.Click(slot).Kind)
	outcome, err := editor.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome.Kind)
	assert.Equal(t, CellEmpty, editor.CellState(slot))
}

func TestReplaceOccupiedByOther(t *testing.T) {
	deleter := &deleterStub{}
	editor := newTestEditor(t, deleter)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))
	slot := mondayMorning(1)
	require.Equal(t, OutcomePlaced, editor.Click(slot).Kind)

	require.NoError(t, editor.Select("CHEM1", "T2"))
	outcome := editor.Click(slot)
	require.Equal(t, OutcomeNeedsConfirmation, outcome.Kind)
	require.NotNil(t, outcome.Prompt)
	assert.Equal(t, PromptReplace, outcome.Prompt.Kind)
	assert.Equal(t, "MATH1", outcome.Prompt.Existing.SubjectCode)
	assert.Equal(t, "CHEM1", outcome.Prompt.Incoming.SubjectCode)

	confirmed, err := editor.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeReplaced, confirmed.Kind)

	occupant, ok := editor.Grid().At(slot)
	require.True(t, ok)
	assert.Equal(t, "CHEM1", occupant.SubjectCode)
	assert.Empty(t, deleter.deleted) // occupant was never persisted
}

func TestReplaceAbortsWhenRemoteDeleteFails(t *testing.T) {
	deleter := &deleterStub{err: errors.New("store unavailable")}
	editor := newTestEditor(t, deleter)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("CHEM1", "T2"))

	slot := mondayMorning(1)
	editor.Grid().Replace(Assignment{
		PersistedID: strPtr("sched-1"), Slot: slot,
		SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1", TeacherName: "T1",
		DeliveryMode: Remote,
	})

	require.Equal(t, OutcomeNeedsConfirmation, editor.Click(slot).Kind)
	_, err := editor.Confirm(context.Background())
	require.Error(t, err)

	occupant, ok := editor.Grid().At(slot)
	require.True(t, ok)
	assert.Equal(t, "MATH1", occupant.SubjectCode)
}

func TestDuplicateWeekWarnsBeforePlacing(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))
	require.Equal(t, OutcomePlaced, editor.Click(SlotKey{Week: 1, Day: Monday, Period: Morning}).Kind)

	outcome := editor.Click(SlotKey{Week: 1, Day: Wednesday, Period: Evening})
	require.Equal(t, OutcomeNeedsConfirmation, outcome.Kind)
	assert.Equal(t, PromptDuplicateWeek, outcome.Prompt.Kind)

	confirmed, err := editor.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomePlaced, confirmed.Kind)
	assert.Equal(t, 2, editor.Grid().Len())
}

func TestDuplicateInDifferentWeekPlacesImmediately(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))
	require.Equal(t, OutcomePlaced, editor.Click(SlotKey{Week: 1, Day: Monday, Period: Morning}).Kind)

	outcome := editor.Click(SlotKey{Week: 2, Day: Monday, Period: Morning})
	assert.Equal(t, OutcomePlaced, outcome.Kind)
}

func TestCancelDiscardsPending(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))
	slot := mondayMorning(1)
	require.Equal(t, OutcomePlaced, editor.Click(slot).Kind)
	require.Equal(t, OutcomeNeedsConfirmation, editor.Click(slot).Kind)

	editor.Cancel()

	_, pending := editor.Pending()
	assert.False(t, pending)
	assert.Equal(t, CellOccupiedBySame, editor.CellState(slot))
}

func TestClickWhilePendingIsRejected(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.SetDelivery(Remote, nil))
	require.NoError(t, editor.Select("MATH1", "T1"))
	slot := mondayMorning(1)
	require.Equal(t, OutcomePlaced, editor.Click(slot).Kind)
	require.Equal(t, OutcomeNeedsConfirmation, editor.Click(slot).Kind)

	outcome := editor.Click(SlotKey{Week: 1, Day: Tuesday, Period: Morning})
	assert.Equal(t, OutcomeNotice, outcome.Kind)
}

func TestInPersonPlacementCarriesRoom(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.SetDelivery(InPerson, strPtr("5")))
	require.NoError(t, editor.Select("MATH1", "T1"))

	outcome := editor.Click(SlotKey{Week: 1, Day: Tuesday, Period: Afternoon})
	require.Equal(t, OutcomePlaced, outcome.Kind)
	require.NotNil(t, outcome.Assignment.RoomID)
	assert.Equal(t, "5", *outcome.Assignment.RoomID)
	assert.NoError(t, outcome.Assignment.CheckDelivery())
}

func TestRemoteDeliveryDropsRoom(t *testing.T) {
	editor := newTestEditor(t, nil)
	require.NoError(t, editor.SetDelivery(Remote, strPtr("5")))
	require.NoError(t, editor.Select("MATH1", "T1"))

	outcome := editor.Click(mondayMorning(1))
	require.Equal(t, OutcomePlaced, outcome.Kind)
	assert.Nil(t, outcome.Assignment.RoomID)
	assert.NoError(t, outcome.Assignment.CheckDelivery())
}
