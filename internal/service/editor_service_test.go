package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cec-hub/cec-timetable-api/internal/dto"
	"github.com/cec-hub/cec-timetable-api/internal/models"
	"github.com/cec-hub/cec-timetable-api/internal/timetable"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
)

type scheduleStoreStub struct {
	entries    []models.ScheduleEntry
	deleteErr  error
	deletedIDs []string
	commitResp *timetable.CommitResponse
	commitErr  error
	committed  []timetable.Assignment
}

func (s *scheduleStoreStub) ListByClassTerm(_ context.Context, _ string, _ models.Term, _ int) ([]models.ScheduleEntry, error) {
	return s.entries, nil
}

func (s *scheduleStoreStub) Delete(_ context.Context, id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return s.deleteErr
}

func (s *scheduleStoreStub) CommitSchedule(_ context.Context, _ timetable.ScheduleRef, items []timetable.Assignment) (*timetable.CommitResponse, error) {
	s.committed = items
	if s.commitErr != nil {
		return nil, s.commitErr
	}
	if s.commitResp != nil {
		return s.commitResp, nil
	}
	resp := &timetable.CommitResponse{Message: "ok"}
	for i, item := range items {
		resp.Added = append(resp.Added, timetable.AddedSlot{ID: string(rune('a' + i)), Slot: item.Slot})
	}
	return resp, nil
}

func newTestEditorService(store *scheduleStoreStub) *EditorService {
	svc := NewEditorService(store, nil, nil, EditorConfig{SessionTTL: time.Hour, SweepInterval: time.Hour}, nil)
	return svc
}

func editorRef() dto.CreateSessionRequest {
	return dto.CreateSessionRequest{ClassID: "class-1", Term: "HK1", AcademicYear: 2025}
}

func clickAt(week int, day timetable.Day, period timetable.Period) dto.ClickRequest {
	return dto.ClickRequest{Week: week, Day: string(day), Period: string(period)}
}

func stagePair(t *testing.T, svc *EditorService, sessionID string) {
	t.Helper()
	require.NoError(t, svc.AddPair(sessionID, dto.StagePairRequest{
		SubjectCode: "ENG101",
		SubjectName: "English 1",
		Credits:     3,
		TeacherID:   "t1",
		TeacherName: "Teacher A",
	}))
	require.NoError(t, svc.SetSelection(sessionID, dto.SelectionRequest{
		SubjectCode:  "ENG101",
		TeacherID:    "t1",
		DeliveryMode: string(timetable.Remote),
	}))
}

func TestEditorServiceSessionLifecycle(t *testing.T) {
	store := &scheduleStoreStub{}
	svc := newTestEditorService(store)
	defer svc.Close()

	sess, grid, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Empty(t, grid)

	svc.CloseSession(sess.ID)
	_, err = svc.Click(sess.ID, clickAt(40, timetable.Monday, timetable.Morning))
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, appErr.Code)
}

func TestEditorServiceSeedsCommittedSchedule(t *testing.T) {
	store := &scheduleStoreStub{entries: []models.ScheduleEntry{{
		ID: "s1", ClassID: "class-1", Term: models.TermFirst, AcademicYear: 2025,
		Week: 40, Day: timetable.Monday, Period: timetable.Morning,
		SubjectCode: "MAT201", SubjectName: "Calculus",
		TeacherID: "t2", TeacherName: "Teacher B", DeliveryMode: timetable.Remote,
	}}}
	svc := newTestEditorService(store)
	defer svc.Close()

	_, grid, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.True(t, grid[0].Persisted())
}

func TestEditorServiceClickPlacesSelection(t *testing.T) {
	svc := newTestEditorService(&scheduleStoreStub{})
	defer svc.Close()

	sess, _, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)
	stagePair(t, svc, sess.ID)

	outcome, err := svc.Click(sess.ID, clickAt(40, timetable.Monday, timetable.Morning))
	require.NoError(t, err)
	assert.Equal(t, timetable.OutcomePlaced, outcome.Kind)

	grid, pairs, err := svc.Snapshot(sess.ID)
	require.NoError(t, err)
	assert.Len(t, grid, 1)
	assert.Len(t, pairs, 1)
}

func TestEditorServiceConfirmDeleteCallsStore(t *testing.T) {
	store := &scheduleStoreStub{entries: []models.ScheduleEntry{{
		ID: "s1", ClassID: "class-1", Term: models.TermFirst, AcademicYear: 2025,
		Week: 40, Day: timetable.Monday, Period: timetable.Morning,
		SubjectCode: "ENG101", SubjectName: "English 1",
		TeacherID: "t1", TeacherName: "Teacher A", DeliveryMode: timetable.Remote,
	}}}
	svc := newTestEditorService(store)
	defer svc.Close()

	sess, _, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)
	stagePair(t, svc, sess.ID)

	outcome, err := svc.Click(sess.ID, clickAt(40, timetable.Monday, timetable.Morning))
	require.NoError(t, err)
	require.Equal(t, timetable.OutcomeNeedsConfirmation, outcome.Kind)

	outcome, err = svc.Confirm(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, timetable.OutcomeDeleted, outcome.Kind)
	assert.Equal(t, []string{"s1"}, store.deletedIDs)
}

func TestEditorServiceSubmitReconciles(t *testing.T) {
	slot := timetable.SlotKey{Week: 40, Day: timetable.Monday, Period: timetable.Morning}
	skipped := timetable.SlotKey{Week: 41, Day: timetable.Tuesday, Period: timetable.Morning}
	store := &scheduleStoreStub{commitResp: &timetable.CommitResponse{
		Message: "added 1 assignments, skipped 1",
		Added:   []timetable.AddedSlot{{ID: "srv-1", Slot: slot}},
		Skipped: []timetable.SlotKey{skipped},
	}}
	svc := newTestEditorService(store)
	defer svc.Close()

	sess, _, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)
	stagePair(t, svc, sess.ID)

	_, err = svc.Click(sess.ID, clickAt(40, timetable.Monday, timetable.Morning))
	require.NoError(t, err)
	_, err = svc.Click(sess.ID, clickAt(41, timetable.Tuesday, timetable.Morning))
	require.NoError(t, err)

	result, err := svc.Submit(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []timetable.SlotKey{slot}, result.Committed)
	assert.Equal(t, []timetable.SlotKey{skipped}, result.Skipped)
	assert.Len(t, store.committed, 2)

	// The accepted slot is now persisted, the skipped one stays staged.
	grid, _, err := svc.Snapshot(sess.ID)
	require.NoError(t, err)
	for _, a := range grid {
		if a.Slot == slot {
			assert.True(t, a.Persisted())
		}
		if a.Slot == skipped {
			assert.False(t, a.Persisted())
		}
	}
}

func TestEditorServiceExpireSessions(t *testing.T) {
	svc := newTestEditorService(&scheduleStoreStub{})
	defer svc.Close()

	sess, _, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)

	svc.expireSessions(time.Now().Add(2 * time.Hour))
	_, _, err = svc.Snapshot(sess.ID)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, appErr.Code)
}

func TestEditorServiceRemovePairClearsSelection(t *testing.T) {
	svc := newTestEditorService(&scheduleStoreStub{})
	defer svc.Close()

	sess, _, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)
	stagePair(t, svc, sess.ID)

	require.NoError(t, svc.RemovePair(sess.ID, "ENG101", "t1"))
	outcome, err := svc.Click(sess.ID, clickAt(40, timetable.Monday, timetable.Morning))
	require.NoError(t, err)
	assert.Equal(t, timetable.OutcomeNotice, outcome.Kind)
}

func TestEditorServiceCreateSessionRejectsBadTarget(t *testing.T) {
	svc := newTestEditorService(&scheduleStoreStub{})
	defer svc.Close()

	_, _, err := svc.CreateSession(context.Background(), dto.CreateSessionRequest{
		ClassID: "class-1", Term: "HK1", AcademicYear: 5,
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestEditorServiceClickRejectsBadWeek(t *testing.T) {
	svc := newTestEditorService(&scheduleStoreStub{})
	defer svc.Close()

	sess, _, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)
	stagePair(t, svc, sess.ID)

	_, err = svc.Click(sess.ID, dto.ClickRequest{Week: 99, Day: "MONDAY", Period: "MORNING"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestEditorServicePreviewReportsConflictsWithoutPlacing(t *testing.T) {
	store := &scheduleStoreStub{entries: []models.ScheduleEntry{{
		ID: "s1", ClassID: "class-1", Term: models.TermFirst, AcademicYear: 2025,
		Week: 40, Day: timetable.Monday, Period: timetable.Morning,
		SubjectCode: "MAT201", SubjectName: "Calculus",
		TeacherID: "t1", TeacherName: "Teacher A", DeliveryMode: timetable.Remote,
	}}}
	svc := newTestEditorService(store)
	defer svc.Close()

	sess, _, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)
	stagePair(t, svc, sess.ID)

	state, conflicts, err := svc.Preview(sess.ID, dto.PreviewQuery{Week: 40, Day: "MONDAY", Period: "MORNING"})
	require.NoError(t, err)
	assert.Equal(t, timetable.CellOccupiedByOther, state)
	kinds := make([]timetable.ConflictKind, 0, len(conflicts))
	for _, c := range conflicts {
		kinds = append(kinds, c.Kind)
	}
	assert.Contains(t, kinds, timetable.ConflictTeacher)
	assert.Contains(t, kinds, timetable.ConflictSlotOccupied)

	// Preview never mutates the grid.
	grid, _, err := svc.Snapshot(sess.ID)
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.Equal(t, "MAT201", grid[0].SubjectCode)
}

func TestEditorServicePreviewEmptyCell(t *testing.T) {
	svc := newTestEditorService(&scheduleStoreStub{})
	defer svc.Close()

	sess, _, err := svc.CreateSession(context.Background(), editorRef())
	require.NoError(t, err)
	stagePair(t, svc, sess.ID)

	state, conflicts, err := svc.Preview(sess.ID, dto.PreviewQuery{Week: 40, Day: "MONDAY", Period: "MORNING"})
	require.NoError(t, err)
	assert.Equal(t, timetable.CellEmpty, state)
	assert.Empty(t, conflicts)
}
