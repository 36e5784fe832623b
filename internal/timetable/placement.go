package timetable

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotDeletable signals the remote store no longer holds the assignment.
// A delete that hits it is treated as already resolved, not fatal.
var ErrNotDeletable = errors.New("assignment no longer exists on the remote store")

// AssignmentDeleter is the remote-store boundary used during delete and
// replace resolutions. The call is a suspension point: the local mutation is
// applied only after it succeeds.
type AssignmentDeleter interface {
	DeleteAssignment(ctx context.Context, id string) error
}

// CellState is a cell's condition from the operator's perspective at click
// time, relative to the currently selected pair.
type CellState string

const (
	CellEmpty           CellState = "EMPTY"
	CellOccupiedBySame  CellState = "OCCUPIED_BY_SAME"
	CellOccupiedByOther CellState = "OCCUPIED_BY_OTHER"
)

// OutcomeKind enumerates the result variants a click can produce.
type OutcomeKind string

const (
	OutcomePlaced            OutcomeKind = "PLACED"
	OutcomeBlocked           OutcomeKind = "BLOCKED"
	OutcomeNeedsConfirmation OutcomeKind = "NEEDS_CONFIRMATION"
	OutcomeReplaced          OutcomeKind = "REPLACED"
	OutcomeDeleted           OutcomeKind = "DELETED"
	OutcomeNotice            OutcomeKind = "NOTICE"
)

// PromptKind names the confirmation being requested from the operator.
type PromptKind string

const (
	PromptDelete        PromptKind = "CONFIRM_DELETE"
	PromptReplace       PromptKind = "CONFIRM_REPLACE"
	PromptDuplicateWeek PromptKind = "CONFIRM_DUPLICATE_WEEK"
)

// Prompt describes a pending confirmation for the presentation layer.
type Prompt struct {
	Kind     PromptKind  `json:"kind"`
	Slot     SlotKey     `json:"slot"`
	Message  string      `json:"message"`
	Existing *Assignment `json:"existing,omitempty"`
	Incoming *Assignment `json:"incoming,omitempty"`
}

// Outcome is the explicit result of a click or confirmation, consumed by a
// thin presentation layer that decides how to render each variant.
type Outcome struct {
	Kind       OutcomeKind   `json:"kind"`
	Assignment *Assignment   `json:"assignment,omitempty"`
	Conflicts  []Conflict    `json:"conflicts,omitempty"`
	Prompt     *Prompt       `json:"prompt,omitempty"`
	Notice     *Notification `json:"notice,omitempty"`
}

func notice(severity Severity, title, detail string) Outcome {
	return Outcome{Kind: OutcomeNotice, Notice: &Notification{Severity: severity, Title: title, Detail: detail}}
}

type pendingAction struct {
	prompt   Prompt
	existing *Assignment
	incoming *Assignment
}

// Editor is the per-session placement state machine. It exclusively owns the
// grid and the staged list; all mutation flows through Click, Confirm and
// Cancel. It is not safe for concurrent use; callers serialise access.
type Editor struct {
	grid    *Grid
	staged  *StagedList
	deleter AssignmentDeleter

	selection *StagedPair
	mode      DeliveryMode
	roomID    *string

	pending *pendingAction
}

// NewEditor builds an editor over a seeded grid.
func NewEditor(grid *Grid, staged *StagedList, deleter AssignmentDeleter) *Editor {
	if grid == nil {
		grid = NewGrid()
	}
	if staged == nil {
		staged = NewStagedList(0)
	}
	return &Editor{grid: grid, staged: staged, deleter: deleter}
}

// Grid exposes the grid for read-only consumers (validation, rendering).
func (e *Editor) Grid() *Grid { return e.grid }

// Staged exposes the staged pair list.
func (e *Editor) Staged() *StagedList { return e.staged }

// Selection returns the pair currently selected for placement, if any.
func (e *Editor) Selection() (StagedPair, bool) {
	if e.selection == nil {
		return StagedPair{}, false
	}
	return *e.selection, true
}

// Select chooses a staged pair for placement. The pair must be staged.
func (e *Editor) Select(subjectCode, teacherID string) error {
	pair, ok := e.staged.Find(subjectCode, teacherID)
	if !ok {
		return fmt.Errorf("pair %s/%s is not staged", subjectCode, teacherID)
	}
	e.selection = &pair
	return nil
}

// ClearSelection drops the current placement selection.
func (e *Editor) ClearSelection() {
	e.selection = nil
}

// SetDelivery configures the delivery mode and room applied to subsequent
// placements. A remote mode discards any previously chosen room.
func (e *Editor) SetDelivery(mode DeliveryMode, roomID *string) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown delivery mode %q", mode)
	}
	if mode == Remote {
		roomID = nil
	}
	e.mode = mode
	e.roomID = roomID
	return nil
}

// CellState classifies the slot relative to the current selection.
func (e *Editor) CellState(slot SlotKey) CellState {
	occupant, ok := e.grid.At(slot)
	if !ok {
		return CellEmpty
	}
	if e.selection != nil && occupant.SamePair(e.selection.SubjectCode, e.selection.TeacherID) {
		return CellOccupiedBySame
	}
	return CellOccupiedByOther
}

// Preview computes the conflicts a placement at slot would raise, without
// mutating anything. Used to warn before the click.
func (e *Editor) Preview(slot SlotKey) []Conflict {
	if e.selection == nil {
		return nil
	}
	return DetectConflicts(e.candidate(slot), e.grid, nil)
}

func (e *Editor) candidate(slot SlotKey) Candidate {
	return Candidate{
		Slot:         slot,
		TeacherID:    e.selection.TeacherID,
		TeacherName:  e.selection.TeacherName,
		DeliveryMode: e.mode,
		RoomID:       e.roomID,
	}
}

func (e *Editor) buildAssignment(slot SlotKey) Assignment {
	return Assignment{
		Slot:         slot,
		SubjectCode:  e.selection.SubjectCode,
		SubjectName:  e.selection.SubjectName,
		TeacherID:    e.selection.TeacherID,
		TeacherName:  e.selection.TeacherName,
		DeliveryMode: e.mode,
		RoomID:       e.roomID,
	}
}

// Click drives the per-cell decision logic. It either mutates the grid
// immediately (empty cell, no conflicts, no duplicate in the week) or parks
// a pending action awaiting Confirm/Cancel.
func (e *Editor) Click(slot SlotKey) Outcome {
	if !slot.Valid() {
		return notice(SeverityError, "Invalid slot", fmt.Sprintf("%v does not address a grid cell", slot))
	}
	if e.pending != nil {
		return notice(SeverityWarn, "Confirmation pending",
			"confirm or cancel the current action before clicking another cell")
	}
	if e.selection == nil {
		return notice(SeverityWarn, "No subject selected", "select a subject to place first")
	}
	if e.mode == "" {
		return notice(SeverityWarn, "No delivery mode", "choose in-person or remote before placing")
	}
	if e.mode == InPerson && (e.roomID == nil || *e.roomID == "") {
		return notice(SeverityWarn, "No room chosen", "choose a room before placing an in-person session")
	}

	switch e.CellState(slot) {
	case CellOccupiedBySame:
		occupant, _ := e.grid.At(slot)
		prompt := Prompt{
			Kind:     PromptDelete,
			Slot:     slot,
			Message:  fmt.Sprintf("Delete %s - %s at %s?", occupant.SubjectName, occupant.TeacherName, slot),
			Existing: &occupant,
		}
		e.pending = &pendingAction{prompt: prompt, existing: &occupant}
		return Outcome{Kind: OutcomeNeedsConfirmation, Prompt: &prompt}

	case CellOccupiedByOther:
		occupant, _ := e.grid.At(slot)
		incoming := e.buildAssignment(slot)
		prompt := Prompt{
			Kind: PromptReplace,
			Slot: slot,
			Message: fmt.Sprintf("Replace %s - %s with %s - %s at %s?",
				occupant.SubjectName, occupant.TeacherName,
				incoming.SubjectName, incoming.TeacherName, slot),
			Existing: &occupant,
			Incoming: &incoming,
		}
		e.pending = &pendingAction{prompt: prompt, existing: &occupant, incoming: &incoming}
		return Outcome{Kind: OutcomeNeedsConfirmation, Prompt: &prompt}

	default:
		// Empty cell: conflicts block placement outright, no silent
		// double-booking at this stage.
		conflicts := DetectConflicts(e.candidate(slot), e.grid, nil)
		if len(conflicts) > 0 {
			return Outcome{Kind: OutcomeBlocked, Conflicts: conflicts}
		}

		incoming := e.buildAssignment(slot)
		if occurrences := e.grid.WeekOccurrences(e.selection.SubjectCode, e.selection.TeacherID, slot.Week); len(occurrences) > 0 {
			// A class may legitimately meet twice a week for the same
			// subject, so this is flagged, not blocked.
			prompt := Prompt{
				Kind: PromptDuplicateWeek,
				Slot: slot,
				Message: fmt.Sprintf("%s already occurs %d time(s) in week %d; add another?",
					incoming.SubjectName, len(occurrences), slot.Week),
				Incoming: &incoming,
			}
			e.pending = &pendingAction{prompt: prompt, incoming: &incoming}
			return Outcome{Kind: OutcomeNeedsConfirmation, Prompt: &prompt}
		}

		if err := e.grid.Place(incoming); err != nil {
			return notice(SeverityError, "Placement failed", err.Error())
		}
		return Outcome{Kind: OutcomePlaced, Assignment: &incoming}
	}
}

// Confirm resolves the pending action. Remote deletes happen before any
// local mutation; a failed delete aborts the resolution and leaves the grid
// unchanged, so re-clicking retries cleanly.
func (e *Editor) Confirm(ctx context.Context) (Outcome, error) {
	if e.pending == nil {
		return notice(SeverityWarn, "Nothing to confirm", "there is no pending action"), nil
	}
	action := e.pending

	switch action.prompt.Kind {
	case PromptDuplicateWeek:
		e.pending = nil
		incoming := *action.incoming
		if err := e.grid.Place(incoming); err != nil {
			return notice(SeverityError, "Placement failed", err.Error()), nil
		}
		return Outcome{Kind: OutcomePlaced, Assignment: &incoming}, nil

	case PromptDelete:
		if err := e.deleteRemote(ctx, action.existing); err != nil {
			e.pending = nil
			return Outcome{}, err
		}
		e.pending = nil
		e.grid.Remove(action.prompt.Slot)
		return Outcome{Kind: OutcomeDeleted, Assignment: action.existing}, nil

	case PromptReplace:
		if err := e.deleteRemote(ctx, action.existing); err != nil {
			e.pending = nil
			return Outcome{}, err
		}
		e.pending = nil
		e.grid.Remove(action.prompt.Slot)

		// The occupant is gone; re-check against everything else before
		// overwriting, excluding the cell being replaced.
		slot := action.prompt.Slot
		conflicts := DetectConflicts(e.candidate(slot), e.grid, &slot)
		if len(conflicts) > 0 {
			return Outcome{Kind: OutcomeBlocked, Conflicts: conflicts}, nil
		}

		incoming := *action.incoming
		e.grid.Replace(incoming)
		return Outcome{Kind: OutcomeReplaced, Assignment: &incoming}, nil
	}

	e.pending = nil
	return notice(SeverityError, "Unknown action", string(action.prompt.Kind)), nil
}

// Cancel discards the pending action, if any.
func (e *Editor) Cancel() {
	e.pending = nil
}

// Pending returns the prompt awaiting confirmation, if any.
func (e *Editor) Pending() (Prompt, bool) {
	if e.pending == nil {
		return Prompt{}, false
	}
	return e.pending.prompt, true
}

func (e *Editor) deleteRemote(ctx context.Context, existing *Assignment) error {
	if existing == nil || !existing.Persisted() {
		return nil
	}
	if e.deleter == nil {
		return fmt.Errorf("no remote store configured for persisted assignment %s", *existing.PersistedID)
	}
	err := e.deleter.DeleteAssignment(ctx, *existing.PersistedID)
	if err == nil || errors.Is(err, ErrNotDeletable) {
		// Already gone server-side counts as resolved.
		return nil
	}
	return fmt.Errorf("remote delete of %s failed: %w", *existing.PersistedID, err)
}
