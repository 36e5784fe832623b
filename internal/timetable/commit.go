package timetable

import (
	"context"
	"fmt"
)

// ScheduleRef identifies the schedule under edit.
type ScheduleRef struct {
	ClassID      string `json:"class_id"`
	Term         string `json:"term"`
	AcademicYear int    `json:"academic_year"`
}

// AddedSlot reports one committed item together with its server-assigned id.
type AddedSlot struct {
	ID   string  `json:"id"`
	Slot SlotKey `json:"slot"`
}

// CommitResponse is what the remote store answers to a batch commit. The
// store is authoritative for conflicts this client cannot see, so it may
// accept some items and skip others.
type CommitResponse struct {
	Message string      `json:"message"`
	Added   []AddedSlot `json:"added"`
	Skipped []SlotKey   `json:"skipped"`
}

// BatchCommitter is the remote-store boundary for the batch commit.
type BatchCommitter interface {
	CommitSchedule(ctx context.Context, ref ScheduleRef, items []Assignment) (*CommitResponse, error)
}

// CommitResult is the reconciled outcome surfaced to the operator.
type CommitResult struct {
	Message       string         `json:"message"`
	Committed     []SlotKey      `json:"committed"`
	Skipped       []SlotKey      `json:"skipped"`
	Notifications []Notification `json:"notifications"`
}

// Commit validates the grid, sends its staged assignments to the remote
// store and reconciles the response. Skipped entries are treated as not
// placed: their slots stay staged in the grid and each is surfaced to the
// operator individually. A transport failure leaves the grid untouched so
// the operator can retry without re-entering anything.
func Commit(ctx context.Context, store BatchCommitter, ref ScheduleRef, grid *Grid) (*CommitResult, error) {
	if grid == nil {
		return nil, fmt.Errorf("no grid to commit")
	}

	if conflicts := ValidateBatch(grid.Assignments()); len(conflicts) > 0 {
		return nil, &BatchInvalidError{Conflicts: conflicts}
	}

	staged := grid.Staged()
	if len(staged) == 0 {
		return &CommitResult{Message: "nothing to commit"}, nil
	}

	resp, err := store.CommitSchedule(ctx, ref, staged)
	if err != nil {
		return nil, fmt.Errorf("commit schedule: %w", err)
	}

	result := &CommitResult{Message: resp.Message, Skipped: resp.Skipped}
	for _, added := range resp.Added {
		grid.MarkPersisted(added.Slot, added.ID)
		result.Committed = append(result.Committed, added.Slot)
	}
	for _, slot := range resp.Skipped {
		result.Notifications = append(result.Notifications, Notification{
			Severity: SeverityWarn,
			Title:    "Not committed",
			Detail:   fmt.Sprintf("the server declined %s due to a conflicting booking", slot),
		})
	}
	if resp.Message != "" {
		result.Notifications = append(result.Notifications, Notification{
			Severity: SeverityInfo,
			Title:    "Schedule saved",
			Detail:   resp.Message,
		})
	}

	return result, nil
}
