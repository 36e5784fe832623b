package timetable

import (
	"fmt"
	"sort"
)

// Grid is the (week × day × period) addressable structure holding committed
// assignments merged with assignments placed this session. It owns its
// Assignments exclusively; callers get copies, never aliases. The central
// invariant: a slot holds at most one assignment.
type Grid struct {
	slots map[SlotKey]Assignment
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{slots: make(map[SlotKey]Assignment)}
}

// Seed loads persisted assignments into the grid. Entries whose slot is
// already occupied are not loaded; they are returned so the caller can
// surface them instead of silently dropping pre-existing conflicts.
func (g *Grid) Seed(assignments []Assignment) []Assignment {
	var rejected []Assignment
	for _, a := range assignments {
		if !a.Slot.Valid() {
			rejected = append(rejected, a)
			continue
		}
		if _, occupied := g.slots[a.Slot]; occupied {
			rejected = append(rejected, a)
			continue
		}
		g.slots[a.Slot] = a
	}
	return rejected
}

// At returns the assignment occupying the slot, if any.
func (g *Grid) At(key SlotKey) (Assignment, bool) {
	a, ok := g.slots[key]
	return a, ok
}

// Place adds an assignment to an empty slot. Occupied slots must go through
// Replace so the caller decides the resolution explicitly.
func (g *Grid) Place(a Assignment) error {
	if !a.Slot.Valid() {
		return fmt.Errorf("invalid slot %v", a.Slot)
	}
	if existing, occupied := g.slots[a.Slot]; occupied {
		return fmt.Errorf("slot %s already holds %s", a.Slot, existing.SubjectCode)
	}
	g.slots[a.Slot] = a
	return nil
}

// Replace overwrites whatever occupies the slot.
func (g *Grid) Replace(a Assignment) {
	g.slots[a.Slot] = a
}

// Remove clears a slot, reporting whether it was occupied.
func (g *Grid) Remove(key SlotKey) bool {
	if _, ok := g.slots[key]; !ok {
		return false
	}
	delete(g.slots, key)
	return true
}

// MarkPersisted records the server-assigned id for the assignment at key.
func (g *Grid) MarkPersisted(key SlotKey, id string) bool {
	a, ok := g.slots[key]
	if !ok {
		return false
	}
	a.PersistedID = &id
	g.slots[key] = a
	return true
}

// Len returns the number of occupied slots.
func (g *Grid) Len() int {
	return len(g.slots)
}

// Assignments returns a sorted snapshot of every assignment in the grid.
// The ordering (week, day, period) keeps detection and validation output
// deterministic.
func (g *Grid) Assignments() []Assignment {
	out := make([]Assignment, 0, len(g.slots))
	for _, a := range g.slots {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Slot, out[j].Slot
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.Day != b.Day {
			return a.Day.Index() < b.Day.Index()
		}
		return a.Period.Index() < b.Period.Index()
	})
	return out
}

// Staged returns the assignments not yet persisted on the remote store.
func (g *Grid) Staged() []Assignment {
	var out []Assignment
	for _, a := range g.Assignments() {
		if !a.Persisted() {
			out = append(out, a)
		}
	}
	return out
}

// WeekOccurrences lists the slots in the given week already holding the
// subject/teacher pair. Used for the same-subject same-week duplication
// warning, which is advisory rather than blocking.
func (g *Grid) WeekOccurrences(subjectCode, teacherID string, week int) []SlotKey {
	var out []SlotKey
	for _, a := range g.Assignments() {
		if a.Slot.Week == week && a.SamePair(subjectCode, teacherID) {
			out = append(out, a.Slot)
		}
	}
	return out
}
