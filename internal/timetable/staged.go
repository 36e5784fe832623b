package timetable

import "fmt"

// StagedList holds the subject/teacher pairs the operator has prepared for
// placement this session. It is independent of what is already persisted:
// a pair may end up placed into zero, one or many slots.
type StagedList struct {
	pairs []StagedPair
	limit int
}

// NewStagedList returns an empty list. limit <= 0 means unbounded.
func NewStagedList(limit int) *StagedList {
	return &StagedList{limit: limit}
}

// Add stages a pair. No two entries may share both subject code and teacher.
func (l *StagedList) Add(pair StagedPair) error {
	if pair.SubjectCode == "" || pair.TeacherID == "" {
		return fmt.Errorf("staged pair needs both a subject and a teacher")
	}
	if l.limit > 0 && len(l.pairs) >= l.limit {
		return fmt.Errorf("staged list is full (%d pairs)", l.limit)
	}
	for _, existing := range l.pairs {
		if existing.SubjectCode == pair.SubjectCode && existing.TeacherID == pair.TeacherID {
			return fmt.Errorf("%s with this teacher is already staged", pair.SubjectName)
		}
	}
	l.pairs = append(l.pairs, pair)
	return nil
}

// Remove drops the pair identified by subject code and teacher id.
func (l *StagedList) Remove(subjectCode, teacherID string) bool {
	for i, existing := range l.pairs {
		if existing.SubjectCode == subjectCode && existing.TeacherID == teacherID {
			l.pairs = append(l.pairs[:i], l.pairs[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the staged pair matching subject code and teacher id.
func (l *StagedList) Find(subjectCode, teacherID string) (StagedPair, bool) {
	for _, existing := range l.pairs {
		if existing.SubjectCode == subjectCode && existing.TeacherID == teacherID {
			return existing, true
		}
	}
	return StagedPair{}, false
}

// Pairs returns a copy of the staged pairs in insertion order.
func (l *StagedList) Pairs() []StagedPair {
	out := make([]StagedPair, len(l.pairs))
	copy(out, l.pairs)
	return out
}
