package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagedListRejectsDuplicatePair(t *testing.T) {
	list := NewStagedList(0)
	require.NoError(t, list.Add(StagedPair{SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1"}))

	err := list.Add(StagedPair{SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T1"})
	require.Error(t, err)

	// Same subject, different teacher is a distinct pair.
	assert.NoError(t, list.Add(StagedPair{SubjectCode: "MATH1", SubjectName: "MATH1", TeacherID: "T2"}))
	assert.Len(t, list.Pairs(), 2)
}

func TestStagedListLimit(t *testing.T) {
	list := NewStagedList(1)
	require.NoError(t, list.Add(StagedPair{SubjectCode: "MATH1", TeacherID: "T1"}))
	assert.Error(t, list.Add(StagedPair{SubjectCode: "PHYS1", TeacherID: "T2"}))
}

func TestStagedListRemove(t *testing.T) {
	list := NewStagedList(0)
	require.NoError(t, list.Add(StagedPair{SubjectCode: "MATH1", TeacherID: "T1"}))

	assert.True(t, list.Remove("MATH1", "T1"))
	assert.False(t, list.Remove("MATH1", "T1"))
	_, found := list.Find("MATH1", "T1")
	assert.False(t, found)
}

func TestStagedListRequiresSubjectAndTeacher(t *testing.T) {
	list := NewStagedList(0)
	assert.Error(t, list.Add(StagedPair{SubjectCode: "MATH1"}))
	assert.Error(t, list.Add(StagedPair{TeacherID: "T1"}))
}
