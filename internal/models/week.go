package models

import "time"

// Term identifies a semester within an academic year.
type Term string

const (
	TermFirst  Term = "HK1"
	TermSecond Term = "HK2"
	TermThird  Term = "HK3"
)

// Valid reports whether t is a known term.
func (t Term) Valid() bool {
	switch t {
	case TermFirst, TermSecond, TermThird:
		return true
	}
	return false
}

// AcademicWeek is a calendar week of a term: the ISO week ordinal used as
// the grid's week key, a 1-based display ordinal within the term, and the
// concrete date range. Immutable once computed.
type AcademicWeek struct {
	Week       int       `json:"week"`
	WeekOfTerm int       `json:"week_of_term"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}
