package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/cec-hub/cec-timetable-api/internal/models"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
)

// termWeekRange maps a term to the ISO weeks it spans and the calendar year
// those weeks fall in, relative to the academic year's start.
type termWeekRange struct {
	firstWeek  int
	lastWeek   int
	yearOffset int
}

var termRanges = map[models.Term]termWeekRange{
	models.TermFirst:  {firstWeek: 37, lastWeek: 51, yearOffset: 0},
	models.TermSecond: {firstWeek: 1, lastWeek: 17, yearOffset: 1},
	models.TermThird:  {firstWeek: 20, lastWeek: 34, yearOffset: 1},
}

// WeekService computes the calendar weeks of a term. Weeks are derived from
// the ISO week calendar rather than stored.
type WeekService struct {
	logger *zap.Logger
}

// NewWeekService constructs a WeekService.
func NewWeekService(logger *zap.Logger) *WeekService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeekService{logger: logger}
}

// WeeksOfTerm returns the weeks of a term in order, each carrying its ISO
// week ordinal, its 1-based position within the term, and its date range.
func (s *WeekService) WeeksOfTerm(term models.Term, academicYear int) ([]models.AcademicWeek, error) {
	r, ok := termRanges[term]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown term")
	}
	year := academicYear + r.yearOffset

	weeks := make([]models.AcademicWeek, 0, r.lastWeek-r.firstWeek+1)
	for w := r.firstWeek; w <= r.lastWeek; w++ {
		start := isoWeekStart(year, w)
		weeks = append(weeks, models.AcademicWeek{
			Week:       w,
			WeekOfTerm: w - r.firstWeek + 1,
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 6),
		})
	}
	return weeks, nil
}

// CurrentWeek returns the week of the term containing now, or nil when now
// falls outside the term.
func (s *WeekService) CurrentWeek(term models.Term, academicYear int, now time.Time) (*models.AcademicWeek, error) {
	weeks, err := s.WeeksOfTerm(term, academicYear)
	if err != nil {
		return nil, err
	}
	day := now.Truncate(24 * time.Hour)
	for i := range weeks {
		if !day.Before(weeks[i].StartDate) && !day.After(weeks[i].EndDate) {
			return &weeks[i], nil
		}
	}
	return nil, nil
}

// isoWeekStart returns the Monday of the given ISO week. January 4 is always
// inside ISO week 1, which anchors the calendar.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, -(weekday - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}
