package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/cec-hub/cec-timetable-api/internal/models"
	"github.com/cec-hub/cec-timetable-api/internal/timetable"
	"github.com/cec-hub/cec-timetable-api/pkg/export"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
)

// ExportService renders a class's committed timetable as PDF or CSV.
type ExportService struct {
	schedules *ScheduleService
	weeks     *WeekService
	pdf       *export.TimetablePDF
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(schedules *ScheduleService, weeks *WeekService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{schedules: schedules, weeks: weeks, pdf: export.NewTimetablePDF(), logger: logger}
}

// RenderPDF builds the week-grid PDF for one class and term. When fromWeek
// or toWeek is zero the whole term is rendered.
func (s *ExportService) RenderPDF(ctx context.Context, classCode, classID string, term models.Term, academicYear, fromWeek, toWeek int) ([]byte, error) {
	entries, err := s.schedules.ListByClassTerm(ctx, classID, term, academicYear)
	if err != nil {
		return nil, err
	}
	weeks, err := s.weeks.WeeksOfTerm(term, academicYear)
	if err != nil {
		return nil, err
	}

	byWeek := make(map[int][]models.ScheduleEntry)
	for _, e := range entries {
		byWeek[e.Week] = append(byWeek[e.Week], e)
	}

	var pages []export.WeekPage
	for _, w := range weeks {
		if fromWeek > 0 && w.Week < fromWeek {
			continue
		}
		if toWeek > 0 && w.Week > toWeek {
			continue
		}
		cells := make(map[timetable.Day]map[timetable.Period]string)
		for _, e := range byWeek[w.Week] {
			if cells[e.Day] == nil {
				cells[e.Day] = make(map[timetable.Period]string)
			}
			cells[e.Day][e.Period] = formatCell(e)
		}
		pages = append(pages, export.WeekPage{
			Week:     w.Week,
			Subtitle: fmt.Sprintf("(%s - %s)", w.StartDate.Format("02/01/2006"), w.EndDate.Format("02/01/2006")),
			Cells:    cells,
		})
	}
	if len(pages) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "the requested week range is outside the term")
	}

	title := fmt.Sprintf("Timetable %s - %s %d", classCode, term, academicYear)
	return s.pdf.Render(title, pages)
}

// RenderCSV flattens the committed timetable into one CSV row per entry.
func (s *ExportService) RenderCSV(ctx context.Context, classID string, term models.Term, academicYear int) ([]byte, error) {
	entries, err := s.schedules.ListByClassTerm(ctx, classID, term, academicYear)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Week != entries[j].Week {
			return entries[i].Week < entries[j].Week
		}
		if entries[i].Day != entries[j].Day {
			return entries[i].Day.Index() < entries[j].Day.Index()
		}
		return entries[i].Period.Index() < entries[j].Period.Index()
	})

	dataset := export.Dataset{
		Headers: []string{"week", "day", "period", "subject_code", "subject_name", "teacher", "delivery_mode", "room_id"},
	}
	for _, e := range entries {
		room := ""
		if e.RoomID != nil {
			room = *e.RoomID
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"week":          strconv.Itoa(e.Week),
			"day":           string(e.Day),
			"period":        string(e.Period),
			"subject_code":  e.SubjectCode,
			"subject_name":  e.SubjectName,
			"teacher":       e.TeacherName,
			"delivery_mode": string(e.DeliveryMode),
			"room_id":       room,
		})
	}
	return export.RenderCSV(dataset)
}

func formatCell(e models.ScheduleEntry) string {
	cell := fmt.Sprintf("%s\n%s", e.SubjectName, e.TeacherName)
	if e.DeliveryMode == timetable.Remote {
		return cell + "\nRemote"
	}
	if e.RoomID != nil {
		return cell + "\nRoom " + *e.RoomID
	}
	return cell
}
