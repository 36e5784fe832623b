package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/cec-hub/cec-timetable-api/internal/timetable"
)

// WeekPage is one printable week of a class timetable.
type WeekPage struct {
	Week     int
	Subtitle string
	Cells    map[timetable.Day]map[timetable.Period]string
}

// TimetablePDF renders week grids as an A4 landscape PDF, one page per week.
// Rows are the day periods, columns the days of the week.
type TimetablePDF struct{}

// NewTimetablePDF constructs a timetable PDF renderer.
func NewTimetablePDF() *TimetablePDF {
	return &TimetablePDF{}
}

// Render creates the PDF document.
func (e *TimetablePDF) Render(title string, pages []WeekPage) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf requires at least one week")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)

	days := timetable.Days()
	periods := timetable.Periods()
	labelWidth := 25.0
	colWidth := (277.0 - labelWidth) / float64(len(days))
	rowHeight := 34.0

	for _, page := range pages {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, title, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Week %d  %s", page.Week, page.Subtitle), "", 1, "C", false, 0, "")
		pdf.Ln(3)

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(labelWidth, 8, "", "1", 0, "C", false, 0, "")
		for _, day := range days {
			pdf.CellFormat(colWidth, 8, string(day), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		for _, period := range periods {
			x, y := pdf.GetXY()
			pdf.SetFont("Arial", "B", 9)
			pdf.CellFormat(labelWidth, rowHeight, string(period), "1", 0, "C", false, 0, "")
			pdf.SetFont("Arial", "", 8)
			for i, day := range days {
				cellX := x + labelWidth + float64(i)*colWidth
				pdf.Rect(cellX, y, colWidth, rowHeight, "D")
				content := ""
				if byPeriod, ok := page.Cells[day]; ok {
					content = byPeriod[period]
				}
				if content != "" {
					pdf.SetXY(cellX+1, y+2)
					pdf.MultiCell(colWidth-2, 4, content, "", "L", false)
				}
			}
			pdf.SetXY(x, y+rowHeight)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
