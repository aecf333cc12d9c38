package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/export"
)

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportFile is a rendered document ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService turns labs and timetables into CSV or PDF documents.
type ExportService struct {
	csv       datasetRenderer
	gridPDF   datasetRenderer
	inventPDF datasetRenderer
	now       func() time.Time
}

// NewExportService wires the default renderers. Timetable grids are landscape.
func NewExportService() *ExportService {
	return &ExportService{
		csv:       export.NewCSVExporter(),
		gridPDF:   export.NewPDFExporter(export.Landscape),
		inventPDF: export.NewPDFExporter(export.Portrait),
		now:       time.Now,
	}
}

// Timetable renders the weekly grid of one lab. Columns are the reference
// hours followed by any other hour labels found in the schedule.
func (s *ExportService) Timetable(item *models.TimetableWithLab, format dto.ExportFormat) (*ExportFile, error) {
	hours := gridHours(item.Schedule)
	headers := append([]string{"Day"}, hours...)

	column := make(map[string]int, len(hours))
	for i, h := range hours {
		column[h] = i + 1
	}
	rows := make([][]string, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		row := make([]string, len(headers))
		row[0] = string(day)
		for i := 1; i < len(row); i++ {
			row[i] = "Free"
		}
		if sched, ok := item.Schedule.Day(day); ok {
			for _, slot := range sched.TimeSlots {
				row[column[slot.Hour]] = describeSlot(slot)
			}
		}
		rows = append(rows, row)
	}

	data := export.Dataset{
		Title:    item.LabName,
		Subtitle: fmt.Sprintf("%s, %s", item.Lab.Department, item.Lab.Location),
		Headers:  headers,
		Rows:     rows,
	}
	return s.render(data, format, "timetable-"+slugify(item.LabName), s.gridPDF)
}

// Labs renders the lab inventory.
func (s *ExportService) Labs(labs []models.Lab, format dto.ExportFormat) (*ExportFile, error) {
	headers := []string{"Lab", "Type", "Department", "Location", "Capacity", "Available Systems", "Working Systems", "In-charge", "Technician", "Software"}
	rows := make([][]string, 0, len(labs))
	for _, lab := range labs {
		rows = append(rows, []string{
			lab.LabName,
			lab.LabType,
			lab.Department,
			lab.Location,
			strconv.Itoa(lab.Capacity),
			strconv.Itoa(lab.AvailableSystem),
			strconv.Itoa(lab.WorkingSystem),
			lab.Incharge,
			lab.Technician,
			lab.Software,
		})
	}
	data := export.Dataset{
		Title:    "Lab Inventory",
		Subtitle: s.now().Format("02 Jan 2006"),
		Headers:  headers,
		Rows:     rows,
	}
	return s.render(data, format, "labs", s.inventPDF)
}

func (s *ExportService) render(data export.Dataset, format dto.ExportFormat, name string, pdf datasetRenderer) (*ExportFile, error) {
	var (
		payload []byte
		err     error
		file    ExportFile
	)
	switch format {
	case "", dto.ExportCSV:
		payload, err = s.csv.Render(data)
		file = ExportFile{Filename: name + ".csv", ContentType: "text/csv"}
	case dto.ExportPDF:
		payload, err = pdf.Render(data)
		file = ExportFile{Filename: name + ".pdf", ContentType: "application/pdf"}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	file.Data = payload
	return &file, nil
}

func gridHours(schedule models.Schedule) []string {
	hours := append([]string(nil), models.ReferenceHours...)
	seen := make(map[string]struct{}, len(hours))
	for _, h := range hours {
		seen[h] = struct{}{}
	}
	for _, day := range schedule {
		for _, slot := range day.TimeSlots {
			if _, ok := seen[slot.Hour]; !ok {
				seen[slot.Hour] = struct{}{}
				hours = append(hours, slot.Hour)
			}
		}
	}
	return hours
}

func describeSlot(slot models.TimeSlot) string {
	if slot.IsAvailable && slot.Subject == "" {
		return "Free"
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{slot.Subject, slot.Faculty, slot.Class} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Booked"
	}
	return strings.Join(parts, "\n")
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "lab"
	}
	return out
}
