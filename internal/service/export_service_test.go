package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
)

func TestTimetableGridColumns(t *testing.T) {
	schedule := mondaySchedule()
	schedule[0].TimeSlots = append(schedule[0].TimeSlots, models.TimeSlot{Hour: "4:05 - 4:55", Subject: "Lab Viva"})
	item := &models.TimetableWithLab{Timetable: models.Timetable{LabName: "Physics Lab A", Schedule: schedule}}

	file, err := NewExportService().Timetable(item, dto.ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "timetable-physics-lab-a.csv", file.Filename)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+len(models.Weekdays))

	header := records[0]
	assert.Equal(t, "Day", header[0])
	assert.Equal(t, models.ReferenceHours, header[1:1+len(models.ReferenceHours)])
	assert.Equal(t, "4:05 - 4:55", header[len(header)-1])

	monday := records[1]
	assert.Equal(t, "Monday", monday[0])
	assert.Equal(t, "DBMS\nDr. Rao\nCSE-A", monday[1])
	assert.Equal(t, "Free", monday[2])
	assert.Equal(t, "Lab Viva", monday[len(monday)-1])

	friday := records[len(records)-1]
	assert.Equal(t, "Friday", friday[0])
	for _, cell := range friday[1:] {
		assert.Equal(t, "Free", cell)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := NewExportService().Labs(nil, dto.ExportFormat("xlsx"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
