package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

func TestFindTimetableByLabEmbedsLab(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	now := time.Now()
	columns := []string{"id", "lab_id", "lab_name", "schedule", "created_at", "updated_at"}
	for _, c := range labRowColumns {
		columns = append(columns, "lab."+c)
	}
	schedule := `[{"day":"Monday","timeSlots":[{"hour":"9:00 - 9:50","subject":"DBMS","faculty":"F","class":"CSE-A","isAvailable":false}]}]`
	rows := sqlmock.NewRows(columns).AddRow(
		"t1", "l1", "Lab l1", []byte(schedule), now, now,
		"l1", "Lab l1", "CSE", "Block A", 30, "PCs", 30, 28, "Dr. X", "Mr. Y", "VS Code", "i5", "Computer", now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetables t JOIN labs l ON l.id = t.lab_id WHERE t.lab_id = $1")).
		WithArgs("l1").
		WillReturnRows(rows)

	item, err := repo.FindByLabID(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, "t1", item.ID)
	assert.Equal(t, "l1", item.Lab.ID)
	assert.Equal(t, "Computer", item.Lab.LabType)
	require.Len(t, item.Schedule, 1)
	assert.Equal(t, models.Monday, item.Schedule[0].Day)
	assert.False(t, item.Schedule[0].TimeSlots[0].IsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTimetableUniqueViolation(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec("INSERT INTO timetables").WillReturnError(&pq.Error{Code: "23505", Constraint: "timetables_lab_id_key"})

	err := repo.Create(context.Background(), &models.Timetable{LabID: "l1", LabName: "Lab"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestExistsForLab(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM timetables WHERE lab_id = $1)")).
		WithArgs("l1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForLab(context.Background(), "l1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCountUnavailableSlots(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery("jsonb_array_elements").
		WithArgs("Tuesday").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.CountUnavailableSlots(context.Background(), models.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
