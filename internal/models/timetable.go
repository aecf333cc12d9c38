package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday is one of the five teaching days a timetable covers.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
)

// Weekdays lists the timetable days in display order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// WeekdayOf maps a calendar day onto the timetable enum. Weekends report false.
func WeekdayOf(t time.Time) (Weekday, bool) {
	switch t.Weekday() {
	case time.Monday:
		return Monday, true
	case time.Tuesday:
		return Tuesday, true
	case time.Wednesday:
		return Wednesday, true
	case time.Thursday:
		return Thursday, true
	case time.Friday:
		return Friday, true
	}
	return "", false
}

// ReferenceHours are the period labels the client renders as columns. Slot
// hours are matched against them by exact string equality and are not
// validated server side.
var ReferenceHours = []string{
	"9:00 - 9:50",
	"9:50 - 10:40",
	"10:55 - 11:45",
	"11:45 - 12:35",
	"1:20 - 2:10",
	"2:10 - 3:00",
	"3:15 - 4:05",
}

// TimeSlot is one cell of a day schedule.
type TimeSlot struct {
	Hour        string `json:"hour" validate:"required"`
	Subject     string `json:"subject"`
	Faculty     string `json:"faculty"`
	Class       string `json:"class"`
	IsAvailable bool   `json:"isAvailable"`
}

// UnmarshalJSON defaults isAvailable to true when it is omitted and trims the
// text fields.
func (s *TimeSlot) UnmarshalJSON(data []byte) error {
	type plain TimeSlot
	slot := plain{IsAvailable: true}
	if err := json.Unmarshal(data, &slot); err != nil {
		return err
	}
	*s = TimeSlot(slot).Trim()
	return nil
}

// Trim returns the slot with surrounding whitespace removed from its text
// fields. Hours must match the reference labels exactly.
func (s TimeSlot) Trim() TimeSlot {
	s.Hour = strings.TrimSpace(s.Hour)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Faculty = strings.TrimSpace(s.Faculty)
	s.Class = strings.TrimSpace(s.Class)
	return s
}

// DaySchedule holds the slots of one weekday.
type DaySchedule struct {
	Day       Weekday    `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	TimeSlots []TimeSlot `json:"timeSlots" validate:"dive"`
}

// Schedule is the weekly grid persisted as a JSONB document.
type Schedule []DaySchedule

// Trim returns a copy with every slot trimmed. A nil schedule stays nil.
func (s Schedule) Trim() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	for i, day := range s {
		out[i] = day
		if day.TimeSlots == nil {
			continue
		}
		out[i].TimeSlots = make([]TimeSlot, len(day.TimeSlots))
		for j, slot := range day.TimeSlots {
			out[i].TimeSlots[j] = slot.Trim()
		}
	}
	return out
}

// Value implements driver.Valuer.
func (s Schedule) Value() (driver.Value, error) {
	normalised := make(Schedule, 0, len(s))
	for _, day := range s {
		if day.TimeSlots == nil {
			day.TimeSlots = []TimeSlot{}
		}
		normalised = append(normalised, day)
	}
	raw, err := json.Marshal(normalised)
	if err != nil {
		return nil, fmt.Errorf("marshal schedule: %w", err)
	}
	return raw, nil
}

// Scan implements sql.Scanner.
func (s *Schedule) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = Schedule{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan schedule: unsupported type %T", src)
	}
	var out Schedule
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("unmarshal schedule: %w", err)
	}
	if out == nil {
		out = Schedule{}
	}
	*s = out
	return nil
}

// Day returns the schedule for the given weekday if present.
func (s Schedule) Day(day Weekday) (DaySchedule, bool) {
	for _, d := range s {
		if d.Day == day {
			return d, true
		}
	}
	return DaySchedule{}, false
}

// Timetable is the weekly schedule bound to exactly one lab.
type Timetable struct {
	ID        string    `db:"id" json:"id"`
	LabID     string    `db:"lab_id" json:"labId"`
	LabName   string    `db:"lab_name" json:"labName"`
	Schedule  Schedule  `db:"schedule" json:"schedule"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TimetableWithLab embeds the referenced lab record.
type TimetableWithLab struct {
	Timetable
	Lab Lab `db:"lab" json:"lab"`
}

// LabTimetable is the answer to "timetable for lab X". When the lab has no
// timetable yet it serialises as {labId, schedule: []} so clients can render
// an empty grid and create one.
type LabTimetable struct {
	LabID     string
	Timetable *TimetableWithLab
}

// Exists reports whether a stored timetable backs this value.
func (lt LabTimetable) Exists() bool {
	return lt.Timetable != nil
}

// MarshalJSON implements json.Marshaler.
func (lt LabTimetable) MarshalJSON() ([]byte, error) {
	if lt.Timetable != nil {
		return json.Marshal(lt.Timetable)
	}
	return json.Marshal(struct {
		LabID    string   `json:"labId"`
		Schedule Schedule `json:"schedule"`
	}{LabID: lt.LabID, Schedule: Schedule{}})
}
