package grading

import (
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
)

// Status of a grade record.
type Status string

const (
	StatusNotApplicable Status = "not_applicable"
	StatusInProgress    Status = "in_progress"
	StatusApproved      Status = "approved"
	StatusFailed        Status = "failed"
)

// Row is the editable part of a grade record, as captured by a teacher for one student.
type Row struct {
	ID             string `json:"id" validate:"omitempty,uuid"`
	Parcial1       string `json:"parcial1" validate:"partial"`
	Parcial2       string `json:"parcial2" validate:"partial"`
	Parcial3       string `json:"parcial3" validate:"partial"`
	Final          string `json:"final"`
	Extraordinario string `json:"extraordinario"`
}

// StatusOf derives the status of a normalized row.
func StatusOf(row Row) Status {
	switch {
	case row.Parcial1 == "" && row.Parcial2 == "" && row.Parcial3 == "":
		return StatusNotApplicable
	case row.Final == "":
		return StatusInProgress
	case row.Final == NA:
		return StatusFailed
	default:
		return StatusApproved
	}
}

// FinalAverage is the numeric value of a normalized final; NA and unset finals count as 0.
func FinalAverage(row Row) float64 {
	v, err := strconv.Atoi(row.Final)
	if err != nil {
		return 0
	}
	return float64(v)
}

type Section struct {
	ID          string `json:"id" db:"id"`
	TeacherID   string `json:"teacher_id" db:"teacher_id"`
	SubjectName string `json:"subject_name" db:"subject_name"`
	GroupName   string `json:"group_name" db:"group_name"`
	Period      string `json:"period" db:"period"`
}

// Record is the grade record of one enrollment in one course section.
type Record struct {
	ID              string      `json:"id" db:"id"`
	EnrollmentID    string      `json:"enrollment_id" db:"enrollment_id"`
	CourseSectionID string      `json:"course_section_id" db:"course_section_id"`
	StudentName     string      `json:"student_name" db:"student_name"`
	Parcial1        string      `json:"parcial1" db:"partial1"`
	Parcial2        string      `json:"parcial2" db:"partial2"`
	Parcial3        string      `json:"parcial3" db:"partial3"`
	Final           null.String `json:"final" db:"final_grade"`
	FinalAverage    float64     `json:"final_average" db:"final_average"`
	Extraordinario  null.String `json:"extraordinario" db:"remedial"`
	AttendancePct   float64     `json:"attendance_pct" db:"attendance_pct"`
	Status          Status      `json:"status" db:"status"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

func (rec Record) Row() Row {
	return Row{
		ID:             rec.ID,
		Parcial1:       rec.Parcial1,
		Parcial2:       rec.Parcial2,
		Parcial3:       rec.Parcial3,
		Final:          rec.Final.String,
		Extraordinario: rec.Extraordinario.String,
	}
}

// apply copies a normalized row into the record and refreshes its derived fields.
func (rec *Record) apply(row Row, now time.Time) {
	rec.Parcial1 = row.Parcial1
	rec.Parcial2 = row.Parcial2
	rec.Parcial3 = row.Parcial3
	rec.Final = null.NewString(row.Final, row.Final != "")
	rec.Extraordinario = null.NewString(row.Extraordinario, row.Extraordinario != "")
	rec.FinalAverage = FinalAverage(row)
	rec.Status = StatusOf(row)
	rec.UpdatedAt = now
}

// AttendanceRecord is one student's attendance at one class session. It is never updated.
type AttendanceRecord struct {
	ID              string                `json:"id" db:"id"`
	EnrollmentID    string                `json:"enrollment_id" db:"enrollment_id"`
	CourseSectionID string                `json:"course_section_id" db:"course_section_id"`
	Date            time.Time             `json:"date" db:"date"`
	Status          core.AttendanceStatus `json:"status" db:"status"`
}

// SaveGrades contains the rows to save for a course section.
type SaveGrades struct {
	Grades []Row `json:"grades" validate:"required,min=1,dive"`
}

// NormalizeRows contains rows to normalize without saving them.
type NormalizeRows struct {
	Rows []Row `json:"rows" validate:"required,min=1,dive"`
}

type AttendanceEntry struct {
	EnrollmentID string                `json:"enrollment_id" validate:"required,uuid"`
	Status       core.AttendanceStatus `json:"status" validate:"required,attstatus"`
}

// NewAttendance contains the attendance of one class session.
type NewAttendance struct {
	Date    string            `json:"date" validate:"required,isodate"`
	Entries []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// Day returns the parsed session date (UTC midnight). Only valid after validation.
func (na NewAttendance) Day() time.Time {
	d, _ := time.Parse(core.DateLayout, na.Date)
	return d
}

// GradeOrderings maps the accepted `ordering` query fields to their columns.
var GradeOrderings = map[string]string{
	"student_name":  "student_name",
	"final_average": "final_average",
	"status":        "status",
	"updated_at":    "updated_at",
}

// Enrollment links one student to one group for one academic period.
type Enrollment struct {
	ID          string `json:"id" db:"id"`
	StudentName string `json:"student_name" db:"student_name"`
	GroupName   string `json:"group_name" db:"group_name"`
	Period      string `json:"period" db:"period"`
}
