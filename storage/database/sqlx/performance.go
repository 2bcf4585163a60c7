package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/performance"
)

type performanceRepository struct {
	exec core.DBExecutor
}

var _ performance.Repository = (*performanceRepository)(nil) // interface compliance check

func NewPerformanceRepository(exec core.DBExecutor) performance.Repository {
	return &performanceRepository{exec: exec}
}

func (repo performanceRepository) GetTeacher(ctx context.Context, teacherID string) (performance.Teacher, error) {
	if _, err := uuid.Parse(teacherID); err != nil {
		return performance.Teacher{}, performance.ErrTeacherNotFound
	}

	var t performance.Teacher
	err := repo.exec.GetContext(ctx, &t, `SELECT id, name, email FROM teachers WHERE id = $1`, teacherID)
	if errors.Is(err, sql.ErrNoRows) {
		return performance.Teacher{}, performance.ErrTeacherNotFound
	}
	if err != nil {
		return performance.Teacher{}, errors.Wrap(err, "selecting teacher")
	}
	return t, nil
}

type sectionGradeRow struct {
	SectionID    string       `db:"section_id"`
	SubjectName  string       `db:"subject_name"`
	FinalAverage null.Float64 `db:"final_average"` // null for sections without grade records
}

const sectionGradesQuery = `
SELECT cs.id AS section_id, cs.subject_name, gr.final_average
FROM course_sections cs
LEFT JOIN grade_records gr ON gr.course_section_id = cs.id
WHERE cs.teacher_id = $1
ORDER BY cs.created_at, cs.id`

func (repo performanceRepository) QuerySectionGrades(ctx context.Context, teacherID string) ([]performance.SectionGrades, error) {
	if _, err := uuid.Parse(teacherID); err != nil {
		return nil, nil
	}

	var rows []sectionGradeRow
	if err := repo.exec.SelectContext(ctx, &rows, sectionGradesQuery, teacherID); err != nil {
		return nil, errors.Wrap(err, "selecting section grades")
	}

	var sections []performance.SectionGrades
	idx := make(map[string]int)
	for _, row := range rows {
		i, ok := idx[row.SectionID]
		if !ok {
			i = len(sections)
			idx[row.SectionID] = i
			sections = append(sections, performance.SectionGrades{SectionID: row.SectionID, SubjectName: row.SubjectName})
		}
		if row.FinalAverage.Valid {
			sections[i].FinalAverages = append(sections[i].FinalAverages, row.FinalAverage.Float64)
		}
	}
	return sections, nil
}

func (repo performanceRepository) QuerySectionAttendance(ctx context.Context, sectionIDs []string) ([]performance.AttendanceRow, error) {
	if len(sectionIDs) == 0 {
		return nil, nil
	}

	q, args, err := sqlx.In(`SELECT course_section_id, enrollment_id, status FROM attendance_records WHERE course_section_id IN (?)`, sectionIDs)
	if err != nil {
		return nil, errors.Wrap(err, "building attendance query")
	}

	var rows []performance.AttendanceRow
	if err = repo.exec.SelectContext(ctx, &rows, repo.exec.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "selecting attendance")
	}
	return rows, nil
}
