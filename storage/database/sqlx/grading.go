package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/grading"
)

type gradingRepository struct {
	db   core.DB
	exec core.DBExecutor // db, or the current transaction
}

var _ grading.Repository = (*gradingRepository)(nil) // interface compliance check

func NewGradingRepository(db core.DB) grading.Repository {
	return &gradingRepository{db: db, exec: db}
}

func (repo *gradingRepository) Atomic(ctx context.Context, fn func(repo grading.Repository) error) (err error) {
	if _, inTx := repo.exec.(*sqlx.Tx); inTx {
		return fn(repo)
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = errors.Wrap(tx.Commit(), "committing transaction")
	}()

	return fn(&gradingRepository{db: repo.db, exec: tx})
}

func (repo *gradingRepository) GetSection(ctx context.Context, sectionID string) (grading.Section, error) {
	if _, err := uuid.Parse(sectionID); err != nil {
		return grading.Section{}, grading.ErrSectionNotFound
	}

	var sec grading.Section
	err := repo.exec.GetContext(ctx, &sec,
		`SELECT id, teacher_id, subject_name, group_name, period FROM course_sections WHERE id = $1`, sectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return grading.Section{}, grading.ErrSectionNotFound
	}
	if err != nil {
		return grading.Section{}, errors.Wrap(err, "selecting course section")
	}
	return sec, nil
}

const recordsQuery = `
SELECT gr.id, gr.enrollment_id, gr.course_section_id, e.student_name,
       gr.partial1, gr.partial2, gr.partial3, gr.final_grade, gr.final_average,
       gr.remedial, gr.attendance_pct, gr.status, gr.updated_at
FROM grade_records gr
JOIN enrollments e ON e.id = gr.enrollment_id
WHERE gr.course_section_id = $1`

// orderBy builds the ORDER BY clause; fields must come from grading.GradeOrderings.
func orderBy(ordering []core.DBOrdering) string {
	clauses := make([]string, 0, len(ordering)+1)
	for _, ord := range ordering {
		clauses = append(clauses, ord.String())
	}
	clauses = append(clauses, "student_name ASC", "id ASC")
	return " ORDER BY " + strings.Join(clauses, ", ")
}

func (repo *gradingRepository) QueryRecords(ctx context.Context, sectionID string, ordering []core.DBOrdering) ([]grading.Record, error) {
	records := make([]grading.Record, 0)
	if _, err := uuid.Parse(sectionID); err != nil {
		return records, nil
	}
	if err := repo.exec.SelectContext(ctx, &records, recordsQuery+orderBy(ordering), sectionID); err != nil {
		return nil, errors.Wrap(err, "selecting grade records")
	}
	return records, nil
}

const updateRecordQuery = `
UPDATE grade_records
SET partial1 = :partial1, partial2 = :partial2, partial3 = :partial3,
    final_grade = :final_grade, final_average = :final_average, remedial = :remedial,
    status = :status, updated_at = :updated_at
WHERE id = :id`

func (repo *gradingRepository) UpdateRecords(ctx context.Context, records []grading.Record) error {
	for _, rec := range records {
		res, err := sqlx.NamedExecContext(ctx, repo.exec, updateRecordQuery, rec)
		if err != nil {
			return errors.Wrapf(err, "updating grade record %s", rec.ID)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return errors.Errorf("grade record %s not found", rec.ID)
		}
	}
	return nil
}

const insertAttendanceQuery = `
INSERT INTO attendance_records (id, enrollment_id, course_section_id, date, status)
VALUES (:id, :enrollment_id, :course_section_id, :date, :status)`

func (repo *gradingRepository) InsertAttendance(ctx context.Context, records []grading.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	// batch insert
	if _, err := sqlx.NamedExecContext(ctx, repo.exec, insertAttendanceQuery, records); err != nil {
		return errors.Wrap(err, "inserting attendance records")
	}
	return nil
}

func (repo *gradingRepository) QueryAttendance(ctx context.Context, sectionID string, enrollmentIDs []string) ([]grading.AttendanceRecord, error) {
	if len(enrollmentIDs) == 0 {
		return nil, nil
	}

	q, args, err := sqlx.In(`
SELECT id, enrollment_id, course_section_id, date, status
FROM attendance_records
WHERE course_section_id = ? AND enrollment_id IN (?)
ORDER BY date, id`, sectionID, enrollmentIDs)
	if err != nil {
		return nil, errors.Wrap(err, "building attendance query")
	}

	var records []grading.AttendanceRecord
	if err = repo.exec.SelectContext(ctx, &records, repo.exec.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "selecting attendance records")
	}
	return records, nil
}

func (repo *gradingRepository) UpdateAttendancePct(ctx context.Context, sectionID string, pcts map[string]float64) error {
	for enrollmentID, pct := range pcts {
		_, err := repo.exec.ExecContext(ctx,
			`UPDATE grade_records SET attendance_pct = $1 WHERE course_section_id = $2 AND enrollment_id = $3`,
			pct, sectionID, enrollmentID)
		if err != nil {
			return errors.Wrapf(err, "updating attendance percentage of enrollment %s", enrollmentID)
		}
	}
	return nil
}
