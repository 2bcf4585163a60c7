package grading

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

var (
	ErrSectionNotFound = core.NewNotFoundError("course section")

	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
)

type (
	Repository interface {
		GetSection(ctx context.Context, sectionID string) (Section, error)
		QueryRecords(ctx context.Context, sectionID string, ordering []core.DBOrdering) ([]Record, error)
		UpdateRecords(ctx context.Context, records []Record) error
		InsertAttendance(ctx context.Context, records []AttendanceRecord) error
		QueryAttendance(ctx context.Context, sectionID string, enrollmentIDs []string) ([]AttendanceRecord, error)
		UpdateAttendancePct(ctx context.Context, sectionID string, pcts map[string]float64) error
		// Atomic runs fn within a single transaction; the Repository passed to fn is bound to it.
		Atomic(ctx context.Context, fn func(repo Repository) error) error
	}

	Service interface {
		Normalize(rows []Row) []Row
		SectionGrades(ctx context.Context, sectionID string, ordering []core.DBOrdering) ([]Record, error)
		SaveGrades(ctx context.Context, sectionID string, sg SaveGrades) ([]Record, error)
		RecordAttendance(ctx context.Context, sectionID string, na NewAttendance) ([]AttendanceRecord, error)
	}

	service struct {
		repo       Repository
		normalizer Normalizer
		logger     core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, logger core.Logger, conf *core.Config) Service {
	passMark := DefaultPassMark
	if conf != nil {
		passMark = conf.Grading.PassMark
	}
	return &service{
		repo:       repo,
		normalizer: NewNormalizer(passMark),
		logger:     logger,
	}
}

func (svc *service) Normalize(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, svc.normalizer.Row(row))
	}
	return out
}

func (svc *service) SectionGrades(ctx context.Context, sectionID string, ordering []core.DBOrdering) ([]Record, error) {
	if _, err := svc.repo.GetSection(ctx, sectionID); err != nil {
		return nil, errors.Wrap(err, "getting course section")
	}
	ordering = core.AllowedOrderings(ordering, GradeOrderings)
	records, err := svc.repo.QueryRecords(ctx, sectionID, ordering)
	if err != nil {
		return nil, errors.Wrap(err, "querying grade records")
	}
	return records, nil
}

// SaveGrades normalizes every row and saves it into its grade record, all or nothing.
// Every row must reference a grade record of the section.
func (svc *service) SaveGrades(ctx context.Context, sectionID string, sg SaveGrades) ([]Record, error) {
	var saved []Record
	err := svc.repo.Atomic(ctx, func(repo Repository) error {
		if _, err := repo.GetSection(ctx, sectionID); err != nil {
			return errors.Wrap(err, "getting course section")
		}
		records, err := repo.QueryRecords(ctx, sectionID, nil)
		if err != nil {
			return errors.Wrap(err, "querying grade records")
		}
		byID := make(map[string]int, len(records))
		for i, rec := range records {
			byID[rec.ID] = i
		}

		now := nowFunc()
		saved = make([]Record, 0, len(sg.Grades))
		for _, row := range sg.Grades {
			i, ok := byID[row.ID]
			if !ok {
				return core.NewValidationError(
					fmt.Errorf("grade record %s not found in course section", row.ID),
					core.FieldError{Field: "grades", Error: fmt.Sprintf("unknown grade record %q", row.ID)},
				)
			}
			rec := records[i]
			rec.apply(svc.normalizer.Row(row), now)
			saved = append(saved, rec)
		}

		return errors.Wrap(repo.UpdateRecords(ctx, saved), "updating grade records")
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// RecordAttendance inserts the attendance of one class session and refreshes
// the cached attendance percentage of the affected grade records.
func (svc *service) RecordAttendance(ctx context.Context, sectionID string, na NewAttendance) ([]AttendanceRecord, error) {
	day := na.Day()
	var inserted []AttendanceRecord
	err := svc.repo.Atomic(ctx, func(repo Repository) error {
		if _, err := repo.GetSection(ctx, sectionID); err != nil {
			return errors.Wrap(err, "getting course section")
		}
		records, err := repo.QueryRecords(ctx, sectionID, nil)
		if err != nil {
			return errors.Wrap(err, "querying grade records")
		}
		enrolled := make(map[string]bool, len(records))
		for _, rec := range records {
			enrolled[rec.EnrollmentID] = true
		}

		enrollmentIDs := make([]string, 0, len(na.Entries))
		for _, e := range na.Entries {
			if !enrolled[e.EnrollmentID] {
				return core.NewValidationError(
					fmt.Errorf("enrollment %s not enrolled in course section", e.EnrollmentID),
					core.FieldError{Field: "entries", Error: fmt.Sprintf("enrollment %q is not enrolled in this course section", e.EnrollmentID)},
				)
			}
			enrollmentIDs = append(enrollmentIDs, e.EnrollmentID)
		}

		existing, err := repo.QueryAttendance(ctx, sectionID, enrollmentIDs)
		if err != nil {
			return errors.Wrap(err, "querying attendance")
		}
		// one attendance record per enrollment per class session
		for _, att := range existing {
			if sameDay(att.Date, day) {
				return core.NewValidationError(
					fmt.Errorf("attendance of enrollment %s on %s already recorded", att.EnrollmentID, na.Date),
					core.FieldError{Field: "entries", Error: fmt.Sprintf("attendance of enrollment %q on %s is already recorded", att.EnrollmentID, na.Date)},
				)
			}
		}

		inserted = make([]AttendanceRecord, 0, len(na.Entries))
		for _, e := range na.Entries {
			inserted = append(inserted, AttendanceRecord{
				ID:              uuid.New().String(),
				EnrollmentID:    e.EnrollmentID,
				CourseSectionID: sectionID,
				Date:            day,
				Status:          e.Status,
			})
		}
		if err = repo.InsertAttendance(ctx, inserted); err != nil {
			return errors.Wrap(err, "inserting attendance")
		}

		all := append(existing, inserted...)
		return errors.Wrap(repo.UpdateAttendancePct(ctx, sectionID, AttendancePcts(all)), "updating attendance percentages")
	})
	if err != nil {
		return nil, err
	}
	svc.logger.Debug(fmt.Sprintf("recorded %d attendance records for section %s on %s", len(inserted), sectionID, na.Date))
	return inserted, nil
}

func sameDay(a, b time.Time) bool {
	return a.UTC().Format(core.DateLayout) == b.UTC().Format(core.DateLayout)
}

// AttendancePcts computes the present-or-late percentage (one decimal) of each enrollment.
func AttendancePcts(records []AttendanceRecord) map[string]float64 {
	type tally struct{ attended, total int }
	tallies := make(map[string]*tally)
	for _, rec := range records {
		t, ok := tallies[rec.EnrollmentID]
		if !ok {
			t = new(tally)
			tallies[rec.EnrollmentID] = t
		}
		t.total++
		if rec.Status.Attended() {
			t.attended++
		}
	}

	pcts := make(map[string]float64, len(tallies))
	for id, t := range tallies {
		pcts[id] = core.Round1(float64(t.attended) * 100 / float64(t.total))
	}
	return pcts
}
