package inmemdb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/grading"
)

type gradingRepository struct {
	db   *DB
	inTx bool // db.mu is already held by Atomic
}

var _ grading.Repository = (*gradingRepository)(nil) // interface compliance check

func NewGradingRepository(db *DB) grading.Repository {
	return &gradingRepository{db: db}
}

func (repo *gradingRepository) rlock() func() {
	if repo.inTx {
		return func() {}
	}
	repo.db.mu.RLock()
	return repo.db.mu.RUnlock
}

func (repo *gradingRepository) lock() func() {
	if repo.inTx {
		return func() {}
	}
	repo.db.mu.Lock()
	return repo.db.mu.Unlock
}

func (repo *gradingRepository) Atomic(ctx context.Context, fn func(repo grading.Repository) error) error {
	if repo.inTx {
		return fn(repo)
	}
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	records, attendance := repo.db.snapshot()
	if err := fn(&gradingRepository{db: repo.db, inTx: true}); err != nil {
		repo.db.restore(records, attendance)
		return err
	}
	return nil
}

func (repo *gradingRepository) GetSection(_ context.Context, sectionID string) (grading.Section, error) {
	defer repo.rlock()()

	for _, sec := range repo.db.sections {
		if sec.ID == sectionID {
			return sec, nil
		}
	}
	return grading.Section{}, grading.ErrSectionNotFound
}

func (repo *gradingRepository) QueryRecords(_ context.Context, sectionID string, ordering []core.DBOrdering) ([]grading.Record, error) {
	defer repo.rlock()()

	records := make([]grading.Record, 0)
	for _, rec := range repo.db.records {
		if rec.CourseSectionID == sectionID {
			records = append(records, rec)
		}
	}
	if len(ordering) > 0 {
		sort.SliceStable(records, func(i, j int) bool { return recordLess(records[i], records[j], ordering) })
	}
	return records, nil
}

func recordLess(a, b grading.Record, ordering []core.DBOrdering) bool {
	for _, ord := range ordering {
		var cmp int
		switch ord.Field {
		case "student_name":
			cmp = strings.Compare(a.StudentName, b.StudentName)
		case "final_average":
			cmp = compareFloat(a.FinalAverage, b.FinalAverage)
		case "status":
			cmp = strings.Compare(string(a.Status), string(b.Status))
		case "updated_at":
			cmp = compareFloat(float64(a.UpdatedAt.UnixNano()), float64(b.UpdatedAt.UnixNano()))
		}
		if cmp != 0 {
			if ord.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
	}
	return false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (repo *gradingRepository) UpdateRecords(_ context.Context, records []grading.Record) error {
	defer repo.lock()()

	byID := make(map[string]grading.Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	for i, rec := range repo.db.records {
		if upd, ok := byID[rec.ID]; ok {
			// only the captured & derived fields are saved
			rec.Parcial1, rec.Parcial2, rec.Parcial3 = upd.Parcial1, upd.Parcial2, upd.Parcial3
			rec.Final = upd.Final
			rec.FinalAverage = upd.FinalAverage
			rec.Extraordinario = upd.Extraordinario
			rec.Status = upd.Status
			rec.UpdatedAt = upd.UpdatedAt
			repo.db.records[i] = rec
		}
	}
	return nil
}

func (repo *gradingRepository) InsertAttendance(_ context.Context, records []grading.AttendanceRecord) error {
	defer repo.lock()()

	type session struct{ enrollmentID, sectionID, day string }
	taken := make(map[session]bool, len(repo.db.attendance)+len(records))
	for _, att := range repo.db.attendance {
		taken[session{att.EnrollmentID, att.CourseSectionID, att.Date.Format(core.DateLayout)}] = true
	}
	for _, att := range records {
		key := session{att.EnrollmentID, att.CourseSectionID, att.Date.Format(core.DateLayout)}
		if taken[key] {
			return fmt.Errorf("attendance of enrollment %s on %s already exists", key.enrollmentID, key.day)
		}
		taken[key] = true
	}

	repo.db.attendance = append(repo.db.attendance, records...)
	return nil
}

func (repo *gradingRepository) QueryAttendance(_ context.Context, sectionID string, enrollmentIDs []string) ([]grading.AttendanceRecord, error) {
	defer repo.rlock()()

	wanted := make(map[string]bool, len(enrollmentIDs))
	for _, id := range enrollmentIDs {
		wanted[id] = true
	}
	var records []grading.AttendanceRecord
	for _, att := range repo.db.attendance {
		if att.CourseSectionID == sectionID && wanted[att.EnrollmentID] {
			records = append(records, att)
		}
	}
	return records, nil
}

func (repo *gradingRepository) UpdateAttendancePct(_ context.Context, sectionID string, pcts map[string]float64) error {
	defer repo.lock()()

	for i, rec := range repo.db.records {
		if rec.CourseSectionID != sectionID {
			continue
		}
		if pct, ok := pcts[rec.EnrollmentID]; ok {
			repo.db.records[i].AttendancePct = pct
		}
	}
	return nil
}
