package inmemdb

import (
	"context"

	"github.com/trezcool/academia/core/performance"
)

type performanceRepository struct {
	db *DB
}

var _ performance.Repository = (*performanceRepository)(nil) // interface compliance check

func NewPerformanceRepository(db *DB) performance.Repository {
	return &performanceRepository{db: db}
}

func (repo *performanceRepository) GetTeacher(_ context.Context, teacherID string) (performance.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, t := range repo.db.teachers {
		if t.ID == teacherID {
			return t, nil
		}
	}
	return performance.Teacher{}, performance.ErrTeacherNotFound
}

func (repo *performanceRepository) QuerySectionGrades(_ context.Context, teacherID string) ([]performance.SectionGrades, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var sections []performance.SectionGrades
	idx := make(map[string]int)
	for _, sec := range repo.db.sections {
		if sec.TeacherID != teacherID {
			continue
		}
		idx[sec.ID] = len(sections)
		sections = append(sections, performance.SectionGrades{SectionID: sec.ID, SubjectName: sec.SubjectName})
	}
	for _, rec := range repo.db.records {
		if i, ok := idx[rec.CourseSectionID]; ok {
			sections[i].FinalAverages = append(sections[i].FinalAverages, rec.FinalAverage)
		}
	}
	return sections, nil
}

func (repo *performanceRepository) QuerySectionAttendance(_ context.Context, sectionIDs []string) ([]performance.AttendanceRow, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	wanted := make(map[string]bool, len(sectionIDs))
	for _, id := range sectionIDs {
		wanted[id] = true
	}
	var rows []performance.AttendanceRow
	for _, att := range repo.db.attendance {
		if wanted[att.CourseSectionID] {
			rows = append(rows, performance.AttendanceRow{
				SectionID:    att.CourseSectionID,
				EnrollmentID: att.EnrollmentID,
				Status:       att.Status,
			})
		}
	}
	return rows, nil
}
