package performance

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/academia/core"
)

func attendanceRows(sectionID, enrollmentID string, present, absent, late int) []AttendanceRow {
	rows := make([]AttendanceRow, 0, present+absent+late)
	add := func(n int, status core.AttendanceStatus) {
		for i := 0; i < n; i++ {
			rows = append(rows, AttendanceRow{SectionID: sectionID, EnrollmentID: enrollmentID, Status: status})
		}
	}
	add(present, core.AttendancePresent)
	add(absent, core.AttendanceAbsent)
	add(late, core.AttendanceLate)
	return rows
}

func TestAggregate_noSections(t *testing.T) {
	for _, sections := range [][]SectionGrades{nil, {}} {
		snap := Aggregate(sections, attendanceRows("s1", "e1", 1, 1, 0), DefaultThresholds())
		assert.Equal(t, ZeroSnapshot(), snap)
		assert.NotNil(t, snap.RendimientoMateria)
		assert.Empty(t, snap.RendimientoMateria)
	}
}

func TestAggregate_averages(t *testing.T) {
	tests := []struct {
		name         string
		sections     []SectionGrades
		wantGroupAvg float64
		wantSubjects []SubjectPerformance
	}{
		{
			name: "two sections one record each",
			sections: []SectionGrades{
				{SectionID: "s1", SubjectName: "Math", FinalAverages: []float64{80}},
				{SectionID: "s2", SubjectName: "History", FinalAverages: []float64{60}},
			},
			wantGroupAvg: 70,
			wantSubjects: []SubjectPerformance{{"Math", 80}, {"History", 60}},
		},
		{
			name: "empty section counts as zero",
			sections: []SectionGrades{
				{SectionID: "s1", SubjectName: "Math", FinalAverages: []float64{90, 80}},
				{SectionID: "s2", SubjectName: "Art"},
			},
			wantGroupAvg: 42.5,
			wantSubjects: []SubjectPerformance{{"Math", 85}, {"Art", 0}},
		},
		{
			name: "one decimal rounding",
			sections: []SectionGrades{
				{SectionID: "s1", SubjectName: "Math", FinalAverages: []float64{70, 71, 71}},
			},
			wantGroupAvg: 70.7,
			wantSubjects: []SubjectPerformance{{"Math", 70.7}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Aggregate(tt.sections, nil, DefaultThresholds())
			assert.Equal(t, tt.wantGroupAvg, snap.PromedioFinalGrupo)
			assert.Equal(t, tt.wantSubjects, snap.RendimientoMateria)
			assert.Equal(t, len(tt.sections), snap.MateriasImpartidas)
			assert.Equal(t, len(tt.sections), snap.GruposAsignados)
		})
	}
}

func TestAggregate_approvalRate(t *testing.T) {
	sec1 := SectionGrades{SectionID: "s1", SubjectName: "Math", FinalAverages: []float64{70, 85, 100, 40, 69.9}}
	sec2 := SectionGrades{SectionID: "s2", SubjectName: "Physics", FinalAverages: []float64{71, 90, 75, 80, 0}}

	snap := Aggregate([]SectionGrades{sec1, sec2}, nil, DefaultThresholds())
	assert.Equal(t, 10, snap.TotalEstudiantes)
	assert.Equal(t, 70.0, snap.TasaAprobacion)
	assert.Equal(t, 3, snap.EstudiantesBajoRendimiento)
}

func TestAggregate_approvalRateNoRecords(t *testing.T) {
	snap := Aggregate([]SectionGrades{{SectionID: "s1", SubjectName: "Math"}}, nil, DefaultThresholds())
	assert.Equal(t, 0.0, snap.TasaAprobacion)
	assert.Equal(t, 0, snap.TotalEstudiantes)
	assert.Equal(t, 0, snap.EstudiantesBajoRendimiento)
	assert.Equal(t, 0.0, snap.AsistenciaPromedio)
}

func TestAggregate_attendance(t *testing.T) {
	sections := []SectionGrades{
		{SectionID: "s1", SubjectName: "Math", FinalAverages: []float64{80, 90}},
		{SectionID: "s2", SubjectName: "Physics"},
	}

	var rows []AttendanceRow
	rows = append(rows, attendanceRows("s1", "critical", 5, 3, 2)...) // 70%
	rows = append(rows, attendanceRows("s1", "borderline", 6, 2, 2)...) // 80%
	rows = append(rows, attendanceRows("s2", "perfect", 10, 0, 0)...)

	snap := Aggregate(sections, rows, DefaultThresholds())
	assert.Equal(t, 1, snap.EstudiantesAsistenciaCritica)
	assert.Equal(t, 83.3, snap.AsistenciaPromedio) // 25 / 30
}

func TestAggregate_attendancePooledAcrossSections(t *testing.T) {
	sections := []SectionGrades{
		{SectionID: "s1", SubjectName: "Math"},
		{SectionID: "s2", SubjectName: "Physics"},
	}
	// same enrollment, 100% in s1 but 50% in s2: 15/20 = 75% overall
	var rows []AttendanceRow
	rows = append(rows, attendanceRows("s1", "e1", 10, 0, 0)...)
	rows = append(rows, attendanceRows("s2", "e1", 5, 5, 0)...)

	snap := Aggregate(sections, rows, DefaultThresholds())
	assert.Equal(t, 1, snap.EstudiantesAsistenciaCritica)
	assert.Equal(t, 75.0, snap.AsistenciaPromedio)
}

func TestAggregate_customThresholds(t *testing.T) {
	sections := []SectionGrades{{SectionID: "s1", SubjectName: "Math", FinalAverages: []float64{60, 65}}}
	rows := attendanceRows("s1", "e1", 7, 3, 0)

	snap := Aggregate(sections, rows, Thresholds{PassMark: 60, AttendanceCriticalPct: 70})
	assert.Equal(t, 100.0, snap.TasaAprobacion)
	assert.Equal(t, 0, snap.EstudiantesAsistenciaCritica)
}

func BenchmarkAggregate(b *testing.B) {
	sections := make([]SectionGrades, 0, 20)
	var rows []AttendanceRow
	for i := 0; i < 20; i++ {
		id := "s" + strconv.Itoa(i)
		avgs := make([]float64, 30)
		for j := range avgs {
			avgs[j] = float64(50 + j)
			rows = append(rows, attendanceRows(id, id+"-e"+strconv.Itoa(j), 30, 5, 5)...)
		}
		sections = append(sections, SectionGrades{SectionID: id, SubjectName: id, FinalAverages: avgs})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Aggregate(sections, rows, DefaultThresholds())
	}
}
