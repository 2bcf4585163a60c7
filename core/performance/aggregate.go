package performance

import "github.com/trezcool/academia/core"

// Aggregate computes the KPI snapshot of a teacher's course sections.
// A section without grade records counts as a 0 average in the group average.
// Attendance is pooled over all sections; attendance-critical status is computed per enrollment.
func Aggregate(sections []SectionGrades, attendance []AttendanceRow, th Thresholds) Snapshot {
	if len(sections) == 0 {
		return ZeroSnapshot()
	}

	snap := Snapshot{
		RendimientoMateria: make([]SubjectPerformance, 0, len(sections)),
		MateriasImpartidas: len(sections),
		GruposAsignados:    len(sections),
	}

	var sumAverages float64
	var approved int
	for _, sec := range sections {
		var avg float64
		if n := len(sec.FinalAverages); n > 0 {
			var sum float64
			for _, fa := range sec.FinalAverages {
				sum += fa
				if fa >= th.PassMark {
					approved++
				}
			}
			avg = sum / float64(n)
		}
		sumAverages += avg
		snap.TotalEstudiantes += len(sec.FinalAverages)
		snap.RendimientoMateria = append(snap.RendimientoMateria, SubjectPerformance{
			Materia:  sec.SubjectName,
			Promedio: core.Round1(avg),
		})
	}

	snap.PromedioFinalGrupo = core.Round1(sumAverages / float64(len(sections)))
	if snap.TotalEstudiantes > 0 {
		snap.TasaAprobacion = core.Round1(float64(approved) * 100 / float64(snap.TotalEstudiantes))
	}
	snap.EstudiantesBajoRendimiento = snap.TotalEstudiantes - approved

	snap.AsistenciaPromedio, snap.EstudiantesAsistenciaCritica = aggregateAttendance(attendance, th.AttendanceCriticalPct)
	return snap
}

type attendanceTally struct {
	attended, total int
}

func (t attendanceTally) pct() float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.attended) * 100 / float64(t.total)
}

func aggregateAttendance(rows []AttendanceRow, criticalPct float64) (avgPct float64, critical int) {
	if len(rows) == 0 {
		return 0, 0
	}

	var all attendanceTally
	perEnrollment := make(map[string]*attendanceTally)
	for _, row := range rows {
		t, ok := perEnrollment[row.EnrollmentID]
		if !ok {
			t = new(attendanceTally)
			perEnrollment[row.EnrollmentID] = t
		}
		t.total++
		all.total++
		if row.Status.Attended() {
			t.attended++
			all.attended++
		}
	}

	for _, t := range perEnrollment {
		if t.pct() < criticalPct {
			critical++
		}
	}
	return core.Round1(all.pct()), critical
}
