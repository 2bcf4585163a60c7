package performance

import "github.com/trezcool/academia/core"

// Default thresholds, in percent.
const (
	DefaultPassMark              = 70
	DefaultAttendanceCriticalPct = 80
)

type Thresholds struct {
	PassMark              float64 // minimum final average to count as approved
	AttendanceCriticalPct float64 // attendance ratio under which an enrollment is critical
}

func DefaultThresholds() Thresholds {
	return Thresholds{PassMark: DefaultPassMark, AttendanceCriticalPct: DefaultAttendanceCriticalPct}
}

func ThresholdsFromConfig(conf *core.Config) Thresholds {
	if conf == nil {
		return DefaultThresholds()
	}
	return Thresholds{
		PassMark:              float64(conf.Grading.PassMark),
		AttendanceCriticalPct: conf.Grading.AttendanceCriticalPct,
	}
}

type Teacher struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// SectionGrades is one course section taught by a teacher, with the final average of every grade record.
type SectionGrades struct {
	SectionID     string
	SubjectName   string
	FinalAverages []float64
}

// AttendanceRow is one attendance record of one enrollment in one course section.
type AttendanceRow struct {
	SectionID    string                `db:"course_section_id"`
	EnrollmentID string                `db:"enrollment_id"`
	Status       core.AttendanceStatus `db:"status"`
}

type SubjectPerformance struct {
	Materia  string  `json:"materia"`
	Promedio float64 `json:"promedio"`
}

// Snapshot holds the KPIs of a teacher's groups. Percentages and averages are rounded to one decimal.
type Snapshot struct {
	PromedioFinalGrupo           float64              `json:"promedioFinalGrupo"`
	RendimientoMateria           []SubjectPerformance `json:"rendimientoMateria"`
	TasaAprobacion               float64              `json:"tasaAprobacion"`
	TotalEstudiantes             int                  `json:"totalEstudiantes"`
	EstudiantesBajoRendimiento   int                  `json:"estudiantesBajoRendimiento"`
	MateriasImpartidas           int                  `json:"materiasImpartidas"`
	GruposAsignados              int                  `json:"gruposAsignados"`
	AsistenciaPromedio           float64              `json:"asistenciaPromedio"`
	EstudiantesAsistenciaCritica int                  `json:"estudiantesAsistenciaCritica"`
}

// ZeroSnapshot is returned for teachers without course sections.
func ZeroSnapshot() Snapshot {
	return Snapshot{RendimientoMateria: []SubjectPerformance{}}
}
