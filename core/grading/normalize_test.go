package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePartial(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "blank", raw: "", want: ""},
		{name: "whitespace", raw: "   ", want: ""},
		{name: "passing", raw: "85", want: "85"},
		{name: "pass mark", raw: "70", want: "70"},
		{name: "under pass mark", raw: "69", want: NA},
		{name: "zero", raw: "0", want: NA},
		{name: "clamped high", raw: "150", want: "100"},
		{name: "clamped low", raw: "-5", want: NA},
		{name: "sentinel", raw: "NA", want: NA},
		{name: "sentinel lower case", raw: " na ", want: NA},
		{name: "decimal rounds", raw: "84.5", want: "85"},
		{name: "decimal under pass mark", raw: "69.4", want: NA},
		{name: "letters", raw: "abc", want: ""},
		{name: "mixed", raw: "8a", want: ""},
		{name: "not a number", raw: "NaN", want: ""},
		{name: "padded", raw: " 90 ", want: "90"},
		{name: "leading zero", raw: "075", want: "75"},
		{name: "exponent", raw: "1e2", want: "100"},
		{name: "exponent beyond int range", raw: "1e19", want: "100"},
		{name: "huge exponent", raw: "1e300", want: "100"},
		{name: "float overflow", raw: "1e400", want: "100"},
		{name: "integer beyond int range", raw: "99999999999999999999", want: "100"},
		{name: "negative beyond int range", raw: "-1e19", want: NA},
		{name: "underflow", raw: "1e-400", want: NA},
		{name: "infinity", raw: "Inf", want: ""},
		{name: "hex float", raw: "0x1p6", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePartial(tt.raw))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want Row
	}{
		{
			name: "one failing partial blocks the final",
			row:  Row{ID: "r1", Parcial1: "65", Parcial2: "90", Parcial3: "90"},
			want: Row{ID: "r1", Parcial1: NA, Parcial2: "90", Parcial3: "90", Final: NA, Extraordinario: "P1"},
		},
		{
			name: "all passing",
			row:  Row{Parcial1: "70", Parcial2: "80", Parcial3: "90"},
			want: Row{Parcial1: "70", Parcial2: "80", Parcial3: "90", Final: "80"},
		},
		{
			name: "rounded average",
			row:  Row{Parcial1: "70", Parcial2: "70", Parcial3: "71"},
			want: Row{Parcial1: "70", Parcial2: "70", Parcial3: "71", Final: "70"},
		},
		{
			name: "rounded up",
			row:  Row{Parcial1: "70", Parcial2: "71", Parcial3: "71"},
			want: Row{Parcial1: "70", Parcial2: "71", Parcial3: "71", Final: "71"},
		},
		{
			name: "incomplete",
			row:  Row{Parcial1: "85", Parcial2: "", Parcial3: "90"},
			want: Row{Parcial1: "85", Parcial3: "90"},
		},
		{
			name: "incomplete with failing partial",
			row:  Row{Parcial1: "50", Parcial2: "", Parcial3: "NA"},
			want: Row{Parcial1: NA, Parcial3: NA, Extraordinario: "P1-P3"},
		},
		{
			name: "several failing partials",
			row:  Row{Parcial1: "10", Parcial2: "20", Parcial3: "95"},
			want: Row{Parcial1: NA, Parcial2: NA, Parcial3: "95", Final: NA, Extraordinario: "P1-P2"},
		},
		{
			name: "all failing",
			row:  Row{Parcial1: "na", Parcial2: "0", Parcial3: "69"},
			want: Row{Parcial1: NA, Parcial2: NA, Parcial3: NA, Final: NA, Extraordinario: "P1-P2-P3"},
		},
		{
			name: "empty row",
			row:  Row{ID: "r2"},
			want: Row{ID: "r2"},
		},
		{
			name: "client final and remedial are ignored",
			row:  Row{Parcial1: "100", Parcial2: "100", Parcial3: "100", Final: "NA", Extraordinario: "P2"},
			want: Row{Parcial1: "100", Parcial2: "100", Parcial3: "100", Final: "100"},
		},
		{
			name: "garbage is dropped",
			row:  Row{Parcial1: "x", Parcial2: "90", Parcial3: "90"},
			want: Row{Parcial2: "90", Parcial3: "90"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.row)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalizing twice must not change the row")
		})
	}
}

func TestNormalizer_customPassMark(t *testing.T) {
	n := NewNormalizer(60)
	assert.Equal(t, "65", n.Partial("65"))
	assert.Equal(t, NA, n.Partial("59"))

	got := n.Row(Row{Parcial1: "60", Parcial2: "61", Parcial3: "65"})
	assert.Equal(t, "62", got.Final)
	assert.Empty(t, got.Extraordinario)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		row  Row
		want Status
	}{
		{row: Row{}, want: StatusNotApplicable},
		{row: Normalize(Row{Parcial1: "80"}), want: StatusInProgress},
		{row: Normalize(Row{Parcial1: "50"}), want: StatusInProgress},
		{row: Normalize(Row{Parcial1: "80", Parcial2: "80", Parcial3: "80"}), want: StatusApproved},
		{row: Normalize(Row{Parcial1: "80", Parcial2: "40", Parcial3: "80"}), want: StatusFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.row), "%+v", tt.row)
	}
}

func TestFinalAverage(t *testing.T) {
	assert.Equal(t, 80.0, FinalAverage(Row{Final: "80"}))
	assert.Equal(t, 0.0, FinalAverage(Row{Final: NA}))
	assert.Equal(t, 0.0, FinalAverage(Row{}))
}

func TestAttendancePcts(t *testing.T) {
	recs := []AttendanceRecord{
		{EnrollmentID: "e1", Status: "present"},
		{EnrollmentID: "e1", Status: "late"},
		{EnrollmentID: "e1", Status: "absent"},
		{EnrollmentID: "e2", Status: "absent"},
	}
	assert.Equal(t, map[string]float64{"e1": 66.7, "e2": 0}, AttendancePcts(recs))
	assert.Empty(t, AttendancePcts(nil))
}
