package sqlxrepos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/grading"
)

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name     string
		ordering []core.DBOrdering
		want     string
	}{
		{
			name: "default",
			want: " ORDER BY student_name ASC, id ASC",
		},
		{
			name:     "requested first",
			ordering: []core.DBOrdering{{Field: "final_average"}, {Field: "status", Ascending: true}},
			want:     " ORDER BY final_average DESC, status ASC, student_name ASC, id ASC",
		},
		{
			name: "unknown fields dropped upstream",
			ordering: core.AllowedOrderings(
				[]core.DBOrdering{{Field: "1; DROP TABLE grade_records"}, {Field: "updated_at"}},
				grading.GradeOrderings,
			),
			want: " ORDER BY updated_at DESC, student_name ASC, id ASC",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, orderBy(tc.ordering))
		})
	}
}
