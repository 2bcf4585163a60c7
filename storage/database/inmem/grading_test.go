package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/grading"
)

func TestGradingRepository_InsertAttendance_uniqueSession(t *testing.T) {
	db := Open()
	repo := NewGradingRepository(db)
	ctx := context.Background()

	att := func(enrollmentID, day string) grading.AttendanceRecord {
		d, _ := time.Parse(core.DateLayout, day)
		return grading.AttendanceRecord{
			ID:              uuid.New().String(),
			EnrollmentID:    enrollmentID,
			CourseSectionID: "s1",
			Date:            d,
			Status:          core.AttendancePresent,
		}
	}

	require.NoError(t, repo.InsertAttendance(ctx, []grading.AttendanceRecord{att("e1", "2024-03-01"), att("e2", "2024-03-01")}))
	assert.Error(t, repo.InsertAttendance(ctx, []grading.AttendanceRecord{att("e1", "2024-03-01")}))
	assert.Error(t, repo.InsertAttendance(ctx, []grading.AttendanceRecord{att("e3", "2024-03-02"), att("e3", "2024-03-02")}))
	require.NoError(t, repo.InsertAttendance(ctx, []grading.AttendanceRecord{att("e1", "2024-03-02")}))

	records, err := repo.QueryAttendance(ctx, "s1", []string{"e1", "e2", "e3"})
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
