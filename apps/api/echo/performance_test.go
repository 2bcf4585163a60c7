package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core/performance"
	"github.com/trezcool/academia/tests"
)

func Test_home(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httpTest{method: http.MethodGet, path: "/"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Academia API!", rec.Body.String())
}

func Test_performanceApi_stats(t *testing.T) {
	app := newTestApp(t)

	teacher := app.db.AddTeacher("Mrs. Mwamba", "mwamba@test.cd")
	idle := app.db.AddTeacher("Idle", "idle@test.cd")
	math := app.db.AddSection(teacher.ID, "Math", "G1", "2024-1")
	bio := app.db.AddSection(teacher.ID, "Biology", "G2", "2024-1")
	testutil.CreateGradedRecord(t, app.db, math.ID, "Ana", 85)
	testutil.CreateGradedRecord(t, app.db, math.ID, "Ben", 64)
	testutil.CreateGradedRecord(t, app.db, bio.ID, "Cleo", 90)

	zero := marshallObj(t, performance.ZeroSnapshot())
	runHTTPTests(t, app, []httpTest{
		{
			name:     "unknown teacher",
			method:   http.MethodGet,
			path:     "/v1/teachers/" + uuid.New().String() + "/stats",
			wantCode: http.StatusOK,
			wantData: zero,
		},
		{
			name:     "malformed id",
			method:   http.MethodGet,
			path:     "/v1/teachers/lol/stats",
			wantCode: http.StatusOK,
			wantData: zero,
		},
		{
			name:     "no sections",
			method:   http.MethodGet,
			path:     "/v1/teachers/" + idle.ID + "/stats/",
			wantCode: http.StatusOK,
			wantData: []byte(`{
				"promedioFinalGrupo": 0, "rendimientoMateria": [], "tasaAprobacion": 0,
				"totalEstudiantes": 0, "estudiantesBajoRendimiento": 0, "materiasImpartidas": 0,
				"gruposAsignados": 0, "asistenciaPromedio": 0, "estudiantesAsistenciaCritica": 0
			}`),
		},
		{
			name:     "ok",
			method:   http.MethodGet,
			path:     "/v1/teachers/" + teacher.ID + "/stats",
			wantCode: http.StatusOK,
			wantData: []byte(`{
				"promedioFinalGrupo": 82.3,
				"rendimientoMateria": [{"materia": "Math", "promedio": 74.5}, {"materia": "Biology", "promedio": 90}],
				"tasaAprobacion": 66.7,
				"totalEstudiantes": 3,
				"estudiantesBajoRendimiento": 1,
				"materiasImpartidas": 2,
				"gruposAsignados": 2,
				"asistenciaPromedio": 0,
				"estudiantesAsistenciaCritica": 0
			}`),
		},
	})
}

func Test_performanceApi_mailReport(t *testing.T) {
	app := newTestApp(t)

	teacher := app.db.AddTeacher("Mrs. Mwamba", "mwamba@test.cd")
	noEmail := app.db.AddTeacher("No Email", "")

	runHTTPTests(t, app, []httpTest{
		{
			name:     "unknown teacher",
			method:   http.MethodPost,
			path:     "/v1/teachers/" + uuid.New().String() + "/stats/report",
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Error: "teacher not found"}),
		},
		{
			name:     "no email",
			method:   http.MethodPost,
			path:     "/v1/teachers/" + noEmail.ID + "/stats/report",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email": "teacher has no email address"}`),
		},
		{
			name:     "ok",
			method:   http.MethodPost,
			path:     "/v1/teachers/" + teacher.ID + "/stats/report",
			wantCode: http.StatusAccepted,
		},
	})

	sent := app.mailSvc.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "mwamba@test.cd", sent[0].To[0].Address)
}
