package testutil

import (
	"io"
	"log"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/grading"
	logsvc "github.com/trezcool/academia/services/logger"
	inmemdb "github.com/trezcool/academia/storage/database/inmem"
)

// NewLogger returns a silent logger that never reports to rollbar.
func NewLogger() core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), core.NewTestConfig())
	logger.Enable(false)
	return logger
}

// NewValidator returns a validator with every custom validator registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	grading.InitValidators(validate, translator)
	return validate, translator
}

// CreateGradedRecord enrolls a student in the section and sets its final average directly.
func CreateGradedRecord(t *testing.T, db *inmemdb.DB, sectionID, studentName string, finalAverage float64) grading.Record {
	t.Helper()

	_, recs := db.Enroll(studentName, "G1", "2024-1", sectionID)
	if len(recs) != 1 {
		t.Fatalf("CreateGradedRecord() failed: got %d records", len(recs))
	}
	db.SetFinalAverage(recs[0].ID, finalAverage)
	recs[0].FinalAverage = finalAverage
	return recs[0]
}
