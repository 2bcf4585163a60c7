package grading

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
)

var (
	partialMaxLen  = 8
	partialTag     = "partial"
	partialText    = fmt.Sprintf("{0} must be at most %d characters long", partialMaxLen)
	attStatusTag   = "attstatus"
	attStatusText  = "{0} must be one of present, absent or late"
	uniqueRowsText = "each grade record may only appear once"
	uniqueEnrText  = "each enrollment may only appear once"
)

// InitValidators registers the grading validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(partialTag, partialValidation)
	core.RegisterCustomTranslation(validate, translator, partialTag, partialText)

	_ = validate.RegisterValidation(attStatusTag, attStatusValidation)
	core.RegisterCustomTranslation(validate, translator, attStatusTag, attStatusText)
}

// partialValidation only bounds the input size: partial values are corrected by the Normalizer, not rejected.
func partialValidation(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= partialMaxLen
}

func attStatusValidation(fl validator.FieldLevel) bool {
	return core.AttendanceStatus(fl.Field().String()).Valid()
}

func (sg *SaveGrades) Validate(validate *validator.Validate) error {
	if err := validate.Struct(sg); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(sg.Grades))
	for _, row := range sg.Grades {
		if row.ID == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "id", Error: "this field is required"})
		}
		if _, ok := seen[row.ID]; ok {
			return core.NewValidationError(nil, core.FieldError{Field: "grades", Error: uniqueRowsText})
		}
		seen[row.ID] = struct{}{}
	}
	return nil
}

func (nr *NormalizeRows) Validate(validate *validator.Validate) error {
	return validate.Struct(nr)
}

func (na *NewAttendance) Validate(validate *validator.Validate) error {
	na.Date = core.CleanString(na.Date)
	for i := range na.Entries {
		na.Entries[i].Status = core.AttendanceStatus(core.CleanString(string(na.Entries[i].Status), true /* lower */))
	}

	if err := validate.Struct(na); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(na.Entries))
	for _, e := range na.Entries {
		if _, ok := seen[e.EnrollmentID]; ok {
			return core.NewValidationError(nil, core.FieldError{Field: "entries", Error: uniqueEnrText})
		}
		seen[e.EnrollmentID] = struct{}{}
	}
	return nil
}
