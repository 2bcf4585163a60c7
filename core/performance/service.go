package performance

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

var ErrTeacherNotFound = core.NewNotFoundError("teacher")

type (
	Repository interface {
		GetTeacher(ctx context.Context, teacherID string) (Teacher, error)
		// QuerySectionGrades returns every course section taught by the teacher,
		// including sections without grade records.
		QuerySectionGrades(ctx context.Context, teacherID string) ([]SectionGrades, error)
		QuerySectionAttendance(ctx context.Context, sectionIDs []string) ([]AttendanceRow, error)
	}

	Service interface {
		TeacherStats(ctx context.Context, teacherID string) (Snapshot, error)
		MailReport(ctx context.Context, teacherID string) error
	}

	service struct {
		repo       Repository
		mailSvc    core.EmailService
		logger     core.Logger
		thresholds Thresholds
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger, conf *core.Config) Service {
	return &service{
		repo:       repo,
		mailSvc:    mailSvc,
		logger:     logger,
		thresholds: ThresholdsFromConfig(conf),
	}
}

// TeacherStats returns the KPI snapshot of the teacher's course sections.
// Unknown teachers and teachers without sections get a zero snapshot.
func (svc *service) TeacherStats(ctx context.Context, teacherID string) (Snapshot, error) {
	sections, err := svc.repo.QuerySectionGrades(ctx, teacherID)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "querying section grades")
	}
	if len(sections) == 0 {
		svc.logger.Info(fmt.Sprintf("teacher %q has no course sections", teacherID))
		return ZeroSnapshot(), nil
	}

	ids := make([]string, 0, len(sections))
	for _, sec := range sections {
		ids = append(ids, sec.SectionID)
	}
	attendance, err := svc.repo.QuerySectionAttendance(ctx, ids)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "querying section attendance")
	}

	return Aggregate(sections, attendance, svc.thresholds), nil
}

type reportData struct {
	TeacherName string
	Snapshot    Snapshot
}

// MailReport sends the teacher their current KPI snapshot.
func (svc *service) MailReport(ctx context.Context, teacherID string) error {
	teacher, err := svc.repo.GetTeacher(ctx, teacherID)
	if err != nil {
		return errors.Wrap(err, "getting teacher")
	}
	if teacher.Email == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "email", Error: "teacher has no email address"})
	}

	snap, err := svc.TeacherStats(ctx, teacherID)
	if err != nil {
		return err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: teacher.Name, Address: teacher.Email}},
		Subject:      "Group performance summary",
		TemplateName: "teacher_report",
		TemplateData: reportData{TeacherName: teacher.Name, Snapshot: snap},
	})
	return nil
}
