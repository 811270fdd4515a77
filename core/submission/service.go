package submission

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/assignment"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
)

var (
	// errors
	ErrNotFound       = errors.New("submission not found")
	ErrDocumentType   = errors.New("only pdf, doc and docx documents are accepted")
	ErrDocumentTooBig = errors.New("document exceeds the 10MB limit")
)

type (
	Repository interface {
		CreateSubmission(sub Submission) (Submission, error)
		GetSubmissionByID(id string) (Submission, error)
		QuerySubmissionsByStudent(studentID string) ([]Submission, error)
		QuerySubmissionsByAssignment(assignmentID string) ([]Submission, error)
		SetSubmissionFileURL(id, url string) (Submission, error)
		GradeSubmission(id string, grade float64, feedback string, at time.Time) (Submission, error)
		// GetSubmissionOwner resolves the chain submission -> assignment ->
		// course -> lecturer and returns the single owning lecturer row.
		GetSubmissionOwner(id string) (Owner, error)
	}

	Service interface {
		Submit(studentID string, ns NewSubmission) (Submission, error)
		AttachDocument(ctx context.Context, id, filename string, size int64, r io.Reader) (Submission, error)
		GetByID(id string) (Submission, error)
		QueryByStudent(studentID string) ([]Submission, error)
		QueryByAssignment(assignmentID string) ([]Submission, error)
		Grade(id string, gs GradeSubmission) (Submission, error)
		GetOwner(id string) (Owner, error)
	}

	service struct {
		repo      Repository
		asgSvc    assignment.Service
		usrSvc    user.Service
		fileStore core.FileStorage
		mailSvc   core.EmailService
		logger    core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(
	repo Repository,
	asgSvc assignment.Service,
	usrSvc user.Service,
	fileStore core.FileStorage,
	mailSvc core.EmailService,
	logger core.Logger,
) Service {
	return &service{
		repo:      repo,
		asgSvc:    asgSvc,
		usrSvc:    usrSvc,
		fileStore: fileStore,
		mailSvc:   mailSvc,
		logger:    logger,
	}
}

func (svc *service) Submit(studentID string, ns NewSubmission) (Submission, error) {
	if _, err := svc.asgSvc.GetByID(ns.AssignmentID); err != nil {
		return Submission{}, errors.Wrap(err, "finding assignment")
	}

	now := time.Now().UTC()
	sub := Submission{
		AssignmentID: ns.AssignmentID,
		StudentID:    studentID,
		Content:      ns.Content,
		Status:       StatusSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateSubmission(sub)
}

func (svc *service) AttachDocument(ctx context.Context, id, filename string, size int64, r io.Reader) (Submission, error) {
	if !ValidDocumentName(filename) {
		return Submission{}, core.NewValidationError(ErrDocumentType)
	}
	if size > MaxDocumentSize {
		return Submission{}, core.NewValidationError(ErrDocumentTooBig)
	}

	sub, err := svc.repo.GetSubmissionByID(id)
	if err != nil {
		return Submission{}, err
	}

	key := fmt.Sprintf("submissions/%s/%s", sub.ID, filename)
	url, err := svc.fileStore.UploadFile(ctx, key, io.LimitReader(r, MaxDocumentSize))
	if err != nil {
		return Submission{}, errors.Wrap(err, "uploading document")
	}
	return svc.repo.SetSubmissionFileURL(sub.ID, url)
}

func (svc *service) GetByID(id string) (Submission, error) {
	return svc.repo.GetSubmissionByID(id)
}

func (svc *service) QueryByStudent(studentID string) ([]Submission, error) {
	return svc.repo.QuerySubmissionsByStudent(studentID)
}

func (svc *service) QueryByAssignment(assignmentID string) ([]Submission, error) {
	return svc.repo.QuerySubmissionsByAssignment(assignmentID)
}

func (svc *service) Grade(id string, gs GradeSubmission) (Submission, error) {
	sub, err := svc.repo.GradeSubmission(id, *gs.Grade, gs.Feedback, time.Now().UTC())
	if err != nil {
		return Submission{}, err
	}
	svc.notifyStudent(sub)
	return sub, nil
}

func (svc *service) notifyStudent(sub Submission) {
	student, err := svc.usrSvc.GetByID(sub.StudentID)
	if err != nil {
		// the grade is already persisted; only the notification is lost
		svc.logger.Error("finding graded student", errors.Wrap(err, "finding graded student"))
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: student.Name, Address: student.Email}},
		Subject: "Your submission has been graded",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour submission has been graded: %.0f/100.\n\n"+
				"Sign in to view the full feedback:\n%s/student/feedback/%s",
			student.Name, sub.Grade.Float64, core.Conf.FrontendBaseURL, sub.ID,
		),
	})
}

func (svc *service) GetOwner(id string) (Owner, error) {
	return svc.repo.GetSubmissionOwner(id)
}
