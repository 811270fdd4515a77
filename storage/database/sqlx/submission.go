package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/submission"
)

type submissionRow struct {
	ID           string       `db:"id"`
	AssignmentID string       `db:"assignment_id"`
	StudentID    string       `db:"student_id"`
	Content      string       `db:"content"`
	FileURL      null.String  `db:"file_url"`
	Grade        null.Float64 `db:"grade"`
	Feedback     null.String  `db:"feedback"`
	Status       string       `db:"status"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

func (r submissionRow) model() submission.Submission {
	return submission.Submission{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		StudentID:    r.StudentID,
		Content:      r.Content,
		FileURL:      r.FileURL,
		Grade:        r.Grade,
		Feedback:     r.Feedback,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type submissionRepository struct {
	db *sqlx.DB
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *sql.DB) *submissionRepository {
	return &submissionRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo submissionRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return submission.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo submissionRepository) models(rows []submissionRow) []submission.Submission {
	subs := make([]submission.Submission, 0, len(rows))
	for _, r := range rows {
		subs = append(subs, r.model())
	}
	return subs
}

func (repo submissionRepository) CreateSubmission(sub submission.Submission) (submission.Submission, error) {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	_, err := repo.db.Exec(
		`INSERT INTO submission (id, assignment_id, student_id, content, file_url, grade, feedback, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sub.ID, sub.AssignmentID, sub.StudentID, sub.Content,
		sub.FileURL, sub.Grade, sub.Feedback, sub.Status, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "creating submission")
	}
	return sub, nil
}

func (repo submissionRepository) GetSubmissionByID(id string) (submission.Submission, error) {
	var row submissionRow
	if err := repo.db.Get(&row, `SELECT * FROM submission WHERE id = $1`, id); err != nil {
		return submission.Submission{}, repo.trapNoRowsErr(err, "finding submission by id")
	}
	return row.model(), nil
}

func (repo submissionRepository) QuerySubmissionsByStudent(studentID string) ([]submission.Submission, error) {
	var rows []submissionRow
	err := repo.db.Select(&rows, `SELECT * FROM submission WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions by student")
	}
	return repo.models(rows), nil
}

func (repo submissionRepository) QuerySubmissionsByAssignment(assignmentID string) ([]submission.Submission, error) {
	var rows []submissionRow
	err := repo.db.Select(&rows, `SELECT * FROM submission WHERE assignment_id = $1 ORDER BY created_at DESC`, assignmentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions by assignment")
	}
	return repo.models(rows), nil
}

func (repo submissionRepository) SetSubmissionFileURL(id, url string) (submission.Submission, error) {
	_, err := repo.db.Exec(
		`UPDATE submission SET file_url = $1, updated_at = $2 WHERE id = $3`,
		url, time.Now().UTC(), id,
	)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "setting submission file url")
	}
	return repo.GetSubmissionByID(id)
}

func (repo submissionRepository) GradeSubmission(id string, grade float64, feedback string, at time.Time) (submission.Submission, error) {
	_, err := repo.db.Exec(
		`UPDATE submission SET grade = $1, feedback = $2, status = $3, updated_at = $4 WHERE id = $5`,
		grade, null.NewString(feedback, feedback != ""), submission.StatusGraded, at, id,
	)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "grading submission")
	}
	return repo.GetSubmissionByID(id)
}

func (repo submissionRepository) GetSubmissionOwner(id string) (submission.Owner, error) {
	var owner submission.Owner
	err := repo.db.Get(&owner.LecturerID,
		`SELECT course.lecturer_id
		 FROM submission
		 JOIN assignment ON assignment.id = submission.assignment_id
		 JOIN course ON course.id = assignment.course_id
		 WHERE submission.id = $1`,
		id,
	)
	if err != nil {
		return submission.Owner{}, repo.trapNoRowsErr(err, "finding submission owner")
	}
	return owner, nil
}
