package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/assignment"
)

type assignmentRow struct {
	ID          string      `db:"id"`
	CourseID    string      `db:"course_id"`
	Title       string      `db:"title"`
	Description null.String `db:"description"`
	DueAt       time.Time   `db:"due_at"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r assignmentRow) model() assignment.Assignment {
	return assignment.Assignment{
		ID:          r.ID,
		CourseID:    r.CourseID,
		Title:       r.Title,
		Description: r.Description.String,
		DueAt:       r.DueAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sql.DB) *assignmentRepository {
	return &assignmentRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo assignmentRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return assignment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo assignmentRepository) models(rows []assignmentRow) []assignment.Assignment {
	asgs := make([]assignment.Assignment, 0, len(rows))
	for _, r := range rows {
		asgs = append(asgs, r.model())
	}
	return asgs
}

func (repo assignmentRepository) CreateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	if asg.ID == "" {
		asg.ID = uuid.New().String()
	}
	_, err := repo.db.Exec(
		`INSERT INTO assignment (id, course_id, title, description, due_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		asg.ID, asg.CourseID, asg.Title,
		null.NewString(asg.Description, asg.Description != ""),
		asg.DueAt, asg.CreatedAt, asg.UpdatedAt,
	)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return asg, nil
}

func (repo assignmentRepository) GetAssignmentByID(id string) (assignment.Assignment, error) {
	var row assignmentRow
	if err := repo.db.Get(&row, `SELECT * FROM assignment WHERE id = $1`, id); err != nil {
		return assignment.Assignment{}, repo.trapNoRowsErr(err, "finding assignment by id")
	}
	return row.model(), nil
}

func (repo assignmentRepository) QueryAssignmentsByCourse(courseID string) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	err := repo.db.Select(&rows, `SELECT * FROM assignment WHERE course_id = $1 ORDER BY due_at`, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments by course")
	}
	return repo.models(rows), nil
}

func (repo assignmentRepository) QueryAllAssignments() ([]assignment.Assignment, error) {
	var rows []assignmentRow
	if err := repo.db.Select(&rows, `SELECT * FROM assignment ORDER BY due_at`); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return repo.models(rows), nil
}
