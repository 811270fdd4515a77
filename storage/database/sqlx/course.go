package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/course"
)

type courseRow struct {
	ID          string      `db:"id"`
	Code        string      `db:"code"`
	Title       string      `db:"title"`
	Description null.String `db:"description"`
	LecturerID  string      `db:"lecturer_id"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r courseRow) model() course.Course {
	return course.Course{
		ID:          r.ID,
		Code:        r.Code,
		Title:       r.Title,
		Description: r.Description.String,
		LecturerID:  r.LecturerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) models(rows []courseRow) []course.Course {
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.model())
	}
	return courses
}

func (repo courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	if crs.ID == "" {
		crs.ID = uuid.New().String()
	}
	_, err := repo.db.Exec(
		`INSERT INTO course (id, code, title, description, lecturer_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		crs.ID, crs.Code, crs.Title,
		null.NewString(crs.Description, crs.Description != ""),
		crs.LecturerID, crs.CreatedAt, crs.UpdatedAt,
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return crs, nil
}

func (repo courseRepository) GetCourseByID(id string) (course.Course, error) {
	var row courseRow
	if err := repo.db.Get(&row, `SELECT * FROM course WHERE id = $1`, id); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "finding course by id")
	}
	return row.model(), nil
}

func (repo courseRepository) QueryCoursesByLecturer(lecturerID string) ([]course.Course, error) {
	var rows []courseRow
	err := repo.db.Select(&rows, `SELECT * FROM course WHERE lecturer_id = $1 ORDER BY created_at`, lecturerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses by lecturer")
	}
	return repo.models(rows), nil
}

func (repo courseRepository) QueryAllCourses() ([]course.Course, error) {
	var rows []courseRow
	if err := repo.db.Select(&rows, `SELECT * FROM course ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return repo.models(rows), nil
}
