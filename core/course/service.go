package course

import (
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(crs Course) (Course, error)
		GetCourseByID(id string) (Course, error)
		QueryCoursesByLecturer(lecturerID string) ([]Course, error)
		QueryAllCourses() ([]Course, error)
	}

	Service interface {
		Create(lecturerID string, nc NewCourse) (Course, error)
		GetByID(id string) (Course, error)
		QueryByLecturer(lecturerID string) ([]Course, error)
		QueryAll() ([]Course, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(lecturerID string, nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		Code:        nc.Code,
		Title:       nc.Title,
		Description: nc.Description,
		LecturerID:  lecturerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCourse(crs)
}

func (svc *service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *service) QueryByLecturer(lecturerID string) ([]Course, error) {
	return svc.repo.QueryCoursesByLecturer(lecturerID)
}

func (svc *service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}
