package assignment

import (
	"time"

	"github.com/pkg/errors"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/course"
)

var ErrNotFound = errors.New("assignment not found")

type (
	Repository interface {
		CreateAssignment(asg Assignment) (Assignment, error)
		GetAssignmentByID(id string) (Assignment, error)
		QueryAssignmentsByCourse(courseID string) ([]Assignment, error)
		QueryAllAssignments() ([]Assignment, error)
	}

	Service interface {
		// Create persists a new Assignment; the course must exist.
		Create(na NewAssignment) (Assignment, error)
		GetByID(id string) (Assignment, error)
		QueryByCourse(courseID string) ([]Assignment, error)
		QueryAll() ([]Assignment, error)
	}

	service struct {
		repo      Repository
		courseSvc course.Service
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, courseSvc course.Service) Service {
	return &service{repo: repo, courseSvc: courseSvc}
}

func (svc *service) Create(na NewAssignment) (Assignment, error) {
	if _, err := svc.courseSvc.GetByID(na.CourseID); err != nil {
		return Assignment{}, errors.Wrap(err, "finding course")
	}

	now := time.Now().UTC()
	asg := Assignment{
		CourseID:    na.CourseID,
		Title:       na.Title,
		Description: na.Description,
		DueAt:       na.DueAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateAssignment(asg)
}

func (svc *service) GetByID(id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

func (svc *service) QueryByCourse(courseID string) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByCourse(courseID)
}

func (svc *service) QueryAll() ([]Assignment, error) {
	return svc.repo.QueryAllAssignments()
}
