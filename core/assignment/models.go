package assignment

import (
	"time"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
)

// Assignment belongs to exactly one Course.
type Assignment struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueAt       time.Time `json:"due_date"`   // UTC
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

func (a *Assignment) IsOverdue() bool {
	return time.Now().UTC().After(a.DueAt)
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	CourseID    string    `json:"course_id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=3"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"due_date" validate:"required"`
}

func (na *NewAssignment) Validate() error {
	na.CourseID = core.CleanString(na.CourseID)
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return core.Validate.Struct(na)
}
