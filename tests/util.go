package testutil

import (
	"testing"
	"time"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/assignment"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/course"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/submission"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	code, title, lecturerID string,
) course.Course {
	now := time.Now().UTC()
	crs := course.Course{
		Code:       code,
		Title:      title,
		LecturerID: lecturerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	crs, err := repo.CreateCourse(crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	courseID, title string,
	dueAt time.Time,
) assignment.Assignment {
	now := time.Now().UTC()
	asg := assignment.Assignment{
		CourseID:  courseID,
		Title:     title,
		DueAt:     dueAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	asg, err := repo.CreateAssignment(asg)
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return asg
}

func CreateSubmission(
	t *testing.T,
	repo submission.Repository,
	assignmentID, studentID, content string,
) submission.Submission {
	now := time.Now().UTC()
	sub := submission.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      content,
		Status:       submission.StatusSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	sub, err := repo.CreateSubmission(sub)
	if err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return sub
}
