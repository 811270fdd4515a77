package dummydb

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core/submission"
)

type submissionRepository struct {
	db *DB
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db}
}

func (repo *submissionRepository) query() []submission.Submission {
	subs := make([]submission.Submission, 0, len(repo.db.submission.table))
	for _, s := range repo.db.submission.table {
		subs = append(subs, *s)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.After(subs[j].CreatedAt) })
	return subs
}

func (repo *submissionRepository) CreateSubmission(sub submission.Submission) (submission.Submission, error) {
	repo.db.submission.Lock()
	defer repo.db.submission.Unlock()

	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	repo.db.submission.table[sub.ID] = &sub
	return sub, nil
}

func (repo *submissionRepository) GetSubmissionByID(id string) (submission.Submission, error) {
	repo.db.submission.RLock()
	defer repo.db.submission.RUnlock()

	if sub, ok := repo.db.submission.table[id]; ok {
		return *sub, nil
	}
	return submission.Submission{}, submission.ErrNotFound
}

func (repo *submissionRepository) QuerySubmissionsByStudent(studentID string) ([]submission.Submission, error) {
	repo.db.submission.RLock()
	defer repo.db.submission.RUnlock()

	var subs []submission.Submission
	for _, sub := range repo.query() {
		if sub.StudentID == studentID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (repo *submissionRepository) QuerySubmissionsByAssignment(assignmentID string) ([]submission.Submission, error) {
	repo.db.submission.RLock()
	defer repo.db.submission.RUnlock()

	var subs []submission.Submission
	for _, sub := range repo.query() {
		if sub.AssignmentID == assignmentID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (repo *submissionRepository) SetSubmissionFileURL(id, url string) (submission.Submission, error) {
	repo.db.submission.Lock()
	defer repo.db.submission.Unlock()

	sub, ok := repo.db.submission.table[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	sub.FileURL = null.StringFrom(url)
	sub.UpdatedAt = time.Now().UTC()
	return *sub, nil
}

func (repo *submissionRepository) GradeSubmission(id string, grade float64, feedback string, at time.Time) (submission.Submission, error) {
	repo.db.submission.Lock()
	defer repo.db.submission.Unlock()

	sub, ok := repo.db.submission.table[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	sub.Grade = null.Float64From(grade)
	sub.Feedback = null.NewString(feedback, feedback != "")
	sub.Status = submission.StatusGraded
	sub.UpdatedAt = at
	return *sub, nil
}

func (repo *submissionRepository) GetSubmissionOwner(id string) (submission.Owner, error) {
	sub, err := repo.GetSubmissionByID(id)
	if err != nil {
		return submission.Owner{}, err
	}

	repo.db.assignment.RLock()
	asg, ok := repo.db.assignment.table[sub.AssignmentID]
	repo.db.assignment.RUnlock()
	if !ok {
		return submission.Owner{}, submission.ErrNotFound
	}

	repo.db.course.RLock()
	crs, ok := repo.db.course.table[asg.CourseID]
	repo.db.course.RUnlock()
	if !ok {
		return submission.Owner{}, submission.ErrNotFound
	}

	return submission.Owner{LecturerID: crs.LecturerID}, nil
}
