package submission

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
)

// Statuses
const (
	StatusSubmitted = "submitted"
	StatusGraded    = "graded"
)

// Document upload constraints
const (
	MaxDocumentSize = 10 << 20 // 10MB
)

var allowedDocumentExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Submission belongs to exactly one Assignment and one student. Grade, when
// present, is in [0,100]; feedback is capped at 5000 characters.
type Submission struct {
	ID           string       `json:"id"`
	AssignmentID string       `json:"assignment_id"`
	StudentID    string       `json:"student_id"`
	Content      string       `json:"content"`
	FileURL      null.String  `json:"file_url,omitempty"`
	Grade        null.Float64 `json:"grade,omitempty"`
	Feedback     null.String  `json:"feedback,omitempty"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"created_at"` // UTC
	UpdatedAt    time.Time    `json:"updated_at"` // UTC
}

func (s *Submission) IsGraded() bool {
	return s.Status == StatusGraded
}

// Owner is the normalized result of the ownership-chain lookup
// Submission -> Assignment -> Course -> lecturer. Repositories must collapse
// any collection-shaped join results into this single optional row.
type Owner struct {
	LecturerID string
}

// NewSubmission contains information needed to submit coursework.
type NewSubmission struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	Content      string `json:"content" validate:"required"`
}

func (ns *NewSubmission) Validate() error {
	ns.AssignmentID = core.CleanString(ns.AssignmentID)
	ns.Content = strings.TrimSpace(ns.Content)
	return core.Validate.Struct(ns)
}

// GradeSubmission defines what an owning lecturer may record on a Submission.
type GradeSubmission struct {
	Grade    *float64 `json:"grade" validate:"required,gte=0,lte=100"`
	Feedback string   `json:"feedback" validate:"omitempty,max=5000"`
}

func (gs *GradeSubmission) Validate() error {
	gs.Feedback = strings.TrimSpace(gs.Feedback)
	return core.Validate.Struct(gs)
}

// ValidDocumentName reports whether the uploaded document name carries an
// accepted extension (pdf, doc, docx).
func ValidDocumentName(name string) bool {
	return allowedDocumentExts[strings.ToLower(filepath.Ext(name))]
}
