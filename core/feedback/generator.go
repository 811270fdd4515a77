package feedback

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
)

// Input bounds enforced before the paid gateway call.
const (
	MaxContentLen = 50000
	MaxTitleLen   = 500
)

const (
	defaultTitle = "Academic Submission"

	systemPrompt = "You are an experienced university lecturer providing constructive feedback on student submissions. " +
		"Analyze the content thoroughly and provide balanced feedback that highlights strengths and areas for improvement."

	userPromptFmt = `Assignment: %s

Student Submission:
%s

Please provide detailed feedback covering:
1. Strengths of the submission
2. Areas that need improvement
3. Specific suggestions for enhancement
4. Overall assessment

Keep the feedback professional, constructive, and encouraging.`
)

var (
	errNoContent     = errors.New("No submission content provided")
	errContentTooBig = errors.Errorf("Content too large. Maximum %d,000 characters allowed.", MaxContentLen/1000)
	errTitleTooLong  = errors.Errorf("Assignment title too long. Maximum %d characters allowed.", MaxTitleLen)
)

// GenerateRequest is the untrusted payload of the feedback-generation call.
// SubmissionID only drives the ownership check; it is never sent upstream.
type GenerateRequest struct {
	SubmissionContent string `json:"submissionContent"`
	AssignmentTitle   string `json:"assignmentTitle,omitempty"`
	SubmissionID      string `json:"submissionId,omitempty"`
}

// Validate bounds the payload. Pure: no I/O, deterministic.
func (r *GenerateRequest) Validate() error {
	r.SubmissionContent = strings.TrimSpace(r.SubmissionContent)
	r.AssignmentTitle = core.CleanString(r.AssignmentTitle)
	r.SubmissionID = core.CleanString(r.SubmissionID)

	if r.SubmissionContent == "" {
		return core.NewValidationError(errNoContent)
	}
	if utf8.RuneCountInString(r.SubmissionContent) > MaxContentLen {
		return core.NewValidationError(errContentTooBig)
	}
	if utf8.RuneCountInString(r.AssignmentTitle) > MaxTitleLen {
		return core.NewValidationError(errTitleTooLong)
	}
	return nil
}

type (
	// Service turns a validated GenerateRequest into generated feedback text.
	// One synchronous gateway call per request, no caching, no retry.
	Service interface {
		Generate(ctx context.Context, req GenerateRequest) (string, error)
	}

	service struct {
		ai     core.CompletionService
		logger core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(ai core.CompletionService, logger core.Logger) Service {
	return &service{ai: ai, logger: logger}
}

func (svc *service) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	fb, err := svc.ai.Complete(ctx, Prompt(req.AssignmentTitle, req.SubmissionContent)...)
	if err != nil {
		// diagnostic detail stays server-side; the API layer maps the error
		// kind to the client contract
		svc.logger.Error("generating feedback", errors.Wrap(err, "generating feedback"))
		return "", err
	}
	return fb, nil
}

// Prompt composes the fixed two-message instruction for the completion
// gateway. An empty title falls back to a generic one.
func Prompt(title, content string) []core.ChatMessage {
	if title == "" {
		title = defaultTitle
	}
	return []core.ChatMessage{
		{Role: core.ChatRoleSystem, Content: systemPrompt},
		{Role: core.ChatRoleUser, Content: fmt.Sprintf(userPromptFmt, title, content)},
	}
}
