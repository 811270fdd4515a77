package feedback

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
)

type completionStub struct {
	reply    string
	err      error
	calls    int
	messages []core.ChatMessage
}

func (c *completionStub) Complete(_ context.Context, messages ...core.ChatMessage) (string, error) {
	c.calls++
	c.messages = messages
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

type loggerStub struct{}

func (loggerStub) Enable(bool)                  {}
func (loggerStub) Debug(string, ...interface{}) {}
func (loggerStub) Info(string, ...interface{})  {}
func (loggerStub) Warn(string, ...interface{})  {}
func (loggerStub) Error(string, ...interface{}) {}
func (loggerStub) Fatal(string, ...interface{}) {}

func TestGenerateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerateRequest
		wantErr string
	}{
		{name: "valid", req: GenerateRequest{SubmissionContent: "This essay discusses X."}},
		{name: "valid with title", req: GenerateRequest{SubmissionContent: "ok content", AssignmentTitle: "Essay 1"}},
		{name: "missing content", req: GenerateRequest{}, wantErr: "No submission content provided"},
		{name: "whitespace content", req: GenerateRequest{SubmissionContent: " \n\t "}, wantErr: "No submission content provided"},
		{
			name:    "content too large",
			req:     GenerateRequest{SubmissionContent: strings.Repeat("a", MaxContentLen+1)},
			wantErr: "Content too large. Maximum 50,000 characters allowed.",
		},
		{
			name: "content at limit",
			req:  GenerateRequest{SubmissionContent: strings.Repeat("a", MaxContentLen)},
		},
		{
			name:    "title too long",
			req:     GenerateRequest{SubmissionContent: "ok", AssignmentTitle: strings.Repeat("t", MaxTitleLen+1)},
			wantErr: "Assignment title too long. Maximum 500 characters allowed.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.IsType(t, &core.ValidationError{}, errors.Cause(err))
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	msgs := Prompt("Essay: AI in Education", "content here")
	if assert.Len(t, msgs, 2) {
		assert.Equal(t, core.ChatRoleSystem, msgs[0].Role)
		assert.Contains(t, msgs[0].Content, "experienced university lecturer")
		assert.Equal(t, core.ChatRoleUser, msgs[1].Role)
		assert.Contains(t, msgs[1].Content, "Assignment: Essay: AI in Education")
		assert.Contains(t, msgs[1].Content, "content here")
		assert.Contains(t, msgs[1].Content, "1. Strengths of the submission")
		assert.Contains(t, msgs[1].Content, "4. Overall assessment")
	}

	// empty title falls back
	msgs = Prompt("", "content")
	assert.Contains(t, msgs[1].Content, "Assignment: Academic Submission")
}

func TestGenerate(t *testing.T) {
	t.Run("passes through generated text", func(t *testing.T) {
		ai := &completionStub{reply: "Great work overall."}
		svc := NewService(ai, loggerStub{})

		fb, err := svc.Generate(context.Background(), GenerateRequest{SubmissionContent: "essay"})
		assert.NoError(t, err)
		assert.Equal(t, "Great work overall.", fb)
		assert.Equal(t, 1, ai.calls)
	})

	t.Run("no caching between calls", func(t *testing.T) {
		ai := &completionStub{reply: "fb"}
		svc := NewService(ai, loggerStub{})

		req := GenerateRequest{SubmissionContent: "same input"}
		_, err1 := svc.Generate(context.Background(), req)
		_, err2 := svc.Generate(context.Background(), req)
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Equal(t, 2, ai.calls)
	})

	t.Run("propagates classified upstream errors", func(t *testing.T) {
		for _, wantErr := range []error{
			core.ErrAIRateLimited,
			core.ErrAIQuotaExhausted,
			core.ErrAINotConfigured,
			&core.AIGatewayError{Status: 503},
		} {
			ai := &completionStub{err: wantErr}
			svc := NewService(ai, loggerStub{})

			_, err := svc.Generate(context.Background(), GenerateRequest{SubmissionContent: "essay"})
			assert.Equal(t, wantErr, errors.Cause(err))
		}
	})
}
