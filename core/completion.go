package core

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Chat roles understood by the completion gateway.
const (
	ChatRoleSystem = "system"
	ChatRoleUser   = "user"
)

var (
	// ErrAIRateLimited and ErrAIQuotaExhausted carry the exact texts surfaced
	// to clients; the API layer maps them to 429 and 402 respectively.
	ErrAIRateLimited    = errors.New("Rate limit exceeded. Please try again in a moment.")
	ErrAIQuotaExhausted = errors.New("AI credits exhausted. Please add credits to continue.")

	// ErrAINotConfigured means the gateway API key is missing; clients only
	// ever see a generic server error for it.
	ErrAINotConfigured = errors.New("AI gateway API key is not configured")
)

type (
	ChatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	// CompletionService is any service that can turn a chat prompt into
	// generated text. One call, no internal retry; the caller decides
	// whether to try again.
	CompletionService interface {
		Complete(ctx context.Context, messages ...ChatMessage) (string, error)
	}
)

// AIGatewayError reports a non-success gateway response that is neither a
// rate limit nor a credit exhaustion. The body is for server-side logs only.
type AIGatewayError struct {
	Status int
	Body   string
}

func (e *AIGatewayError) Error() string {
	return fmt.Sprintf("AI gateway error: %d", e.Status)
}
