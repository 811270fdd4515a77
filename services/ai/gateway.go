package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
)

const maxErrBodyLen = 2 << 10 // gateway error bodies are logged, keep them short

type (
	completionRequest struct {
		Model    string             `json:"model"`
		Messages []core.ChatMessage `json:"messages"`
	}

	completionResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	gatewayService struct {
		conf   core.AIConfig
		client *http.Client
	}
)

var _ core.CompletionService = (*gatewayService)(nil)

// NewGatewayService returns a core.CompletionService backed by an
// OpenAI-compatible chat completions gateway. The credential comes in with
// the config; nothing is read from the environment per call.
func NewGatewayService(conf core.AIConfig) core.CompletionService {
	return &gatewayService{
		conf:   conf,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (svc *gatewayService) Complete(ctx context.Context, messages ...core.ChatMessage) (string, error) {
	if svc.conf.APIKey == "" {
		return "", core.ErrAINotConfigured
	}

	payload, err := json.Marshal(completionRequest{Model: svc.conf.Model, Messages: messages})
	if err != nil {
		return "", errors.Wrap(err, "marshalling completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.conf.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "building gateway request")
	}
	req.Header.Set("Authorization", "Bearer "+svc.conf.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling AI gateway")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		body, _ := ioutil.ReadAll(io.LimitReader(res.Body, maxErrBodyLen))
		switch res.StatusCode {
		case http.StatusTooManyRequests:
			return "", core.ErrAIRateLimited
		case http.StatusPaymentRequired:
			return "", core.ErrAIQuotaExhausted
		}
		return "", &core.AIGatewayError{Status: res.StatusCode, Body: string(body)}
	}

	var data completionResponse
	if err = json.NewDecoder(res.Body).Decode(&data); err != nil {
		return "", errors.Wrap(err, "decoding gateway response")
	}
	if len(data.Choices) == 0 {
		return "", errors.New("AI gateway returned no choices")
	}
	return data.Choices[0].Message.Content, nil
}
