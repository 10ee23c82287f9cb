package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockplatform/customerrors"
	"stockplatform/metrics"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	anthropicProvider     = "anthropic"
	anthropicBaseURL      = "https://api.anthropic.com"
	anthropicVersion      = "2023-06-01"
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

type AnthropicOptions struct {
	BaseURL string
	APIKey  string
	Model   string
	Limiter *rate.Limiter
	Metrics *metrics.Metrics
}

type AnthropicClient struct {
	client  *resty.Client
	model   string
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewAnthropicClient(opts AnthropicOptions) *AnthropicClient {
	if opts.BaseURL == "" {
		opts.BaseURL = anthropicBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultAnthropicModel
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(90*time.Second).
		SetHeader("x-api-key", opts.APIKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("Content-Type", "application/json")

	instrument(client, anthropicProvider, opts.Limiter, opts.Metrics)

	return &AnthropicClient{
		client:  client,
		model:   opts.Model,
		metrics: opts.Metrics,
		logger:  log.With().Str("component", "anthropic_client").Logger(),
	}
}

func (a *AnthropicClient) Provider() string {
	return anthropicProvider
}

func (a *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	text, err := a.complete(ctx, req)
	a.metrics.ObserveCompletion(anthropicProvider, err)
	return text, err
}

func (a *AnthropicClient) complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := anthropicRequest{
		Model:     a.model,
		MaxTokens: req.MaxTokens,
		System:    req.System,
		Messages:  []anthropicMessage{{Role: "user", Content: req.Prompt}},
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/messages")
	if err != nil {
		return "", customerrors.Upstream(anthropicProvider, 0, err)
	}
	if !resp.IsSuccess() {
		var apiErr anthropicError
		_ = json.Unmarshal(resp.Body(), &apiErr)
		a.logger.Warn().Int("status", resp.StatusCode()).Str("type", apiErr.Error.Type).Msg("Messages API error")
		var cause error
		if apiErr.Error.Message != "" {
			cause = errors.New(apiErr.Error.Message)
		}
		return "", customerrors.Upstream(anthropicProvider, resp.StatusCode(), cause)
	}

	var out anthropicResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", customerrors.Upstream(anthropicProvider, resp.StatusCode(), fmt.Errorf("decode message: %w", err))
	}

	var sb strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", customerrors.Upstream(anthropicProvider, resp.StatusCode(), fmt.Errorf("empty completion (stop reason %q)", out.StopReason))
	}
	return sb.String(), nil
}
