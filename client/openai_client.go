package client

import (
	"context"
	"errors"
	"fmt"

	"stockplatform/customerrors"
	"stockplatform/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const openaiProvider = "openai"

type OpenAIOptions struct {
	BaseURL string
	APIKey  string
	Model   string
	Metrics *metrics.Metrics
}

// OpenAIClient wraps the go-openai chat completion API
type OpenAIClient struct {
	client  *openai.Client
	model   string
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Model == "" {
		opts.Model = openai.GPT4o
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   opts.Model,
		metrics: opts.Metrics,
		logger:  log.With().Str("component", "openai_client").Logger(),
	}
}

func (c *OpenAIClient) Provider() string {
	return openaiProvider
}

func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	text, err := c.complete(ctx, req)
	c.metrics.ObserveCompletion(openaiProvider, err)
	return text, err
}

func (c *OpenAIClient) complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:     c.model,
			MaxTokens: req.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: req.System,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: req.Prompt,
				},
			},
		},
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("OpenAI API error")
		status := 0
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.HTTPStatusCode
		}
		return "", customerrors.Upstream(openaiProvider, status, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn().Msg("OpenAI returned empty choices")
		return "", customerrors.Upstream(openaiProvider, 0, fmt.Errorf("empty completion"))
	}

	return resp.Choices[0].Message.Content, nil
}
