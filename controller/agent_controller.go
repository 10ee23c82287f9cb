package controller

import (
	"context"
	"errors"
	"net/http"

	"stockplatform/customerrors"
	"stockplatform/middleware"
	"stockplatform/model"
	"stockplatform/service"
	"stockplatform/validator"

	"github.com/danielgtaylor/huma/v2"
)

type AgentController struct {
	agentSvc service.AgentService
	// keySetting names the environment variable holding the LLM key.
	keySetting string
	configured bool
}

func NewAgentController(as service.AgentService, keySetting string, configured bool) *AgentController {
	return &AgentController{agentSvc: as, keySetting: keySetting, configured: configured}
}

func (ctrl *AgentController) RegisterRoutes(api huma.API) {
	keyMw := middleware.HumaRequireSetting(api, ctrl.configured, ctrl.keySetting)

	huma.Register(api, huma.Operation{
		OperationID: "agent-analysts",
		Method:      http.MethodGet,
		Path:        "/api/agent/analysts",
		Summary:     "List Analysts",
		Description: "Persona keys accepted by the analyze endpoint",
		Tags:        []string{"Agent"},
	}, ctrl.Analysts)

	huma.Register(api, huma.Operation{
		OperationID: "agent-ask",
		Method:      http.MethodPost,
		Path:        "/api/agent/ask",
		Summary:     "Ask the Agent",
		Description: "Single reply grounded on the ticker's live quote",
		Middlewares: huma.Middlewares{keyMw},
		Tags:        []string{"Agent"},
	}, ctrl.Ask)

	huma.Register(api, huma.Operation{
		OperationID: "agent-analyze",
		Method:      http.MethodPost,
		Path:        "/api/agent/analyze",
		Summary:     "Analyst Panel",
		Description: "One verdict per analyst persona; all personas when none are named",
		Middlewares: huma.Middlewares{keyMw},
		Tags:        []string{"Agent"},
	}, ctrl.Analyze)
}

func (ctrl *AgentController) Analysts(ctx context.Context, _ *struct{}) (*model.AnalystsOutput, error) {
	personas := ctrl.agentSvc.Personas()
	out := make([]model.AnalystInfo, 0, len(personas))
	for _, p := range personas {
		out = append(out, model.AnalystInfo{Key: p.Key, Name: p.Name, Style: p.Style})
	}
	return &model.AnalystsOutput{Body: out}, nil
}

func (ctrl *AgentController) Ask(ctx context.Context, input *model.AskInput) (*model.ChatOutput, error) {
	if err := validator.ValidateAsk(&input.Body); err != nil {
		return nil, humaError(err, input.Body.Ticker)
	}

	reply, err := ctrl.agentSvc.Ask(ctx, input.Body)
	if err != nil {
		return nil, ctrl.agentError(err, input.Body.Ticker)
	}
	return &model.ChatOutput{Body: *reply}, nil
}

func (ctrl *AgentController) Analyze(ctx context.Context, input *model.AnalyzeInput) (*model.AnalyzeOutput, error) {
	if err := validator.ValidateAnalyze(&input.Body); err != nil {
		return nil, humaError(err, input.Body.Ticker)
	}

	reports, err := ctrl.agentSvc.Analyze(ctx, input.Body)
	if err != nil {
		return nil, ctrl.agentError(err, input.Body.Ticker)
	}
	return &model.AnalyzeOutput{Body: reports}, nil
}

func (ctrl *AgentController) agentError(err error, ticker string) error {
	if errors.Is(err, customerrors.ErrMissingAPIKey) {
		return huma.Error500InternalServerError(ctrl.keySetting + " is not configured")
	}
	return humaError(err, ticker)
}
