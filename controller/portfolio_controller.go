package controller

import (
	"context"
	"net/http"

	"stockplatform/model"
	"stockplatform/service"
	"stockplatform/validator"

	"github.com/danielgtaylor/huma/v2"
)

type PortfolioController struct {
	portfolioSvc service.PortfolioService
}

func NewPortfolioController(ps service.PortfolioService) *PortfolioController {
	return &PortfolioController{portfolioSvc: ps}
}

func (ctrl *PortfolioController) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-portfolio",
		Method:      http.MethodGet,
		Path:        "/api/portfolio",
		Summary:     "List Holdings",
		Description: "Returns every holding priced at the latest quote",
		Tags:        []string{"Portfolio"},
	}, ctrl.List)

	huma.Register(api, huma.Operation{
		OperationID: "portfolio-summary",
		Method:      http.MethodGet,
		Path:        "/api/portfolio/summary",
		Summary:     "Portfolio Summary",
		Description: "Totals, gain and allocation across all holdings",
		Tags:        []string{"Portfolio"},
	}, ctrl.Summary)

	huma.Register(api, huma.Operation{
		OperationID: "get-holding",
		Method:      http.MethodGet,
		Path:        "/api/portfolio/holdings/{ticker}",
		Summary:     "Get Holding",
		Tags:        []string{"Portfolio"},
	}, ctrl.Get)

	huma.Register(api, huma.Operation{
		OperationID:   "add-holding",
		Method:        http.MethodPost,
		Path:          "/api/portfolio/holdings",
		Summary:       "Add Holding",
		Description:   "Fails when the ticker is already held; use PUT to change it",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Portfolio"},
	}, ctrl.Add)

	huma.Register(api, huma.Operation{
		OperationID: "update-holding",
		Method:      http.MethodPut,
		Path:        "/api/portfolio/holdings/{ticker}",
		Summary:     "Update Holding",
		Tags:        []string{"Portfolio"},
	}, ctrl.Update)

	huma.Register(api, huma.Operation{
		OperationID: "delete-holding",
		Method:      http.MethodDelete,
		Path:        "/api/portfolio/holdings/{ticker}",
		Summary:     "Delete Holding",
		Tags:        []string{"Portfolio"},
	}, ctrl.Delete)
}

func (ctrl *PortfolioController) List(ctx context.Context, _ *struct{}) (*model.PortfolioOutput, error) {
	portfolio, err := ctrl.portfolioSvc.List(ctx)
	if err != nil {
		return nil, humaError(err, "")
	}
	return &model.PortfolioOutput{Body: *portfolio}, nil
}

func (ctrl *PortfolioController) Summary(ctx context.Context, _ *struct{}) (*model.PortfolioSummaryOutput, error) {
	summary, err := ctrl.portfolioSvc.Summary(ctx)
	if err != nil {
		return nil, humaError(err, "")
	}
	return &model.PortfolioSummaryOutput{Body: *summary}, nil
}

func (ctrl *PortfolioController) Get(ctx context.Context, input *model.TickerInput) (*model.HoldingOutput, error) {
	holding, err := ctrl.portfolioSvc.Get(ctx, input.Ticker)
	if err != nil {
		return nil, humaError(err, input.Ticker)
	}
	return &model.HoldingOutput{Body: *holding}, nil
}

func (ctrl *PortfolioController) Add(ctx context.Context, input *model.AddHoldingInput) (*model.StatusOutput, error) {
	if err := validator.ValidateAddHolding(&input.Body); err != nil {
		return nil, humaError(err, input.Body.Ticker)
	}
	if err := ctrl.portfolioSvc.Add(ctx, input.Body); err != nil {
		return nil, humaError(err, input.Body.Ticker)
	}
	return model.OkStatus(), nil
}

func (ctrl *PortfolioController) Update(ctx context.Context, input *model.UpdateHoldingInput) (*model.StatusOutput, error) {
	if err := validator.ValidateUpdateHolding(&input.Body); err != nil {
		return nil, humaError(err, input.Ticker)
	}
	if err := ctrl.portfolioSvc.Update(ctx, input.Ticker, input.Body); err != nil {
		return nil, humaError(err, input.Ticker)
	}
	return model.OkStatus(), nil
}

func (ctrl *PortfolioController) Delete(ctx context.Context, input *model.TickerInput) (*model.StatusOutput, error) {
	if err := ctrl.portfolioSvc.Delete(ctx, input.Ticker); err != nil {
		return nil, humaError(err, input.Ticker)
	}
	return model.OkStatus(), nil
}
