package controller

import (
	"errors"
	"net/http"

	"stockplatform/customerrors"
	"stockplatform/middleware"
	"stockplatform/model"
	"stockplatform/service"
	"stockplatform/util"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// errorStatus maps a service error onto the HTTP status it is answered with.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, customerrors.ErrSymbolNotFound),
		errors.Is(err, customerrors.ErrNoData),
		errors.Is(err, customerrors.ErrHoldingNotFound):
		return http.StatusNotFound
	case errors.Is(err, customerrors.ErrInvalidStatement),
		errors.Is(err, customerrors.ErrInvalidPeriod),
		errors.Is(err, customerrors.ErrHoldingExists),
		errors.Is(err, customerrors.ErrInvalidRequest):
		return http.StatusBadRequest
	case customerrors.IsUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the caller-facing text for err. Internal failures are not
// echoed back.
func errorMessage(err error, symbol string) string {
	var de *customerrors.DetailError
	if errors.As(err, &de) {
		return de.Detail
	}

	symbol = util.NormalizeTicker(symbol)
	switch {
	case errors.Is(err, customerrors.ErrSymbolNotFound):
		return "Symbol " + symbol + " not found"
	case errors.Is(err, customerrors.ErrNoData):
		return "No data for " + symbol
	case errors.Is(err, customerrors.ErrInvalidStatement):
		return "Invalid statement type. Use: income, balance, cashflow"
	case errors.Is(err, customerrors.ErrInvalidPeriod):
		return "Invalid period. Use: annual, quarterly"
	case customerrors.IsUpstream(err):
		return "Upstream data provider failed"
	default:
		return "Something went wrong"
	}
}

func abortWithError(c *gin.Context, err error, symbol string) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Str("symbol", symbol).Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, model.Response{Success: false, Error: errorMessage(err, symbol)})
}

// writeResult answers a listing endpoint. The payload is always sent with
// 200; the data status header tells real data apart from a fallback.
func writeResult[T any](c *gin.Context, res service.Result[T]) {
	c.Header(middleware.DataStatusHeader, string(res.Status))
	c.JSON(http.StatusOK, res.Data)
}

// humaError converts a service error into huma's problem response.
func humaError(err error, ticker string) error {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("ticker", ticker).Msg("Operation failed")
	}
	return huma.NewError(status, errorMessage(err, ticker))
}

// NewResponse creates a success response with the given data and message.
func NewResponse(data any, message string) *model.DefaultResponse {
	return &model.DefaultResponse{
		Body: model.Response{
			Success: true,
			Message: message,
			Data:    data,
		},
	}
}
