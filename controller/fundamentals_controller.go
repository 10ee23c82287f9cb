package controller

import (
	"net/http"

	"stockplatform/model"
	"stockplatform/service"

	"github.com/gin-gonic/gin"
)

type FundamentalsController struct {
	fundamentalsSvc service.FundamentalsService
	filingsSvc      service.FilingsService
}

func NewFundamentalsController(fs service.FundamentalsService, sec service.FilingsService) *FundamentalsController {
	return &FundamentalsController{
		fundamentalsSvc: fs,
		filingsSvc:      sec,
	}
}

func (ctrl *FundamentalsController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/fundamentals/:symbol")
	{
		group.GET("/overview", ctrl.getOverview)
		group.GET("/financials", ctrl.getFinancials)
		group.GET("/earnings", ctrl.getEarnings)
		group.GET("/recommendations", ctrl.getRecommendations)
		group.GET("/sec-filings", ctrl.getSecFilings)
		group.GET("/sec-financials", ctrl.getSecFinancials)
	}
}

func (ctrl *FundamentalsController) getOverview(c *gin.Context) {
	symbol := c.Param("symbol")

	overview, err := ctrl.fundamentalsSvc.Overview(c.Request.Context(), symbol)
	if err != nil {
		abortWithError(c, err, symbol)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// getFinancials answers ?statement=income|balance|cashflow&period=annual|quarterly.
func (ctrl *FundamentalsController) getFinancials(c *gin.Context) {
	symbol := c.Param("symbol")
	var query model.FinancialsQuery
	_ = c.ShouldBindQuery(&query)
	if query.Statement == "" {
		query.Statement = "income"
	}

	data, err := ctrl.fundamentalsSvc.Financials(c.Request.Context(), symbol, query.Statement, query.Period)
	if err != nil {
		abortWithError(c, err, symbol)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (ctrl *FundamentalsController) getEarnings(c *gin.Context) {
	writeResult(c, ctrl.fundamentalsSvc.Earnings(c.Request.Context(), c.Param("symbol")))
}

func (ctrl *FundamentalsController) getRecommendations(c *gin.Context) {
	writeResult(c, ctrl.fundamentalsSvc.Recommendations(c.Request.Context(), c.Param("symbol")))
}

func (ctrl *FundamentalsController) getSecFilings(c *gin.Context) {
	writeResult(c, ctrl.filingsSvc.SecFilings(c.Request.Context(), c.Param("symbol")))
}

func (ctrl *FundamentalsController) getSecFinancials(c *gin.Context) {
	symbol := c.Param("symbol")
	period, err := service.ResolvePeriod(c.Query("period"))
	if err != nil {
		abortWithError(c, err, symbol)
		return
	}
	writeResult(c, ctrl.filingsSvc.SecFinancials(c.Request.Context(), symbol, period))
}
