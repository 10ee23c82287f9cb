package controller

import (
	"net/http"

	"stockplatform/model"
	"stockplatform/service"

	"github.com/gin-gonic/gin"
)

type MarketController struct {
	marketSvc    service.MarketService
	indicatorSvc service.IndicatorService
}

func NewMarketController(ms service.MarketService, is service.IndicatorService) *MarketController {
	return &MarketController{
		marketSvc:    ms,
		indicatorSvc: is,
	}
}

func (ctrl *MarketController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/quote/:symbol", ctrl.getQuote)
	router.GET("/ohlc/:symbol", ctrl.getOHLC)
	router.GET("/indicators/:symbol", ctrl.getIndicators)
}

func (ctrl *MarketController) getQuote(c *gin.Context) {
	var uri model.SymbolUri
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	quote, err := ctrl.marketSvc.GetQuote(c.Request.Context(), uri.Symbol)
	if err != nil {
		abortWithError(c, err, uri.Symbol)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// getOHLC answers ?range=1D|1W|1M|3M|6M|1Y|5Y|MAX; anything else is 1M.
func (ctrl *MarketController) getOHLC(c *gin.Context) {
	var uri model.SymbolUri
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	var query model.RangeQuery
	_ = c.ShouldBindQuery(&query)

	ohlc, err := ctrl.marketSvc.GetOHLC(c.Request.Context(), uri.Symbol, query.Range)
	if err != nil {
		abortWithError(c, err, uri.Symbol)
		return
	}
	c.JSON(http.StatusOK, ohlc)
}

func (ctrl *MarketController) getIndicators(c *gin.Context) {
	var uri model.SymbolUri
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	var query model.RangeQuery
	_ = c.ShouldBindQuery(&query)

	series, err := ctrl.indicatorSvc.GetIndicators(c.Request.Context(), uri.Symbol, query.Range, query.Indicators)
	if err != nil {
		abortWithError(c, err, uri.Symbol)
		return
	}
	c.JSON(http.StatusOK, series)
}
