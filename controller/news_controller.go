package controller

import (
	"stockplatform/service"

	"github.com/gin-gonic/gin"
)

type NewsController struct {
	newsSvc service.NewsService
}

func NewNewsController(ns service.NewsService) *NewsController {
	return &NewsController{newsSvc: ns}
}

func (ctrl *NewsController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/news/:symbol", ctrl.getNews)
}

func (ctrl *NewsController) getNews(c *gin.Context) {
	writeResult(c, ctrl.newsSvc.News(c.Request.Context(), c.Param("symbol")))
}
