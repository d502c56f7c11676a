// Package server публикует инструменты расчета через HTTP API на gin.
package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cloud-ru/deposit-fund-compare-go/internal/funddata"
	"github.com/cloud-ru/deposit-fund-compare-go/internal/tools"
)

// Server связывает HTTP-маршруты с инструментами и справочником фондов
type Server struct {
	tools  map[string]tools.ToolHandler
	store  *funddata.Store
	logger *zap.Logger
}

func New(registry map[string]tools.ToolHandler, store *funddata.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{tools: registry, store: store, logger: logger}
}

// Router собирает gin.Engine со всеми маршрутами и middleware
func (s *Server) Router() *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(RequestLogging(s.logger), Recovery(s.logger))

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.GET("/tools", s.listTools)
	api.POST("/tools/:name", s.callTool)

	api.POST("/fixed-income", s.fixedIncome)
	api.POST("/fund", s.fund)
	api.POST("/growth", s.growth)
	api.POST("/compare", s.compare)
	api.POST("/funds/compare", s.compareFunds)
	api.GET("/funds", s.listFunds)
	api.POST("/funds/refresh", s.refreshFunds)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": tools.List()})
}

// callTool вызывает инструмент по имени с произвольными JSON-параметрами
func (s *Server) callTool(c *gin.Context) {
	name := c.Param("name")
	if _, ok := s.tools[name]; !ok {
		s.respondWithError(c, withMessage(ErrUnknownTool, "Неизвестный инструмент: "+name))
		return
	}

	params := map[string]interface{}{}
	if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
		s.respondWithError(c, withMessage(ErrInvalidInput, err.Error()))
		return
	}

	s.run(c, name, params)
}

func (s *Server) fixedIncome(c *gin.Context) {
	var req FixedIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, withMessage(ErrInvalidInput, err.Error()))
		return
	}
	s.run(c, tools.ToolFixedIncomeReturn, req.params())
}

func (s *Server) fund(c *gin.Context) {
	var req FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, withMessage(ErrInvalidInput, err.Error()))
		return
	}
	s.run(c, tools.ToolFundReturn, req.params())
}

func (s *Server) growth(c *gin.Context) {
	var req GrowthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, withMessage(ErrInvalidInput, err.Error()))
		return
	}
	s.run(c, tools.ToolGrowthSimulation, req.params())
}

func (s *Server) compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, withMessage(ErrInvalidInput, err.Error()))
		return
	}
	s.run(c, tools.ToolCompareInstruments, req.params())
}

func (s *Server) compareFunds(c *gin.Context) {
	var req CompareFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, withMessage(ErrInvalidInput, err.Error()))
		return
	}
	s.run(c, tools.ToolCompareFunds, req.params())
}

func (s *Server) listFunds(c *gin.Context) {
	var q ListFundsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.respondWithError(c, withMessage(ErrInvalidInput, err.Error()))
		return
	}
	s.run(c, tools.ToolListFunds, map[string]interface{}{"top": q.Top})
}

// refreshFunds перечитывает справочник фондов в обход кэша
func (s *Server) refreshFunds(c *gin.Context) {
	ds, err := s.store.Refresh(c.Request.Context())
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": ds.Len(), "codes": ds.Codes()})
}

func (s *Server) run(c *gin.Context, name string, params map[string]interface{}) {
	handler, ok := s.tools[name]
	if !ok {
		s.respondWithError(c, withMessage(ErrUnknownTool, "Неизвестный инструмент: "+name))
		return
	}

	result, err := handler(c.Request.Context(), params)
	if err != nil {
		s.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondWithError пишет ошибку в едином формате; внутренние детали только в лог
func (s *Server) respondWithError(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Internal != nil {
		s.logger.Error("request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("code", appErr.Code),
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr.Internal),
		)
	}
	c.JSON(appErr.StatusCode, errorBody(appErr))
}
