/* Copyright (c) 2026 Manivannan Senthilrajan
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
)

func NewRouter(cfg config.Config, log zerolog.Logger, svc boardService) *gin.Engine {
	if cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		c.Next()
		log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
	})

	h := NewHandlers(cfg, log, svc)

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	api.GET("/issues", h.ListIssues)
	api.GET("/filters", h.FilterValues)
	api.GET("/board", h.Board)
	api.GET("/hygiene", h.Hygiene)
	api.POST("/issues/:iid/quickfix", h.QuickFix)
	api.GET("/commentary", h.AllCommentary)
	api.GET("/commentary/:sprint", h.GetCommentary)
	api.PUT("/commentary/:sprint", h.PutCommentary)
	api.POST("/commentary/:sprint/draft", h.DraftCommentary)
	api.GET("/export/issues.xlsx", h.ExportIssuesXLSX)
	api.GET("/export/labels.csv", h.ExportLabelMatrixCSV)
	api.GET("/activity", h.Activity)

	r.POST("/admin/sync", h.SyncNow)
	r.GET("/admin/last-sync", h.LastSync)

	return r
}
