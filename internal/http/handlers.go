/* Copyright (c) 2026 Manivannan Senthilrajan
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
	"github.com/ManivannanSenthilrajan/issueboard/internal/export"
	"github.com/ManivannanSenthilrajan/issueboard/internal/service"
)

type boardService interface {
	Sync(ctx context.Context) (int, error)
	Issues(f domain.IssueFilter) []domain.Issue
	FilterValues() map[string][]string
	Board(f domain.IssueFilter) []domain.Swimlane
	Hygiene(f domain.IssueFilter) domain.HygieneReport
	ApplyQuickFix(ctx context.Context, user string, iid int64, fix domain.QuickFix) (*domain.Issue, error)
	Commentary(sprint string) (map[string]string, error)
	AllCommentary() (map[string]map[string]string, error)
	SaveCommentary(user, sprint string, fields map[string]string) error
	DraftCommentary(ctx context.Context, sprint string) (map[string]string, error)
	Activity(user string) ([]domain.ActivityEntry, error)
	RecordView(user, action, details string)
	LastSync(ctx context.Context) (any, error)
}

type Handlers struct {
	cfg config.Config
	log zerolog.Logger
	svc boardService
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc boardService) *Handlers {
	return &Handlers{cfg: cfg, log: log, svc: svc}
}

func filterFrom(c *gin.Context) domain.IssueFilter {
	return domain.IssueFilter{
		State:      c.Query("state"),
		Team:       c.Query("team"),
		Status:     c.Query("status"),
		Sprint:     c.Query("sprint"),
		Workstream: c.Query("workstream"),
		Project:    c.Query("project"),
		Search:     c.Query("search"),
	}
}

func userFrom(c *gin.Context) string {
	if u := c.GetHeader("X-User"); u != "" { return u }
	return "anonymous"
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) ListIssues(c *gin.Context) {
	issues := h.svc.Issues(filterFrom(c))
	c.JSON(http.StatusOK, gin.H{"count": len(issues), "issues": issues})
}

func (h *Handlers) FilterValues(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.FilterValues())
}

func (h *Handlers) Board(c *gin.Context) {
	h.svc.RecordView(userFrom(c), "Viewed board", c.Request.URL.RawQuery)
	c.JSON(http.StatusOK, gin.H{"swimlanes": h.svc.Board(filterFrom(c))})
}

func (h *Handlers) Hygiene(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Hygiene(filterFrom(c)))
}

func (h *Handlers) QuickFix(c *gin.Context) {
	iid, err := strconv.ParseInt(c.Param("iid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad iid"})
		return
	}
	var fix domain.QuickFix
	if err := c.ShouldBindJSON(&fix); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fresh, err := h.svc.ApplyQuickFix(c.Request.Context(), userFrom(c), iid, fix)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, service.ErrUnknownField) { status = http.StatusBadRequest }
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fresh)
}

func (h *Handlers) GetCommentary(c *gin.Context) {
	fields, err := h.svc.Commentary(c.Param("sprint"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sprint": c.Param("sprint"), "fields": fields})
}

func (h *Handlers) AllCommentary(c *gin.Context) {
	all, err := h.svc.AllCommentary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, all)
}

func (h *Handlers) PutCommentary(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.SaveCommentary(userFrom(c), c.Param("sprint"), fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *Handlers) DraftCommentary(c *gin.Context) {
	draft, err := h.svc.DraftCommentary(c.Request.Context(), c.Param("sprint"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sprint": c.Param("sprint"), "draft": draft})
}

func (h *Handlers) ExportIssuesXLSX(c *gin.Context) {
	data, err := export.IssuesXLSX(h.svc.Issues(filterFrom(c)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.svc.RecordView(userFrom(c), "Exported issues", "xlsx")
	c.Header("Content-Disposition", `attachment; filename="issues.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handlers) ExportLabelMatrixCSV(c *gin.Context) {
	data, err := export.LabelMatrixCSV(h.svc.Issues(filterFrom(c)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="label_matrix.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *Handlers) Activity(c *gin.Context) {
	entries, err := h.svc.Activity(c.Query("user"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if c.Query("format") == "csv" {
		data, err := export.ActivityCSV(entries)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="activity.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *Handlers) SyncNow(c *gin.Context) {
	// Run detached from the request so a slow fetch is not cancelled with it
	go func() {
		if _, err := h.svc.Sync(context.Background()); err != nil {
			h.log.Error().Err(err).Msg("manual sync failed")
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (h *Handlers) LastSync(c *gin.Context) {
	ls, err := h.svc.LastSync(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ls)
}
