/* Copyright (c) 2026 Manivannan Senthilrajan
 * SPDX-License-Identifier: BSD-3-Clause */
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
	"github.com/ManivannanSenthilrajan/issueboard/internal/labels"
	"github.com/ManivannanSenthilrajan/issueboard/internal/repo"
	"github.com/ManivannanSenthilrajan/issueboard/internal/store"
)

var ErrUnknownField = errors.New("unknown quick-fix field")

// tracker is the slice of the GitLab client the service needs.
type tracker interface {
	ListIssues(ctx context.Context) ([]domain.Issue, error)
	GetIssue(ctx context.Context, iid int64) (*domain.Issue, error)
	UpdateIssue(ctx context.Context, iid int64, updates map[string]any) (*domain.Issue, error)
}

type drafter interface {
	Enabled() bool
	DraftSprintReport(ctx context.Context, sprint string, issues []domain.Issue, fields []string) (map[string]string, error)
}

type Service struct {
	cfg        config.Config
	log        zerolog.Logger
	gl         tracker
	repo       *repo.Repository // nil when no DB_DSN is configured
	commentary *store.Commentary
	activity   *store.Activity
	llm        drafter

	mu       sync.RWMutex
	issues   []domain.Issue
	lastSync time.Time
}

func New(cfg config.Config, log zerolog.Logger, gl tracker, r *repo.Repository, c *store.Commentary, a *store.Activity, llm drafter) *Service {
	return &Service{cfg: cfg, log: log, gl: gl, repo: r, commentary: c, activity: a, llm: llm}
}

// Sync refetches the full issue list and swaps the in-memory snapshot. The
// previous snapshot survives any failure.
func (s *Service) Sync(ctx context.Context) (int, error) {
	var runID int64
	if s.repo != nil {
		id, err := s.repo.StartSyncRun(ctx)
		if err != nil { s.log.Error().Err(err).Msg("start sync run failed") }
		runID = id
	}
	issues, err := s.gl.ListIssues(ctx)
	if s.repo != nil && runID != 0 {
		errStr := ""
		if err != nil { errStr = err.Error() }
		if ferr := s.repo.FinishSyncRun(ctx, runID, len(issues), err == nil, errStr); ferr != nil {
			s.log.Error().Err(ferr).Msg("finish sync run failed")
		}
	}
	if err != nil { return 0, err }

	s.mu.Lock()
	s.issues = issues
	s.lastSync = time.Now()
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.UpsertIssues(ctx, issues); err != nil {
			s.log.Error().Err(err).Msg("issue snapshot upsert failed")
		}
	}
	s.log.Info().Int("issues", len(issues)).Msg("sync complete")
	return len(issues), nil
}

func matches(i domain.Issue, f domain.IssueFilter) bool {
	if f.State != "" && i.State != f.State { return false }
	if f.Team != "" && i.Fields.Team != f.Team { return false }
	if f.Status != "" && i.Fields.Status != f.Status { return false }
	if f.Sprint != "" && i.Fields.Sprint != f.Sprint { return false }
	if f.Workstream != "" && i.Fields.Workstream != f.Workstream { return false }
	if f.Project != "" && i.Fields.Project != f.Project { return false }
	if f.Search != "" && !strings.Contains(strings.ToLower(i.Title), strings.ToLower(f.Search)) { return false }
	return true
}

// Issues returns the filtered snapshot in fetch order.
func (s *Service) Issues(f domain.IssueFilter) []domain.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Issue, 0, len(s.issues))
	for _, i := range s.issues {
		if matches(i, f) { out = append(out, i) }
	}
	return out
}

// FilterValues lists the distinct values present for each structured column,
// feeding the sidebar dropdowns.
func (s *Service) FilterValues() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string][]string{}
	for _, k := range labels.Keys {
		vals := lo.Uniq(lo.FilterMap(s.issues, func(i domain.Issue, _ int) (string, bool) {
			v := labels.Value(i.Fields, k)
			return v, v != ""
		}))
		sort.Strings(vals)
		out[k] = vals
	}
	return out
}

// Board groups the filtered issues into sprint swimlanes with one column per
// team; cards are keyed by Status label, falling back to the issue state.
func (s *Service) Board(f domain.IssueFilter) []domain.Swimlane {
	issues := s.Issues(f)

	const unassigned = "(unassigned)"
	bySprint := map[string]map[string]map[string][]domain.Card{}
	for _, i := range issues {
		sprint := i.Fields.Sprint
		if sprint == "" { sprint = unassigned }
		team := i.Fields.Team
		if team == "" { team = unassigned }
		status := i.Fields.Status
		if status == "" { status = i.State }
		if bySprint[sprint] == nil { bySprint[sprint] = map[string]map[string][]domain.Card{} }
		if bySprint[sprint][team] == nil { bySprint[sprint][team] = map[string][]domain.Card{} }
		bySprint[sprint][team][status] = append(bySprint[sprint][team][status],
			domain.Card{IID: i.IID, Title: i.Title, State: i.State, WebURL: i.WebURL})
	}

	sprints := lo.Keys(bySprint)
	sort.Strings(sprints)
	lanes := make([]domain.Swimlane, 0, len(sprints))
	for _, sp := range sprints {
		teams := lo.Keys(bySprint[sp])
		sort.Strings(teams)
		lane := domain.Swimlane{Sprint: sp}
		for _, tm := range teams {
			lane.Columns = append(lane.Columns, domain.BoardColumn{Team: tm, Cards: bySprint[sp][tm]})
		}
		lanes = append(lanes, lane)
	}
	return lanes
}

// Hygiene reports issues missing one or more structured fields.
func (s *Service) Hygiene(f domain.IssueFilter) domain.HygieneReport {
	issues := s.Issues(f)
	rep := domain.HygieneReport{Total: len(issues), MissingBy: map[string]int{}}
	for _, i := range issues {
		missing := labels.Missing(i.Fields)
		if len(missing) == 0 {
			rep.Clean++
			continue
		}
		for _, k := range missing { rep.MissingBy[k]++ }
		rep.Rows = append(rep.Rows, domain.HygieneRow{IID: i.IID, Title: i.Title, Missing: missing})
	}
	return rep
}

// ApplyQuickFix edits one field through the tracker API and refreshes the
// edited issue from a fresh fetch. On any failure the snapshot is unchanged.
func (s *Service) ApplyQuickFix(ctx context.Context, user string, iid int64, fix domain.QuickFix) (*domain.Issue, error) {
	// copy under the lock; a pointer into the slice would race a concurrent
	// snapshot write once the lock is released
	s.mu.RLock()
	var cur domain.Issue
	found := false
	for n := range s.issues {
		if s.issues[n].IID == iid {
			cur = s.issues[n]
			found = true
			break
		}
	}
	s.mu.RUnlock()
	if !found { return nil, fmt.Errorf("issue %d not in snapshot", iid) }

	updates := map[string]any{}
	switch {
	case fix.Field == "title":
		updates["title"] = fix.Value
	case fix.Field == "state":
		if fix.Value == "closed" { updates["state_event"] = "close" } else { updates["state_event"] = "reopen" }
	case labels.IsKey(fix.Field):
		updates["labels"] = strings.Join(labels.Set(cur.Labels, fix.Field, fix.Value), ",")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, fix.Field)
	}

	if _, err := s.gl.UpdateIssue(ctx, iid, updates); err != nil {
		s.log.Error().Err(err).Int64("iid", iid).Str("field", fix.Field).Msg("quick fix update failed")
		return nil, err
	}
	fresh, err := s.gl.GetIssue(ctx, iid)
	if err != nil {
		s.log.Error().Err(err).Int64("iid", iid).Msg("quick fix refetch failed")
		return nil, err
	}

	s.mu.Lock()
	for n := range s.issues {
		if s.issues[n].IID == iid {
			s.issues[n] = *fresh
			break
		}
	}
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.UpsertIssues(ctx, []domain.Issue{*fresh}); err != nil {
			s.log.Error().Err(err).Msg("issue snapshot upsert failed")
		}
	}
	s.logActivity(user, "Quick fix", fmt.Sprintf("#%d %s -> %s", iid, fix.Field, fix.Value))
	return fresh, nil
}

// Commentary

func (s *Service) Commentary(sprint string) (map[string]string, error) { return s.commentary.Sprint(sprint) }

func (s *Service) AllCommentary() (map[string]map[string]string, error) { return s.commentary.Load() }

func (s *Service) SaveCommentary(user, sprint string, fields map[string]string) error {
	if err := s.commentary.Save(sprint, fields); err != nil { return err }
	s.logActivity(user, "Saved commentary", sprint)
	return nil
}

// DraftCommentary asks the LLM to pre-fill the sprint-report fields from the
// sprint's issues. Returns a suggestion; nothing is persisted.
func (s *Service) DraftCommentary(ctx context.Context, sprint string) (map[string]string, error) {
	if s.llm == nil || !s.llm.Enabled() { return nil, errors.New("commentary drafting is not configured") }
	issues := s.Issues(domain.IssueFilter{Sprint: sprint})
	if len(issues) == 0 { return nil, fmt.Errorf("no issues for sprint %q", sprint) }
	return s.llm.DraftSprintReport(ctx, sprint, issues, store.DefaultFields)
}

// Activity

func (s *Service) Activity(user string) ([]domain.ActivityEntry, error) {
	if user == "" { return s.activity.All() }
	return s.activity.ForUser(user)
}

func (s *Service) RecordView(user, action, details string) { s.logActivity(user, action, details) }

func (s *Service) logActivity(user, action, details string) {
	if s.activity == nil { return }
	if err := s.activity.Append(user, action, details); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("activity append failed")
	}
}

// LastSync prefers the DB bookkeeping when available.
func (s *Service) LastSync(ctx context.Context) (any, error) {
	if s.repo != nil { return s.repo.GetLastSync(ctx) }
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastSync.IsZero() { return nil, errors.New("no sync has completed") }
	return map[string]any{"finished_at": s.lastSync, "issues_fetched": len(s.issues), "success": true}, nil
}
