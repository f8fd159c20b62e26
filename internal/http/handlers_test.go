package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
	"github.com/ManivannanSenthilrajan/issueboard/internal/service"
)

type fakeService struct {
	issues     []domain.Issue
	lastFilter domain.IssueFilter
	quickFixed *domain.QuickFix
	fixErr     error
	commentary map[string]string
}

func (f *fakeService) Sync(context.Context) (int, error) { return len(f.issues), nil }

func (f *fakeService) Issues(flt domain.IssueFilter) []domain.Issue {
	f.lastFilter = flt
	return f.issues
}

func (f *fakeService) FilterValues() map[string][]string {
	return map[string][]string{"Team": {"Core"}}
}

func (f *fakeService) Board(domain.IssueFilter) []domain.Swimlane { return nil }

func (f *fakeService) Hygiene(domain.IssueFilter) domain.HygieneReport {
	return domain.HygieneReport{Total: len(f.issues), MissingBy: map[string]int{}}
}

func (f *fakeService) ApplyQuickFix(_ context.Context, _ string, iid int64, fix domain.QuickFix) (*domain.Issue, error) {
	if f.fixErr != nil { return nil, f.fixErr }
	f.quickFixed = &fix
	return &f.issues[0], nil
}

func (f *fakeService) Commentary(string) (map[string]string, error) { return f.commentary, nil }

func (f *fakeService) AllCommentary() (map[string]map[string]string, error) {
	return map[string]map[string]string{"2026-S3": f.commentary}, nil
}

func (f *fakeService) SaveCommentary(_, _ string, fields map[string]string) error {
	f.commentary = fields
	return nil
}

func (f *fakeService) DraftCommentary(context.Context, string) (map[string]string, error) {
	return nil, errors.New("not configured")
}

func (f *fakeService) Activity(string) ([]domain.ActivityEntry, error) {
	return []domain.ActivityEntry{{Timestamp: "2026-03-02 09:31:00", User: "alice", Action: "Viewed board"}}, nil
}

func (f *fakeService) RecordView(string, string, string) {}

func (f *fakeService) LastSync(context.Context) (any, error) { return map[string]any{"success": true}, nil }

func newTestRouter(f *fakeService) http.Handler {
	return NewRouter(config.Config{AppEnv: "test"}, zerolog.Nop(), f)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestRouter(&fakeService{}), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListIssuesPassesFilter(t *testing.T) {
	f := &fakeService{issues: []domain.Issue{{IID: 1, Title: "one"}}}
	w := do(t, newTestRouter(f), http.MethodGet, "/api/issues?team=Core&status=Doing&search=pay", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Core", f.lastFilter.Team)
	assert.Equal(t, "Doing", f.lastFilter.Status)
	assert.Equal(t, "pay", f.lastFilter.Search)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestQuickFixRoutes(t *testing.T) {
	f := &fakeService{issues: []domain.Issue{{IID: 1}}}
	r := newTestRouter(f)

	w := do(t, r, http.MethodPost, "/api/issues/1/quickfix", domain.QuickFix{Field: "Status", Value: "Done"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.quickFixed)
	assert.Equal(t, "Done", f.quickFixed.Value)

	w = do(t, r, http.MethodPost, "/api/issues/notanumber/quickfix", domain.QuickFix{Field: "Status", Value: "Done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.fixErr = service.ErrUnknownField
	w = do(t, r, http.MethodPost, "/api/issues/1/quickfix", domain.QuickFix{Field: "nope", Value: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.fixErr = errors.New("upstream 502")
	w = do(t, r, http.MethodPost, "/api/issues/1/quickfix", domain.QuickFix{Field: "Status", Value: "Done"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCommentaryRoutes(t *testing.T) {
	f := &fakeService{}
	r := newTestRouter(f)

	w := do(t, r, http.MethodPut, "/api/commentary/2026-S3", map[string]string{"Risks": "none"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "none", f.commentary["Risks"])

	w = do(t, r, http.MethodGet, "/api/commentary/2026-S3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "none", resp.Fields["Risks"])

	// drafting is unconfigured in the fake
	w = do(t, r, http.MethodPost, "/api/commentary/2026-S3/draft", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestActivityCSV(t *testing.T) {
	w := do(t, newTestRouter(&fakeService{}), http.MethodGet, "/api/activity?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "alice")
}

func TestSyncQueued(t *testing.T) {
	w := do(t, newTestRouter(&fakeService{}), http.MethodPost, "/admin/sync", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
}
