package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.Config{
		GitLabBaseURL: srv.URL,
		GitLabToken:   "glpat-test",
		GitLabProject: "123456",
		PerPage:       2,
		HTTPTimeout:   5 * time.Second,
	}
	return NewClient(cfg, zerolog.Nop())
}

func issuePayload(iid int64, title string, lbls ...string) map[string]any {
	if lbls == nil { lbls = []string{} }
	return map[string]any{
		"id": iid + 1000, "iid": iid, "title": title, "state": "opened",
		"labels": lbls,
		"author": map[string]any{"username": "msenthilrajan"},
		"web_url": fmt.Sprintf("https://gitlab.example.com/-/issues/%d", iid),
	}
}

func TestListIssues_PaginatesUntilShortPage(t *testing.T) {
	var pages []string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/projects/123456/issues", r.URL.Path)
		require.Equal(t, "glpat-test", r.Header.Get("PRIVATE-TOKEN"))
		require.Equal(t, "all", r.URL.Query().Get("state"))
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		w.Header().Set("Content-Type", "application/json")
		switch page {
		case "1":
			json.NewEncoder(w).Encode([]any{
				issuePayload(1, "first", "Team::Payments", "bug"),
				issuePayload(2, "second", "Sprint::2026-S3"),
			})
		default:
			json.NewEncoder(w).Encode([]any{issuePayload(3, "third")})
		}
	}))

	issues, err := c.ListIssues(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 3)
	assert.Equal(t, []string{"1", "2"}, pages)

	assert.Equal(t, "Payments", issues[0].Fields.Team)
	assert.Equal(t, []string{"bug"}, issues[0].Plain)
	assert.Equal(t, "2026-S3", issues[1].Fields.Sprint)
	assert.Equal(t, "msenthilrajan", issues[0].Author)
}

func TestListIssues_AuthFailureIsNotRetried(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"message":"401 Unauthorized"}`, http.StatusUnauthorized)
	}))
	_, err := c.ListIssues(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
	assert.Equal(t, 1, calls)
}

func TestDoJSON_RetriesServerErrors(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode([]any{})
	}))
	issues, err := c.ListIssues(context.Background())
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 3, calls)
}

func TestUpdateIssue_PutsPayloadAndDecodesResponse(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v4/projects/123456/issues/42", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "bug,Status::Done", body["labels"])
		json.NewEncoder(w).Encode(issuePayload(42, "fixed", "bug", "Status::Done"))
	}))

	updated, err := c.UpdateIssue(context.Background(), 42, map[string]any{"labels": "bug,Status::Done"})
	require.NoError(t, err)
	assert.Equal(t, "Done", updated.Fields.Status)
}

func TestUpdateIssue_RejectsEmptyPayload(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	_, err := c.UpdateIssue(context.Background(), 42, nil)
	assert.Error(t, err)
}

func TestGetIssue(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/projects/123456/issues/"+strconv.Itoa(7), r.URL.Path)
		json.NewEncoder(w).Encode(issuePayload(7, "one", "Project::Atlas"))
	}))
	i, err := c.GetIssue(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Atlas", i.Fields.Project)
}
