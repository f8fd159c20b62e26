/* Copyright (c) 2026 Manivannan Senthilrajan
 * SPDX-License-Identifier: BSD-3-Clause */
package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
	"github.com/ManivannanSenthilrajan/issueboard/internal/labels"
	"github.com/rs/zerolog"
)

type Client struct {
	baseURL string
	token   string
	project string
	perPage int
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.GitLabBaseURL,
		token:   cfg.GitLabToken,
		project: cfg.GitLabProject,
		perPage: cfg.PerPage,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		log:     log,
	}
}

// issueJSON is the subset of the v4 issue payload the dashboard reads.
type issueJSON struct {
	ID       int64    `json:"id"`
	IID      int64    `json:"iid"`
	Title    string   `json:"title"`
	State    string   `json:"state"`
	Labels   []string `json:"labels"`
	Author   *struct {
		Username string `json:"username"`
	} `json:"author"`
	Assignee *struct {
		Username string `json:"username"`
	} `json:"assignee"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	DueDate   string     `json:"due_date"`
	WebURL    string     `json:"web_url"`
}

func (j issueJSON) toDomain() domain.Issue {
	i := domain.Issue{
		ID: j.ID, IID: j.IID, Title: j.Title, State: j.State, Labels: j.Labels,
		CreatedAt: j.CreatedAt, UpdatedAt: j.UpdatedAt, DueDate: j.DueDate, WebURL: j.WebURL,
	}
	if j.Author != nil { i.Author = j.Author.Username }
	if j.Assignee != nil { i.Assignee = j.Assignee.Username }
	labels.Apply(&i)
	return i
}

func (c *Client) apiURL(path string, q url.Values) string {
	u := c.baseURL + "/api/v4" + path
	if len(q) > 0 { u = u + "?" + q.Encode() }
	return u
}

func (c *Client) projectPath() string { return "/projects/" + url.PathEscape(c.project) }

// doJSON performs one authenticated request with up to 3 attempts; only 429
// and 5xx responses are retried.
func (c *Client) doJSON(ctx context.Context, method, u string, body, out any) error {
	if c.baseURL == "" { return errors.New("gitlab: empty baseURL") }
	if c.project == "" { return errors.New("gitlab: empty project id") }
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil { return err }
		payload = b
	}
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var r io.Reader
		if payload != nil { r = bytes.NewReader(payload) }
		req, err := http.NewRequestWithContext(ctx, method, u, r)
		if err != nil { return err }
		if payload != nil { req.Header.Set("Content-Type", "application/json") }
		if c.token != "" { req.Header.Set("PRIVATE-TOKEN", c.token) }
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
		} else {
			b, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil { return readErr }
			if resp.StatusCode >= 300 {
				apiErr := fmt.Errorf("gitlab api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
				// retry on 429/5xx only
				if resp.StatusCode == 429 || resp.StatusCode >= 500 {
					lastErr = apiErr
				} else {
					return apiErr
				}
			} else {
				if out == nil { return nil }
				return json.Unmarshal(b, out)
			}
		}
		time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
	}
	return lastErr
}

// ListIssues fetches every issue in the project, walking pages until an
// empty one comes back.
func (c *Client) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	var out []domain.Issue
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("per_page", strconv.Itoa(c.perPage))
		q.Set("page", strconv.Itoa(page))
		q.Set("state", "all")
		u := c.apiURL(c.projectPath()+"/issues", q)
		var batch []issueJSON
		if err := c.doJSON(ctx, http.MethodGet, u, nil, &batch); err != nil { return nil, err }
		if len(batch) == 0 { break }
		for _, j := range batch { out = append(out, j.toDomain()) }
		if len(batch) < c.perPage { break }
	}
	c.log.Info().Int("issues", len(out)).Msg("gitlab issues fetched")
	return out, nil
}

// GetIssue refetches a single issue by project-scoped iid.
func (c *Client) GetIssue(ctx context.Context, iid int64) (*domain.Issue, error) {
	if iid <= 0 { return nil, errors.New("gitlab: invalid issue iid") }
	u := c.apiURL(c.projectPath()+"/issues/"+strconv.FormatInt(iid, 10), nil)
	var j issueJSON
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &j); err != nil { return nil, err }
	i := j.toDomain()
	return &i, nil
}

// UpdateIssue PUTs an update payload (changed fields only) and returns the
// issue as the API echoed it back.
func (c *Client) UpdateIssue(ctx context.Context, iid int64, updates map[string]any) (*domain.Issue, error) {
	if iid <= 0 { return nil, errors.New("gitlab: invalid issue iid") }
	if len(updates) == 0 { return nil, errors.New("gitlab: empty update payload") }
	u := c.apiURL(c.projectPath()+"/issues/"+strconv.FormatInt(iid, 10), nil)
	var j issueJSON
	if err := c.doJSON(ctx, http.MethodPut, u, updates, &j); err != nil { return nil, err }
	i := j.toDomain()
	return &i, nil
}
