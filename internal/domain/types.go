package domain

import "time"

// Fields are the structured columns derived from Key::Value labels.
type Fields struct {
	Team       string `json:"team"`
	Status     string `json:"status"`
	Sprint     string `json:"sprint"`
	Workstream string `json:"workstream"`
	Project    string `json:"project"`
}

type Issue struct {
	ID        int64      `json:"id"`
	IID       int64      `json:"iid"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	Labels    []string   `json:"labels"`
	Author    string     `json:"author"`
	Assignee  string     `json:"assignee"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	DueDate   string     `json:"due_date"`
	WebURL    string     `json:"web_url"`

	Fields Fields   `json:"fields"`
	Plain  []string `json:"plain_labels"`
}

// IssueFilter mirrors the dashboard sidebar: empty values match everything.
type IssueFilter struct {
	State      string
	Team       string
	Status     string
	Sprint     string
	Workstream string
	Project    string
	Search     string
}

type Card struct {
	IID    int64  `json:"iid"`
	Title  string `json:"title"`
	State  string `json:"state"`
	WebURL string `json:"web_url"`
}

type BoardColumn struct {
	Team  string            `json:"team"`
	Cards map[string][]Card `json:"cards"` // keyed by status
}

// Swimlane groups a sprint's issues into team columns for the kanban view.
type Swimlane struct {
	Sprint  string        `json:"sprint"`
	Columns []BoardColumn `json:"columns"`
}

type HygieneRow struct {
	IID     int64    `json:"iid"`
	Title   string   `json:"title"`
	Missing []string `json:"missing"`
}

type HygieneReport struct {
	Total     int            `json:"total"`
	Clean     int            `json:"clean"`
	MissingBy map[string]int `json:"missing_by_field"`
	Rows      []HygieneRow   `json:"rows"`
}

// QuickFix is an inline edit applied through the tracker API.
// Field is one of: title, state, Team, Status, Sprint, Workstream, Project.
type QuickFix struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type ActivityEntry struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user,omitempty"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}
