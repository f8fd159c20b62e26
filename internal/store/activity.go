package store

import (
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
	"github.com/rs/zerolog"
)

const timestampLayout = "2006-01-02 15:04:05"

// Activity is the per-user action log, stored as user -> entries.
type Activity struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
	now  func() time.Time
}

func NewActivity(path string, log zerolog.Logger) *Activity {
	return &Activity{path: path, log: log, now: time.Now}
}

type rawEntry struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

func (a *Activity) load() (map[string][]rawEntry, error) {
	out := map[string][]rawEntry{}
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) { return out, nil }
		return nil, err
	}
	if err := json.Unmarshal(data, &out); err != nil { return nil, err }
	return out, nil
}

// Append records one action for a user. Blank users are logged under "".
func (a *Activity) Append(user, action, details string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	logs, err := a.load()
	if err != nil { return err }
	logs[user] = append(logs[user], rawEntry{
		Timestamp: a.now().Format(timestampLayout),
		Action:    action,
		Details:   details,
	})
	data, err := json.MarshalIndent(logs, "", "  ")
	if err != nil { return err }
	return os.WriteFile(a.path, data, 0o644)
}

// ForUser returns a user's entries in recorded order.
func (a *Activity) ForUser(user string) ([]domain.ActivityEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	logs, err := a.load()
	if err != nil { return nil, err }
	out := make([]domain.ActivityEntry, 0, len(logs[user]))
	for _, e := range logs[user] {
		out = append(out, domain.ActivityEntry{Timestamp: e.Timestamp, User: user, Action: e.Action, Details: e.Details})
	}
	return out, nil
}

// All returns every user's entries, newest first.
func (a *Activity) All() ([]domain.ActivityEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	logs, err := a.load()
	if err != nil { return nil, err }
	var out []domain.ActivityEntry
	for user, entries := range logs {
		for _, e := range entries {
			out = append(out, domain.ActivityEntry{Timestamp: e.Timestamp, User: user, Action: e.Action, Details: e.Details})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}
