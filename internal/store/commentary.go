// Package store holds the flat-file JSON stores: sprint commentary and the
// user activity log. Both are read on access and overwritten on save; a
// missing file reads as an empty document. There is no cross-process locking,
// concurrent writers are last-writer-wins.
package store

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultFields are the sprint-report sections offered by the commentary tab.
var DefaultFields = []string{"Sprint Scope", "Capacity", "Achievements", "Risks", "Next Steps"}

// Commentary maps sprint identifier -> field name -> free text.
type Commentary struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

func NewCommentary(path string, log zerolog.Logger) *Commentary {
	return &Commentary{path: path, log: log}
}

func (c *Commentary) Load() (map[string]map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Commentary) load() (map[string]map[string]string, error) {
	out := map[string]map[string]string{}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) { return out, nil }
		return nil, err
	}
	if err := json.Unmarshal(data, &out); err != nil { return nil, err }
	return out, nil
}

// Sprint returns the stored fields for one sprint; never nil.
func (c *Commentary) Sprint(sprint string) (map[string]string, error) {
	doc, err := c.Load()
	if err != nil { return nil, err }
	if f, ok := doc[sprint]; ok { return f, nil }
	return map[string]string{}, nil
}

// Save merges the given fields into the sprint's entry and rewrites the file.
// Empty values are stored as given so a section can be cleared explicitly.
func (c *Commentary) Save(sprint string, fields map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, err := c.load()
	if err != nil { return err }
	cur, ok := doc[sprint]
	if !ok { cur = map[string]string{} }
	for k, v := range fields { cur[k] = v }
	doc[sprint] = cur
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil { return err }
	if err := os.WriteFile(c.path, data, 0o644); err != nil { return err }
	c.log.Info().Str("sprint", sprint).Int("fields", len(fields)).Msg("commentary saved")
	return nil
}
