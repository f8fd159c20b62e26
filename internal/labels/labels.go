// Package labels derives structured issue columns from the Key::Value
// label convention used on the tracked project.
package labels

import (
	"strings"

	"github.com/ManivannanSenthilrajan/issueboard/internal/domain"
)

// Keys are the recognized structured columns, matched case-sensitively.
var Keys = []string{"Team", "Status", "Sprint", "Workstream", "Project"}

const sep = "::"

// Normalize splits each label on the first "::" and fills the recognized
// columns. The first label seen for a key wins. Labels without the separator,
// with an unrecognized key, or with an empty side are left in plain.
func Normalize(raw []string) (domain.Fields, []string) {
	var f domain.Fields
	var plain []string
	for _, l := range raw {
		idx := strings.Index(l, sep)
		if idx < 0 {
			plain = append(plain, l)
			continue
		}
		key := strings.TrimSpace(l[:idx])
		val := strings.TrimSpace(l[idx+len(sep):])
		if key == "" || val == "" {
			plain = append(plain, l)
			continue
		}
		dst := fieldFor(&f, key)
		if dst == nil {
			plain = append(plain, l)
			continue
		}
		if *dst == "" { *dst = val }
	}
	return f, plain
}

// Apply fills in the derived fields on an issue from its raw labels.
func Apply(i *domain.Issue) {
	i.Fields, i.Plain = Normalize(i.Labels)
}

// Missing reports which recognized keys have no value, in Keys order.
func Missing(f domain.Fields) []string {
	var out []string
	for _, k := range Keys {
		if *fieldFor(&f, k) == "" { out = append(out, k) }
	}
	return out
}

// Set returns a copy of raw with the structured label for key replaced by
// key::value; other labels are kept as-is. Used to build edit payloads.
func Set(raw []string, key, value string) []string {
	out := make([]string, 0, len(raw)+1)
	for _, l := range raw {
		idx := strings.Index(l, sep)
		if idx >= 0 && strings.TrimSpace(l[:idx]) == key { continue }
		out = append(out, l)
	}
	return append(out, key+sep+value)
}

// IsKey reports whether k is one of the recognized structured columns.
func IsKey(k string) bool { return fieldFor(&domain.Fields{}, k) != nil }

// Value returns the field value for a recognized key, "" otherwise.
func Value(f domain.Fields, key string) string {
	dst := fieldFor(&f, key)
	if dst == nil { return "" }
	return *dst
}

func fieldFor(f *domain.Fields, key string) *string {
	switch key {
	case "Team":
		return &f.Team
	case "Status":
		return &f.Status
	case "Sprint":
		return &f.Sprint
	case "Workstream":
		return &f.Workstream
	case "Project":
		return &f.Project
	}
	return nil
}
