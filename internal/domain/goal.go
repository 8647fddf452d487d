package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Goal is a candidate career goal. Stored goals come in three shapes:
// a plain string, {"label": "..."} or {"name": "..."}.
type Goal struct {
	Text  string
	Label string
	Name  string
}

// GoalFromString wraps a plain string goal.
func GoalFromString(s string) Goal { return Goal{Text: s} }

// String returns the goal's display label: label, then name, then the plain text.
func (g Goal) String() string {
	switch {
	case strings.TrimSpace(g.Label) != "":
		return g.Label
	case strings.TrimSpace(g.Name) != "":
		return g.Name
	default:
		return g.Text
	}
}

// UnmarshalJSON accepts all three stored shapes.
func (g *Goal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*g = Goal{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*g = Goal{Text: s}
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			Label string `json:"label"`
			Name  string `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*g = Goal{Label: obj.Label, Name: obj.Name}
		return nil
	}
	return fmt.Errorf("%w: unsupported goal shape %q", ErrInvalidArgument, string(b))
}

// MarshalJSON writes the goal back in the shape it was read.
func (g Goal) MarshalJSON() ([]byte, error) {
	switch {
	case g.Label != "":
		return json.Marshal(map[string]string{"label": g.Label})
	case g.Name != "":
		return json.Marshal(map[string]string{"name": g.Name})
	default:
		return json.Marshal(g.Text)
	}
}

// GoalLabels flattens goals into their label strings, skipping empty ones.
func GoalLabels(goals []Goal) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		if s := strings.TrimSpace(g.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
