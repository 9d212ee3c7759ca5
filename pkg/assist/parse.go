package assist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/docprotocol/pkg/core"
)

// ParseSuggestion decodes a service answer strictly. The answer must be a
// single JSON object, optionally wrapped in a ``` fence, with exactly the
// four suggestion fields, all non-empty, and a priority from the enum.
func ParseSuggestion(raw string) (Suggestion, error) {
	body := stripFence(raw)
	if body == "" {
		return Suggestion{}, fmt.Errorf("%w: empty answer", ErrMalformedResponse)
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()

	var s Suggestion
	if err := dec.Decode(&s); err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Suggestion{}, fmt.Errorf("%w: trailing data after object", ErrMalformedResponse)
	}

	var missing []string
	if strings.TrimSpace(s.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(s.Category) == "" {
		missing = append(missing, "category")
	}
	if s.Priority == "" {
		missing = append(missing, "priority")
	}
	if strings.TrimSpace(s.ExecutiveSummary) == "" {
		missing = append(missing, "executive_summary")
	}
	if len(missing) > 0 {
		return Suggestion{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}
	if !s.Priority.Valid() {
		return Suggestion{}, fmt.Errorf("%w: priority %q", ErrMalformedResponse, s.Priority)
	}
	return s, nil
}

func stripFence(raw string) string {
	body := strings.TrimSpace(raw)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	// Drop the opening fence line (it may carry a language tag).
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		return ""
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}

// Apply returns a draft holding the suggestion. Sender and recipient are
// left empty for the user to fill in.
func (s Suggestion) Apply() core.Draft {
	d := core.DefaultDraft()
	d.Title = s.Title
	d.Category = s.Category
	d.Priority = s.Priority
	d.Description = s.ExecutiveSummary
	return d
}
