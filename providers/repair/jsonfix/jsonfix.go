// Package jsonfix implements a deterministic, zero-cost repair capability
// built on heuristic JSON repair. It handles the common mechanical mistakes
// in LLM output — single quotes, unquoted keys, trailing commas, Python-style
// literals, JSON embedded in surrounding prose — without any network call.
//
// It is a useful first-line [repair.Repairer] when a model round trip is too
// slow or too costly, and a fallback when no LLM is configured.
package jsonfix

import (
	"context"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"

	"github.com/leofalp/selfheal/providers/repair"
)

// Repairer is a local, deterministic repair capability. The zero value is
// ready to use.
type Repairer struct{}

// New returns a ready-to-use local repairer.
func New() *Repairer {
	return &Repairer{}
}

// Repair extracts the first JSON candidate embedded in raw and, when it is
// not already valid JSON, runs heuristic repair on it. The schema description
// is not consulted: this repairer fixes syntax only and leaves semantics to
// re-validation. A repair failure is reported as *repair.UnavailableError.
func (r *Repairer) Repair(_ context.Context, raw string, _ string) (string, error) {
	candidate := extractCandidate(raw)

	if gjson.Valid(candidate) {
		return candidate, nil
	}

	fixed, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return "", &repair.UnavailableError{Err: err}
	}
	return fixed, nil
}

// extractCandidate returns the first balanced {...} or [...] region of s,
// skipping bracket characters inside single- or double-quoted strings. When
// no balanced region is found it returns s unchanged and lets repair work on
// the whole input.
func extractCandidate(s string) string {
	start := -1
	var opener, closer byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			start, opener, closer = i, '{', '}'
			break
		}
		if s[i] == '[' {
			start, opener, closer = i, '[', ']'
			break
		}
	}
	if start == -1 {
		return s
	}

	depth := 0
	var quote byte
	for i := start; i < len(s); i++ {
		ch := s[i]

		if quote != 0 {
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
			continue
		}

		switch ch {
		case '"', '\'':
			quote = ch
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	// Unbalanced: hand the tail over and let repair close it.
	return s[start:]
}
