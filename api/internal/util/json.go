package util

import (
	"encoding/json"
	"strings"
)

// NormalizeJSON recovers a JSON value from a free-text model reply.
//
// It first strips one leading and one trailing code fence and parses the rest
// strictly. If that fails it parses the first balanced {...} object found in
// raw. The boolean is false when neither strategy yields valid JSON; a reply
// of literal null returns (nil, true).
func NormalizeJSON(raw string) (any, bool) {
	if v, ok := parseStrict(StripCodeFences(raw)); ok {
		return v, true
	}
	if obj, ok := ExtractJSONObject(raw); ok {
		return parseStrict(obj)
	}
	return nil, false
}

// ExtractJSONObject returns the first top-level {...} object in s.
// Braces inside string literals are not counted, so {"q":"a } b"} is
// returned whole. The object is not validated.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escape := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escape:
				escape = false
			case c == '\\':
				escape = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func parseStrict(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}
