package interview

import (
	"fmt"
	"strings"
)

// Decode checks that v (a normalized model reply) is an object with a
// "questions" array and builds a typed view of it. Individual questions are
// read leniently: a missing or non-numeric "no" becomes its 1-based position,
// non-string text fields become "".
//
// The returned warnings describe soft violations (empty list, numbering that
// does not run 1..n); they never make ok false.
func Decode(v any) (set QuestionSet, warnings []string, ok bool) {
	obj, isObj := v.(map[string]any)
	if !isObj {
		return QuestionSet{}, nil, false
	}
	items, isArr := obj["questions"].([]any)
	if !isArr {
		return QuestionSet{}, nil, false
	}

	set.Name, _ = obj["name"].(string)
	set.Position, _ = obj["position"].(string)
	set.Questions = make([]Question, 0, len(items))

	sequential := true
	for i, it := range items {
		q := Question{No: i + 1}
		if m, isMap := it.(map[string]any); isMap {
			if n, isNum := m["no"].(float64); isNum {
				q.No = int(n)
			}
			q.Type, _ = m["type"].(string)
			q.Question, _ = m["question"].(string)
		} else if s, isStr := it.(string); isStr {
			q.Question = s
		}
		if q.No != i+1 {
			sequential = false
		}
		set.Questions = append(set.Questions, q)
	}

	if len(set.Questions) == 0 {
		warnings = append(warnings, "questions list is empty")
	}
	if !sequential {
		warnings = append(warnings, "question numbers are not sequential from 1")
	}
	return set, warnings, true
}

// Format renders a question set as plain numbered text.
func Format(set QuestionSet) string {
	var b strings.Builder
	if set.Name != "" || set.Position != "" {
		fmt.Fprintf(&b, "%s / %s\n\n", orDash(set.Name), orDash(set.Position))
	}
	for _, q := range set.Questions {
		if q.Type != "" {
			fmt.Fprintf(&b, "%d. [%s] %s\n", q.No, q.Type, q.Question)
		} else {
			fmt.Fprintf(&b, "%d. %s\n", q.No, q.Question)
		}
	}
	return strings.TrimSpace(b.String())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
