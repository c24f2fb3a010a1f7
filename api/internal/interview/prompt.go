package interview

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

const defaultPrompt = `
You are a technical interviewer. Write 7-10 interview questions for this candidate:

- Candidate: {{.Name}}
- Position: {{.Position}}
- Experience: {{.Experience}}
- Skills: {{.Skills}}

REQUIREMENTS:
1) Mix Technical / Behavioral / Scenario questions.
2) Keep every question short and clear.
3) Return JSON exactly in this shape:

{
  "name": {{json .Name}},
  "position": {{json .Position}},
  "questions": [
    { "no": 1, "type": "Technical", "question": "..." }
  ]
}
`

// Prompt renders a GenerationRequest into the text sent to the model.
type Prompt struct {
	tmpl *template.Template
}

// NewPrompt parses text as a text/template; an empty text selects the
// built-in prompt. Templates may use {{json .Field}} to quote a value.
func NewPrompt(text string) (*Prompt, error) {
	if strings.TrimSpace(text) == "" {
		text = defaultPrompt
	}
	t, err := template.New("prompt").Funcs(template.FuncMap{"json": quoteJSON}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	return &Prompt{tmpl: t}, nil
}

func quoteJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func (p *Prompt) Build(req GenerationRequest) (string, error) {
	var b strings.Builder
	if err := p.tmpl.Execute(&b, req); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}
