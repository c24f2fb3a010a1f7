package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"interview-helper/api/internal/llm"
)

const engineName = "gemini"

// Engine calls the Gemini generateContent API. The underlying client is
// shared by all requests and must be released with Close.
type Engine struct {
	Model       string
	Temperature *float32

	client *genai.Client
}

func New(ctx context.Context, apiKey, model string, temperature *float32) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GOOGLE_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Engine{
		Model:       strings.TrimSpace(model),
		Temperature: temperature,
		client:      cl,
	}, nil
}

func (e *Engine) Name() string     { return engineName }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

// Generate sends prompt as a single user turn and returns the reply text.
// No retries are made; failures come back as *llm.UpstreamError.
func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	m := e.client.GenerativeModel(e.Model)
	if e.Temperature != nil {
		m.SetTemperature(*e.Temperature)
	}
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", llm.Wrap(engineName, err)
	}
	return replyText(resp), nil
}

// replyText joins the text parts of the first candidate that has content.
func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}
