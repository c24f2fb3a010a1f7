package interview

import (
	"context"
	"fmt"
	"time"

	"interview-helper/api/internal/llm"
	"interview-helper/api/internal/logger"
	"interview-helper/api/internal/util"
)

// Outcome is the result of one generation. Exactly one of Payload and
// Fallback is set.
type Outcome struct {
	// Payload is the normalized reply, returned to clients verbatim.
	Payload any
	// Set is the typed view of Payload.
	Set      QuestionSet
	Warnings []string

	Fallback *Fallback
}

type Service struct {
	engine  llm.Engine
	prompt  *Prompt
	timeout time.Duration
	log     logger.Logger
}

func NewService(engine llm.Engine, prompt *Prompt, timeout time.Duration, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{engine: engine, prompt: prompt, timeout: timeout, log: log}
}

func (s *Service) Model() string { return s.engine.GetModel() }

// Generate builds the prompt, calls the upstream model once and normalizes
// the reply. An unparseable or schema-less reply is not an error: it yields
// an Outcome with Fallback set. Errors are prompt rendering failures or
// *llm.UpstreamError.
func (s *Service) Generate(ctx context.Context, req GenerationRequest) (Outcome, error) {
	prompt, err := s.prompt.Build(req)
	if err != nil {
		return Outcome{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	text, err := s.engine.Generate(ctx, prompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("generate questions: %w", err)
	}
	s.log.Debug("Model replied",
		"engine", s.engine.Name(),
		"model", s.engine.GetModel(),
		"reply_len", len(text),
		"elapsed", time.Since(started).String(),
	)

	payload, ok := util.NormalizeJSON(text)
	if !ok {
		s.log.Warn("Reply is not JSON, returning raw", "reply", util.Truncate(text, 200, "…"))
		return fallback(req, text), nil
	}
	set, warnings, ok := Decode(payload)
	if !ok {
		s.log.Warn("Reply has no questions array, returning raw", "reply", util.Truncate(text, 200, "…"))
		return fallback(req, text), nil
	}
	for _, w := range warnings {
		s.log.Warn("Question set looks off", "problem", w, "count", len(set.Questions))
	}
	return Outcome{Payload: payload, Set: set, Warnings: warnings}, nil
}

func fallback(req GenerationRequest, raw string) Outcome {
	return Outcome{Fallback: &Fallback{
		Name:     req.Name,
		Position: req.Position,
		Raw:      raw,
		Note:     FallbackNote,
	}}
}
