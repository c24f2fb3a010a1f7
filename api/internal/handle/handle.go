package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"interview-helper/api/internal/interview"
	"interview-helper/api/internal/logger"
)

const ServiceName = "AI Recruitment Helper"

// Generator is the part of interview.Service the handlers use.
type Generator interface {
	Generate(ctx context.Context, req interview.GenerationRequest) (interview.Outcome, error)
	Model() string
}

type Handle struct {
	gen Generator
	log logger.Logger
}

func New(gen Generator, log logger.Logger) *Handle {
	if log == nil {
		log = logger.Nop()
	}
	return &Handle{gen: gen, log: log}
}

// Register mounts every route on mux.
func (h *Handle) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api/generate-questions", h.GenerateQuestions)
	mux.HandleFunc("/", h.Index)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody{Error: msg})
}
