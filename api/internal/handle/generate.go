package handle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"interview-helper/api/internal/httpserver"
	"interview-helper/api/internal/interview"
	"interview-helper/api/internal/llm"
)

const maxBodyBytes = 1 << 20

// GenerateQuestions handles POST /api/generate-questions.
//
// A reply that normalizes to an object with a questions array is written
// verbatim. Anything else is a 200 fallback carrying the raw text.
func (h *Handle) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	req, err := decodeRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad request body: "+err.Error())
		return
	}

	out, err := h.gen.Generate(r.Context(), req)
	if err != nil {
		code, msg := upstreamResponse(err)
		h.log.Error("Gemini error",
			"request_id", httpserver.RequestID(r.Context()),
			"status", llm.StatusOf(err),
			"error", err,
		)
		writeError(w, code, msg)
		return
	}

	if out.Fallback != nil {
		writeJSON(w, http.StatusOK, out.Fallback)
		return
	}
	h.log.Info("Questions generated",
		"request_id", httpserver.RequestID(r.Context()),
		"position", req.Position,
		"count", len(out.Set.Questions),
	)
	writeJSON(w, http.StatusOK, out.Payload)
}

// decodeRequest accepts a JSON or form-encoded body. An empty body yields an
// empty request. JSON fields of any type are accepted and rendered as text.
func decodeRequest(w http.ResponseWriter, r *http.Request) (interview.GenerationRequest, error) {
	var req interview.GenerationRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return req, err
		}
		req.Name = r.PostFormValue("name")
		req.Position = r.PostFormValue("position")
		req.Experience = r.PostFormValue("experience")
		req.Skills = r.PostFormValue("skills")
		return req, nil
	}

	var fields map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	req.Name = fieldText(fields["name"])
	req.Position = fieldText(fields["position"])
	req.Experience = fieldText(fields["experience"])
	req.Skills = fieldText(fields["skills"])
	return req, nil
}

// fieldText renders a decoded JSON value for the prompt. Missing and null
// become "", scalars keep their literal text, arrays and objects stay JSON.
func fieldText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number, bool:
		return fmt.Sprint(v)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// upstreamResponse maps an upstream failure to the client-facing status.
func upstreamResponse(err error) (int, string) {
	switch llm.StatusOf(err) {
	case http.StatusNotFound:
		return http.StatusBadGateway, "404: invalid model for this API. Use a model such as 'gemini-2.5-flash'."
	case http.StatusUnauthorized:
		return http.StatusUnauthorized, "401: API key is invalid or not allowed to call this model."
	default:
		return http.StatusInternalServerError, "Gemini service error"
	}
}

// Index answers everything that matched no other route.
func (h *Handle) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(strings.ToLower(ServiceName) + ": POST /api/generate-questions\n"))
}
