package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"interview-helper/api/internal/interview"
	"interview-helper/api/internal/llm"
)

type fakeEngine struct {
	reply string
	err   error
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "gemini-test" }
func (f *fakeEngine) Generate(context.Context, string) (string, error) {
	return f.reply, f.err
}

type recordingGen struct {
	got interview.GenerationRequest
}

func (g *recordingGen) Generate(_ context.Context, req interview.GenerationRequest) (interview.Outcome, error) {
	g.got = req
	return interview.Outcome{Payload: map[string]any{"questions": []any{}}}, nil
}

func (g *recordingGen) Model() string { return "m" }

func newMux(t *testing.T, eng llm.Engine) *http.ServeMux {
	t.Helper()
	p, err := interview.NewPrompt("")
	if err != nil {
		t.Fatalf("NewPrompt: %v", err)
	}
	mux := http.NewServeMux()
	New(interview.NewService(eng, p, time.Minute, nil), nil).Register(mux)
	return mux
}

func post(t *testing.T, mux http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-questions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return m
}

func TestGenerateQuestionsVerbatim(t *testing.T) {
	reply := "Here you go:\n```json\n{\"name\":\"Ana\",\"position\":\"Backend\",\"extra\":true,\"questions\":[{\"no\":1,\"type\":\"Technical\",\"question\":\"Explain mutexes\"}]}\n```"
	mux := newMux(t, &fakeEngine{reply: reply})
	rec := post(t, mux, `{"name":"Ana","position":"Backend"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := map[string]any{
		"name":     "Ana",
		"position": "Backend",
		"extra":    true,
		"questions": []any{
			map[string]any{"no": float64(1), "type": "Technical", "question": "Explain mutexes"},
		},
	}
	if diff := cmp.Diff(want, decodeBody(t, rec)); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateQuestionsFallback(t *testing.T) {
	for _, reply := range []string{"I would ask about Go.", `{"name":"Ana","questions":"none"}`, "null"} {
		mux := newMux(t, &fakeEngine{reply: reply})
		rec := post(t, mux, `{"name":"Ana","position":"QA"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("reply %q: status = %d", reply, rec.Code)
		}
		body := decodeBody(t, rec)
		if body["raw"] != reply || body["note"] != interview.FallbackNote {
			t.Fatalf("reply %q: unexpected fallback %v", reply, body)
		}
		if body["name"] != "Ana" || body["position"] != "QA" {
			t.Fatalf("reply %q: request fields not echoed: %v", reply, body)
		}
	}
}

func TestGenerateQuestionsUpstreamErrors(t *testing.T) {
	cases := []struct {
		status int
		want   int
	}{
		{http.StatusUnauthorized, http.StatusUnauthorized},
		{http.StatusNotFound, http.StatusBadGateway},
		{http.StatusTooManyRequests, http.StatusInternalServerError},
		{0, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		eng := &fakeEngine{err: &llm.UpstreamError{Engine: "fake", Status: tc.status, Err: errors.New("x")}}
		rec := post(t, newMux(t, eng), `{}`)
		if rec.Code != tc.want {
			t.Fatalf("upstream %d: status = %d, want %d", tc.status, rec.Code, tc.want)
		}
		if msg, _ := decodeBody(t, rec)["error"].(string); msg == "" {
			t.Fatalf("upstream %d: missing error message", tc.status)
		}
	}
}

func TestGenerateQuestionsBadInput(t *testing.T) {
	mux := newMux(t, &fakeEngine{reply: "{}"})

	for _, body := range []string{`{"name":`, `["Ana"]`, `"Ana"`} {
		if rec := post(t, mux, body); rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d", body, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/generate-questions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET: status = %d", rec.Code)
	}
}

func TestDecodeRequestVariants(t *testing.T) {
	gen := &recordingGen{}
	mux := http.NewServeMux()
	New(gen, nil).Register(mux)

	form := url.Values{"name": {"Bo"}, "position": {"SRE"}, "experience": {"3y"}, "skills": {"k8s"}}
	req := httptest.NewRequest(http.MethodPost, "/api/generate-questions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("form: status = %d", rec.Code)
	}
	want := interview.GenerationRequest{Name: "Bo", Position: "SRE", Experience: "3y", Skills: "k8s"}
	if diff := cmp.Diff(want, gen.got); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}

	rec = post(t, mux, `{"name":123,"position":"Backend","experience":5.5,"skills":["Go","SQL"],"extra":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("mixed types: status = %d", rec.Code)
	}
	want = interview.GenerationRequest{Name: "123", Position: "Backend", Experience: "5.5", Skills: `["Go","SQL"]`}
	if diff := cmp.Diff(want, gen.got); diff != "" {
		t.Fatalf("mixed types mismatch (-want +got):\n%s", diff)
	}

	rec = post(t, mux, `{"name":null,"position":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("null field: status = %d", rec.Code)
	}
	want = interview.GenerationRequest{Position: "false"}
	if diff := cmp.Diff(want, gen.got); diff != "" {
		t.Fatalf("null field mismatch (-want +got):\n%s", diff)
	}

	rec = post(t, mux, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("empty body: status = %d", rec.Code)
	}
	if diff := cmp.Diff(interview.GenerationRequest{}, gen.got); diff != "" {
		t.Fatalf("empty body should give empty request:\n%s", diff)
	}
}

func TestHealth(t *testing.T) {
	mux := newMux(t, &fakeEngine{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	want := map[string]any{"ok": true, "service": ServiceName, "model": "gemini-test"}
	if diff := cmp.Diff(want, decodeBody(t, rec)); diff != "" {
		t.Fatalf("health mismatch (-want +got):\n%s", diff)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path: %d", rec.Code)
	}
}
