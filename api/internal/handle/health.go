package handle

import "net/http"

type healthBody struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Model   string `json:"model"`
}

// Health reports static service identity.
func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{OK: true, Service: ServiceName, Model: h.gen.Model()})
}

func (h *Handle) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
