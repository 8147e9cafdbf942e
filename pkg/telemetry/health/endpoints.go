package health

import (
	"encoding/json"
	"net/http"
)

// LivenessHandler serves the liveness probe.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, r, c.CheckLiveness(r.Context()))
	}
}

// ReadinessHandler serves the readiness probe: 200 once every check passes,
// 503 otherwise.
//
//	{"status":"not_ready","checks":{"world":{"status":"unhealthy","message":"no world loaded yet"}},...}
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, r, c.CheckReadiness(r.Context()))
	}
}

func writeStatus(w http.ResponseWriter, r *http.Request, st Status) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if st.Ready() {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if r.Method != http.MethodHead {
		_ = json.NewEncoder(w).Encode(st)
	}
}
