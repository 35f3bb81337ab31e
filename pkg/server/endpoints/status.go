package endpoints

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/entrykit/entrykit/pkg/certgen"
	"github.com/entrykit/entrykit/pkg/dbboot"
	"github.com/entrykit/entrykit/pkg/healthcheck"
	"github.com/entrykit/entrykit/pkg/server"
)

// PhaseReporter reports database bootstrap progress.
type PhaseReporter interface {
	Phase() dbboot.Phase
}

// StatusSources holds the bootstrap components the status API reads from.
type StatusSources struct {
	Boot   PhaseReporter
	Cert   certgen.Options
	Prober *healthcheck.Prober
}

// HealthResponse mirrors the health shape the upstream application serves,
// so the same probes work against either endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// BootstrapResponse reports the state of each bootstrap component.
type BootstrapResponse struct {
	Phase       string `json:"phase"`
	Certificate struct {
		Present bool   `json:"present"`
		Dir     string `json:"dir"`
	} `json:"certificate"`
	Upstream struct {
		URL     string `json:"url"`
		Healthy bool   `json:"healthy"`
	} `json:"upstream"`
}

// RegisterStatusEndpoints registers the health and bootstrap status routes.
func RegisterStatusEndpoints(s *server.Server, sources *StatusSources) {
	s.Router.HandleFunc("/health", handleHealth()).Methods("GET")
	s.Router.HandleFunc("/bootstrap", handleBootstrap(sources)).Methods("GET")
}

func version() string {
	if v := os.Getenv("ENTRYKIT_VERSION_DISPLAY"); v != "" {
		return v
	}
	return "0.1.0"
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   version(),
		})
	}
}

func handleBootstrap(sources *StatusSources) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp BootstrapResponse

		resp.Phase = dbboot.PhasePending.String()
		if sources.Boot != nil {
			resp.Phase = sources.Boot.Phase().String()
		}

		resp.Certificate.Present = sources.Cert.PairExists()
		resp.Certificate.Dir = sources.Cert.Dir

		if sources.Prober != nil {
			resp.Upstream.URL = sources.Prober.URL
			resp.Upstream.Healthy = sources.Prober.Healthy(r.Context())
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
