package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mycelian/casefiles/internal/api/recovery"
	"github.com/mycelian/casefiles/internal/api/respond"
	"github.com/mycelian/casefiles/internal/metrics"
)

// NewRouter builds the HTTP surface over d.
func NewRouter(d Deps) *mux.Router {
	h := &handler{records: d.Records, tracker: d.Tracker, sessions: d.Sessions, log: d.Log}
	hh := &healthHandler{healthy: d.Healthy, components: d.Components}

	router := mux.NewRouter()
	router.Use(recovery.Middleware)
	router.Use(requestLogger(d.Log))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteNotFound(w, "no such endpoint")
	})

	router.HandleFunc("/api/health", hh.CheckHealth).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	router.HandleFunc("/api/session", h.Login).Methods("POST")
	router.HandleFunc("/api/session", h.requireSession(h.CurrentSession)).Methods("GET")
	router.HandleFunc("/api/session", h.requireSession(h.Logout)).Methods("DELETE")

	router.HandleFunc("/api/records", h.requireSession(h.ListRecords)).Methods("GET")
	router.HandleFunc("/api/records", h.requireSession(h.CreateRecord)).Methods("POST")
	router.HandleFunc("/api/records/{recordId}", h.requireSession(h.GetRecord)).Methods("GET")

	router.HandleFunc("/api/records/{recordId}/summary", h.requireSession(h.StartSummary)).Methods("POST")
	router.HandleFunc("/api/records/{recordId}/summary", h.requireSession(h.SummaryStatus)).Methods("GET")
	router.HandleFunc("/api/records/{recordId}/summary", h.requireSession(h.DismissSummary)).Methods("DELETE")

	router.HandleFunc("/api/dashboard", h.requireSession(h.Dashboard)).Methods("GET")

	return router
}
