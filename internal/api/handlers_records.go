package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mycelian/casefiles/internal/api/respond"
	"github.com/mycelian/casefiles/internal/api/validate"
	"github.com/mycelian/casefiles/internal/model"
	"github.com/mycelian/casefiles/internal/views"
)

type createRecordResponse struct {
	model.CrimeRecord
	Persisted bool   `json:"persisted"`
	Warning   string `json:"warning,omitempty"`
}

// ListRecords GET /api/records?q=
func (h *handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := h.loadRecords(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	out := views.Filter(recs, r.URL.Query().Get("q"))
	if out == nil {
		out = []model.CrimeRecord{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"records": out, "count": len(out)})
}

// CreateRecord POST /api/records
func (h *handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req validate.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	draft, err := validate.CreateRecord(req)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	rec, err := h.records.Append(r.Context(), draft)
	if err != nil {
		if !model.IsPersistenceError(err) {
			respond.WriteDomainError(w, err)
			return
		}
		respond.WriteJSON(w, http.StatusCreated, createRecordResponse{
			CrimeRecord: rec,
			Persisted:   false,
			Warning:     "record saved for this session only; durable storage is unavailable",
		})
		return
	}
	respond.WriteJSON(w, http.StatusCreated, createRecordResponse{CrimeRecord: rec, Persisted: true})
}

// GetRecord GET /api/records/{recordId}
func (h *handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.records.Get(r.Context(), mux.Vars(r)["recordId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rec)
}

// Dashboard GET /api/dashboard
func (h *handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	recs, err := h.loadRecords(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, views.BuildDashboard(recs))
}
