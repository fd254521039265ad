package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mycelian/casefiles/internal/api/respond"
	"github.com/mycelian/casefiles/internal/api/validate"
	"github.com/mycelian/casefiles/internal/model"
	"github.com/mycelian/casefiles/internal/summarize"
)

// StartSummary POST /api/records/{recordId}/summary[?wait=true]
func (h *handler) StartSummary(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.summaryRecord(w, r)
	if !ok {
		return
	}

	task, err := h.tracker.Start(rec)
	switch {
	case errors.Is(err, summarize.ErrInFlight):
		respond.WriteJSON(w, http.StatusConflict, task)
		return
	case errors.Is(err, summarize.ErrTrackerClosed):
		respond.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		respond.WriteDomainError(w, err)
		return
	}

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if !wait {
		respond.WriteJSON(w, http.StatusAccepted, task)
		return
	}
	task, err = h.tracker.Wait(r.Context(), rec.ID)
	if err != nil {
		// client gave up; the task keeps running
		respond.WriteJSON(w, http.StatusAccepted, task)
		return
	}
	respond.WriteJSON(w, http.StatusOK, task)
}

// SummaryStatus GET /api/records/{recordId}/summary
func (h *handler) SummaryStatus(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.summaryRecord(w, r)
	if !ok {
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.tracker.Status(rec.ID))
}

// DismissSummary DELETE /api/records/{recordId}/summary
func (h *handler) DismissSummary(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.summaryRecord(w, r)
	if !ok {
		return
	}
	if !h.tracker.Dismiss(rec.ID) {
		respond.WriteJSON(w, http.StatusConflict, h.tracker.Status(rec.ID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// summaryRecord resolves the {recordId} path variable. Summaries exist only
// for stored records; anything else is answered here and ok is false.
func (h *handler) summaryRecord(w http.ResponseWriter, r *http.Request) (model.CrimeRecord, bool) {
	id := mux.Vars(r)["recordId"]
	if err := validate.NonEmpty("recordId", id); err != nil {
		respond.WriteDomainError(w, err)
		return model.CrimeRecord{}, false
	}
	rec, err := h.records.Get(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return model.CrimeRecord{}, false
	}
	return rec, true
}
