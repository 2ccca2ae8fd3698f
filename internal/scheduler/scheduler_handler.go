package scheduler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/internal/utils"
)

// Handler exposes the batch jobs for manual triggering.
type Handler struct {
	scheduler *Scheduler
	clock     utils.Clock
}

func NewHandler(scheduler *Scheduler) *Handler {
	return &Handler{scheduler: scheduler, clock: scheduler.clock}
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.scheduler.JobNames()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// TriggerJob runs a job immediately. An optional date query parameter replays
// the job as of that day.
func (h *Handler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobName := vars["jobName"]

	asOf := h.clock.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date",
				Details: "date must be provided as YYYY-MM-DD",
			})
			return
		}
		asOf = parsed
	}

	if err := h.scheduler.RunJob(r.Context(), jobName, asOf); err != nil {
		if errors.Is(err, ErrUnknownJob) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
