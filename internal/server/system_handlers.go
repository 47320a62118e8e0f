package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/brenofinance/dashboard/internal/database"
	"github.com/brenofinance/dashboard/internal/scheduler"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const databaseCheckTimeout = 2 * time.Second

// JobRunner is satisfied by *scheduler.Scheduler
type JobRunner interface {
	RunNow(name string) error
}

// SystemHandlers serves process and storage diagnostics
type SystemHandlers struct {
	log       zerolog.Logger
	jobs      JobRunner
	databases []*database.DB
	startedAt time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, jobs JobRunner, databases []*database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		jobs:      jobs,
		databases: databases,
		startedAt: time.Now(),
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	Status        string            `json:"status"` // "healthy" or "degraded"
	CPUPercent    float64           `json:"cpu_percent"`
	RAMPercent    float64           `json:"ram_percent"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Databases     map[string]string `json:"databases"` // name -> "ok" or error text
}

// HandleSystemStatus handles GET /system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:        "healthy",
		CPUPercent:    cpuPercent,
		RAMPercent:    ramPercent,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Databases:     make(map[string]string, len(h.databases)),
	}

	for _, db := range h.databases {
		if db == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(r.Context(), databaseCheckTimeout)
		err := db.QuickCheck(ctx)
		cancel()
		if err != nil {
			h.log.Warn().Err(err).Str("database", db.Name()).Msg("Database quick check failed")
			response.Databases[db.Name()] = err.Error()
			response.Status = "degraded"
			continue
		}
		response.Databases[db.Name()] = "ok"
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleTriggerJob handles POST /system/jobs/{name}
func (h *SystemHandlers) HandleTriggerJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.jobs.RunNow(name); err != nil {
		if errors.Is(err, scheduler.ErrUnknownJob) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Unknown job"})
			return
		}
		h.log.Error().Err(err).Str("job", name).Msg("Triggered job failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Job failed"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"job": name, "status": "completed"})
}

// getSystemStats samples CPU over 100ms and reads memory usage
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
