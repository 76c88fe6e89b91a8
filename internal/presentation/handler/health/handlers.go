package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/hilthontt/roomly/internal/infrastructure/json"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
)

const checkTimeout = 2 * time.Second

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

type Handler struct {
	startTime time.Time
	checks    map[string]Check
	logger    logging.Logger
}

func NewHandler(logger logging.Logger) *Handler {
	return &Handler{
		startTime: time.Now(),
		checks:    make(map[string]Check),
		logger:    logger,
	}
}

// AddCheck registers a readiness check. Not safe to call once serving.
func (h *Handler) AddCheck(name string, check Check) {
	h.checks[name] = check
}

// GetHealth godoc
// @Summary      Liveness check
// @Description  Returns the status of the API process, including uptime and current timestamp
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is alive"
// @Router       /health [get]
// @Router       /healthz [get]
// @Router       /live [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, h.response("ok", nil))
}

// GetReady godoc
// @Summary      Readiness check
// @Description  Runs the dependency checks (store, broker)
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is ready"
// @Failure      503 {object} healthResponse "A dependency is unavailable"
// @Router       /ready [get]
func (h *Handler) GetReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			h.logger.Warn(logging.General, logging.ExternalService, "readiness check failed", map[logging.ExtraKey]any{
				"check":              name,
				logging.ErrorMessage: err.Error(),
			})
			continue
		}
		results[name] = "ok"
	}

	if status != http.StatusOK {
		json.Write(w, status, h.response("unhealthy", results))
		return
	}

	json.Write(w, status, h.response("ok", results))
}

func (h *Handler) response(status string, checks map[string]string) healthResponse {
	return healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    checks,
	}
}
