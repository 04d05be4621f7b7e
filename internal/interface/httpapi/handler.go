package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mission-ingestion-service/internal/domain/entity"
	"mission-ingestion-service/internal/usecase"
	"mission-ingestion-service/pkg/logger"
	"mission-ingestion-service/pkg/metrics"
)

const bodyField = "body"

// Options configures the HTTP surface.
type Options struct {
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	// MetricsHandler is mounted on /metrics when non-nil.
	MetricsHandler http.Handler
}

// Handler serves the mission ingestion API.
type Handler struct {
	receiver usecase.MissionReceiver
	metrics  *metrics.Metrics
	logger   logger.Logger
	opts     Options
}

// NewHandler creates a new API handler
func NewHandler(receiver usecase.MissionReceiver, m *metrics.Metrics, log logger.Logger, opts Options) *Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 20 * time.Second
	}
	return &Handler{
		receiver: receiver,
		metrics:  m,
		logger:   log,
		opts:     opts,
	}
}

// Routes builds the router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(h.logger),
		requestMetrics(h.metrics),
		middleware.Recoverer,
		middleware.Timeout(h.opts.RequestTimeout),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", h.health)
	r.Post("/mission", h.createMission)
	if h.opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", h.opts.MetricsHandler)
	}

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.receiver.Health())
}

func (h *Handler) createMission(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeJSONBody(w, r, h.opts.MaxBodyBytes)
	if err != nil {
		h.logger.Debug("Rejected undecodable mission body", "error", err)
		writeDecodeError(w, err)
		return
	}

	payload, ok := raw.(map[string]interface{})
	if !ok {
		writeViolations(w, entity.ValidationErrors{{
			Field:   bodyField,
			Kind:    entity.ViolationWrongType,
			Message: usecase.MsgInvalidType,
		}})
		return
	}

	receipt, err := h.receiver.Receive(payload)
	if err != nil {
		var violations entity.ValidationErrors
		if errors.As(err, &violations) {
			writeViolations(w, violations)
			return
		}
		h.logger.Error("Failed to receive mission", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}
