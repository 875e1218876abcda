package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

const maxRequestBodyBytes = 16 << 10

// StreamServer upgrades a request into a notification stream.
type StreamServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type Handler struct {
	engine    *usecase.Engine
	stream    StreamServer
	location  *time.Location
	now       func() time.Time
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(engine *usecase.Engine, stream StreamServer, location *time.Location, logger *logging.Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		engine:    engine,
		stream:    stream,
		location:  location,
		now:       time.Now,
		logger:    logging.OrDefault(logger).Named("http"),
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeBody reads a bounded JSON body into out and validates it.
func (h *Handler) decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, out any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, out)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Status")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, statusDTO{
		Visible: h.engine.Visible(),
		Pollers: pollerStatusToDTO(h.engine.Status()),
	})
}

func (h *Handler) PutVisibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutVisibility")
	defer span.End()

	var req visibilityRequest
	if err := h.decodeBody(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.engine.SetVisible(*req.Visible)
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"visible": *req.Visible})
}

func (h *Handler) StreamNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.stream == nil {
		writeError(ctx, w, fmt.Errorf("%w: notification stream is disabled", usecase.ErrDependencyUnavailable))
		return
	}
	// The upgrader has already replied when it fails.
	if err := h.stream.ServeWS(w, r); err != nil {
		h.logger.WarnContext(ctx, "notification stream upgrade failed", "error", err)
	}
}
