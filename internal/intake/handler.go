// internal/intake/handler.go
package intake

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"intake-gateway/internal/common/auth"
	"intake-gateway/internal/common/errors"
	"intake-gateway/internal/common/httpx"
	"intake-gateway/internal/common/logger"
	"intake-gateway/internal/models"
)

// Handler exposes the intake service over HTTP.
type Handler struct {
	service *Service
	limiter Limiter
	logger  logger.Logger
}

func NewHandler(service *Service, limiter Limiter, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		limiter: limiter,
		logger:  log,
	}
}

// Routes mounts the intake endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/intake", h.handleSubmit)
	r.Get("/submissions", h.handleList)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(r.Context(), clientIP(r)) {
		httpx.WriteError(w, errors.NewRateLimitedError())
		return
	}

	var req models.SubmitRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.WriteError(w, errors.NewValidationError("Invalid JSON body"))
		return
	}

	resp, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For is "client, proxy1, proxy2" behind chained proxies;
	// only the first entry identifies the caller.
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
