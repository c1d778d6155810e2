// internal/mcp/handler.go
package mcp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "intake-gateway/internal/common/errors"
	"intake-gateway/internal/common/httpx"
	"intake-gateway/internal/common/logger"
	"intake-gateway/internal/common/metrics"
)

// Handler exposes the tool-proxy surface. All routes sit behind the
// upstream authentication gate; the proxy itself performs no authorization
// beyond refusing to operate without a configured key.
type Handler struct {
	client *Client
	logger logger.Logger
}

func NewHandler(client *Client, log logger.Logger) *Handler {
	return &Handler{client: client, logger: log}
}

// Routes mounts the tool-proxy endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/config", h.handleConfig)
	r.Post("/query", h.handleQuery)
	r.Get("/tools", h.handleTools)
}

// handleConfig hands the tool server's URL and API key to an authenticated
// caller so the key stays out of client bundles.
//
// NOTE: returning the raw shared secret here is a design smell. The gate
// keeps it out of the bundle, but every authenticated caller still receives
// the long-lived key verbatim. A short-lived scoped token would be the
// better contract; kept as-is for compatibility with the existing client.
func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !h.client.Configured() {
		httpx.WriteError(w, apperrors.NewNotConfiguredError("MCP not configured"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"url": h.client.BaseURL(),
		"key": h.client.APIKey(),
	})
}

type queryRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// handleQuery forwards an arbitrary JSON-RPC method call. A bare POST is a
// safe introspection request: method defaults to tools/list, params to {}.
func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.WriteError(w, apperrors.NewValidationError("Invalid JSON body"))
		return
	}

	result, err := h.client.Call(r.Context(), req.Method, req.Params)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			// Only the upstream message crosses the boundary, never the
			// error code or any metadata.
			metrics.UpstreamCalls.WithLabelValues("rejected").Inc()
			httpx.WriteError(w, apperrors.NewUpstreamRejectedError(rpcErr.Message))
			return
		}
		metrics.UpstreamCalls.WithLabelValues("unreachable").Inc()
		h.logger.Error("upstream call failed", map[string]interface{}{
			"method": req.Method,
			"error":  err.Error(),
		})
		httpx.WriteError(w, apperrors.NewUpstreamUnreachableError(err))
		return
	}

	metrics.UpstreamCalls.WithLabelValues("ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}

// handleTools is UI-rendering support: it degrades to an empty tools list
// on a protocol error or malformed shape instead of erroring like query.
func (h *Handler) handleTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.client.ListTools(r.Context())
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"tools": []json.RawMessage{}})
			return
		}
		h.logger.Error("tools list failed", map[string]interface{}{
			"error": err.Error(),
		})
		httpx.WriteJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"tools": tools})
}
