// internal/mcp/handler_test.go
package mcp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-gateway/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T, upstreamResponse string, apiKey string) (*chi.Mux, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstreamResponse))
	}))
	t.Cleanup(srv.Close)

	h := NewHandler(NewClient(srv.URL, apiKey), logger.NewNoOpLogger())
	r := chi.NewRouter()
	h.Routes(r)
	return r, srv
}

func do(t *testing.T, router http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// ==========================
// GET /config
// ==========================

func TestHandler_Config_ReturnsURLAndKey(t *testing.T) {
	router, srv := newTestHandler(t, `{}`, "secret-key")

	rec := do(t, router, http.MethodGet, "/config", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := jsonBody(t, rec)
	assert.Equal(t, srv.URL, body["url"])
	assert.Equal(t, "secret-key", body["key"])
}

func TestHandler_Config_UnavailableWithoutKey(t *testing.T) {
	router, _ := newTestHandler(t, `{}`, "")

	rec := do(t, router, http.MethodGet, "/config", nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "MCP not configured", jsonBody(t, rec)["error"])
}

// ==========================
// POST /query
// ==========================

func TestHandler_Query_NoBodyIsSafeIntrospection(t *testing.T) {
	router, _ := newTestHandler(t, `{"jsonrpc":"2.0","id":1,"result":{"tools":[]}}`, "k")

	rec := do(t, router, http.MethodPost, "/query", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tools":[]}`, rec.Body.String())
}

func TestHandler_Query_MissingResultReturnsEmptyObject(t *testing.T) {
	router, _ := newTestHandler(t, `{"jsonrpc":"2.0","id":1}`, "k")

	rec := do(t, router, http.MethodPost, "/query", []byte(`{"method":"tools/list"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestHandler_Query_NullResultReturnsEmptyObject(t *testing.T) {
	router, _ := newTestHandler(t, `{"jsonrpc":"2.0","id":1,"result":null}`, "k")

	rec := do(t, router, http.MethodPost, "/query", []byte(`{"method":"tools/list"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestHandler_Query_UpstreamErrorExposesOnlyMessage(t *testing.T) {
	router, _ := newTestHandler(t,
		`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found","data":{"internal":"trace"}}}`, "k")

	rec := do(t, router, http.MethodPost, "/query", []byte(`{"method":"nope"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := jsonBody(t, rec)
	assert.Equal(t, "Method not found", body["error"])
	assert.NotContains(t, rec.Body.String(), "-32601")
	assert.NotContains(t, rec.Body.String(), "internal")
}

func TestHandler_Query_UnreachableUpstreamIs502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	h := NewHandler(NewClient(srv.URL, "k"), logger.NewNoOpLogger())
	router := chi.NewRouter()
	h.Routes(router)

	rec := do(t, router, http.MethodPost, "/query", []byte(`{}`))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, jsonBody(t, rec)["error"], "MCP server unreachable: ")
}

func TestHandler_Query_NonJSONUpstreamBodyIs502(t *testing.T) {
	router, _ := newTestHandler(t, `<html>bad gateway</html>`, "k")

	rec := do(t, router, http.MethodPost, "/query", []byte(`{}`))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, jsonBody(t, rec)["error"], "MCP server unreachable: ")
}

// ==========================
// GET /tools
// ==========================

func TestHandler_Tools_ReturnsList(t *testing.T) {
	router, _ := newTestHandler(t, `{"jsonrpc":"2.0","id":1,"result":{"tools":[{"name":"a"}]}}`, "k")

	rec := do(t, router, http.MethodGet, "/tools", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := jsonBody(t, rec)
	assert.Len(t, body["tools"], 1)
}

func TestHandler_Tools_DegradesToEmptyOnProtocolError(t *testing.T) {
	router, _ := newTestHandler(t, `{"jsonrpc":"2.0","id":1,"error":{"code":1,"message":"boom"}}`, "k")

	rec := do(t, router, http.MethodGet, "/tools", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := jsonBody(t, rec)
	assert.Equal(t, []interface{}{}, body["tools"])
}

func TestHandler_Tools_DegradesToEmptyOnMissingResult(t *testing.T) {
	router, _ := newTestHandler(t, `{"jsonrpc":"2.0","id":1}`, "k")

	rec := do(t, router, http.MethodGet, "/tools", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{}, jsonBody(t, rec)["tools"])
}

func TestHandler_Tools_TransportFailureIs502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	h := NewHandler(NewClient(srv.URL, "k"), logger.NewNoOpLogger())
	router := chi.NewRouter()
	h.Routes(router)

	rec := do(t, router, http.MethodGet, "/tools", nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotEmpty(t, jsonBody(t, rec)["error"])
}
