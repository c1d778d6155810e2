// internal/mcp/client.go
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// DefaultMethod makes a bare proxied call a safe introspection request.
const DefaultMethod = "tools/list"

// RPCError is a protocol-level error the tool server returned inside a
// well-formed JSON-RPC response. Only its message ever reaches a caller.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return e.Message
}

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Client speaks JSON-RPC 2.0 to the internal tool server over HTTPS,
// attaching the shared API key as a request header. The key never appears
// in a body and is never echoed back.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	nextID     atomic.Int64
}

func NewClient(baseURL, apiKey string) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	// Seeded from wall clock so ids stay loosely correlated with time in
	// upstream logs; the counter keeps them unique within the process.
	c.nextID.Store(time.Now().UnixMilli())
	return c
}

// Configured reports whether an API key is present. Without one the proxy
// refuses to operate rather than sending unauthenticated calls.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// BaseURL returns the tool server's base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIKey returns the raw shared secret for the config endpoint.
func (c *Client) APIKey() string {
	return c.apiKey
}

// Call forwards one JSON-RPC method call and returns the result payload.
// A missing or null result becomes an empty object so callers can always
// read properties off it. Protocol errors come back as *RPCError; everything
// else (network, non-JSON body) is a transport error. Exactly one outbound
// call, no retries.
func (c *Client) Call(ctx context.Context, method string, params json.RawMessage) (json.RawMessage, error) {
	if method == "" {
		method = DefaultMethod
	}
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mcp", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	if len(rpcResp.Result) == 0 || bytes.Equal(rpcResp.Result, []byte("null")) {
		return json.RawMessage(`{}`), nil
	}
	return rpcResp.Result, nil
}

// ListTools issues a fixed tools/list call and extracts just the tools
// array, degrading to an empty slice on a malformed result shape.
func (c *Client) ListTools(ctx context.Context) ([]json.RawMessage, error) {
	result, err := c.Call(ctx, DefaultMethod, nil)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Tools []json.RawMessage `json:"tools"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil || parsed.Tools == nil {
		return []json.RawMessage{}, nil
	}
	return parsed.Tools, nil
}
