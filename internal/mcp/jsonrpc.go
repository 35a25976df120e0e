// Package mcp implements the JSON-RPC 2.0 protocol adapter over the
// dispatch engine.
//
// JSON-RPC 2.0 Spec: https://www.jsonrpc.org/specification
package mcp

import "encoding/json"

// Request represents a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Standard JSON-RPC error codes used by this adapter. The HTTP status each
// maps to is fixed for protocol compatibility: parse error and invalid
// request -> 400, method not found -> 404, internal error -> 500.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

// toolCallParams represents the params of a tools/call request.
type toolCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// resourceReadParams represents the params of a resources/read request.
type resourceReadParams struct {
	URI       string                 `json:"uri"`
	Arguments map[string]interface{} `json:"arguments"`
}
