package mcp

import (
	"encoding/json"
	"net/http"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"socialportal/internal/common"
	"socialportal/internal/config"
	"socialportal/internal/registry"
)

// protocolVersion is the MCP protocol revision this adapter speaks.
const protocolVersion = "2024-11-05"

// Handler is the HTTP handler for the JSON-RPC endpoint. It is stateless:
// each POST body is parsed, dispatched, and answered independently.
type Handler struct {
	dispatcher *registry.Dispatcher
	logger     *common.Logger
}

// NewHandler creates the JSON-RPC adapter over the given dispatcher.
func NewHandler(dispatcher *registry.Dispatcher, logger *common.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ServeHTTP handles one JSON-RPC request. The error code to HTTP status
// mapping is fixed: -32700/-32600 -> 400, -32601 -> 404, -32603 -> 500.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stop := common.StartTimer()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.CallFinished("(unparseable)", r.URL.Path, stop(), err)
		h.writeError(w, http.StatusBadRequest, nil, CodeParseError, "parse error", nil)
		return
	}

	h.logger.CallStarted(req.Method, r.URL.Path)

	if req.JSONRPC != "2.0" || req.Method == "" {
		h.logger.CallFinished(req.Method, r.URL.Path, stop(), errInvalidEnvelope)
		h.writeError(w, http.StatusBadRequest, req.ID, CodeInvalidRequest, "invalid request", nil)
		return
	}

	var (
		result interface{}
		err    error
	)

	switch req.Method {
	case "initialize":
		result = h.initializeResult()
	case "tools/list":
		result = h.toolsList()
	case "tools/call":
		result, err = h.toolsCall(r, req.Params)
	case "resources/list":
		result = h.resourcesList()
	case "resources/read":
		result, err = h.resourcesRead(r, req.Params)
	default:
		h.logger.CallFinished(req.Method, r.URL.Path, stop(), errMethodNotFound)
		h.writeError(w, http.StatusNotFound, req.ID, CodeMethodNotFound, "Method not found", nil)
		return
	}

	elapsed := stop()
	h.logger.CallFinished(req.Method, r.URL.Path, elapsed, err)

	if err != nil {
		h.writeError(w, http.StatusInternalServerError, req.ID, CodeInternalError, "Internal error", err.Error())
		return
	}

	h.writeResult(w, req.ID, result)
}

var (
	errInvalidEnvelope = jsonError("missing jsonrpc version or method")
	errMethodNotFound  = jsonError("method not found")
)

type jsonError string

func (e jsonError) Error() string { return string(e) }

// initializeResult returns static server metadata. No side effects.
func (h *Handler) initializeResult() map[string]interface{} {
	return map[string]interface{}{
		"protocolVersion": protocolVersion,
		"serverInfo": map[string]interface{}{
			"name":    "social-portal",
			"version": config.GetVersion(),
		},
		"capabilities": map[string]interface{}{
			"tools":     map[string]interface{}{},
			"resources": map[string]interface{}{},
		},
	}
}

// toolsList returns the tool catalogue without invoking any executor.
func (h *Handler) toolsList() map[string]interface{} {
	ops := h.dispatcher.Registry().Tools()
	tools := make([]mcpgo.Tool, len(ops))
	for i, op := range ops {
		tools[i] = BuildTool(op)
	}
	return map[string]interface{}{"tools": tools}
}

// toolsCall dispatches a tool and wraps the result as one text content block.
func (h *Handler) toolsCall(r *http.Request, params json.RawMessage) (interface{}, error) {
	var p toolCallParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, jsonError("invalid tools/call params: " + err.Error())
	}

	inv, err := h.dispatcher.Invoke(r.Context(), p.Name, p.Arguments)
	if err != nil {
		return nil, err
	}

	return &mcpgo.CallToolResult{
		Content: []mcpgo.Content{mcpgo.NewTextContent(stringifyResult(inv.Result))},
	}, nil
}

// resourcesList returns the resource catalogue, each entry annotated with
// its synthesized URI.
func (h *Handler) resourcesList() map[string]interface{} {
	ops := h.dispatcher.Registry().Resources()
	resources := make([]mcpgo.Resource, len(ops))
	for i, op := range ops {
		resources[i] = BuildResource(op)
	}
	return map[string]interface{}{"resources": resources}
}

// resourcesRead strips the resource URI scheme to recover the operation
// name and dispatches it. A URI outside the scheme falls through to the
// dispatcher's unknown-operation error.
func (h *Handler) resourcesRead(r *http.Request, params json.RawMessage) (interface{}, error) {
	var p resourceReadParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, jsonError("invalid resources/read params: " + err.Error())
	}
	if p.URI == "" {
		return nil, jsonError("resources/read requires a uri")
	}

	name := strings.TrimPrefix(p.URI, ResourceScheme+"/")

	inv, err := h.dispatcher.Invoke(r.Context(), name, p.Arguments)
	if err != nil {
		return nil, err
	}

	return &mcpgo.ReadResourceResult{
		Contents: []mcpgo.ResourceContents{
			mcpgo.TextResourceContents{
				URI:      p.URI,
				MIMEType: "application/json",
				Text:     stringifyResult(inv.Result),
			},
		},
	}, nil
}

func (h *Handler) writeResult(w http.ResponseWriter, id, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, id interface{}, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	})
}
