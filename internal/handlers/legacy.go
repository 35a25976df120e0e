// Package handlers contains the legacy flat REST surface and the
// operational endpoints. The flat adapter is a direct call-through to the
// same registry and dispatcher as the JSON-RPC endpoint, so both surfaces
// expose identical operation names and validation rules.
package handlers

import (
	"encoding/json"
	"net/http"

	"socialportal/internal/common"
	"socialportal/internal/config"
	"socialportal/internal/registry"
)

// LegacyHandler serves the flat REST endpoints: GET /tools, GET /resources,
// GET /info, POST /execute.
type LegacyHandler struct {
	dispatcher *registry.Dispatcher
	logger     *common.Logger
}

// NewLegacyHandler creates the flat adapter over the given dispatcher.
func NewLegacyHandler(dispatcher *registry.Dispatcher, logger *common.Logger) *LegacyHandler {
	return &LegacyHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// operationEntry is the flat listing shape: no envelope, one entry per
// operation with its declared parameters.
type operationEntry struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Params      []registry.Param `json:"params"`
}

// executeRequest is the body of POST /execute.
type executeRequest struct {
	ToolName string                 `json:"toolName"`
	Params   map[string]interface{} `json:"params"`
}

// ListTools handles GET /tools. The response is a flat array, no envelope.
func (h *LegacyHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, listEntries(h.dispatcher.Registry().Tools()))
}

// ListResources handles GET /resources.
func (h *LegacyHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, listEntries(h.dispatcher.Registry().Resources()))
}

// Info handles GET /info, static server metadata.
func (h *LegacyHandler) Info(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":      "social-portal",
		"version":   config.GetVersion(),
		"tools":     len(h.dispatcher.Registry().Tools()),
		"resources": len(h.dispatcher.Registry().Resources()),
	})
}

// Execute handles POST /execute with body {toolName, params}. Success
// responds {success:true, result}; every failure responds 400 with
// {success:false, error}.
func (h *LegacyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	stop := common.StartTimer()

	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeFailure(w, "invalid request body: "+err.Error())
		return
	}
	if req.ToolName == "" {
		h.writeFailure(w, "toolName is required")
		return
	}

	h.logger.CallStarted("execute:"+req.ToolName, r.URL.Path)

	inv, err := h.dispatcher.Invoke(r.Context(), req.ToolName, req.Params)
	h.logger.CallFinished("execute:"+req.ToolName, r.URL.Path, stop(), err)

	if err != nil {
		h.writeFailure(w, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  inv.Result,
	})
}

func (h *LegacyHandler) writeFailure(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func listEntries(ops []*registry.Operation) []operationEntry {
	entries := make([]operationEntry, len(ops))
	for i, op := range ops {
		params := op.Params
		if params == nil {
			params = []registry.Param{}
		}
		entries[i] = operationEntry{
			Name:        op.Name,
			Description: op.Description,
			Params:      params,
		}
	}
	return entries
}
