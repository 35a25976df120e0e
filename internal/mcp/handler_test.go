package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"socialportal/internal/common"
	"socialportal/internal/registry"
)

func newTestHandler() *Handler {
	reg := registry.New()

	reg.RegisterTool(&registry.Operation{
		Name:        "echo",
		Description: "echoes its arguments",
		Params: []registry.Param{
			{Name: "message", Type: "string", Required: true},
		},
		Handler: func(_ context.Context, args map[string]interface{}) (interface{}, error) {
			return args, nil
		},
	})
	reg.RegisterTool(&registry.Operation{
		Name:        "fail",
		Description: "always fails",
		Handler: func(_ context.Context, _ map[string]interface{}) (interface{}, error) {
			return nil, errors.New("executor blew up")
		},
	})
	reg.RegisterResource(&registry.Operation{
		Name:        "greeting",
		Description: "a plain string resource",
		Handler: func(_ context.Context, _ map[string]interface{}) (interface{}, error) {
			return "hello", nil
		},
	})

	logger := common.NewSilentLogger()
	return NewHandler(registry.NewDispatcher(reg, logger), logger)
}

func postJSONRPC(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unparseable response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestHandler_RejectsNonPost(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestHandler_MalformedEnvelope(t *testing.T) {
	h := newTestHandler()

	// Missing method.
	rec, resp := postJSONRPC(t, h, `{"jsonrpc":"2.0","id":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != CodeInvalidRequest {
		t.Errorf("expected code -32600, got %+v", resp.Error)
	}

	// Wrong version.
	rec, resp = postJSONRPC(t, h, `{"jsonrpc":"1.0","id":1,"method":"tools/list"}`)
	if rec.Code != http.StatusBadRequest || resp.Error.Code != CodeInvalidRequest {
		t.Errorf("expected -32600/400 for wrong version, got %d/%+v", rec.Code, resp.Error)
	}

	// Unparseable body.
	rec, resp = postJSONRPC(t, h, `{nope`)
	if rec.Code != http.StatusBadRequest || resp.Error.Code != CodeParseError {
		t.Errorf("expected -32700/400 for bad JSON, got %d/%+v", rec.Code, resp.Error)
	}
}

func TestHandler_UnknownMethod(t *testing.T) {
	h := newTestHandler()

	rec, resp := postJSONRPC(t, h, `{"jsonrpc":"2.0","id":5,"method":"prompts/list"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != CodeMethodNotFound {
		t.Errorf("expected code -32601, got %+v", resp.Error)
	}
}

func TestHandler_Initialize(t *testing.T) {
	h := newTestHandler()

	rec, resp := postJSONRPC(t, h, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	result := resp.Result.(map[string]interface{})
	if result["protocolVersion"] == "" {
		t.Error("expected protocolVersion in initialize result")
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "social-portal" {
		t.Errorf("unexpected server name %v", info["name"])
	}
}

func TestHandler_ToolsList(t *testing.T) {
	h := newTestHandler()

	_, resp := postJSONRPC(t, h, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	result := resp.Result.(map[string]interface{})
	tools := result["tools"].([]interface{})
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}

	first := tools[0].(map[string]interface{})
	if first["name"] != "echo" {
		t.Errorf("expected echo first, got %v", first["name"])
	}
	if first["inputSchema"] == nil {
		t.Error("expected inputSchema on the listed tool")
	}
}

func TestHandler_ToolsCall_RoundTrip(t *testing.T) {
	h := newTestHandler()

	_, resp := postJSONRPC(t, h,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"message":"hi"}}}`)

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]interface{})
	if len(content) != 1 {
		t.Fatalf("expected one content block, got %d", len(content))
	}
	block := content[0].(map[string]interface{})
	if block["type"] != "text" {
		t.Errorf("expected text block, got %v", block["type"])
	}

	// Non-string results are stringified as pretty JSON.
	var echoed map[string]interface{}
	if err := json.Unmarshal([]byte(block["text"].(string)), &echoed); err != nil {
		t.Fatalf("content text is not JSON: %v", err)
	}
	if echoed["message"] != "hi" {
		t.Errorf("expected echoed message, got %v", echoed["message"])
	}
}

func TestHandler_ToolsCall_DispatchFailure(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"executor error",
			`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"fail","arguments":{}}}`,
			"executor blew up",
		},
		{
			"unknown tool",
			`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"nope","arguments":{}}}`,
			"unknown operation",
		},
		{
			"missing required param",
			`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{}}}`,
			"message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := postJSONRPC(t, h, tt.body)
			if rec.Code != http.StatusInternalServerError {
				t.Errorf("expected 500, got %d", rec.Code)
			}
			if resp.Error == nil || resp.Error.Code != CodeInternalError {
				t.Fatalf("expected code -32603, got %+v", resp.Error)
			}
			data, _ := resp.Error.Data.(string)
			if !strings.Contains(data, tt.want) {
				t.Errorf("expected %q in error data, got %q", tt.want, data)
			}
		})
	}
}

func TestHandler_ResourcesList(t *testing.T) {
	h := newTestHandler()

	_, resp := postJSONRPC(t, h, `{"jsonrpc":"2.0","id":6,"method":"resources/list"}`)
	result := resp.Result.(map[string]interface{})
	resources := result["resources"].([]interface{})
	if len(resources) != 1 {
		t.Fatalf("expected 1 resource, got %d", len(resources))
	}
	entry := resources[0].(map[string]interface{})
	if entry["uri"] != "social:///greeting" {
		t.Errorf("unexpected resource URI %v", entry["uri"])
	}
}

func TestHandler_ResourcesRead(t *testing.T) {
	h := newTestHandler()

	_, resp := postJSONRPC(t, h,
		`{"jsonrpc":"2.0","id":7,"method":"resources/read","params":{"uri":"social:///greeting"}}`)

	result := resp.Result.(map[string]interface{})
	contents := result["contents"].([]interface{})
	if len(contents) != 1 {
		t.Fatalf("expected one contents entry, got %d", len(contents))
	}
	entry := contents[0].(map[string]interface{})
	if entry["uri"] != "social:///greeting" {
		t.Errorf("expected original URI echoed, got %v", entry["uri"])
	}
	if entry["text"] != "hello" {
		t.Errorf("expected raw string text, got %v", entry["text"])
	}
}

func TestHandler_ResourcesRead_WrongScheme(t *testing.T) {
	h := newTestHandler()

	rec, resp := postJSONRPC(t, h,
		`{"jsonrpc":"2.0","id":8,"method":"resources/read","params":{"uri":"other:///greeting"}}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	data, _ := resp.Error.Data.(string)
	if !strings.Contains(data, "unknown operation") {
		t.Errorf("expected unknown-operation error, got %q", data)
	}
}
