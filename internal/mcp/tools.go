package mcp

import (
	"encoding/json"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"socialportal/internal/registry"
)

// ResourceScheme is the URI scheme under which resources are published.
// resources/read strips exactly this prefix to recover the resource name.
const ResourceScheme = "social://"

// ResourceURI returns the synthesized URI for a resource name.
func ResourceURI(name string) string {
	return ResourceScheme + "/" + name
}

// BuildTool converts a registry operation into an mcp.Tool with the
// appropriate JSON schema.
func BuildTool(op *registry.Operation) mcpgo.Tool {
	opts := []mcpgo.ToolOption{mcpgo.WithDescription(op.Description)}
	for _, p := range op.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcpgo.NewTool(op.Name, opts...)
}

// buildParamOption maps a declared parameter to the matching mcp-go option.
func buildParamOption(p registry.Param) mcpgo.ToolOption {
	var opts []mcpgo.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcpgo.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcpgo.Required())
	}

	switch p.Type {
	case "number":
		return mcpgo.WithNumber(p.Name, opts...)
	case "boolean":
		return mcpgo.WithBoolean(p.Name, opts...)
	case "array":
		opts = append([]mcpgo.PropertyOption{mcpgo.WithStringItems()}, opts...)
		return mcpgo.WithArray(p.Name, opts...)
	default:
		// string, object, and unknown all pass through as string
		return mcpgo.WithString(p.Name, opts...)
	}
}

// BuildResource converts a registry operation into an mcp.Resource
// annotated with its synthesized URI.
func BuildResource(op *registry.Operation) mcpgo.Resource {
	return mcpgo.Resource{
		URI:         ResourceURI(op.Name),
		Name:        op.Name,
		Description: op.Description,
		MIMEType:    "application/json",
	}
}

// stringifyResult renders an executor result as the text of a content
// block. Strings pass through; everything else becomes pretty JSON.
func stringifyResult(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
