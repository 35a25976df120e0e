// Package registry holds the catalogue of named operations exposed by the
// gateway and the dispatch engine that validates and executes them.
package registry

import "context"

// Handler executes one operation. It receives the full argument map,
// including optional and extra keys beyond the declared schema.
type Handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Param describes one declared parameter of an operation.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string, number, boolean, array, object
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// Operation is a named tool or resource in the catalogue.
type Operation struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// RequiredParams returns the names of all required parameters in
// declaration order.
func (o *Operation) RequiredParams() []string {
	var names []string
	for _, p := range o.Params {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// Registry is the in-memory catalogue of tools and resources. It is
// populated once at startup and read-only afterward, so lookups need no
// locking. Tools and resources share one name namespace but are listed
// separately.
type Registry struct {
	tools     []*Operation
	resources []*Operation
	byName    map[string]*Operation
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]*Operation),
	}
}

// RegisterTool adds a tool to the catalogue. Registering a name twice
// overwrites the earlier entry (last wins) while keeping its position in
// the listing order.
func (r *Registry) RegisterTool(op *Operation) {
	r.tools = r.register(r.tools, &r.resources, op)
}

// RegisterResource adds a read-only resource to the catalogue. Duplicate
// names overwrite like RegisterTool.
func (r *Registry) RegisterResource(op *Operation) {
	r.resources = r.register(r.resources, &r.tools, op)
}

func (r *Registry) register(list []*Operation, other *[]*Operation, op *Operation) []*Operation {
	if existing, ok := r.byName[op.Name]; ok {
		for i, entry := range list {
			if entry == existing {
				list[i] = op
				r.byName[op.Name] = op
				return list
			}
		}
		// Name was registered in the other catalogue; it moves here so a
		// name lists in exactly one catalogue at a time.
		*other = removeOperation(*other, existing)
	}
	r.byName[op.Name] = op
	return append(list, op)
}

func removeOperation(list []*Operation, op *Operation) []*Operation {
	for i, entry := range list {
		if entry == op {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Tools returns all registered tools in registration order.
func (r *Registry) Tools() []*Operation {
	return r.tools
}

// Resources returns all registered resources in registration order.
func (r *Registry) Resources() []*Operation {
	return r.resources
}

// Get returns the operation with the given name across both catalogues.
func (r *Registry) Get(name string) (*Operation, bool) {
	op, ok := r.byName[name]
	return op, ok
}
