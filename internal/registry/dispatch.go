package registry

import (
	"context"
	"fmt"
	"time"

	"socialportal/internal/common"
)

// Invocation records a single dispatched call. It is created at dispatch
// start, handed to the logger, and discarded once the response is sent.
type Invocation struct {
	Name     string
	Args     map[string]interface{}
	Result   interface{}
	Duration time.Duration
}

// Dispatcher validates and executes operations from a registry. Validation
// is presence-only: required parameters must exist in the argument map, but
// value types are not checked and extra keys pass through to the executor
// untouched.
type Dispatcher struct {
	registry *Registry
	logger   *common.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(reg *Registry, logger *common.Logger) *Dispatcher {
	return &Dispatcher{registry: reg, logger: logger}
}

// Registry returns the underlying catalogue.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Invoke looks up the named operation, validates required parameters,
// executes it, and returns the timed result. Executor failures are
// normalized to an error message plus duration; no internal error type
// crosses this boundary. Exactly one started and one finished event is
// logged per invocation.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]interface{}) (*Invocation, error) {
	op, ok := d.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown operation: %s", name)
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	for _, param := range op.RequiredParams() {
		if _, present := args[param]; !present {
			return nil, fmt.Errorf("operation %s: missing required parameter: %s", name, param)
		}
	}

	d.logger.ToolStarted(name, args)
	stop := common.StartTimer()

	result, err := op.Handler(ctx, args)
	elapsed := stop()

	d.logger.ToolFinished(name, elapsed, err)

	if err != nil {
		return nil, fmt.Errorf("operation %s failed: %s", name, err.Error())
	}

	return &Invocation{
		Name:     name,
		Args:     args,
		Result:   result,
		Duration: elapsed,
	}, nil
}
