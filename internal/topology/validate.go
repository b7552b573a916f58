package topology

import (
	"fmt"
	"log/slog"
)

// Validation error codes (E200-E299)
const (
	// ErrDuplicateNodeName: two node configs share a name
	ErrDuplicateNodeName = "E201"

	// ErrEntryNodeUnresolved: initial node names no node, or a node that
	// does not carry Wasm code
	ErrEntryNodeUnresolved = "E202"

	// ErrNoNodes: the node config sequence is empty
	ErrNoNodes = "E203"
)

// ValidationError represents a structural violation in an assembled
// configuration.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks the structural invariants of an assembled configuration:
// node name uniqueness and a resolvable Wasm entry node.
//
// The node sequence is walked once in insertion order. The first duplicate
// name is terminal - nothing after it is reported, because every later check
// assumes unique names. Without duplicates, all remaining violations are
// collected.
//
// Validate never mutates the configuration and is safe to call concurrently
// on a configuration no writer is touching.
func Validate(c *ApplicationConfiguration) []ValidationError {
	var errs []ValidationError

	// E203: empty config can never resolve an entry node
	if len(c.NodeConfigs) == 0 {
		errs = append(errs, ValidationError{
			Field:   "node_configs",
			Message: "at least one node config is required",
			Code:    ErrNoNodes,
		})
	}

	seen := make(map[string]bool, len(c.NodeConfigs))
	wasm := make(map[string]bool)
	for i, nc := range c.NodeConfigs {
		// E201: duplicate node config name
		if seen[nc.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("node_configs[%d].name", i),
				Message: fmt.Sprintf("duplicate node config name %q", nc.Name),
				Code:    ErrDuplicateNodeName,
			})
			return errs
		}
		seen[nc.Name] = true
		if _, ok := nc.Kind.(WasmCode); ok {
			wasm[nc.Name] = true
		}
	}

	// E202: the entry node must name a Wasm node. A name that matches a
	// log sink or storage proxy fails the same way as a name that matches
	// nothing.
	if !wasm[c.InitialNode] {
		errs = append(errs, ValidationError{
			Field:   "initial_node",
			Message: fmt.Sprintf("initial node %q does not name a Wasm node", c.InitialNode),
			Code:    ErrEntryNodeUnresolved,
		})
	}

	return errs
}

// IsValid reports whether the configuration is safe to hand to a launcher.
//
// The boolean is the entire contract. Failure detail is emitted through the
// log for operator visibility only; callers that want structured diagnostics
// should use Validate directly.
func IsValid(c *ApplicationConfiguration) bool {
	errs := Validate(c)
	for _, e := range errs {
		slog.Error("invalid application configuration",
			"code", e.Code,
			"field", e.Field,
			"detail", e.Message)
	}
	return len(errs) == 0
}
