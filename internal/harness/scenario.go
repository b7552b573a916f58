package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Builder operation names usable in scenario steps.
const (
	OpDefault    = "default"
	OpAddLogging = "add_logging"
	OpAddStorage = "add_storage"
	OpSetPort    = "set_port"
)

// Scenario defines a conformance test scenario: a sequence of builder
// operations plus the expected validation outcome.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps lists builder operations applied in order. The first step must
	// be "default" - every configuration starts from the one-shot default
	// construction.
	Steps []Step `yaml:"steps"`

	// Expect is the expected validation outcome.
	Expect Expect `yaml:"expect"`
}

// Step is one builder operation.
type Step struct {
	// Op is one of default, add_logging, add_storage, set_port.
	Op string `yaml:"op"`

	// Module holds the Wasm module bytes, verbatim (op: default only).
	// May be empty - the builder accepts empty module bytes.
	Module string `yaml:"module,omitempty"`

	// Address is the storage connection string (op: add_storage only).
	Address string `yaml:"address,omitempty"`

	// Port is the gRPC port (op: set_port only).
	Port uint16 `yaml:"port,omitempty"`
}

// Expect specifies the expected validation outcome.
type Expect struct {
	// Valid is the expected IsValid result.
	Valid bool `yaml:"valid"`

	// Codes lists the expected validation error codes, in order.
	// Only checked when non-empty.
	Codes []string `yaml:"codes,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if s.Steps[0].Op != OpDefault {
		return fmt.Errorf("first step must be %q, got %q", OpDefault, s.Steps[0].Op)
	}
	for i, step := range s.Steps {
		switch step.Op {
		case OpDefault:
			if i != 0 {
				return fmt.Errorf("step %d: %q is only allowed as the first step", i, OpDefault)
			}
		case OpAddLogging, OpAddStorage, OpSetPort:
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}
	return nil
}
