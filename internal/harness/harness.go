package harness

import (
	"fmt"

	"github.com/apptopo/apptopo/internal/topology"
)

// Result is the outcome of executing a scenario.
type Result struct {
	// Valid is the validator's verdict on the assembled configuration.
	Valid bool

	// Errors holds the structured validation errors, empty when Valid.
	Errors []topology.ValidationError

	// Config is the assembled configuration, kept for inspection and for
	// golden comparison of its canonical encoding.
	Config *topology.ApplicationConfiguration
}

// Run executes a scenario: applies the builder steps in order, then runs
// the validator. The returned error covers malformed scenarios only; an
// invalid configuration is a regular Result, not an error.
func Run(scenario *Scenario) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	cfg := topology.NewDefault([]byte(scenario.Steps[0].Module))
	for _, step := range scenario.Steps[1:] {
		switch step.Op {
		case OpAddLogging:
			cfg.AddLogging()
		case OpAddStorage:
			cfg.AddStorage(step.Address)
		case OpSetPort:
			cfg.SetGRPCPort(step.Port)
		}
	}

	errs := topology.Validate(cfg)
	return &Result{
		Valid:  len(errs) == 0,
		Errors: errs,
		Config: cfg,
	}, nil
}

// CheckExpectations compares a result against the scenario's expect clause.
// Returns a list of human-readable mismatches; empty means the scenario
// passed.
func CheckExpectations(scenario *Scenario, result *Result) []string {
	var mismatches []string

	if result.Valid != scenario.Expect.Valid {
		mismatches = append(mismatches,
			fmt.Sprintf("valid: expected %v, got %v", scenario.Expect.Valid, result.Valid))
	}

	if len(scenario.Expect.Codes) > 0 {
		got := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			got = append(got, e.Code)
		}
		if !equalStrings(scenario.Expect.Codes, got) {
			mismatches = append(mismatches,
				fmt.Sprintf("codes: expected %v, got %v", scenario.Expect.Codes, got))
		}
	}

	return mismatches
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
