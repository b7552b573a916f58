package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/apptopo/apptopo/internal/topology"
)

// RunWithGolden executes a scenario, checks its expect clause, and compares
// the canonical encoding of the assembled configuration against a golden
// file at testdata/golden/{scenario.Name}.golden.
//
// The canonical encoding is deterministic (sorted keys, NFC strings, module
// bytes folded to a digest), so the golden file pins the exact assembled
// shape.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	for _, mismatch := range CheckExpectations(scenario, result) {
		t.Errorf("scenario %s: %s", scenario.Name, mismatch)
	}

	canonical, err := topology.MarshalCanonical(result.Config)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, canonical)

	return nil
}
