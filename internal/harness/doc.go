// Package harness executes declarative build-then-validate scenarios.
//
// A scenario is a YAML file describing a sequence of builder operations and
// the expected validation outcome:
//
//	name: duplicate_logging
//	description: two log nodes collide on the conventional name
//	steps:
//	  - op: default
//	    module: "counter module bytes"
//	  - op: add_logging
//	  - op: add_logging
//	expect:
//	  valid: false
//	  codes: ["E201"]
//
// Scenarios are conformance tests for the topology builder and validator:
// they pin down the observable contract (which configurations pass, which
// error codes fire) without reaching into either implementation. Golden
// comparison of the canonical configuration encoding guards against
// accidental changes to the assembled shape.
package harness
