package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// IsValid predicate
// =============================================================================

func TestIsValidDefaultConfig(t *testing.T) {
	assert.True(t, IsValid(NewDefault([]byte("module"))))
}

func TestIsValidDefaultConfigEmptyModule(t *testing.T) {
	// Content is never inspected; an empty module still validates.
	assert.True(t, IsValid(NewDefault(nil)))
}

func TestIsValidWithAllHelpers(t *testing.T) {
	cfg := NewDefault([]byte("x")).
		AddLogging().
		AddStorage("storage.example.com:1784")

	assert.True(t, IsValid(cfg))
}

func TestIsValidEmptyConfig(t *testing.T) {
	assert.False(t, IsValid(&ApplicationConfiguration{}))
}

func TestIsValidEmptyConfigWithInitialNodeSet(t *testing.T) {
	// An empty node sequence fails regardless of the initial_node value.
	cfg := &ApplicationConfiguration{InitialNode: AppNodeName}
	assert.False(t, IsValid(cfg))
}

func TestIsValidDuplicateLogging(t *testing.T) {
	cfg := NewDefault([]byte("x")).AddLogging().AddLogging()
	assert.False(t, IsValid(cfg))
}

func TestIsValidDuplicateStorage(t *testing.T) {
	cfg := NewDefault([]byte("x")).AddStorage("a:1").AddStorage("b:2")
	assert.False(t, IsValid(cfg))
}

func TestIsValidEntryNodeMissing(t *testing.T) {
	cfg := NewDefault([]byte("x"))
	cfg.InitialNode = "nosuchnode"
	assert.False(t, IsValid(cfg))
}

func TestIsValidEntryNodeNotWasm(t *testing.T) {
	// A node with the right name exists but carries no Wasm code.
	cfg := NewDefault([]byte("x")).AddLogging()
	cfg.InitialNode = LogNodeName
	assert.False(t, IsValid(cfg))

	cfg = NewDefault([]byte("x")).AddStorage("a:1")
	cfg.InitialNode = StorageNodeName
	assert.False(t, IsValid(cfg))
}

func TestIsValidExtraWasmNodesPermitted(t *testing.T) {
	// Only the entry node's kind is constrained; additional Wasm nodes
	// are allowed as long as names stay unique.
	cfg := NewDefault([]byte("x"))
	cfg.NodeConfigs = append(cfg.NodeConfigs, NodeConfig{
		Name: "worker",
		Kind: WasmCode{ModuleBytes: []byte("y")},
	})
	assert.True(t, IsValid(cfg))
}

func TestIsValidEntryNodeCanBeAnyWasmNode(t *testing.T) {
	cfg := NewDefault([]byte("x"))
	cfg.NodeConfigs = append(cfg.NodeConfigs, NodeConfig{
		Name: "worker",
		Kind: WasmCode{ModuleBytes: []byte("y")},
	})
	cfg.InitialNode = "worker"
	assert.True(t, IsValid(cfg))
}

func TestIsValidPortNeverAffectsOutcome(t *testing.T) {
	for _, port := range []uint16{0, 1, 8080, 65535} {
		valid := NewDefault([]byte("x")).SetGRPCPort(port)
		assert.True(t, IsValid(valid), "port %d", port)

		invalid := NewDefault([]byte("x")).AddLogging().AddLogging().SetGRPCPort(port)
		assert.False(t, IsValid(invalid), "port %d", port)
	}
}

func TestIsValidCaseSensitiveNames(t *testing.T) {
	// Names compare by exact byte equality; differing case is no duplicate.
	cfg := NewDefault([]byte("x"))
	cfg.NodeConfigs = append(cfg.NodeConfigs, NodeConfig{Name: "App", Kind: LogSink{}})
	assert.True(t, IsValid(cfg))
}

// =============================================================================
// Validate diagnostics
// =============================================================================

func TestValidateDuplicateReportsFirstOccurrence(t *testing.T) {
	cfg := NewDefault([]byte("x")).AddLogging().AddLogging().AddLogging()

	errs := Validate(cfg)
	require.Len(t, errs, 1, "the first duplicate is terminal")
	assert.Equal(t, ErrDuplicateNodeName, errs[0].Code)
	assert.Equal(t, "node_configs[2].name", errs[0].Field)
	assert.Contains(t, errs[0].Message, `"log"`)
}

func TestValidateDuplicateMasksEntryNodeCheck(t *testing.T) {
	// With a duplicate present, validation stops before the entry-node
	// check; later checks assume unique names.
	cfg := NewDefault([]byte("x")).AddLogging().AddLogging()
	cfg.InitialNode = "nosuchnode"

	errs := Validate(cfg)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateNodeName, errs[0].Code)
}

func TestValidateUnresolvedEntryNode(t *testing.T) {
	cfg := NewDefault([]byte("x"))
	cfg.InitialNode = "ghost"

	errs := Validate(cfg)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrEntryNodeUnresolved, errs[0].Code)
	assert.Equal(t, "initial_node", errs[0].Field)
	assert.Contains(t, errs[0].Message, `"ghost"`)
}

func TestValidateEmptyConfig(t *testing.T) {
	errs := Validate(&ApplicationConfiguration{})
	require.Len(t, errs, 2)
	assert.Equal(t, ErrNoNodes, errs[0].Code)
	assert.Equal(t, ErrEntryNodeUnresolved, errs[1].Code)
}

func TestValidateValidConfigNoErrors(t *testing.T) {
	cfg := NewDefault([]byte("x")).AddLogging().AddStorage("a:1").SetGRPCPort(9000)
	assert.Empty(t, Validate(cfg))
}

func TestValidateDoesNotMutate(t *testing.T) {
	cfg := NewDefault([]byte("x")).AddLogging()
	before := nodeNames(cfg)

	Validate(cfg)
	IsValid(cfg)

	assert.Equal(t, before, nodeNames(cfg))
	assert.Equal(t, AppNodeName, cfg.InitialNode)
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{
		Field:   "initial_node",
		Message: `initial node "ghost" does not name a Wasm node`,
		Code:    ErrEntryNodeUnresolved,
	}
	assert.Equal(t, `[E202] initial_node: initial node "ghost" does not name a Wasm node`, err.Error())
}
