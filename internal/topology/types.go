package topology

// Conventional names for node configurations. These form a fixed vocabulary
// used as lookup keys; always reference the constants, never the literals,
// so a typo cannot cause a spurious duplicate-name or unresolved-entry-node
// failure.
const (
	// AppNodeName is the reserved name for the application's entry node.
	AppNodeName = "app"

	// LogNodeName is the reserved name for the log sink node.
	LogNodeName = "log"

	// StorageNodeName is the reserved name for the storage proxy node.
	StorageNodeName = "storage"
)

// NodeKind is the closed set of node configuration variants.
type NodeKind interface {
	// kindMarker is a private method to restrict implementers
	kindMarker()
}

// WasmCode is an executable unit. ModuleBytes is opaque binary content; it
// is never parsed or validated here, and may be empty.
type WasmCode struct {
	ModuleBytes []byte
}

// LogSink is a logging destination. It carries no configuration beyond its
// node name.
type LogSink struct{}

// StorageProxy fronts an external storage backend, addressed by an opaque
// connection string.
type StorageProxy struct {
	Address string
}

func (WasmCode) kindMarker()     {}
func (LogSink) kindMarker()      {}
func (StorageProxy) kindMarker() {}

// Short variant names used in rendered and stored output. Consumers that
// switch on a kind name must use these constants.
const (
	KindWasm         = "wasm"
	KindLogSink      = "log_sink"
	KindStorageProxy = "storage_proxy"
)

// KindName returns the short variant name for a node kind.
func KindName(k NodeKind) string {
	switch k.(type) {
	case WasmCode:
		return KindWasm
	case LogSink:
		return KindLogSink
	case StorageProxy:
		return KindStorageProxy
	default:
		return "unknown"
	}
}

// NodeConfig is one named entry in the application topology.
type NodeConfig struct {
	Name string
	Kind NodeKind
}

// ApplicationConfiguration is the root configuration handed to a launcher.
//
// NodeConfigs preserves insertion order; order carries no meaning beyond
// making the first duplicate deterministic during validation. InitialNode is
// a by-name reference into NodeConfigs, resolved only at validation time -
// while a configuration is being assembled it may transiently point at
// nothing.
//
// The configuration owns its node entries exclusively; nodes are only ever
// appended, never removed or modified in place. A single writer must drive
// assembly; once assembled, concurrent readers are safe.
type ApplicationConfiguration struct {
	NodeConfigs []NodeConfig
	InitialNode string
	GRPCPort    uint16 // 0 means no gRPC entry point
}
