package topology

// NewDefault builds the smallest launchable configuration: a single Wasm
// node under the conventional "app" name, designated as the entry node.
// moduleBytes is stored as-is; empty input is allowed.
func NewDefault(moduleBytes []byte) *ApplicationConfiguration {
	return &ApplicationConfiguration{
		NodeConfigs: []NodeConfig{
			{Name: AppNodeName, Kind: WasmCode{ModuleBytes: moduleBytes}},
		},
		InitialNode: AppNodeName,
	}
}

// AddLogging appends a log sink node under the conventional "log" name and
// returns the receiver for chaining.
//
// No collision check happens here: calling AddLogging twice yields two nodes
// named "log", which the validator rejects. See the package comment.
func (c *ApplicationConfiguration) AddLogging() *ApplicationConfiguration {
	c.NodeConfigs = append(c.NodeConfigs, NodeConfig{
		Name: LogNodeName,
		Kind: LogSink{},
	})
	return c
}

// AddStorage appends a storage proxy node under the conventional "storage"
// name and returns the receiver for chaining. address is an opaque
// connection string; it is not parsed or checked for well-formedness.
func (c *ApplicationConfiguration) AddStorage(address string) *ApplicationConfiguration {
	c.NodeConfigs = append(c.NodeConfigs, NodeConfig{
		Name: StorageNodeName,
		Kind: StorageProxy{Address: address},
	})
	return c
}

// SetGRPCPort sets the port for the application's network entry point and
// returns the receiver for chaining. The value is not range-checked beyond
// what uint16 can represent, and it never affects validation.
func (c *ApplicationConfiguration) SetGRPCPort(port uint16) *ApplicationConfiguration {
	c.GRPCPort = port
	return c
}
