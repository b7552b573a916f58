package topology

// Summary is the operator-facing view of an assembled configuration, used
// by the describe command and by golden-file comparison in the harness.
// Fields serialize deterministically for a given configuration.
type Summary struct {
	InitialNode string        `json:"initial_node"`
	GRPCPort    uint16        `json:"grpc_port,omitempty"`
	Fingerprint string        `json:"fingerprint"`
	Nodes       []NodeSummary `json:"nodes"`
}

// NodeSummary describes one node without exposing module bytes.
type NodeSummary struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	ModuleSize int    `json:"module_size,omitempty"` // wasm nodes only
	Address    string `json:"address,omitempty"`     // storage proxy nodes only
}

// Summarize renders a configuration into its Summary. Nodes appear in
// insertion order.
func Summarize(c *ApplicationConfiguration) (*Summary, error) {
	fp, err := Fingerprint(c)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		InitialNode: c.InitialNode,
		GRPCPort:    c.GRPCPort,
		Fingerprint: fp,
		Nodes:       make([]NodeSummary, 0, len(c.NodeConfigs)),
	}
	for _, nc := range c.NodeConfigs {
		ns := NodeSummary{Name: nc.Name, Kind: KindName(nc.Kind)}
		switch k := nc.Kind.(type) {
		case WasmCode:
			ns.ModuleSize = len(k.ModuleBytes)
		case StorageProxy:
			ns.Address = k.Address
		}
		s.Nodes = append(s.Nodes, ns)
	}
	return s, nil
}
