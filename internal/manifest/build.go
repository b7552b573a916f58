package manifest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/apptopo/apptopo/internal/topology"
)

// Build reads the Wasm module from disk and assembles the application
// configuration. This is the only place the deployment tool touches the
// filesystem for module bytes; the topology builder itself never does I/O.
//
// Build does not validate the result - callers run the topology validator
// before launching.
func (m *Manifest) Build() (*topology.ApplicationConfiguration, error) {
	wasmPath := m.WasmPath
	if !filepath.IsAbs(wasmPath) {
		wasmPath = filepath.Join(m.dir, wasmPath)
	}

	moduleBytes, err := os.ReadFile(wasmPath)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeModuleRead,
			Message: fmt.Sprintf("reading wasm module %s: %v", wasmPath, err),
		}
	}
	slog.Info("read wasm module", "path", wasmPath, "bytes", len(moduleBytes))

	cfg := topology.NewDefault(moduleBytes)
	if m.Logging {
		cfg.AddLogging()
	}
	if m.Storage != nil {
		cfg.AddStorage(m.Storage.Address)
	}
	if m.GRPCPort != 0 {
		cfg.SetGRPCPort(m.GRPCPort)
	}
	if m.EntryNode != "" {
		cfg.InitialNode = m.EntryNode
	}
	return cfg, nil
}
