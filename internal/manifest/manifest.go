package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// Error codes for manifest loading (E300-E399)
const (
	ErrCodeNotFound     = "E301" // manifest path missing or not a file
	ErrCodeLoadFailed   = "E302" // CUE load failed
	ErrCodeBuildFailed  = "E303" // CUE build failed
	ErrCodeNoApp        = "E304" // manifest has no app block
	ErrCodeDecodeFailed = "E305" // app block does not decode
	ErrCodePortRange    = "E306" // grpc_port outside the 16-bit domain
	ErrCodeModuleRead   = "E307" // wasm module file unreadable
)

// LoadError represents an error that occurred while loading or building
// from a manifest.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Manifest is a decoded deployment manifest.
type Manifest struct {
	Name     string
	WasmPath string // as written; resolved against the manifest directory
	GRPCPort uint16
	Logging  bool
	Storage  *StorageSpec

	// EntryNode optionally overrides the entry node name. Empty means the
	// conventional default. The override is not resolved here; an override
	// naming a non-Wasm node surfaces as a validation failure.
	EntryNode string

	// dir is the manifest's directory, kept for resolving WasmPath.
	dir string
}

// StorageSpec enables the storage proxy node.
type StorageSpec struct {
	Address string `json:"address"`
}

// appBlock mirrors the manifest's app block for CUE decoding.
type appBlock struct {
	Name      string       `json:"name"`
	Wasm      string       `json:"wasm"`
	GRPCPort  int          `json:"grpc_port"`
	Logging   bool         `json:"logging"`
	EntryNode string       `json:"entry_node"`
	Storage   *StorageSpec `json:"storage"`
}

// Load reads and decodes a CUE manifest file.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}

	dir := filepath.Dir(path)

	// Load the single manifest file as a CUE instance.
	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{filepath.Base(path)}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading manifest: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building manifest: %v", err)}
	}

	appVal := value.LookupPath(cue.ParsePath("app"))
	if !appVal.Exists() {
		return nil, &LoadError{Code: ErrCodeNoApp, Message: "manifest has no app block"}
	}

	var app appBlock
	if err := appVal.Decode(&app); err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding app block: %v", err)}
	}
	if app.Wasm == "" {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: "app.wasm is required"}
	}
	if app.GRPCPort < 0 || app.GRPCPort > 65535 {
		return nil, &LoadError{Code: ErrCodePortRange, Message: fmt.Sprintf("app.grpc_port %d outside 0-65535", app.GRPCPort)}
	}

	return &Manifest{
		Name:      app.Name,
		WasmPath:  app.Wasm,
		GRPCPort:  uint16(app.GRPCPort),
		Logging:   app.Logging,
		EntryNode: app.EntryNode,
		Storage:   app.Storage,
		dir:       dir,
	}, nil
}
