package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apptopo/apptopo/internal/registry"
)

// writeTestManifest writes a manifest and wasm module into a temp dir and
// returns the manifest path.
func writeTestManifest(t *testing.T, cueSrc string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "counter.wasm"), []byte("\x00asm\x01\x00\x00\x00"), 0644))
	path := filepath.Join(dir, "app.cue")
	require.NoError(t, os.WriteFile(path, []byte(cueSrc), 0644))
	return path
}

const validManifest = `
package deploy

app: {
	name:      "counter"
	wasm:      "counter.wasm"
	grpc_port: 8080
	logging:   true
	storage: {
		address: "storage.example.com:1784"
	}
}
`

const invalidManifest = `
package deploy

app: {
	name:       "counter"
	wasm:       "counter.wasm"
	logging:    true
	entry_node: "log"
}
`

func TestValidateValidManifest(t *testing.T) {
	path := writeTestManifest(t, validManifest)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ configuration valid (3 nodes")
}

func TestValidateValidManifestJSON(t *testing.T) {
	path := writeTestManifest(t, validManifest)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, float64(3), data["nodes"])
	assert.NotEmpty(t, data["fingerprint"])
}

func TestValidateInvalidEntryNode(t *testing.T) {
	path := writeTestManifest(t, invalidManifest)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗ configuration invalid")
	assert.Contains(t, buf.String(), "E202")
}

func TestValidateMissingManifest(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.cue")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E301")
}

func TestValidateMissingModule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.cue")
	require.NoError(t, os.WriteFile(path, []byte(`app: wasm: "missing.wasm"`), 0644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E307")
}

func TestValidateRecordsRun(t *testing.T) {
	path := writeTestManifest(t, validManifest)
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "--record", dbPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "recorded run ")

	reg, err := registry.Open(dbPath)
	require.NoError(t, err)
	defer reg.Close()

	runs, err := reg.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "counter", runs[0].AppName)
	assert.True(t, runs[0].Valid)
	assert.Equal(t, 3, runs[0].NodeCount)
	assert.Empty(t, runs[0].Detail)
}

func TestValidateRecordsFailure(t *testing.T) {
	path := writeTestManifest(t, invalidManifest)
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "--record", dbPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	reg, err := registry.Open(dbPath)
	require.NoError(t, err)
	defer reg.Close()

	runs, err := reg.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Valid)
	assert.Contains(t, runs[0].Detail, "E202")
}
