package topology

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for content-addressed configuration identity.
// Version suffix enables future algorithm migration.
const fingerprintDomain = "apptopo/config/v1"

// MarshalCanonical renders the configuration as canonical JSON for
// content-addressed identity. The encoding is deterministic:
//
//  1. Object keys are emitted in sorted order
//  2. Strings are NFC normalized at the serialization boundary
//  3. HTML escaping is disabled (< > & are NOT escaped)
//  4. Wasm module bytes are folded in as a SHA-256 digest rather than
//     embedded, so the fingerprint stays small regardless of module size
//
// The same configuration always produces the same bytes, so the output is
// safe to hash and to compare in golden tests.
func MarshalCanonical(c *ApplicationConfiguration) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"grpc_port":`)
	fmt.Fprintf(&buf, "%d", c.GRPCPort)

	buf.WriteString(`,"initial_node":`)
	name, err := canonicalString(c.InitialNode)
	if err != nil {
		return nil, fmt.Errorf("initial_node: %w", err)
	}
	buf.Write(name)

	buf.WriteString(`,"node_configs":[`)
	for i := range c.NodeConfigs {
		if i > 0 {
			buf.WriteByte(',')
		}
		entry, err := canonicalNode(c.NodeConfigs[i])
		if err != nil {
			return nil, fmt.Errorf("node_configs[%d]: %w", i, err)
		}
		buf.Write(entry)
	}
	buf.WriteString("]}")

	return buf.Bytes(), nil
}

// Fingerprint computes the content-addressed identity of a configuration:
// SHA256(domain || 0x00 || canonical JSON), hex encoded. The null byte
// separator prevents domain/data boundary ambiguity.
func Fingerprint(c *ApplicationConfiguration) (string, error) {
	canonical, err := MarshalCanonical(c)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// canonicalNode encodes one node config with its keys in sorted order.
// Per-kind key sets: wasm -> kind, module_sha256, name;
// log_sink -> kind, name; storage_proxy -> address, kind, name.
func canonicalNode(nc NodeConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	switch k := nc.Kind.(type) {
	case WasmCode:
		sum := sha256.Sum256(k.ModuleBytes)
		buf.WriteString(`"kind":"wasm","module_sha256":"`)
		buf.WriteString(hex.EncodeToString(sum[:]))
		buf.WriteString(`"`)
	case LogSink:
		buf.WriteString(`"kind":"log_sink"`)
	case StorageProxy:
		addr, err := canonicalString(k.Address)
		if err != nil {
			return nil, fmt.Errorf("address: %w", err)
		}
		buf.WriteString(`"address":`)
		buf.Write(addr)
		buf.WriteString(`,"kind":"storage_proxy"`)
	default:
		return nil, fmt.Errorf("unsupported node kind: %T", nc.Kind)
	}

	buf.WriteString(`,"name":`)
	name, err := canonicalString(nc.Name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	buf.Write(name)

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// canonicalString produces a canonical JSON string: NFC normalized, no HTML
// escaping.
func canonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}
