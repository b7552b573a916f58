// Package manifest loads deployment manifests written in CUE and turns them
// into application configurations.
//
// A manifest names the Wasm module (by file path), and opts in to the
// auxiliary nodes and the gRPC port:
//
//	app: {
//	    name:      "counter"
//	    wasm:      "counter.wasm"
//	    grpc_port: 8080
//	    logging:   true
//	    storage: {
//	        address: "storage.example.com:1784"
//	    }
//	}
//
// Load performs shape checks only (the file parses, the app block decodes,
// the port fits in 16 bits). Build reads the module bytes from disk and
// drives the topology builder; structural validation of the resulting
// configuration stays with the topology validator.
package manifest
