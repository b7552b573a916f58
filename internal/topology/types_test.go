package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindNameMatchesConstants(t *testing.T) {
	assert.Equal(t, KindWasm, KindName(WasmCode{}))
	assert.Equal(t, KindLogSink, KindName(LogSink{}))
	assert.Equal(t, KindStorageProxy, KindName(StorageProxy{}))
}
