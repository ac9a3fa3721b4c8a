package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojas-mohbansi/memkit/pkg/types"
)

func TestIdentityMap_Construction(t *testing.T) {
	m := NewIdentityMap(0x2000)

	assert.Equal(t, uint32(0x2000|PagePresent|PageWrite), m.Directory[0])
	for i := 1; i < pageTableEntries; i++ {
		require.Zero(t, m.Directory[i], "directory slot %d", i)
	}

	assert.Equal(t, uint32(PagePresent|PageWrite), m.Table[0])
	assert.Equal(t, uint32(0x1000|PagePresent|PageWrite), m.Table[1])
	assert.Equal(t, uint32(0x3FF000|PagePresent|PageWrite), m.Table[pageTableEntries-1])
}

func TestIdentityMap_LookupIsIdentity(t *testing.T) {
	m := NewIdentityMap(0x2000)

	for _, va := range []types.Addr{0, 0x1234, 0x100000, 0x3FFFFF} {
		pa, flags, ok := m.Lookup(va)
		require.True(t, ok, "va %s", va)
		assert.Equal(t, va, pa)
		assert.Equal(t, uint32(PagePresent|PageWrite), flags)
	}
}

func TestIdentityMap_UnmappedAboveWindow(t *testing.T) {
	m := NewIdentityMap(0x2000)

	assert.Equal(t, types.Addr(0x400000), m.MappedLimit())
	_, _, ok := m.Lookup(m.MappedLimit())
	assert.False(t, ok)
	_, _, ok = m.Lookup(0xFFFFFFFF)
	assert.False(t, ok)
}
