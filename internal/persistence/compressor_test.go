package persistence

import (
	"leadsdesk/internal/structures"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compressorConfig(level string, maxSize uint64) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{Compression: level, MaxSnapshotSize: maxSize},
	}
}

func snapshotPayload(ids int) []byte {
	var b strings.Builder
	b.WriteString(`{"version":1,"slots":{"viewedLeads":[`)
	for i := 0; i < ids; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`"lead_0000`)
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteByte('"')
	}
	b.WriteString(`]}}`)
	return []byte(b.String())
}

func TestZstdCompression_RoundtripPerLevel(t *testing.T) {
	payload := snapshotPayload(5000)

	for _, level := range []string{"", "fastest", "default", "better", "best"} {
		t.Run("level="+level, func(t *testing.T) {
			c, err := NewZstdCompressor(compressorConfig(level, 0))
			require.NoError(t, err)
			defer c.Close()

			compressed, err := c.Compress(payload)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(payload)/2)

			decompressed, err := c.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, decompressed)
		})
	}
}

func TestZstdCompression_EmptySnapshot(t *testing.T) {
	c, err := NewZstdCompressor(compressorConfig("", 0))
	require.NoError(t, err)
	defer c.Close()

	compressed, err := c.Compress([]byte{})
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestZstdCompression_CorruptSnapshot(t *testing.T) {
	c, err := NewZstdCompressor(compressorConfig("", 0))
	require.NoError(t, err)
	defer c.Close()

	for _, data := range [][]byte{[]byte(`{"viewedLeads":[]}`), {0xff, 0xfe, 0xfd, 0xfc, 0x00, 0x01}} {
		_, err = c.Decompress(data)
		assert.ErrorContains(t, err, "corrupt snapshot")
	}
}

func TestZstdCompression_SnapshotOverLimit(t *testing.T) {
	big, err := NewZstdCompressor(compressorConfig("fastest", 0))
	require.NoError(t, err)
	defer big.Close()
	compressed, err := big.Compress(snapshotPayload(20000))
	require.NoError(t, err)

	small, err := NewZstdCompressor(compressorConfig("fastest", 1024))
	require.NoError(t, err)
	defer small.Close()

	_, err = small.Decompress(compressed)
	assert.Error(t, err)
}

func TestNewZstdCompressor_UnknownLevel(t *testing.T) {
	_, err := NewZstdCompressor(compressorConfig("ultra", 0))
	assert.ErrorContains(t, err, `unknown compression level "ultra"`)
}
