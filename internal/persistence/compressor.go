package persistence

import (
	"fmt"
	"leadsdesk/internal/persistence/interfaces"
	"leadsdesk/internal/structures"

	"github.com/klauspost/compress/zstd"
)

const defaultMaxSnapshotSize = 256 << 20

// ZstdCompression compresses whole snapshots in one call; slot snapshots
// are small, so a single encoder goroutine is enough.
type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}
	return out, nil
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

func encoderLevel(name string) (zstd.EncoderLevel, error) {
	if name == "" {
		return zstd.SpeedDefault, nil
	}
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return 0, fmt.Errorf("unknown compression level %q", name)
	}
	return level, nil
}

func NewZstdCompressor(conf *structures.Config) (interfaces.CompressorInterface, error) {
	level, err := encoderLevel(conf.Persistence.Compression)
	if err != nil {
		return nil, err
	}
	maxSize := conf.Persistence.MaxSnapshotSize
	if maxSize == 0 {
		maxSize = defaultMaxSnapshotSize
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(maxSize))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}
