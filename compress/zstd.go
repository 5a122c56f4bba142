package compress

// ZstdCompressor compresses archive payloads with Zstandard. Best
// compression ratio of the built-in codecs; the right choice for
// long-term retention of measurement dumps.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
