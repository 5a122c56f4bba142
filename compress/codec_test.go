package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPayload() []byte {
	// Repetitive JSON-like payload, similar to an archived measurement dump.
	var buf bytes.Buffer
	for range 64 {
		buf.WriteString(`{"timestamp":"2024-01-02T08:30:00Z","weight":80.35,"fat_ratio":22.1},`)
	}

	return buf.Bytes()
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Type
		wantErr bool
	}{
		{name: "empty means none", input: "", want: TypeNone},
		{name: "none", input: "none", want: TypeNone},
		{name: "zstd", input: "zstd", want: TypeZstd},
		{name: "s2", input: "s2", want: TypeS2},
		{name: "lz4", input: "lz4", want: TypeLZ4},
		{name: "unknown", input: "gzip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestType_Ext(t *testing.T) {
	require.Equal(t, "", TypeNone.Ext())
	require.Equal(t, ".zst", TypeZstd.Ext())
	require.Equal(t, ".s2", TypeS2.Ext())
	require.Equal(t, ".lz4", TypeLZ4.Ext())
}

func TestGetCodec(t *testing.T) {
	for _, typ := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		codec, err := GetCodec(typ)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(Type(0xFF))
	require.Error(t, err)
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := testPayload()

	for _, typ := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			if typ != TypeNone {
				require.Less(t, len(compressed), len(payload))
			}

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, typ := range []Type{TypeZstd, TypeS2, TypeLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestLZ4_CorruptedInput(t *testing.T) {
	codec := NewLZ4Compressor()
	_, err := codec.Decompress([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.Error(t, err)
}
