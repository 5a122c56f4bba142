// Package archive writes fetched measurements to JSON dump files for
// later inspection, optionally compressed with one of the codecs from the
// compress package.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/openhealth/fitsync/compress"
)

// Write marshals v as indented JSON, compresses it with the given codec
// type and writes it next to path. The codec's extension is appended to
// the file name; the final path is returned.
func Write(path string, v any, codecType compress.Type) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode archive: %w", err)
	}

	codec, err := compress.GetCodec(codecType)
	if err != nil {
		return "", err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return "", fmt.Errorf("compress archive: %w", err)
	}

	finalPath := path + codecType.Ext()
	if dir := filepath.Dir(finalPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create archive dir: %w", err)
		}
	}

	if err := os.WriteFile(finalPath, compressed, 0o644); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}

	return finalPath, nil
}

// Read loads an archive written by Write, picking the codec from the file
// extension, and unmarshals the JSON payload into v.
func Read(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	codecType := typeForPath(path)
	codec, err := compress.GetCodec(codecType)
	if err != nil {
		return err
	}

	raw, err := codec.Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress archive: %w", err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse archive %s: %w", path, err)
	}

	return nil
}

func typeForPath(path string) compress.Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		return compress.TypeZstd
	case ".s2":
		return compress.TypeS2
	case ".lz4":
		return compress.TypeLZ4
	default:
		return compress.TypeNone
	}
}
