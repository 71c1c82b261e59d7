package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type compression string

const (
	compressionNone compression = ""
	compressionGzip compression = "gzip"
	compressionZstd compression = "zstd"
)

// detectCompression returns the compression named by the final extension and
// the file name with that extension removed.
func detectCompression(path string) (compression, string) {
	base := filepath.Base(path)
	switch ext := strings.ToLower(filepath.Ext(base)); ext {
	case ".gz":
		return compressionGzip, strings.TrimSuffix(base, filepath.Ext(base))
	case ".zst":
		return compressionZstd, strings.TrimSuffix(base, filepath.Ext(base))
	default:
		return compressionNone, base
	}
}

// readFile reads the whole file, decompressing it if needed.
func readFile(path string, comp compression) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch comp {
	case compressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case compressionZstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return data, nil
}
