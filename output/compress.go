package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codecs lists the stream compression names accepted by Compress.
var Codecs = []string{"none", "gzip", "zstd", "lz4", "brotli"}

// Compress wraps w with the named stream codec. Closing the returned writer
// flushes the codec but never closes w. "none" and "" return a writer that
// passes data through unchanged.
func Compress(w io.Writer, codec string) (io.WriteCloser, error) {
	switch strings.ToLower(strings.TrimSpace(codec)) {
	case "", "none":
		return nopCloser{w}, nil
	case "gzip", "gz":
		return gzip.NewWriter(w), nil
	case "zstd", "zst":
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return enc, nil
	case "lz4":
		return lz4.NewWriter(w), nil
	case "brotli", "br":
		return brotli.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression '%s' (supported: %s)", codec, strings.Join(Codecs, ", "))
	}
}

// CodecExtension returns the file suffix for codec, or "" for none.
func CodecExtension(codec string) string {
	switch strings.ToLower(strings.TrimSpace(codec)) {
	case "gzip", "gz":
		return ".gz"
	case "zstd", "zst":
		return ".zst"
	case "lz4":
		return ".lz4"
	case "brotli", "br":
		return ".br"
	default:
		return ""
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
