// Package compression provides the codecs used to shrink stored document blobs.
package compression

import "fmt"

type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

const (
	NameZstd = "zstd"
	NameGzip = "gzip"
	NameNone = "none"
)

// ForName returns the compressor registered under name. An empty name selects zstd.
func ForName(name string) (Compressor, error) {
	switch name {
	case "", NameZstd:
		return ZstdCompressor{}, nil
	case NameGzip:
		return GzipCompressor{}, nil
	case NameNone:
		return NoneCompressor{}, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}

type NoneCompressor struct{}

func (NoneCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (NoneCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

func (NoneCompressor) Name() string { return NameNone }
