package compression

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompressors(t *testing.T) {
	payload := []byte(strings.Repeat(`{"id":"a","title":"","content":"Write something...","createdAt":1}`, 64))

	for _, name := range []string{NameZstd, NameGzip, NameNone} {
		t.Run(name, func(t *testing.T) {
			c, err := ForName(name)
			if err != nil {
				t.Fatalf("ForName(%q) error: %v", name, err)
			}
			if c.Name() != name {
				t.Errorf("Name() = %q, want %q", c.Name(), name)
			}

			packed, err := c.Compress(payload)
			if err != nil {
				t.Fatalf("Compress error: %v", err)
			}
			if name != NameNone && len(packed) >= len(payload) {
				t.Errorf("expected %s to shrink a repetitive payload, got %d >= %d", name, len(packed), len(payload))
			}

			unpacked, err := c.Decompress(packed)
			if err != nil {
				t.Fatalf("Decompress error: %v", err)
			}
			if !bytes.Equal(unpacked, payload) {
				t.Error("Decompressed payload differs from the original")
			}
		})
	}
}

func TestForNameDefaultsToZstd(t *testing.T) {
	c, err := ForName("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != NameZstd {
		t.Errorf("Name() = %q, want %q", c.Name(), NameZstd)
	}
}

func TestForNameUnknown(t *testing.T) {
	if _, err := ForName("brotli"); err == nil {
		t.Error("expected an error for an unknown compression")
	}
}

func TestDecompressGarbage(t *testing.T) {
	for _, c := range []Compressor{ZstdCompressor{}, GzipCompressor{}} {
		if _, err := c.Decompress([]byte("not compressed")); err == nil {
			t.Errorf("%s: expected an error decompressing garbage", c.Name())
		}
	}
}
