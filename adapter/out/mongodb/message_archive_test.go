package mongodb

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompressionRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		compress bool
	}{
		{name: "small body passes through", data: []byte("short"), compress: false},
		{name: "large body gzips", data: []byte(strings.Repeat("itinerary body ", 200)), compress: true},
		{name: "empty body", data: nil, compress: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := maybeCompress(tt.data, tt.compress)
			if err != nil {
				t.Fatalf("maybeCompress() error = %v", err)
			}
			if tt.compress && len(tt.data) > 0 && len(stored) >= len(tt.data) {
				t.Errorf("compressed size %d >= original %d for repetitive input", len(stored), len(tt.data))
			}

			restored, err := maybeDecompress(stored, tt.compress)
			if err != nil {
				t.Fatalf("maybeDecompress() error = %v", err)
			}
			if !bytes.Equal(restored, tt.data) {
				t.Errorf("round trip lost data: got %d bytes, want %d", len(restored), len(tt.data))
			}
		})
	}
}

func TestMaybeDecompressCorruptData(t *testing.T) {
	if _, err := maybeDecompress([]byte("not gzip"), true); err == nil {
		t.Error("maybeDecompress() error = nil for corrupt gzip data")
	}
}
