package mappers

import (
	"bytes"
	"io"
)

// concat joins byte slices into a single io.Reader, for assembling a fake
// iNES image (header + PRG + CHR) in tests without touching the disk.
func concat(parts ...[]byte) io.Reader {
	var buf bytes.Buffer
	for _, p := range parts {
		buf.Write(p)
	}
	return &buf
}
