// Package metadata parses the versioned binary metadata file found at the
// root of a mounted device (.md for Lunii hardware, .mdf for Flam). The
// layouts are reverse-engineered and undocumented: every read is a fixed
// offset into a small file, so all access goes through a bounds-checked
// cursor rather than raw slicing.
package metadata

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMetadataCorrupt reports a metadata file too short for a required field
// or a field that fails to decode. Fatal for the device being parsed, but a
// scan may continue with other devices.
var ErrMetadataCorrupt = errors.New("metadata file corrupt")

// ErrUnsupportedVersion reports a metadata version outside every recognized
// range. Fatal and non-retryable for the device.
var ErrUnsupportedVersion = errors.New("unsupported metadata version")

// cursor is a bounds-checked reader over the raw metadata bytes.
type cursor struct {
	data []byte
	off  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) seek(off int) {
	c.off = off
}

// read returns the next n bytes, failing with ErrMetadataCorrupt when the
// file is too short. The returned slice aliases the underlying buffer.
func (c *cursor) read(n int) ([]byte, error) {
	if c.off < 0 || c.off+n > len(c.data) {
		return nil, fmt.Errorf("read %d bytes at offset %#x of %d-byte file: %w",
			n, c.off, len(c.data), ErrMetadataCorrupt)
	}
	out := c.data[c.off : c.off+n]
	c.off += n
	return out, nil
}

func (c *cursor) readByte() (byte, error) {
	b, err := c.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readUint16() (uint16, error) {
	b, err := c.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) skip(n int) error {
	_, err := c.read(n)
	return err
}
