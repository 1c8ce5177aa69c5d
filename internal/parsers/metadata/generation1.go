package metadata

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonasrenault/luniix/internal/types"
)

// parseGeneration1 handles the pre-versioned Flam metadata layout: a
// firmware string block, an ASCII-hex serial number and the USB identifier
// pair. This generation exposes no key material at all.
func parseGeneration1(c *cursor, dev *types.Device) error {
	c.seek(types.MDFFirmwareOffset)

	raw, err := c.read(types.MDFFirmwareLen)
	if err != nil {
		return err
	}
	main, comm, err := parseFlamFirmware(raw)
	if err != nil {
		return err
	}
	dev.FirmwareMain = main
	dev.FirmwareComm = comm

	rawSNU, err := c.read(types.MDFSNULen)
	if err != nil {
		return err
	}
	snuStr := string(bytes.TrimRight(rawSNU, "\x00"))
	snu, err := hex.DecodeString(snuStr)
	if err != nil {
		return fmt.Errorf("serial number %q: %v: %w", snuStr, err, ErrMetadataCorrupt)
	}
	dev.SNU = snu

	vid, err := c.readUint16()
	if err != nil {
		return err
	}
	pid, err := c.readUint16()
	if err != nil {
		return err
	}

	if (types.USBID{VID: vid, PID: pid}) == types.FlamUSB {
		dev.Type = types.FlamV1
	} else {
		dev.Type = types.Unknown
	}
	return nil
}

// parseFlamFirmware decodes the 48-byte NUL-padded firmware block: newline
// separated lines prefixed "main: " and "comm: ", each version keeping only
// the portion before the first hyphenated build suffix.
func parseFlamFirmware(raw []byte) (main, comm string, err error) {
	if !utf8.Valid(raw) {
		return "", "", fmt.Errorf("firmware block is not valid UTF-8: %w", ErrMetadataCorrupt)
	}

	s := strings.Trim(string(raw), "\x00")
	s = strings.ReplaceAll(s, "main: ", "")
	s = strings.ReplaceAll(s, "comm: ", "")

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	main, _, _ = strings.Cut(lines[0], "-")
	if len(lines) > 1 {
		comm, _, _ = strings.Cut(lines[1], "-")
	}
	return main, comm, nil
}
