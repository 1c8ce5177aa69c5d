package metadata

import (
	"fmt"

	"github.com/jonasrenault/luniix/internal/types"
)

// Parse reads the 2-byte little-endian version field at the start of the
// metadata file and routes to the single generation parser that understands
// the rest of the layout:
//
//	version 0    pre-versioned Flam format (.mdf family only)
//	version 1-5  Lunii v1/v2 format
//	version >= 6 Lunii v3 format
//
// cfgDir is where external key files live; it is only consulted by the v3
// parser. On success the returned Device is fully populated; on error no
// partial record is returned.
func Parse(data []byte, family types.DeviceFamily, mountPath, cfgDir string) (*types.Device, error) {
	c := newCursor(data)
	version, err := c.readUint16()
	if err != nil {
		return nil, err
	}

	dev := &types.Device{
		MountPath: mountPath,
		Family:    family,
		Type:      types.Unknown,
	}

	switch {
	case version >= 6:
		err = parseGeneration6Plus(c, dev, cfgDir)
	case version >= 1:
		err = parseGeneration1to5(c, dev)
	case family == types.FamilyFlam:
		err = parseGeneration1(c, dev)
	default:
		err = fmt.Errorf("metadata version %d: %w", version, ErrUnsupportedVersion)
	}
	if err != nil {
		return nil, err
	}
	return dev, nil
}
