package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DeviceFamily identifies which marker file was found at the root of a
// mounted volume. It is decided once during discovery and never re-derived
// from the filesystem afterwards.
type DeviceFamily int

const (
	FamilyUnknown DeviceFamily = iota

	// FamilyLunii covers devices carrying a .md marker file (FAH v1-v3).
	FamilyLunii

	// FamilyFlam covers devices carrying a .mdf marker file.
	FamilyFlam
)

// MarkerFile returns the metadata filename used by the family.
func (f DeviceFamily) MarkerFile() string {
	switch f {
	case FamilyLunii:
		return ".md"
	case FamilyFlam:
		return ".mdf"
	default:
		return ""
	}
}

// DeviceType is the hardware generation recovered from the metadata file.
type DeviceType int

const (
	LuniiV1orV2 DeviceType = 0
	LuniiV1     DeviceType = 1
	LuniiV2     DeviceType = 2
	LuniiV3     DeviceType = 3
	FlamV1      DeviceType = 10
	Unknown     DeviceType = 255
)

func (t DeviceType) String() string {
	switch t {
	case LuniiV1orV2:
		return "Lunii v1/v2"
	case LuniiV1:
		return "Lunii v1"
	case LuniiV2:
		return "Lunii v2"
	case LuniiV3:
		return "Lunii v3"
	case FlamV1:
		return "Flam v1"
	default:
		return "unknown"
	}
}

// FirmwareVersion holds the numeric firmware version of a Lunii device.
// Subminor is only populated for v3 hardware (metadata version >= 6).
type FirmwareVersion struct {
	Major    uint16
	Minor    uint16
	Subminor uint16
}

// Device is the record populated by parsing a device's metadata file.
// A Device is fully populated by exactly one generation parser and is
// read-only afterwards; rescanning a mount produces a fresh record.
type Device struct {
	// MountPath is the filesystem root of the mounted device. Owned by the
	// caller, borrowed for the duration of parsing.
	MountPath string

	Family DeviceFamily
	Type   DeviceType

	// Firmware applies to Lunii devices. Flam devices report two free-form
	// firmware strings instead, one for the main MCU and one for the
	// communication MCU.
	Firmware     FirmwareVersion
	FirmwareMain string
	FirmwareComm string

	// SNU is the device serial number: 8 raw bytes on v1/v2 hardware,
	// 7 bytes (decoded from 14 hex characters) on v3, variable length on
	// Flam devices.
	SNU []byte

	// DeviceKey and DeviceIV gate access to the device itself. Zero length
	// means not recovered: v1/v2 recover the key from the metadata cipher
	// block, v3 only ever gets real keys from an external key file.
	DeviceKey []byte
	DeviceIV  []byte

	// StoryKey and StoryIV decrypt story content on v3 hardware only.
	StoryKey []byte
	StoryIV  []byte

	// SyntheticToken is the reconstructed 0x20-byte "bt" buffer carried for
	// downstream story tooling. Not interpreted here.
	SyntheticToken []byte
}

// SNUString renders the serial number the way the vendor tooling does:
// uppercase hex with leading zeros stripped. This is also the basename of
// the device's external key file.
func (d *Device) SNUString() string {
	return strings.TrimLeft(strings.ToUpper(hex.EncodeToString(d.SNU)), "0")
}

// SNUHex returns the lowercase hex representation of the serial number as
// raw bytes, the form embedded in v3 key material and synthetic tokens.
func (d *Device) SNUHex() []byte {
	return []byte(hex.EncodeToString(d.SNU))
}

func (d *Device) String() string {
	var b strings.Builder
	switch d.Family {
	case FamilyFlam:
		fmt.Fprintf(&b, "Flam device at %s\n", d.MountPath)
		fmt.Fprintf(&b, "- main firmware : v%s\n", d.FirmwareMain)
		fmt.Fprintf(&b, "- comm firmware : v%s\n", d.FirmwareComm)
		fmt.Fprintf(&b, "- SNU       : %s\n", hexPairs(d.SNU))
	case FamilyLunii:
		fmt.Fprintf(&b, "Lunii device at %s\n", d.MountPath)
		if d.Type == LuniiV3 {
			fmt.Fprintf(&b, "- firmware  : v%d.%d.%d\n", d.Firmware.Major, d.Firmware.Minor, d.Firmware.Subminor)
		} else {
			fmt.Fprintf(&b, "- firmware  : v%d.%d\n", d.Firmware.Major, d.Firmware.Minor)
		}
		fmt.Fprintf(&b, "- SNU       : %s\n", hexPairs(d.SNU))
		fmt.Fprintf(&b, "- dev key   : %s\n", hexPairs(d.DeviceKey))
		if d.Type == LuniiV3 {
			fmt.Fprintf(&b, "- dev iv    : %s\n", hexPairs(d.DeviceIV))
			if len(d.StoryKey) > 0 {
				fmt.Fprintf(&b, "- story key : %s\n", hexPairs(d.StoryKey))
			}
			if len(d.StoryIV) > 0 {
				fmt.Fprintf(&b, "- story iv  : %s\n", hexPairs(d.StoryIV))
			}
		}
	default:
		return "unknown device type"
	}
	return b.String()
}

// hexPairs formats a byte sequence as space-separated hex pairs.
func hexPairs(data []byte) string {
	if len(data) == 0 {
		return "-"
	}
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = fmt.Sprintf("%02x", v)
	}
	return strings.Join(parts, " ")
}
