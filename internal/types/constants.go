package types

// Reverse-engineered constants shared by the metadata parsers. Offsets and
// identifiers come from observing the vendor's desktop application against
// real hardware; treat every value here as load-bearing.

// USBID is a USB vendor/product identifier pair as stored little-endian in
// the device metadata.
type USBID struct {
	VID uint16
	PID uint16
}

var (
	// FAH v1 hardware, original and firmware-2 revisions.
	FahV1USB    = USBID{0x0C45, 0x6820}
	FahV1Fw2USB = USBID{0x0C45, 0x6840}

	// FAH v2 and v3 hardware share one identifier.
	FahV2V3USB = USBID{0x0483, 0xA341}

	// Flam v1 hardware.
	FlamUSB = USBID{0x303A, 0x819E}
)

// GenericKey is the hardcoded 128-bit key burned into the external flash of
// every v1/v2 device: 91BD7A0A A75440A9 BBD49D6C E0DCC0E3. Each device's
// real key is stored btea-ciphered under this one.
var GenericKey = [4]uint32{0x91BD7A0A, 0xA75440A9, 0xBBD49D6C, 0xE0DCC0E3}

// Metadata layout offsets. The version field at offset 0 selects the layout
// of everything that follows.
const (
	// Metadata versions 1-5 (.md on v1/v2 hardware).
	MDFirmwareOffset  = 0x06  // u16 major, u16 minor, then 8-byte raw SNU
	MDCipherOffset    = 0x100 // start of the btea-ciphered device key block
	MDCipherBlockSize = 0x100

	// Metadata versions >= 6 (.md on v3 hardware).
	MDv6FirmwareOffset = 0x02 // ASCII digits with 1-byte gaps
	MDv6SNUOffset      = 0x1A // 14 ASCII hex characters
	MDv6SNULen         = 14
	MDv6KeyOffset      = 0x40 // token candidate or ciphered story key/iv

	// Pre-versioned Flam metadata (.mdf).
	MDFFirmwareOffset = 0x02 // 48-byte newline-separated firmware strings
	MDFFirmwareLen    = 48
	MDFSNULen         = 24 // ASCII hex, NUL padded
)
