package metadata

import (
	"fmt"

	"github.com/jonasrenault/luniix/internal/cipher"
	"github.com/jonasrenault/luniix/internal/types"
)

// parseGeneration1to5 handles metadata versions 1-5 (v1/v2 hardware):
// firmware version, raw 8-byte serial number, USB identifiers, and the
// device key recovered from a btea-ciphered block under the generic key.
func parseGeneration1to5(c *cursor, dev *types.Device) error {
	c.seek(types.MDFirmwareOffset)

	major, err := c.readUint16()
	if err != nil {
		return err
	}
	minor, err := c.readUint16()
	if err != nil {
		return err
	}
	dev.Firmware = types.FirmwareVersion{Major: major, Minor: minor}

	snu, err := c.read(8)
	if err != nil {
		return err
	}
	dev.SNU = append([]byte(nil), snu...)

	vid, err := c.readUint16()
	if err != nil {
		return err
	}
	pid, err := c.readUint16()
	if err != nil {
		return err
	}

	switch (types.USBID{VID: vid, PID: pid}) {
	case types.FahV1USB, types.FahV1Fw2USB:
		dev.Type = types.LuniiV1
	case types.FahV2V3USB:
		dev.Type = types.LuniiV2
	default:
		dev.Type = types.LuniiV1orV2
	}

	c.seek(types.MDCipherOffset)
	block, err := c.read(types.MDCipherBlockSize)
	if err != nil {
		return err
	}

	dec, err := cipher.BteaDecrypt(block, types.GenericKey, cipher.Rounds(len(block)))
	if err != nil {
		return fmt.Errorf("recover device key: %w", err)
	}

	// The firmware stores the key halves swapped: the real key is the
	// second 8 decrypted bytes followed by the first 8.
	dev.DeviceKey = append(append([]byte(nil), dec[8:16]...), dec[0:8]...)
	return nil
}
