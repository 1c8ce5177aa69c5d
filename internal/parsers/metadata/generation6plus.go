package metadata

import (
	"encoding/hex"
	"fmt"

	"github.com/jonasrenault/luniix/internal/cipher"
	"github.com/jonasrenault/luniix/internal/types"
)

// parseGeneration6Plus handles metadata versions >= 6 (v3 hardware). Story
// key material is synthesized from the metadata itself; the real device
// key/iv only ever come from an external key file and their absence is not
// an error.
func parseGeneration6Plus(c *cursor, dev *types.Device, cfgDir string) error {
	dev.Type = types.LuniiV3

	c.seek(0)
	subVersion, err := c.readByte()
	if err != nil {
		return err
	}

	// Firmware digits are stored as ASCII with a 1-byte gap between them.
	c.seek(types.MDv6FirmwareOffset)
	major, err := c.readByte()
	if err != nil {
		return err
	}
	if err := c.skip(1); err != nil {
		return err
	}
	minor, err := c.readByte()
	if err != nil {
		return err
	}
	if err := c.skip(1); err != nil {
		return err
	}
	subminor, err := c.readByte()
	if err != nil {
		return err
	}
	dev.Firmware = types.FirmwareVersion{
		Major:    uint16(major) - '0',
		Minor:    uint16(minor) - '0',
		Subminor: uint16(subminor) - '0',
	}

	c.seek(types.MDv6SNUOffset)
	rawSNU, err := c.read(types.MDv6SNULen)
	if err != nil {
		return err
	}
	snu, err := hex.DecodeString(string(rawSNU))
	if err != nil {
		return fmt.Errorf("serial number %q: %v: %w", rawSNU, err, ErrMetadataCorrupt)
	}
	dev.SNU = snu

	snuHex := dev.SNUHex()

	c.seek(types.MDv6KeyOffset)
	if subVersion == 6 {
		// The token candidate is the ciphered region itself; story keys are
		// forged from the plaintext serial number.
		token, err := c.read(0x20)
		if err != nil {
			return err
		}
		dev.SyntheticToken = append([]byte(nil), token...)

		if dev.StoryKey, err = cipher.ReverseBytes(append(append([]byte(nil), snuHex...), 0x00, 0x00)); err != nil {
			return err
		}
		iv := make([]byte, 8, 16)
		iv = append(iv, snuHex[:8]...)
		if dev.StoryIV, err = cipher.ReverseBytes(iv); err != nil {
			return err
		}
	} else {
		// Story keys come from the ciphered region; the token is forged
		// from the plaintext serial number.
		rawKey, err := c.read(0x10)
		if err != nil {
			return err
		}
		if dev.StoryKey, err = cipher.ReverseBytes(rawKey); err != nil {
			return err
		}
		rawIV, err := c.read(0x10)
		if err != nil {
			return err
		}
		if dev.StoryIV, err = cipher.ReverseBytes(rawIV); err != nil {
			return err
		}

		token := make([]byte, 0, 0x20)
		token = append(token, snuHex...)
		token = append(token, make([]byte, 10)...)
		token = append(token, snuHex[:8]...)
		dev.SyntheticToken = token
	}

	// Real keys when an external key file exists for this serial. Missing
	// or unreadable key files leave the device without real keys, which
	// still allows listing stories.
	key, iv, err := cipher.FetchKeys(cfgDir, dev.SNUString())
	if err == nil {
		dev.DeviceKey = key
		dev.DeviceIV = iv
	}
	return nil
}
