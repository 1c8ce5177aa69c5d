package cipher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrKeyFileNotFound reports a missing external key file. Recoverable: the
// device stays usable without real keys, it just cannot decrypt content.
var ErrKeyFileNotFound = errors.New("key file not found")

// ErrKeyFileShort reports a key file smaller than the required 32 bytes.
var ErrKeyFileShort = errors.New("key file shorter than 32 bytes")

// keyFileSize is 16 obfuscated key bytes followed by 16 obfuscated IV bytes.
const keyFileSize = 32

// FetchKeys loads the real device key and IV for a serial number from
// <cfgDir>/<snu>.keys, where snu is the uppercase hex serial with leading
// zeros stripped. Both halves of the file are stored group-reversed and are
// de-obfuscated before being returned.
func FetchKeys(cfgDir, snu string) (key, iv []byte, err error) {
	path := filepath.Join(cfgDir, snu+".keys")

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrKeyFileNotFound)
		}
		return nil, nil, fmt.Errorf("read key file %s: %w", path, err)
	}
	if len(raw) < keyFileSize {
		return nil, nil, fmt.Errorf("%s holds %d bytes: %w", path, len(raw), ErrKeyFileShort)
	}

	key, err = ReverseBytes(raw[:16])
	if err != nil {
		return nil, nil, err
	}
	iv, err = ReverseBytes(raw[16:32])
	if err != nil {
		return nil, nil, err
	}
	return key, iv, nil
}
