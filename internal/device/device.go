// Package device discovers mounted storytelling devices and turns their
// metadata files into populated Device records.
package device

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonasrenault/luniix/internal/parsers/metadata"
	"github.com/jonasrenault/luniix/internal/types"
)

// DetectFamily checks the marker files at the root of a mounted volume.
// The family is decided here exactly once; parsers and story loaders trust
// the returned value instead of re-probing the filesystem.
func DetectFamily(mountPath string) types.DeviceFamily {
	if isFile(filepath.Join(mountPath, ".md")) {
		return types.FamilyLunii
	}
	if isFile(filepath.Join(mountPath, ".mdf")) {
		return types.FamilyFlam
	}
	return types.FamilyUnknown
}

// IsDevice reports whether a mounted volume looks like a supported device.
func IsDevice(mountPath string) bool {
	return DetectFamily(mountPath) != types.FamilyUnknown
}

// Parse reads the metadata file of the device mounted at mountPath and
// returns its fully populated record. cfgDir is consulted for external key
// files on v3 hardware.
func Parse(mountPath, cfgDir string) (*types.Device, error) {
	family := DetectFamily(mountPath)
	if family == types.FamilyUnknown {
		return nil, fmt.Errorf("no device marker file at %s", mountPath)
	}

	mdPath := filepath.Join(mountPath, family.MarkerFile())
	data, err := os.ReadFile(mdPath)
	if err != nil {
		return nil, fmt.Errorf("read metadata file %s: %w", mdPath, err)
	}

	return metadata.Parse(data, family, mountPath, cfgDir)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
