package device

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonasrenault/luniix/internal/types"
)

// writeMount creates a fake mounted device with the given marker file.
func writeMount(t *testing.T, marker string, metadata []byte) string {
	t.Helper()
	mount := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(mount, marker), metadata, 0o644))
	return mount
}

// v3Metadata builds a minimal version-7 metadata file with the given serial.
func v3Metadata(snuHex string) []byte {
	data := make([]byte, 0x80)
	binary.LittleEndian.PutUint16(data[0:], 7)
	data[2], data[4], data[6] = '1', '0', '0'
	copy(data[0x1A:], snuHex)
	for i := 0x40; i < 0x60; i++ {
		data[i] = byte(i)
	}
	return data
}

func TestDetectFamily(t *testing.T) {
	luniiMount := writeMount(t, ".md", v3Metadata("0123456789abcd"))
	flamMount := writeMount(t, ".mdf", nil)
	emptyMount := t.TempDir()

	assert.Equal(t, types.FamilyLunii, DetectFamily(luniiMount))
	assert.Equal(t, types.FamilyFlam, DetectFamily(flamMount))
	assert.Equal(t, types.FamilyUnknown, DetectFamily(emptyMount))

	assert.True(t, IsDevice(luniiMount))
	assert.False(t, IsDevice(emptyMount))
}

func TestParseEndToEnd(t *testing.T) {
	// Version-7 metadata with a known ciphered region at 0x40: the parsed
	// record carries the group-reversed story key/iv and no device keys
	// when no key file exists.
	metadata := v3Metadata("0123456789abcd")
	mount := writeMount(t, ".md", metadata)

	dev, err := Parse(mount, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, types.LuniiV3, dev.Type)
	assert.Equal(t, mount, dev.MountPath)
	assert.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD}, dev.SNU)

	wantKey := reverseGroups(metadata[0x40:0x50])
	wantIV := reverseGroups(metadata[0x50:0x60])
	assert.Equal(t, wantKey, dev.StoryKey)
	assert.Equal(t, wantIV, dev.StoryIV)
	assert.Empty(t, dev.DeviceKey)
	assert.Empty(t, dev.DeviceIV)
}

func TestParseNoMarker(t *testing.T) {
	_, err := Parse(t.TempDir(), t.TempDir())
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	good := writeMount(t, ".md", v3Metadata("0123456789abcd"))
	bad := writeMount(t, ".md", []byte{0x07}) // too short for the version field
	missing := t.TempDir()

	mounts := []string{good, bad, missing}
	results := Scan(mounts, t.TempDir(), 2)

	require.Len(t, results, len(mounts))
	for i, res := range results {
		assert.Equal(t, mounts[i], res.MountPath)
	}

	assert.NoError(t, results[0].Err)
	assert.Equal(t, types.LuniiV3, results[0].Device.Type)
	assert.Error(t, results[1].Err)
	assert.Error(t, results[2].Err)
}

func reverseGroups(in []byte) []byte {
	out := make([]byte, len(in))
	for i := 0; i < len(in); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = in[i+3], in[i+2], in[i+1], in[i]
	}
	return out
}
