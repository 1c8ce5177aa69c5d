package types

import (
	"strings"
	"testing"
)

func TestSNUString(t *testing.T) {
	tests := []struct {
		name     string
		snu      []byte
		expected string
	}{
		{"leading zeros stripped", []byte{0x00, 0x24, 0x25, 0xFF}, "2425FF"},
		{"uppercase", []byte{0xAB, 0xCD}, "ABCD"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Device{SNU: tt.snu}
			if got := d.SNUString(); got != tt.expected {
				t.Errorf("SNUString() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSNUHex(t *testing.T) {
	d := &Device{SNU: []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD}}
	if got := string(d.SNUHex()); got != "0123456789abcd" {
		t.Errorf("SNUHex() = %q", got)
	}
}

func TestDeviceString(t *testing.T) {
	lunii := &Device{
		MountPath: "/mnt/lunii",
		Family:    FamilyLunii,
		Type:      LuniiV2,
		Firmware:  FirmwareVersion{Major: 2, Minor: 22},
		SNU:       []byte{0x00, 0x24},
	}
	out := lunii.String()
	if !strings.Contains(out, "Lunii device at /mnt/lunii") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.Contains(out, "v2.22") {
		t.Errorf("missing two-part firmware version in %q", out)
	}
	if strings.Contains(out, "story key") {
		t.Errorf("v2 output must not mention story keys: %q", out)
	}

	v3 := &Device{
		Family:   FamilyLunii,
		Type:     LuniiV3,
		Firmware: FirmwareVersion{Major: 1, Minor: 2, Subminor: 3},
		StoryKey: []byte{0x01},
	}
	if !strings.Contains(v3.String(), "v1.2.3") {
		t.Errorf("missing three-part firmware version in %q", v3.String())
	}

	unknown := &Device{}
	if unknown.String() != "unknown device type" {
		t.Errorf("String() = %q", unknown.String())
	}
}
