package cipher

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchKeys(t *testing.T) {
	cfgDir := t.TempDir()

	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "2425FF.keys"), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	key, iv, err := FetchKeys(cfgDir, "2425FF")
	if err != nil {
		t.Fatalf("FetchKeys() error = %v", err)
	}

	wantKey, _ := ReverseBytes(raw[:16])
	wantIV, _ := ReverseBytes(raw[16:32])
	if !bytes.Equal(key, wantKey) {
		t.Errorf("key = %x, want %x", key, wantKey)
	}
	if !bytes.Equal(iv, wantIV) {
		t.Errorf("iv = %x, want %x", iv, wantIV)
	}
}

func TestFetchKeysMissingFile(t *testing.T) {
	_, _, err := FetchKeys(t.TempDir(), "2425FF")
	if !errors.Is(err, ErrKeyFileNotFound) {
		t.Errorf("error = %v, want ErrKeyFileNotFound", err)
	}
}

func TestFetchKeysShortFile(t *testing.T) {
	cfgDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(cfgDir, "2425FF.keys"), make([]byte, 31), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := FetchKeys(cfgDir, "2425FF")
	if !errors.Is(err, ErrKeyFileShort) {
		t.Errorf("error = %v, want ErrKeyFileShort", err)
	}
}
