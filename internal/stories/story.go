// Package stories models the story packs installed on a device and loads
// the device's story index files.
package stories

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Story is one installed story pack, identified by UUID. Names and
// descriptions are not stored on the device; they are resolved against the
// story databases.
type Story struct {
	UUID   uuid.UUID
	Hidden bool
}

// ShortUUID is the trailing 12 hex characters of the UUID, the form the
// device uses for story directories.
func (s Story) ShortUUID() string {
	return hex.EncodeToString(s.UUID[:])[24:]
}
