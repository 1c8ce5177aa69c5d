// Package database maintains the local cache of the story-name databases
// (the vendor's official pack list and a community third-party list) and
// resolves story UUIDs to localized titles and descriptions.
package database

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/apex/log"

	"github.com/jonasrenault/luniix/internal/config"
)

const (
	// StoryUnknown is returned for UUIDs absent from every database,
	// typically user-created stories.
	StoryUnknown = "Unknown story (maybe a User created story)..."

	// DescNotFound is returned when an entry carries no description.
	DescNotFound = "No description found."
)

// Entry is one story record as stored in a database file, plus an
// "official" marker injected at load time.
type Entry map[string]any

// Official reports whether the entry came from the vendor database.
func (e Entry) Official() bool {
	official, _ := e["official"].(bool)
	return official
}

// Title resolves the story title, preferring localized info in the first
// available locale (alphabetically, for determinism).
func (e Entry) Title() string {
	if title, ok := e.localizedField("title"); ok {
		return title
	}
	if title, ok := e["title"].(string); ok {
		return title
	}
	return StoryUnknown
}

// Description resolves the story description the same way as Title.
func (e Entry) Description() string {
	if desc, ok := e.localizedField("description"); ok {
		return desc
	}
	if desc, ok := e["description"].(string); ok {
		return desc
	}
	return DescNotFound
}

func (e Entry) localizedField(field string) (string, bool) {
	locales, ok := e["locales_available"].(map[string]any)
	if !ok || len(locales) == 0 {
		return "", false
	}
	infos, ok := e["localized_infos"].(map[string]any)
	if !ok {
		return "", false
	}

	keys := make([]string, 0, len(locales))
	for k := range locales {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	info, ok := infos[keys[0]].(map[string]any)
	if !ok {
		return "", false
	}
	value, ok := info[field].(string)
	return value, ok
}

// Store is the merged story database, keyed by story UUID. Official entries
// take precedence over third-party ones.
type Store struct {
	entries map[string]Entry
}

// Open downloads any missing database file and loads the merged store. A
// database that cannot be downloaded or read is skipped with a log message:
// lookups then fall back to the other database or to the unknown-story
// placeholders.
func Open(settings config.Settings) *Store {
	DownloadOfficialDB(settings, false)
	DownloadThirdPartyDB(settings, false)

	entries := map[string]Entry{}
	merge(entries, loadFile(settings.ThirdPartyDBPath(), false))
	merge(entries, loadFile(settings.OfficialDBPath(), true))
	return &Store{entries: entries}
}

// Get returns the entry for a story UUID.
func (s *Store) Get(id string) (Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// Len returns the number of known stories.
func (s *Store) Len() int {
	return len(s.entries)
}

// UUIDs returns every known story UUID, sorted.
func (s *Store) UUIDs() []string {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func merge(dst map[string]Entry, src map[string]Entry) {
	for id, e := range src {
		dst[id] = e
	}
}

// loadFile reads one database file: a JSON object keyed by story UUID. The
// official flag is injected into every loaded entry.
func loadFile(path string, official bool) map[string]Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithField("path", path).Warn("database file not found, skipping")
		return nil
	}

	var raw map[string]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		log.WithField("path", path).WithError(err).Error("failed to parse database file")
		return nil
	}

	for _, e := range raw {
		e["official"] = official
	}
	return raw
}
