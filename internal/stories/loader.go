package stories

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/jonasrenault/luniix/internal/types"
)

// flamLibraryDir is where Flam devices keep their story index files,
// relative to the mount root.
const flamLibraryDir = "etc/library"

// LoadDeviceStories reads the visible and hidden story indexes of a device.
// A missing index file is logged and skipped; stories present in both
// indexes keep their first (visible) entry.
func LoadDeviceStories(dev *types.Device) []Story {
	var loaded []Story
	switch dev.Family {
	case types.FamilyLunii:
		loaded = append(loaded, loadLuniiIndex(filepath.Join(dev.MountPath, ".pi"), false)...)
		loaded = append(loaded, loadLuniiIndex(filepath.Join(dev.MountPath, ".pi.hidden"), true)...)
	case types.FamilyFlam:
		loaded = append(loaded, loadFlamIndex(filepath.Join(dev.MountPath, flamLibraryDir, "list"), false)...)
		loaded = append(loaded, loadFlamIndex(filepath.Join(dev.MountPath, flamLibraryDir, "list.hidden"), true)...)
	default:
		return nil
	}

	seen := make(map[uuid.UUID]bool, len(loaded))
	stories := make([]Story, 0, len(loaded))
	for _, s := range loaded {
		if seen[s.UUID] {
			continue
		}
		seen[s.UUID] = true
		stories = append(stories, s)
	}

	log.WithField("mount", dev.MountPath).Infof("loaded %d stories", len(stories))
	return stories
}

// loadLuniiIndex reads a Lunii .pi index: concatenated 16-byte raw UUIDs.
func loadLuniiIndex(path string, hidden bool) []Story {
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithField("path", path).Debug("no story index")
		return nil
	}

	var stories []Story
	for off := 0; off+16 <= len(data); off += 16 {
		id, err := uuid.FromBytes(data[off : off+16])
		if err != nil {
			continue
		}
		stories = append(stories, Story{UUID: id, Hidden: hidden})
	}
	return stories
}

// loadFlamIndex reads a Flam list file: one textual UUID per line.
func loadFlamIndex(path string, hidden bool) []Story {
	f, err := os.Open(path)
	if err != nil {
		log.WithField("path", path).Debug("no story index")
		return nil
	}
	defer f.Close()

	var stories []Story
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, err := uuid.Parse(line)
		if err != nil {
			log.WithField("path", path).Debugf("skipping unparsable story id %q", line)
			continue
		}
		stories = append(stories, Story{UUID: id, Hidden: hidden})
	}
	if err := scanner.Err(); err != nil {
		log.WithField("path", path).WithError(err).Error("reading story index")
	}
	return stories
}
