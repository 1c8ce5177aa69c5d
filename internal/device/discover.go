package device

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/apex/log"
	"github.com/shirou/gopsutil/v3/disk"
)

// ListMounts returns the mount paths of every connected device. Devices
// expose a FAT filesystem over USB mass storage, so candidate mounts are
// filtered to vfat/msdos partitions before probing for marker files.
func ListMounts() ([]string, error) {
	switch runtime.GOOS {
	case "windows":
		return windowsMounts(), nil
	case "linux":
		return partitionMounts(func(p disk.PartitionStat) bool {
			return strings.HasPrefix(p.Device, "/dev/sd") && isFATType(p.Fstype)
		})
	case "darwin":
		return partitionMounts(func(p disk.PartitionStat) bool {
			mnt := strings.ToLower(p.Mountpoint)
			for _, prefix := range []string{"/mnt", "/media", "/volume"} {
				if strings.HasPrefix(mnt, prefix) {
					return isFATType(p.Fstype)
				}
			}
			return false
		})
	default:
		return nil, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

func isFATType(fstype string) bool {
	return strings.HasPrefix(fstype, "msdos") || fstype == "vfat"
}

func partitionMounts(keep func(disk.PartitionStat) bool) ([]string, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}

	var mounts []string
	for _, p := range parts {
		if !keep(p) {
			continue
		}
		if IsDevice(p.Mountpoint) {
			log.WithField("mount", p.Mountpoint).Debug("device found")
			mounts = append(mounts, p.Mountpoint)
		}
	}
	return mounts, nil
}

// windowsMounts probes every drive letter. Stat on an absent drive just
// fails, so there is no partition-table lookup to do.
func windowsMounts() []string {
	var mounts []string
	for drive := 'A'; drive <= 'Z'; drive++ {
		mount := string(drive) + ":/"
		if IsDevice(mount) {
			log.WithField("mount", mount).Debug("device found")
			mounts = append(mounts, mount)
		}
	}
	return mounts
}
