package digeststore

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/disk"
)

const bytesPerGB = 1024 * 1024 * 1024

// checkFreeSpace ensures the volume holding path has at least minimumFreeGB
// free. The path is created first so usage can be queried on a fresh cache
// directory.
func checkFreeSpace(path string, minimumFreeGB int) error {
	if minimumFreeGB <= 0 {
		return nil
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("error creating digest store directory %s: %w", path, err)
	}

	usage, err := disk.Usage(path)
	if err != nil {
		return fmt.Errorf("error getting disk usage for %s: %w", path, err)
	}

	freeGB := usage.Free / bytesPerGB
	log.WithFields(logFields(path, usage.Free)).Info("digest store disk usage checked")

	if freeGB < uint64(minimumFreeGB) {
		return fmt.Errorf("not enough free space at %s: %d GB free, %d GB required",
			path, freeGB, minimumFreeGB)
	}
	return nil
}

func logFields(path string, freeBytes uint64) map[string]interface{} {
	return map[string]interface{}{
		"path":    path,
		"freeGB":  freeBytes / bytesPerGB,
		"freeMiB": freeBytes / (1024 * 1024),
	}
}
