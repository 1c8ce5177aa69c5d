package device

import (
	"sync"

	"github.com/apex/log"

	"github.com/jonasrenault/luniix/internal/types"
)

// Result is the outcome of parsing one mounted device.
type Result struct {
	MountPath string
	Device    *types.Device
	Err       error
}

// Scan parses every given mount with a bounded worker pool and returns one
// Result per mount, in input order. Each device and its backing file are
// exclusively owned by the goroutine parsing them; a failed parse is
// reported in its Result and does not stop the scan.
func Scan(mounts []string, cfgDir string, workers int) []Result {
	if workers <= 0 {
		workers = 4
	}
	if workers > len(mounts) {
		workers = len(mounts)
	}

	results := make([]Result, len(mounts))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				dev, err := Parse(mounts[i], cfgDir)
				if err != nil {
					log.WithField("mount", mounts[i]).WithError(err).Error("failed to parse device")
				}
				results[i] = Result{MountPath: mounts[i], Device: dev, Err: err}
			}
		}()
	}

	for i := range mounts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
