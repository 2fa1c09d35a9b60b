package workspace

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jsphweid/skysheet/constants"
	"github.com/jsphweid/skysheet/util"
)

// Workspace holds the temporary files for one conversion job. Each job
// owns its directory exclusively, so concurrent jobs never collide.
type Workspace struct {
	Dir       string
	JobID     string
	CreatedAt time.Time
}

func Create(jobID string) (*Workspace, error) {
	root := constants.GetTempDir()
	if err := os.MkdirAll(root, 0777); err != nil {
		return nil, fmt.Errorf("create temp root: %w", err)
	}

	prefix := "job-"
	if safe := util.SafeFilename(jobID); safe != "" {
		prefix = "job-" + safe + "-"
	}
	dir, err := os.MkdirTemp(root, prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	return &Workspace{
		Dir:       dir,
		JobID:     jobID,
		CreatedAt: time.Now(),
	}, nil
}

func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

func (w *Workspace) AudioWAV() string     { return w.Path("audio.wav") }
func (w *Workspace) AnalysisJSON() string { return w.Path("analysis.json") }

// Cleanup removes the workspace. Removal failures (file still in use etc.)
// are logged and ignored, never escalated.
func (w *Workspace) Cleanup() {
	if err := os.RemoveAll(w.Dir); err != nil {
		log.Printf("cleanup warning for %v: %v", w.Dir, err)
	}
}

// SweepStale removes leftover job directories older than maxAge. Jobs from
// crashed or killed processes leave these behind.
func SweepStale(maxAge time.Duration) {
	root := constants.GetTempDir()
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.RemoveAll(filepath.Join(root, entry.Name()))
		}
	}
}
