package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jsphweid/skysheet/progress"
	"github.com/jsphweid/skysheet/workspace"
)

// FileAcquirer stages a local (or uploaded) audio file into the job's
// workspace, converting to WAV when the source is some other format.
type FileAcquirer struct {
	Path string
}

func (a *FileAcquirer) Acquire(ctx context.Context, ws *workspace.Workspace, report progress.Func) (string, error) {
	report(10, "File received", "Converting to WAV format if needed")

	dst := ws.AudioWAV()
	if strings.EqualFold(filepath.Ext(a.Path), ".wav") {
		if err := copyFile(a.Path, dst); err != nil {
			return "", fmt.Errorf("stage audio file: %w", err)
		}
	} else {
		if err := convertToWAV(ctx, a.Path, dst); err != nil {
			return "", err
		}
	}

	report(60, "Audio ready", "Source staged as WAV")
	return dst, nil
}

func convertToWAV(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", src, dst)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg conversion: %v: %v", err, lastLine(string(out)))
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
