package audio

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/jsphweid/skysheet/progress"
	"github.com/jsphweid/skysheet/workspace"
)

// YouTubeAcquirer downloads a video's audio with yt-dlp and hands back a
// WAV in the job's workspace.
type YouTubeAcquirer struct {
	URL string
}

func (a *YouTubeAcquirer) Acquire(ctx context.Context, ws *workspace.Workspace, report progress.Func) (string, error) {
	report(5, "Initializing YouTube downloader", "Setting up yt-dlp")

	outTemplate := ws.Path("audio.%(ext)s")
	cmd := exec.CommandContext(ctx, "yt-dlp",
		"--no-playlist",
		"--extract-audio",
		"--audio-format", "wav",
		"--quiet", "--no-warnings",
		"-o", outTemplate,
		a.URL)

	report(10, "Extracting video information", "Fetching metadata and starting download")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp: %v: %v", err, lastLine(string(out)))
	}

	report(60, "Download completed", "Processing downloaded file")
	return ws.AudioWAV(), nil
}
