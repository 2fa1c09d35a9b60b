package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jsphweid/skysheet/progress"
)

// Result is the analysis handoff: two synchronized sequences (only
// eligible, confidence-filtered samples, times monotonically increasing)
// plus a tempo estimate in beats per minute.
type Result struct {
	Frequencies []float64 `json:"frequencies"`
	Times       []float64 `json:"times"`
	Tempo       float64   `json:"tempo"`
}

// Analyzer runs the pYIN pitch-tracking script against an audio file. The
// script applies the confidence threshold before writing its output, so
// everything in Result is already eligible.
type Analyzer struct {
	ScriptsDir          string
	ConfidenceThreshold float64
}

func New(scriptsDir string, confidenceThreshold float64) *Analyzer {
	return &Analyzer{
		ScriptsDir:          scriptsDir,
		ConfidenceThreshold: confidenceThreshold,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, audioPath string, report progress.Func) (*Result, error) {
	report(75, "Loading audio file", "Reading audio data for pitch tracking")

	outPath := audioPath + ".analysis.json"
	script := filepath.Join(a.ScriptsDir, "analyze_pitch.py")

	report(85, "Detecting pitches", "Running pYIN pitch tracking")
	cmd := exec.CommandContext(ctx, "python3", script,
		audioPath, outPath, fmt.Sprintf("%v", a.ConfidenceThreshold))
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pitch analysis: %v: %v", err, tail(string(out)))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read analysis output: %w", err)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse analysis output: %w", err)
	}
	if len(res.Frequencies) != len(res.Times) {
		return nil, errors.New("analysis output has mismatched frequency/time lengths")
	}

	report(95, "Analysis complete",
		fmt.Sprintf("Found %v pitch points, tempo: %.1f BPM", len(res.Frequencies), res.Tempo))
	return &res, nil
}

// tail keeps error messages readable when a tool dumps a lot of output.
func tail(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.Join(lines, " / ")
}
