package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/skysheet/analysis"
	"github.com/jsphweid/skysheet/constants"
	"github.com/jsphweid/skysheet/db"
	"github.com/jsphweid/skysheet/group"
	"github.com/jsphweid/skysheet/model"
	"github.com/jsphweid/skysheet/progress"
	"github.com/jsphweid/skysheet/quantize"
	"github.com/jsphweid/skysheet/scale"
	"github.com/jsphweid/skysheet/sheet"
	"github.com/jsphweid/skysheet/util"
	"github.com/jsphweid/skysheet/workspace"
)

// Acquirer fetches the source audio for a job into its workspace and
// returns the path of a WAV file. Implementations report their own
// progress in the 5-60 band.
type Acquirer interface {
	Acquire(ctx context.Context, ws *workspace.Workspace, report progress.Func) (string, error)
}

// Analyzer produces the confidence-filtered pitch track and tempo
// estimate for an audio file, reporting progress in the 75-95 band.
type Analyzer interface {
	Analyze(ctx context.Context, audioPath string, report progress.Func) (*analysis.Result, error)
}

// ProgressSink receives the per-stage updates. The converter is the only
// writer for a given job id and writes sequentially.
type ProgressSink interface {
	Update(jobID string, percent int, message, details string)
}

// Config holds the transcription tunables. Zero values are not usable,
// start from DefaultConfig.
type Config struct {
	// ConfidenceThreshold is the minimum voiced probability a pitch
	// sample needs to be eligible. Applied by the analysis collaborator.
	ConfidenceThreshold float64
	// PitchThreshold is the quantizer acceptance distance in octaves.
	PitchThreshold float64
	// ChordWindowSeconds is the grouping window measured from each
	// group's anchor.
	ChordWindowSeconds float64
	// NoteDurationSeconds is the fixed duration written for every note.
	NoteDurationSeconds float64

	Author        string
	TranscribedBy string
	OutputDir     string

	// Scale overrides the tone table. Nil means the standard 15-key
	// layout.
	Scale *scale.Table
}

func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.7,
		PitchThreshold:      quantize.DefaultThreshold,
		ChordWindowSeconds:  group.DefaultWindowSeconds,
		NoteDurationSeconds: model.DefaultNoteDurationSeconds,
		Author:              "skysheet",
		TranscribedBy:       "skysheet auto converter",
		OutputDir:           constants.GetOutputDir(),
	}
}

// Result is what a successful conversion hands back to the caller.
type Result struct {
	JobID      string
	Title      string
	SheetPath  string
	NotesCount int
}

// Converter runs the whole transcription pipeline for one job at a time.
// It is safe to share across concurrent jobs: all per-job state lives in
// the job's workspace and its tracker record.
type Converter struct {
	cfg       Config
	quantizer *quantize.Quantizer
	grouper   *group.Grouper
	tracker   ProgressSink
	analyzer  Analyzer
}

func NewConverter(cfg Config, tracker ProgressSink, analyzer Analyzer) *Converter {
	table := cfg.Scale
	if table == nil {
		table = scale.Default()
	}
	return &Converter{
		cfg:       cfg,
		quantizer: quantize.New(table, cfg.PitchThreshold),
		grouper:   group.New(cfg.ChordWindowSeconds),
		tracker:   tracker,
		analyzer:  analyzer,
	}
}

// Run executes Acquire -> Analyze -> Quantize -> Group -> Build/Persist
// synchronously, updating the tracker at every stage boundary. On failure
// the job's record is reset to percent 0 with the failing stage in the
// message, temp resources are cleaned up best-effort and a StageError is
// returned.
func (c *Converter) Run(ctx context.Context, jobID, title string, acq Acquirer) (*Result, error) {
	if jobID == "" {
		jobID = uuid.New().String()
	}
	c.tracker.Update(jobID, 1, "Starting conversion", "Initializing converter")

	ws, err := workspace.Create(jobID)
	if err != nil {
		return c.fail(jobID, "Initializing", err)
	}
	defer ws.Cleanup()

	audioPath, err := acq.Acquire(ctx, ws, c.report(jobID))
	if err != nil {
		return c.fail(jobID, "Download", err)
	}

	track, err := c.analyzer.Analyze(ctx, audioPath, c.report(jobID))
	if err != nil {
		return c.fail(jobID, "Analysis", err)
	}
	if len(track.Frequencies) == 0 {
		return c.fail(jobID, "Analysis", ErrNoPitches)
	}

	events := c.quantizeTrack(jobID, track)
	if len(events) == 0 {
		return c.fail(jobID, "Conversion", ErrNoPlayableNotes)
	}

	c.tracker.Update(jobID, 98, "Optimizing note sequence", "Grouping chords and removing duplicates")
	groups := c.grouper.Group(events)

	c.tracker.Update(jobID, 99, "Generating JSON output", "Writing the sheet file")
	s, err := sheet.Build(groups, sheet.Metadata{
		Name:          title,
		Author:        c.cfg.Author,
		TranscribedBy: c.cfg.TranscribedBy,
		BPM:           track.Tempo,
	})
	if err != nil {
		return c.fail(jobID, "Conversion", err)
	}

	path, err := sheet.Save(s, c.cfg.OutputDir)
	if err != nil {
		return c.fail(jobID, "Saving", err)
	}

	if db.Enabled() {
		meta := model.SheetMetadata{
			Title:         s.Name,
			Author:        s.Author,
			TranscribedBy: s.TranscribedBy,
			BPM:           s.BPM,
			NumNotes:      len(s.SongNotes),
		}
		if err := db.PutSheetMetadata(filepath.Base(path), meta); err != nil {
			log.Printf("metadata record failed for %v: %v", path, err)
		}
	}

	c.tracker.Update(jobID, 100, "Conversion complete!",
		fmt.Sprintf("Generated %v notes", len(s.SongNotes)))

	return &Result{
		JobID:      jobID,
		Title:      title,
		SheetPath:  path,
		NotesCount: len(s.SongNotes),
	}, nil
}

// quantizeTrack reduces the pitch track to note events. Rejected samples
// are dropped silently, only the whole track going empty is an error
// (checked by the caller).
func (c *Converter) quantizeTrack(jobID string, track *analysis.Result) []model.NoteEvent {
	c.tracker.Update(jobID, 96, "Converting to sheet format", "Mapping frequencies to the 15-key layout")

	total := len(track.Frequencies)
	var events []model.NoteEvent
	for i, freq := range track.Frequencies {
		label, ok := c.quantizer.Quantize(freq)
		if ok {
			events = append(events, model.NoteEvent{
				Label:           label,
				TimeSeconds:     track.Times[i],
				DurationSeconds: c.cfg.NoteDurationSeconds,
			})
		}

		processed := i + 1
		if processed%100 == 0 {
			pct := 96 + util.Clamp(processed*2/total, 0, 2)
			c.tracker.Update(jobID, pct,
				fmt.Sprintf("Processing notes: %v/%v", processed, total),
				fmt.Sprintf("Converted %v valid notes so far", len(events)))
		}
	}
	return events
}

func (c *Converter) report(jobID string) progress.Func {
	return func(percent int, message, details string) {
		c.tracker.Update(jobID, percent, message, details)
	}
}

func (c *Converter) fail(jobID, stage string, err error) (*Result, error) {
	c.tracker.Update(jobID, 0, stage+" failed", "Error: "+err.Error())
	return nil, &StageError{Stage: stage, Err: err}
}
