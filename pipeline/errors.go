package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for whole-job failure modes. A single rejected sample is
// never an error, only total exhaustion across the track is.
var (
	ErrNoPitches       = errors.New("no reliable pitches detected in the audio")
	ErrNoPlayableNotes = errors.New("no detected pitches map onto the 15-tone layout")
)

// StageError wraps a failure with the pipeline stage it happened in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%v failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
