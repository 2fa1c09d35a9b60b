package model

// DefaultNoteDurationSeconds is the fixed length every transcribed note
// gets. The layout has no sustain control, so duration is notation only.
const DefaultNoteDurationSeconds = 0.5

// PitchSample is one point of the pitch track handed over by analysis.
type PitchSample struct {
	FrequencyHz float64
	TimeSeconds float64
	Confidence  float64
}

// NoteEvent is a quantized sample: a scale label at a point in time.
type NoteEvent struct {
	Label           string
	TimeSeconds     float64
	DurationSeconds float64
}

// ChordGroup is a cluster of note events whose onsets fall within the
// chord window of the group's anchor. Labels are deduplicated and sorted.
type ChordGroup struct {
	AnchorTimeSeconds float64
	Labels            []string
	DurationSeconds   float64
}
