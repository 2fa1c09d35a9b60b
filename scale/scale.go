package scale

import (
	"errors"
	"fmt"
)

// Tone is one fixed reference pitch the instrument can play.
type Tone struct {
	Label       string
	FrequencyHz float64
}

// Table holds the reference tones in insertion order. The order matters:
// the quantizer breaks exact-distance ties in favor of the earliest tone.
type Table struct {
	tones []Tone
}

func New(tones []Tone) (*Table, error) {
	if len(tones) == 0 {
		return nil, errors.New("scale table cannot be empty")
	}
	seenLabel := make(map[string]bool)
	seenFreq := make(map[float64]bool)
	for _, t := range tones {
		if t.FrequencyHz <= 0 {
			return nil, fmt.Errorf("tone %v has non-positive frequency", t.Label)
		}
		if seenLabel[t.Label] {
			return nil, fmt.Errorf("duplicate tone label %v", t.Label)
		}
		if seenFreq[t.FrequencyHz] {
			return nil, fmt.Errorf("duplicate tone frequency %v", t.FrequencyHz)
		}
		seenLabel[t.Label] = true
		seenFreq[t.FrequencyHz] = true
	}
	copied := make([]Tone, len(tones))
	copy(copied, tones)
	return &Table{tones: copied}, nil
}

func (t *Table) Tones() []Tone {
	return t.tones
}

func (t *Table) Len() int {
	return len(t.tones)
}

// The standard 15-key layout, three rows of five.
var defaultTones = []Tone{
	{"A1", 261.63},  // C4
	{"A2", 293.66},  // D4
	{"A3", 329.63},  // E4
	{"A4", 369.99},  // F#4
	{"A5", 415.30},  // G#4
	{"B1", 466.16},  // A#4
	{"B2", 523.25},  // C5
	{"B3", 587.33},  // D5
	{"B4", 659.25},  // E5
	{"B5", 739.99},  // F#5
	{"C1", 830.61},  // G#5
	{"C2", 932.33},  // A#5
	{"C3", 1046.50}, // C6
	{"C4", 1174.66}, // D6
	{"C5", 1318.51}, // E6
}

func Default() *Table {
	t, err := New(defaultTones)
	if err != nil {
		panic("default scale table is invalid: " + err.Error())
	}
	return t
}
