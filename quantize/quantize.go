package quantize

import (
	"math"

	"github.com/jsphweid/skysheet/scale"
)

// DefaultThreshold is the widest accepted distance between a detected
// frequency and a reference tone, in octaves. Half an octave means every
// frequency inside a tone's band quantizes to it regardless of register.
const DefaultThreshold = 0.5

// Quantizer maps a raw frequency onto the nearest scale tone, or rejects
// it when nothing is close enough. It is pure and deterministic.
type Quantizer struct {
	table     *scale.Table
	threshold float64
}

func New(table *scale.Table, threshold float64) *Quantizer {
	return &Quantizer{table: table, threshold: threshold}
}

// Quantize returns the label of the closest tone measured by |log2(f/ref)|
// and whether the match was accepted. Ties go to the earliest tone in the
// table. Acceptance is strict: a distance exactly at the threshold is
// rejected.
func (q *Quantizer) Quantize(frequencyHz float64) (string, bool) {
	if frequencyHz <= 0 || math.IsNaN(frequencyHz) {
		return "", false
	}

	best := -1
	var bestDist float64
	for i, tone := range q.table.Tones() {
		dist := math.Abs(math.Log2(frequencyHz / tone.FrequencyHz))
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	if bestDist < q.threshold {
		return q.table.Tones()[best].Label, true
	}
	return "", false
}
