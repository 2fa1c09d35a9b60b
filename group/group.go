package group

import (
	"sort"

	"github.com/jsphweid/skysheet/model"
)

// DefaultWindowSeconds is how far a note onset may trail a group's anchor
// and still be played as part of the same chord.
const DefaultWindowSeconds = 0.1

// Grouper clusters a time-sorted note sequence into chords. The window is
// measured from each group's anchor (its first event), not from the most
// recently absorbed event, so a group always spans a fixed-width interval.
type Grouper struct {
	window float64
}

func New(window float64) *Grouper {
	return &Grouper{window: window}
}

// Group partitions events into chord groups. Input must be sorted by time
// non-decreasing. Every event lands in exactly one group and no group is
// ever empty.
func (g *Grouper) Group(events []model.NoteEvent) []model.ChordGroup {
	var res []model.ChordGroup

	i := 0
	for i < len(events) {
		anchor := events[i]
		labels := []string{anchor.Label}

		j := i + 1
		for j < len(events) && events[j].TimeSeconds-anchor.TimeSeconds < g.window {
			labels = append(labels, events[j].Label)
			j++
		}

		res = append(res, model.ChordGroup{
			AnchorTimeSeconds: anchor.TimeSeconds,
			Labels:            dedupeSorted(labels),
			DurationSeconds:   anchor.DurationSeconds,
		})
		i = j
	}

	return res
}

func dedupeSorted(labels []string) []string {
	seen := make(map[string]bool)
	res := make([]string, 0, len(labels))
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			res = append(res, l)
		}
	}
	sort.Strings(res)
	return res
}
