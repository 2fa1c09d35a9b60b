package midi

import (
	"fmt"
	"math"
	"sort"

	"github.com/jsphweid/skysheet/model"
	"github.com/jsphweid/skysheet/scale"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const resolution = 480 // ticks per quarter note

type timedMessage struct {
	tick      uint32
	isNoteOff bool
	msg       midi.Message
}

// WriteSheet renders a sheet to a Standard MIDI File so it can be played
// back outside the game. Every note gets the fixed transcription duration.
func WriteSheet(s *model.Sheet, table *scale.Table, path string) error {
	bpm := float64(s.BPM)
	if bpm <= 0 {
		bpm = 120
	}

	keys := make(map[string]uint8)
	for _, tone := range table.Tones() {
		keys[tone.Label] = frequencyToKey(tone.FrequencyHz)
	}

	var msgs []timedMessage
	for _, note := range s.SongNotes {
		key, ok := keys[note.Key]
		if !ok {
			return fmt.Errorf("sheet note %v is not in the scale table", note.Key)
		}
		on := secondsToTicks(note.Time, bpm)
		off := secondsToTicks(note.Time+model.DefaultNoteDurationSeconds, bpm)
		msgs = append(msgs, timedMessage{tick: on, msg: midi.NoteOn(0, key, 100)})
		msgs = append(msgs, timedMessage{tick: off, isNoteOff: true, msg: midi.NoteOff(0, key)})
	}

	// prioritize smaller ticks then note off
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].isNoteOff && !msgs[j].isNoteOff
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(bpm))
	var lastTick uint32
	for _, m := range msgs {
		tr.Add(m.tick-lastTick, m.msg)
		lastTick = m.tick
	}
	tr.Close(0)

	var out smf.SMF
	out.TimeFormat = smf.MetricTicks(resolution)
	out.Tracks = append(out.Tracks, tr)
	return out.WriteFile(path)
}

func secondsToTicks(seconds, bpm float64) uint32 {
	return uint32(math.Round(seconds * bpm / 60.0 * resolution))
}

func frequencyToKey(frequencyHz float64) uint8 {
	return uint8(math.Round(69 + 12*math.Log2(frequencyHz/440.0)))
}
