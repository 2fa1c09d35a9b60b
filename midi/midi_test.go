package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/skysheet/model"
	"github.com/jsphweid/skysheet/scale"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestWriteSheetProducesMatchingNotePairs(t *testing.T) {
	s := &model.Sheet{
		Name: "Test",
		BPM:  120,
		SongNotes: []model.SongNote{
			{Key: "A1", Time: 0},
			{Key: "B2", Time: 0},
			{Key: "A1", Time: 0.5},
		},
	}
	path := filepath.Join(t.TempDir(), "test.mid")

	err := WriteSheet(s, scale.Default(), path)
	assert.NoError(t, err)

	dat, err := os.ReadFile(path)
	assert.NoError(t, err)
	parsed, err := smf.ReadFrom(bytes.NewReader(dat))
	assert.NoError(t, err)
	assert.Len(t, parsed.Tracks, 1)

	ons := make(map[uint8]int)
	offs := make(map[uint8]int)
	for _, event := range parsed.Tracks[0] {
		var channel, key, velocity uint8
		switch {
		case event.Message.GetNoteOn(&channel, &key, &velocity):
			ons[key]++
		case event.Message.GetNoteOff(&channel, &key, &velocity):
			offs[key]++
		}
	}

	// A1 is C4 (60), B2 is C5 (72)
	assert.Equal(t, 2, ons[60])
	assert.Equal(t, 1, ons[72])
	assert.Equal(t, ons, offs)
}

func TestWriteSheetRejectsUnknownLabel(t *testing.T) {
	s := &model.Sheet{
		Name:      "Test",
		BPM:       120,
		SongNotes: []model.SongNote{{Key: "Z9", Time: 0}},
	}
	path := filepath.Join(t.TempDir(), "test.mid")

	err := WriteSheet(s, scale.Default(), path)
	assert.Error(t, err)
}

func TestFrequencyToKey(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(69), frequencyToKey(440))
	assert.Equal(uint8(60), frequencyToKey(261.63))
	assert.Equal(uint8(81), frequencyToKey(880))
}
