package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/skysheet/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildFlattensChordsIntoSameTimeEntries(t *testing.T) {
	groups := []model.ChordGroup{
		{AnchorTimeSeconds: 0.0, Labels: []string{"A1", "B2"}},
		{AnchorTimeSeconds: 0.5, Labels: []string{"C3"}},
	}

	s, err := Build(groups, Metadata{Name: "Test", BPM: 120})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.SongNote{
		{Key: "A1", Time: 0.0},
		{Key: "B2", Time: 0.0},
		{Key: "C3", Time: 0.5},
	}, s.SongNotes)
}

func TestBuildTruncatesBPM(t *testing.T) {
	groups := []model.ChordGroup{{AnchorTimeSeconds: 0, Labels: []string{"A1"}}}

	s, err := Build(groups, Metadata{Name: "Test", BPM: 129.9})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(129, s.BPM)
}

func TestBuildSetsFixedHeaderFields(t *testing.T) {
	groups := []model.ChordGroup{{AnchorTimeSeconds: 0, Labels: []string{"A1"}}}

	s, err := Build(groups, Metadata{Name: "Test", Author: "me", TranscribedBy: "auto", BPM: 90})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(16, s.BitsPerPage)
	assert.Equal(0, s.PitchLevel)
	assert.True(s.IsComposed)
	assert.False(s.IsEncrypted)
	assert.Equal("me", s.Author)
	assert.Equal("auto", s.TranscribedBy)
}

func TestBuildFailsOnEmptyGroups(t *testing.T) {
	_, err := Build(nil, Metadata{Name: "Test"})
	assert.ErrorIs(t, err, ErrNoGroups)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	groups := []model.ChordGroup{
		{AnchorTimeSeconds: 0.0, Labels: []string{"A1", "B2"}},
		{AnchorTimeSeconds: 1.25, Labels: []string{"C5"}},
	}
	s, err := Build(groups, Metadata{Name: "Round Trip", Author: "a", TranscribedBy: "b", BPM: 100})
	assert.NoError(t, err)

	path, err := Save(s, dir)
	assert.NoError(t, err)

	loaded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestSaveSanitizesFilename(t *testing.T) {
	dir := t.TempDir()
	s := &model.Sheet{Name: "My Song: Part 1!", SongNotes: []model.SongNote{{Key: "A1"}}}

	path, err := Save(s, dir)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("My Song Part 1.json", filepath.Base(path))
	_, err = os.Stat(path)
	assert.NoError(err)
}

func TestSaveFallsBackToGeneratedName(t *testing.T) {
	dir := t.TempDir()
	s := &model.Sheet{Name: "!!!", SongNotes: []model.SongNote{{Key: "A1"}}}

	path, err := Save(s, dir)

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(strings.HasSuffix(path, ".json"))
	base := filepath.Base(path)
	assert.Greater(len(base), len(".json"))
}
