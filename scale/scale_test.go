package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTableHas15DistinctTones(t *testing.T) {
	table := Default()

	assert := assert.New(t)
	assert.Equal(15, table.Len())

	seen := make(map[float64]bool)
	for _, tone := range table.Tones() {
		assert.Greater(tone.FrequencyHz, 0.0)
		assert.False(seen[tone.FrequencyHz])
		seen[tone.FrequencyHz] = true
	}
}

func TestDefaultTablePreservesInsertionOrder(t *testing.T) {
	tones := Default().Tones()

	assert := assert.New(t)
	assert.Equal("A1", tones[0].Label)
	assert.Equal("C5", tones[14].Label)
}

func TestNewRejectsEmptyTable(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNewRejectsDuplicateLabel(t *testing.T) {
	_, err := New([]Tone{{"A1", 440}, {"A1", 880}})
	assert.Error(t, err)
}

func TestNewRejectsDuplicateFrequency(t *testing.T) {
	_, err := New([]Tone{{"A1", 440}, {"A2", 440}})
	assert.Error(t, err)
}

func TestNewRejectsNonPositiveFrequency(t *testing.T) {
	_, err := New([]Tone{{"A1", 0}})
	assert.Error(t, err)
}
