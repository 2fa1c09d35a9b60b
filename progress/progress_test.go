package progress

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpdateCreatesAndOverwrites(t *testing.T) {
	tr := NewTracker(0)

	tr.Update("job1", 5, "Starting", "first")
	tr.Update("job1", 60, "Downloading", "second")

	rec, ok := tr.Get("job1")

	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(60, rec.Percent)
	assert.Equal("Downloading", rec.Message)
	assert.Equal("second", rec.Details)
	assert.Equal("job1", rec.JobID)
	assert.False(rec.Timestamp.IsZero())
}

func TestGetUnknownJob(t *testing.T) {
	tr := NewTracker(0)
	_, ok := tr.Get("nope")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	tr := NewTracker(0)
	tr.Update("job1", 100, "Done", "")
	tr.Remove("job1")

	_, ok := tr.Get("job1")
	assert.False(t, ok)
}

func TestJobsAreSorted(t *testing.T) {
	tr := NewTracker(0)
	tr.Update("b", 1, "", "")
	tr.Update("a", 1, "", "")
	tr.Update("c", 1, "", "")

	assert.Equal(t, []string{"a", "b", "c"}, tr.Jobs())
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	tr := NewTracker(0)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			jobID := fmt.Sprintf("job%v", w)
			for p := 0; p <= 100; p++ {
				tr.Update(jobID, p, "working", "")
			}
		}(w)
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			jobID := fmt.Sprintf("job%v", w)
			for i := 0; i < 100; i++ {
				if rec, ok := tr.Get(jobID); ok {
					// whole-record overwrite: fields always belong together
					assert.Equal(t, "working", rec.Message)
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < 8; w++ {
		rec, ok := tr.Get(fmt.Sprintf("job%v", w))
		assert.True(t, ok)
		assert.Equal(t, 100, rec.Percent)
	}
}

func TestStaleRecordsAreEvicted(t *testing.T) {
	tr := NewTracker(time.Nanosecond)
	defer tr.Close()

	tr.Update("old", 100, "Done", "")
	time.Sleep(2 * time.Millisecond)
	tr.evictStale()

	_, ok := tr.Get("old")
	assert.False(t, ok)
}
