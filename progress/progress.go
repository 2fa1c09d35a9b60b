package progress

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jsphweid/skysheet/util"
)

// Func reports a progress step for a job. Collaborators get handed one of
// these so they can report without knowing about the tracker.
type Func func(percent int, message string, details string)

// Record is the latest reported state for one conversion job.
type Record struct {
	JobID     string
	Percent   int
	Message   string
	Details   string
	Timestamp time.Time
}

// Tracker is the process-wide registry of in-flight jobs. Each job has a
// single sequential writer (its pipeline); readers poll concurrently.
// Records are whole-value overwrites, so a reader never sees fields from
// two different updates mixed together.
type Tracker struct {
	mu      sync.RWMutex
	records map[string]Record
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// NewTracker creates a tracker. A non-zero ttl starts a janitor that
// evicts records untouched for longer than ttl, which keeps the registry
// bounded over the process lifetime.
func NewTracker(ttl time.Duration) *Tracker {
	t := &Tracker{
		records: make(map[string]Record),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	if ttl > 0 {
		go t.janitor()
	}
	return t
}

func (t *Tracker) Update(jobID string, percent int, message, details string) {
	t.mu.Lock()
	t.records[jobID] = Record{
		JobID:     jobID,
		Percent:   percent,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
	t.mu.Unlock()
	log.Printf("progress %v: %v%% - %v", jobID, percent, message)
}

func (t *Tracker) Get(jobID string) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.records[jobID]
	return rec, ok
}

func (t *Tracker) Remove(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, jobID)
}

// Jobs returns the tracked job ids, sorted for stable output.
func (t *Tracker) Jobs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := util.GetKeys(t.records)
	sort.Strings(keys)
	return keys
}

// Close stops the janitor. Safe to call on trackers without one.
func (t *Tracker) Close() {
	t.once.Do(func() {
		close(t.done)
	})
}

func (t *Tracker) janitor() {
	interval := t.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.evictStale()
		}
	}
}

func (t *Tracker) evictStale() {
	cutoff := time.Now().Add(-t.ttl)
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, rec := range t.records {
		if rec.Timestamp.Before(cutoff) {
			delete(t.records, id)
		}
	}
}
