// Package history keeps the most recent gait hashes in a fixed-capacity,
// newest-first list with oldest-first eviction. The capped list is what
// /history serves; a monotonic total survives eviction for /stats.
package history

import (
	"sync"
	"time"
)

const DefaultCapacity = 5

// Entry is one generated hash with the payload it was derived from.
type Entry struct {
	Hash      string    `json:"hash"`
	GaitData  string    `json:"gaitData"`
	Timestamp time.Time `json:"timestamp"`
	ID        int64     `json:"id"`
}

type Ring struct {
	mu      sync.Mutex
	max     int
	entries []Entry
	total   int64
	lastID  int64
}

func NewRing(max int) *Ring {
	if max <= 0 {
		max = DefaultCapacity
	}
	return &Ring{max: max}
}

// Add records a hash at the head of the list, evicting the oldest entry
// once capacity is exceeded.
func (r *Ring) Add(hash, gaitData string) Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1 // ids stay unique within a millisecond
	}
	r.lastID = id

	entry := Entry{
		Hash:      hash,
		GaitData:  gaitData,
		Timestamp: time.Now().UTC(),
		ID:        id,
	}

	r.entries = append([]Entry{entry}, r.entries...)
	if len(r.entries) > r.max {
		r.entries = r.entries[:r.max]
	}
	r.total++
	return entry
}

// Entries returns a copy of the retained entries, newest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Ring) Max() int {
	return r.max
}

// Total is the number of hashes ever added, including evicted ones.
func (r *Ring) Total() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
