package board

import (
	"fmt"
	"strings"
)

const defaultEventLimit = 4096

// Entry is one recorded board event.
type Entry struct {
	Seq      int
	Tick     int
	Column   int     // -1 for board-wide events
	Index    int     // stack slot at the time of the event, or -1
	Category string  // spawn, land, match, group, revive, despawn, swap, select
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] c3:02 match    across   blue ×3 → G7 (4 blocks)
func (e Entry) String() string {
	where := "--   "
	if e.Column >= 0 {
		where = fmt.Sprintf("c%d:%02d", e.Column, e.Index)
	}
	return fmt.Sprintf("[T=%03d] %-5s %-8s %-8s %s",
		e.Tick, where, e.Category, e.Key, e.Value)
}

// EventLog collects structured board events. With a positive limit it keeps
// only the most recent entries; sequence numbers keep increasing so readers
// can poll with After.
type EventLog struct {
	entries []Entry
	limit   int
	seq     int
}

// NewEventLog creates a log that retains at most limit entries (0 = unbounded).
func NewEventLog(limit int) *EventLog {
	return &EventLog{limit: limit}
}

// Add records a new entry.
func (el *EventLog) Add(tick, column, index int, category, key, value string, numVal float64) {
	el.seq++
	el.entries = append(el.entries, Entry{
		Seq:      el.seq,
		Tick:     tick,
		Column:   column,
		Index:    index,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
	// Trim in batches into fresh storage so slices handed out earlier
	// are never overwritten.
	if el.limit > 0 && len(el.entries) >= 2*el.limit {
		kept := make([]Entry, el.limit, 2*el.limit)
		copy(kept, el.entries[len(el.entries)-el.limit:])
		el.entries = kept
	}
}

// live is the retained window, at most limit entries.
func (el *EventLog) live() []Entry {
	if el.limit > 0 && len(el.entries) > el.limit {
		return el.entries[len(el.entries)-el.limit:]
	}
	return el.entries
}

// Entries returns all retained entries, oldest first. The slice shares the
// log's storage: read it, don't append to it.
func (el *EventLog) Entries() []Entry {
	return el.live()
}

// Len returns the number of retained entries.
func (el *EventLog) Len() int { return len(el.live()) }

// LastSeq returns the sequence number of the newest entry ever added.
func (el *EventLog) LastSeq() int { return el.seq }

// After returns retained entries with a sequence number greater than seq.
// Later Adds never modify the returned entries.
func (el *EventLog) After(seq int) []Entry {
	live := el.live()
	for i, e := range live {
		if e.Seq > seq {
			return live[i:len(live):len(live)]
		}
	}
	return nil
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []Entry {
	var out []Entry
	for _, e := range el.live() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (el *EventLog) FilterTickRange(fromTick, toTick int) []Entry {
	var out []Entry
	for _, e := range el.live() {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (Entry, bool) {
	live := el.live()
	for i := len(live) - 1; i >= 0; i-- {
		e := live[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return Entry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.live() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	return formatEntries(el.live())
}

// FormatRange returns a log string filtered to a tick range.
func (el *EventLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(el.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
