/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package window maintains the per-minute chronology used to compute moving
// averages of translation delivery times. The chronology is a bounded,
// gap-free sequence of minute aggregates ordered from the most recent minute
// at the front to the oldest retained minute at the back. The front entry is
// always the currently open minute, i.e. the most recent minute for which a
// result has not yet been emitted.
package window

import (
	"container/list"
	"time"
)

// MinuteBucket is the aggregate state of a single calendar minute.
type MinuteBucket struct {
	// Minute is the start of the minute, always on an exact minute boundary.
	Minute time.Time
	// EventCount is the number of events observed in this minute.
	EventCount int64
	// TotalDuration is the sum of the delivery durations of those events.
	TotalDuration int64
}

// Chronology is a bounded double-ended sequence of MinuteBucket entries,
// most recent first. Adjacent entries are exactly one minute apart; minutes
// with no events are represented by empty buckets so the sequence never has
// gaps. Once an insertion would exceed the window size the oldest entry is
// evicted, so insert and evict are both O(1).
// Chronology is not safe for concurrent use; it is owned by a single
// processing loop.
type Chronology struct {
	// entries is the list of retained minutes with the open minute at the
	// front and the oldest minute at the back.
	entries *list.List
	// limit is the maximum number of minutes retained, i.e. the window size.
	limit int
}

// NewChronology returns an empty Chronology retaining at most windowSize
// minutes. The caller is responsible for ensuring windowSize is positive.
func NewChronology(windowSize int) *Chronology {
	return &Chronology{
		entries: list.New(),
		limit:   windowSize,
	}
}

// Len returns the number of retained minutes.
func (c *Chronology) Len() int {
	return c.entries.Len()
}

// Head returns the currently open minute, or nil if the chronology is empty.
func (c *Chronology) Head() *MinuteBucket {
	if front := c.entries.Front(); front != nil {
		return front.Value.(*MinuteBucket)
	}
	return nil
}

// PushHead inserts a new open minute at the front of the chronology and
// evicts the oldest minute if the window size is exceeded. The caller must
// pass the minute immediately following the current head (or any minute, if
// the chronology is empty) to preserve the gap-free invariant.
func (c *Chronology) PushHead(minute time.Time, eventCount, totalDuration int64) *MinuteBucket {
	bucket := &MinuteBucket{
		Minute:        minute,
		EventCount:    eventCount,
		TotalDuration: totalDuration,
	}
	c.entries.PushFront(bucket)
	if c.entries.Len() > c.limit {
		c.entries.Remove(c.entries.Back())
	}
	return bucket
}

// Average returns the event-weighted mean duration over all retained
// minutes, i.e. the last windowSize minutes ending at and including the
// open minute. A window with no events at all yields 0 rather than a
// division fault.
func (c *Chronology) Average() float64 {
	var eventCount, totalDuration int64
	for e := c.entries.Front(); e != nil; e = e.Next() {
		bucket := e.Value.(*MinuteBucket)
		eventCount += bucket.EventCount
		totalDuration += bucket.TotalDuration
	}
	if eventCount == 0 {
		return 0
	}
	return float64(totalDuration) / float64(eventCount)
}
