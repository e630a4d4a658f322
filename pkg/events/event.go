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

// Package events defines the wire model of the pipeline: the translation
// delivery events consumed by the engine and the per-minute results it
// emits.
package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/transflow/transflow/pkg/window"
)

// TimestampLayout is the event timestamp form used on the wire, with
// microsecond precision and no zone.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// EventTime wraps time.Time so event timestamps marshal in TimestampLayout.
type EventTime struct {
	time.Time
}

// UnmarshalJSON parses a quoted timestamp in TimestampLayout.
func (et *EventTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return fmt.Errorf("invalid event timestamp %q: %w", s, err)
	}
	et.Time = t
	return nil
}

// MarshalJSON renders the timestamp in TimestampLayout.
func (et EventTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(et.Format(TimestampLayout))
}

// TranslationEvent is one translation-delivery occurrence, read once from a
// source and consumed once by the engine. Events arrive in non-decreasing
// timestamp order; ordering is the source's contract, not the engine's.
type TranslationEvent struct {
	Timestamp      EventTime `json:"timestamp"`
	TranslationID  string    `json:"translation_id"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	ClientName     string    `json:"client_name"`
	EventName      string    `json:"event_name"`
	NrWords        int64     `json:"nr_words"`
	Duration       int64     `json:"duration"`
}

// ParseEvent decodes a single JSON-encoded translation event and rejects
// records the engine cannot accept: a missing or unparseable timestamp, or a
// negative duration.
func ParseEvent(data []byte) (*TranslationEvent, error) {
	var event TranslationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("malformed translation event: %w", err)
	}
	if event.Timestamp.IsZero() {
		return nil, fmt.Errorf("translation event has no timestamp: %s", string(data))
	}
	if event.Duration < 0 {
		return nil, fmt.Errorf("translation event has negative duration %d", event.Duration)
	}
	return &event, nil
}

// Result is the moving average of delivery durations for one closed minute.
// Results are emitted one per minute of coverage, strictly increasing by
// minute.
type Result struct {
	// Date is the start of the minute the average applies to.
	Date time.Time
	// AverageDeliveryTime is the event-weighted moving average, already
	// rounded per the emission rules.
	AverageDeliveryTime float64
}

// Bytes renders the result in the exact output byte form: the minute at
// second precision, an integral average emitted without a fractional suffix,
// and a space after each colon and comma. Sinks must write this form
// directly; JSON encoders compact the whitespace out of a nested marshaler's
// output.
func (r Result) Bytes() []byte {
	return []byte(fmt.Sprintf(`{"date": %q, "average_delivery_time": %s}`,
		window.FormatMinute(r.Date), window.FormatAverage(r.AverageDeliveryTime)))
}

// MarshalJSON keeps a Result embedded in a larger document valid JSON.
func (r Result) MarshalJSON() ([]byte, error) {
	return r.Bytes(), nil
}
