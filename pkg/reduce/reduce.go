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

// Package reduce implements the windowed aggregation engine. The engine
// consumes ordered translation events from an inbound channel, tracks a
// bounded per-minute chronology, and emits exactly one result per minute of
// coverage to an outbound channel, in chronological order, including empty
// minutes. Closing the inbound channel is the end-of-stream signal; after a
// final flush the engine closes the outbound channel to propagate it.
package reduce

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/shared/logging"
	"github.com/transflow/transflow/pkg/window"
)

// MovingAverage computes, for every calendar minute spanned by the event
// stream, the moving average of delivery durations over the preceding
// windowSize minutes. It runs as a single goroutine and owns its chronology
// exclusively, so no locking is involved.
type MovingAverage struct {
	windowSize int
	chronology *window.Chronology
	logger     *zap.SugaredLogger
}

// Option is the typed option for MovingAverage.
type Option func(*MovingAverage) error

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(ma *MovingAverage) error {
		ma.logger = log
		return nil
	}
}

// NewMovingAverage returns a MovingAverage engine for the given window size
// in minutes. The window size must have been validated positive before the
// engine is constructed; the engine never re-validates it.
func NewMovingAverage(windowSize int, opts ...Option) (*MovingAverage, error) {
	ma := &MovingAverage{
		windowSize: windowSize,
		chronology: window.NewChronology(windowSize),
	}
	for _, o := range opts {
		if err := o(ma); err != nil {
			return nil, err
		}
	}
	if ma.logger == nil {
		ma.logger = logging.NewLogger()
	}
	ma.logger = ma.logger.With("windowSize", windowSize)
	return ma, nil
}

// Process drains the inbound channel until it is closed, emitting one result
// per covered minute. After end of stream it flushes the still-open minute
// and closes the outbound channel. Process returns early only if the context
// is cancelled.
func (ma *MovingAverage) Process(ctx context.Context, in <-chan *events.TranslationEvent, out chan<- events.Result) error {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-in:
			if !ok {
				return ma.flush(ctx, out)
			}
			eventsReadCount.Inc()
			if err := ma.apply(ctx, event, out); err != nil {
				return err
			}
		}
	}
}

// apply folds one event into the chronology, closing and emitting any
// minutes the event proves complete.
func (ma *MovingAverage) apply(ctx context.Context, event *events.TranslationEvent, out chan<- events.Result) error {
	targetMinute := window.CeilToMinute(event.Timestamp.Time)
	head := ma.chronology.Head()

	switch {
	case head == nil:
		// First event ever. The minute before the target minute is provably
		// empty; record it so the chronology starts gap-free and close it
		// right away.
		previousMinute := targetMinute.Add(-time.Minute)
		ma.chronology.PushHead(previousMinute, 0, 0)
		syntheticMinutesCount.Inc()
		if err := ma.emit(ctx, out, previousMinute); err != nil {
			return err
		}
		ma.chronology.PushHead(targetMinute, 1, event.Duration)

	case targetMinute.Equal(head.Minute):
		// The open minute keeps accumulating; nothing to emit yet.
		head.EventCount++
		head.TotalDuration += event.Duration

	case targetMinute.Sub(head.Minute) == time.Minute:
		// The open minute is now closed.
		if err := ma.emit(ctx, out, head.Minute); err != nil {
			return err
		}
		ma.chronology.PushHead(targetMinute, 1, event.Duration)

	default:
		// A later, non-consecutive minute: close the open minute, then fill
		// the gap with synthetic empty minutes, closing each as it is
		// inserted so later empty minutes see earlier ones in their window.
		if err := ma.emit(ctx, out, head.Minute); err != nil {
			return err
		}
		for minute := head.Minute.Add(time.Minute); minute.Before(targetMinute); minute = minute.Add(time.Minute) {
			ma.chronology.PushHead(minute, 0, 0)
			syntheticMinutesCount.Inc()
			if err := ma.emit(ctx, out, minute); err != nil {
				return err
			}
		}
		ma.chronology.PushHead(targetMinute, 1, event.Duration)
	}
	return nil
}

// flush closes the minute left open when the stream ended. An empty stream
// has nothing to flush.
func (ma *MovingAverage) flush(ctx context.Context, out chan<- events.Result) error {
	head := ma.chronology.Head()
	if head == nil {
		ma.logger.Info("No events received, nothing to flush")
		return nil
	}
	return ma.emit(ctx, out, head.Minute)
}

func (ma *MovingAverage) emit(ctx context.Context, out chan<- events.Result, minute time.Time) error {
	result := events.Result{
		Date:                minute,
		AverageDeliveryTime: window.RoundAverage(ma.chronology.Average()),
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case out <- result:
		resultsEmittedCount.Inc()
		return nil
	}
}
