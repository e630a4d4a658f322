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

// Package generator implements a deterministic synthetic event source used
// for testing and benchmarking the pipeline without an input file.
package generator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/shared/logging"
	"github.com/transflow/transflow/pkg/sources"
)

// DurationFn produces the delivery duration of the i-th generated event.
type DurationFn func(i int) int64

// MemGen generates count events starting at start, spaced interval apart,
// with durations given by durationFn. Event times are synthetic; the
// generator never consults the wall clock, so runs are replayable.
type MemGen struct {
	name       string
	start      time.Time
	count      int
	interval   time.Duration
	durationFn DurationFn
	logger     *zap.SugaredLogger
}

var _ sources.Sourcer = (*MemGen)(nil)

// Option is the typed option for MemGen.
type Option func(*MemGen) error

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(mg *MemGen) error {
		mg.logger = log
		return nil
	}
}

// WithDurationFn sets the duration function; the default is a constant 10.
func WithDurationFn(fn DurationFn) Option {
	return func(mg *MemGen) error {
		mg.durationFn = fn
		return nil
	}
}

// NewMemGen returns a MemGen source.
func NewMemGen(start time.Time, count int, interval time.Duration, opts ...Option) (*MemGen, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid event count %d", count)
	}
	mg := &MemGen{
		name:       "memgen",
		start:      start,
		count:      count,
		interval:   interval,
		durationFn: func(int) int64 { return 10 },
	}
	for _, o := range opts {
		if err := o(mg); err != nil {
			return nil, err
		}
	}
	if mg.logger == nil {
		mg.logger = logging.NewLogger()
	}
	return mg, nil
}

// GetName returns the name of the source.
func (mg *MemGen) GetName() string {
	return mg.name
}

// Read pumps the generated events into out and closes it.
func (mg *MemGen) Read(ctx context.Context, out chan<- *events.TranslationEvent) error {
	defer close(out)
	for i := 0; i < mg.count; i++ {
		event := &events.TranslationEvent{
			Timestamp: events.EventTime{Time: mg.start.Add(time.Duration(i) * mg.interval)},
			EventName: "translation_delivered",
			Duration:  mg.durationFn(i),
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- event:
		}
	}
	mg.logger.Infow("Generation complete", "events", mg.count)
	return nil
}
