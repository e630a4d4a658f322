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

// Package pipeline wires a source, the moving average engine, and a sink
// into tasks connected by channels, and runs them to completion. Data flows
// one way, source to engine to sink; each stage closes its outbound channel
// to propagate end of stream downstream.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/reduce"
	"github.com/transflow/transflow/pkg/shared/logging"
	"github.com/transflow/transflow/pkg/sinks"
	"github.com/transflow/transflow/pkg/sources"
)

// DefaultBufferSize is the capacity of the channels between the stages.
// Sends block when a buffer fills, so a slow sink simply flow-controls the
// stages upstream.
const DefaultBufferSize = 1024

// Pipeline runs one source, one engine, and one sink to completion.
type Pipeline struct {
	source     sources.Sourcer
	engine     *reduce.MovingAverage
	sink       sinks.Sinker
	bufferSize int
	summary    bool
	logger     *zap.SugaredLogger
}

// Option is the typed option for Pipeline.
type Option func(*Pipeline) error

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Pipeline) error {
		p.logger = log
		return nil
	}
}

// WithBufferSize sets the channel capacity between the stages.
func WithBufferSize(n int) Option {
	return func(p *Pipeline) error {
		if n <= 0 {
			return fmt.Errorf("invalid buffer size %d", n)
		}
		p.bufferSize = n
		return nil
	}
}

// WithoutSummary disables the run summary logged after completion.
func WithoutSummary() Option {
	return func(p *Pipeline) error {
		p.summary = false
		return nil
	}
}

// New returns a Pipeline connecting the given stages.
func New(source sources.Sourcer, engine *reduce.MovingAverage, sink sinks.Sinker, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		source:     source,
		engine:     engine,
		sink:       sink,
		bufferSize: DefaultBufferSize,
		summary:    true,
	}
	for _, o := range opts {
		if err := o(p); err != nil {
			return nil, err
		}
	}
	if p.logger == nil {
		p.logger = logging.NewLogger()
	}
	return p, nil
}

// Run starts the three stages and blocks until the stream has fully drained
// or a stage fails. The first failure cancels the remaining stages.
func (p *Pipeline) Run(ctx context.Context) error {
	eventsCh := make(chan *events.TranslationEvent, p.bufferSize)
	resultsCh := make(chan events.Result, p.bufferSize)
	sinkCh := resultsCh

	g, gctx := errgroup.WithContext(ctx)

	var averages []float64
	if p.summary {
		teeCh := make(chan events.Result, p.bufferSize)
		sinkCh = teeCh
		g.Go(func() error {
			defer close(teeCh)
			for result := range resultsCh {
				averages = append(averages, result.AverageDeliveryTime)
				select {
				case <-gctx.Done():
					return gctx.Err()
				case teeCh <- result:
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		return p.source.Read(gctx, eventsCh)
	})
	g.Go(func() error {
		return p.engine.Process(gctx, eventsCh, resultsCh)
	})
	g.Go(func() error {
		return p.sink.Write(gctx, sinkCh)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}
	if p.summary {
		p.logSummary(averages)
	}
	p.logger.Infow("Pipeline complete", "source", p.source.GetName(), "sink", p.sink.GetName())
	return nil
}

func (p *Pipeline) logSummary(averages []float64) {
	summary, err := summarize(averages)
	if err != nil {
		p.logger.Infow("Run summary", "results", 0)
		return
	}
	p.logger.Infow("Run summary",
		"results", summary.Results,
		"min", summary.Min,
		"max", summary.Max,
		"mean", summary.Mean,
		"median", summary.Median)
}
