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

// Package logger implements a Sinker printing each result to the log,
// useful for inspecting a run without an output file.
package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/shared/logging"
	"github.com/transflow/transflow/pkg/sinks"
	"github.com/transflow/transflow/pkg/window"
)

// ToLog prints the output to a log sink.
type ToLog struct {
	name   string
	logger *zap.SugaredLogger
}

var _ sinks.Sinker = (*ToLog)(nil)

// Option is the typed option for ToLog.
type Option func(*ToLog) error

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(t *ToLog) error {
		t.logger = log
		return nil
	}
}

// NewToLog returns ToLog type.
func NewToLog(opts ...Option) (*ToLog, error) {
	toLog := &ToLog{
		name: "log-sink",
	}
	// use opts in future for specifying logger format etc
	for _, o := range opts {
		if err := o(toLog); err != nil {
			return nil, err
		}
	}
	if toLog.logger == nil {
		toLog.logger = logging.NewLogger()
	}
	return toLog, nil
}

// GetName returns the name of the sink.
func (t *ToLog) GetName() string {
	return t.name
}

// Write logs each result until the inbound channel closes.
func (t *ToLog) Write(ctx context.Context, in <-chan events.Result) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result, ok := <-in:
			if !ok {
				return nil
			}
			t.logger.Infow("Result",
				"date", window.FormatMinute(result.Date),
				"average_delivery_time", window.FormatAverage(result.AverageDeliveryTime))
			logSinkWriteCount.Inc()
		}
	}
}
