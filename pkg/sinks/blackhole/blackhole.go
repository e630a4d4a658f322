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

// Package blackhole implements a Sinker to emulate /dev/null, used for
// benchmarking the engine without sink overhead.
package blackhole

import (
	"context"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/sinks"
)

// Blackhole is a sink to emulate /dev/null
type Blackhole struct {
	name string
}

var _ sinks.Sinker = (*Blackhole)(nil)

// NewBlackhole returns a new Blackhole sink.
func NewBlackhole() *Blackhole {
	return &Blackhole{
		name: "blackhole-sink",
	}
}

// GetName returns the name.
func (b *Blackhole) GetName() string {
	return b.name
}

// Write discards results until the inbound channel closes.
func (b *Blackhole) Write(ctx context.Context, in <-chan events.Result) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-in:
			if !ok {
				return nil
			}
			sinkWriteCount.Inc()
		}
	}
}
