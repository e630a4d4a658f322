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

// Package sinks defines the Sinker interface implemented by the result
// sinks terminating the pipeline.
package sinks

import (
	"context"

	"github.com/transflow/transflow/pkg/events"
)

// Sinker drains the inbound results channel until it is closed, persisting
// every result it receives. The closed channel is the end-of-stream signal
// propagated by the engine after its final flush.
type Sinker interface {
	// GetName returns the name of the sink.
	GetName() string
	// Write consumes results until in is closed or ctx is cancelled.
	Write(ctx context.Context, in <-chan events.Result) error
}
