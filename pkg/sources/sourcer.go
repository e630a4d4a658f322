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

// Package sources defines the Sourcer interface implemented by the
// translation event sources feeding the pipeline.
package sources

import (
	"context"

	"github.com/transflow/transflow/pkg/events"
)

// Sourcer pumps parsed translation events into the outbound channel in
// non-decreasing timestamp order and closes the channel once the stream is
// exhausted. Closing the channel is the end-of-stream signal; it must be
// closed on every return path so the engine downstream can flush and exit.
type Sourcer interface {
	// GetName returns the name of the source.
	GetName() string
	// Read pumps events into out until the stream ends or ctx is cancelled.
	Read(ctx context.Context, out chan<- *events.TranslationEvent) error
}
