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

// Package file implements a Sourcer reading translation events from a local
// file holding one JSON-encoded event per line, oldest first.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/shared/logging"
	"github.com/transflow/transflow/pkg/sources"
)

// FileSource reads a JSON-lines event file from start to end.
type FileSource struct {
	name   string
	path   string
	logger *zap.SugaredLogger
}

var _ sources.Sourcer = (*FileSource)(nil)

// Option is the typed option for FileSource.
type Option func(*FileSource) error

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(fs *FileSource) error {
		fs.logger = log
		return nil
	}
}

// NewFileSource returns a FileSource for the given path. The path must have
// been validated to exist beforehand.
func NewFileSource(path string, opts ...Option) (*FileSource, error) {
	fs := &FileSource{
		name: "file-source",
		path: path,
	}
	for _, o := range opts {
		if err := o(fs); err != nil {
			return nil, err
		}
	}
	if fs.logger == nil {
		fs.logger = logging.NewLogger()
	}
	fs.logger = fs.logger.With("sourceType", "file").With("path", path)
	return fs, nil
}

// GetName returns the name of the source.
func (fs *FileSource) GetName() string {
	return fs.name
}

// Read pumps one event per input line into out and closes out at EOF. A
// malformed line aborts the read; events past it cannot be trusted to keep
// the timestamp ordering contract.
func (fs *FileSource) Read(ctx context.Context, out chan<- *events.TranslationEvent) error {
	defer close(out)

	f, err := os.Open(fs.path)
	if err != nil {
		return fmt.Errorf("failed to open input file %q: %w", fs.path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		event, err := events.ParseEvent(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- event:
			fileSourceReadCount.Inc()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input file %q: %w", fs.path, err)
	}
	fs.logger.Infow("Input file exhausted", "events", lineNumber)
	return nil
}
