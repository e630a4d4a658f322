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

package generator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/transflow/transflow/pkg/events"
)

func TestRead(t *testing.T) {
	start := time.Date(2018, 12, 26, 18, 11, 8, 0, time.UTC)
	mg, err := NewMemGen(start, 5, 30*time.Second, WithDurationFn(func(i int) int64 { return int64(i * 10) }))
	assert.NoError(t, err)

	out := make(chan *events.TranslationEvent, 5)
	assert.NoError(t, mg.Read(context.Background(), out))

	var read []*events.TranslationEvent
	for event := range out {
		read = append(read, event)
	}
	assert.Equal(t, 5, len(read))
	assert.Equal(t, start, read[0].Timestamp.Time)
	assert.Equal(t, start.Add(2*time.Minute), read[4].Timestamp.Time)
	assert.Equal(t, int64(40), read[4].Duration)
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mg, err := NewMemGen(time.Now(), 10, time.Second)
	assert.NoError(t, err)
	out := make(chan *events.TranslationEvent)
	assert.ErrorIs(t, mg.Read(ctx, out), context.Canceled)
}

func TestInvalidCount(t *testing.T) {
	_, err := NewMemGen(time.Now(), -1, time.Second)
	assert.Error(t, err)
}
