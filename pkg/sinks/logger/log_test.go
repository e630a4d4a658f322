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

package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/transflow/transflow/pkg/events"
)

func TestToLog(t *testing.T) {
	toLog, err := NewToLog()
	assert.NoError(t, err)
	assert.Equal(t, "log-sink", toLog.GetName())

	in := make(chan events.Result, 2)
	in <- events.Result{Date: time.Date(2018, 12, 26, 18, 11, 0, 0, time.UTC), AverageDeliveryTime: 0}
	in <- events.Result{Date: time.Date(2018, 12, 26, 18, 12, 0, 0, time.UTC), AverageDeliveryTime: 25.5}
	close(in)

	assert.NoError(t, toLog.Write(context.Background(), in))
}

func TestToLogCancelled(t *testing.T) {
	toLog, err := NewToLog()
	assert.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := make(chan events.Result)
	assert.ErrorIs(t, toLog.Write(ctx, in), context.Canceled)
}
