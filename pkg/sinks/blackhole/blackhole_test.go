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

package blackhole

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/transflow/transflow/pkg/events"
)

func TestBlackhole(t *testing.T) {
	b := NewBlackhole()
	assert.Equal(t, "blackhole-sink", b.GetName())

	in := make(chan events.Result, 3)
	for i := 0; i < 3; i++ {
		in <- events.Result{Date: time.Date(2018, 12, 26, 18, 11+i, 0, 0, time.UTC)}
	}
	close(in)
	assert.NoError(t, b.Write(context.Background(), in))
}
