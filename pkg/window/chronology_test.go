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

package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var baseMinute = time.Date(2018, 12, 26, 18, 11, 0, 0, time.UTC)

func TestPushHead(t *testing.T) {
	c := NewChronology(3)
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Head())

	c.PushHead(baseMinute, 0, 0)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, baseMinute, c.Head().Minute)

	c.PushHead(baseMinute.Add(time.Minute), 1, 20)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, baseMinute.Add(time.Minute), c.Head().Minute)
	assert.Equal(t, int64(1), c.Head().EventCount)
	assert.Equal(t, int64(20), c.Head().TotalDuration)
}

func TestEviction(t *testing.T) {
	c := NewChronology(3)
	for i := 0; i < 5; i++ {
		c.PushHead(baseMinute.Add(time.Duration(i)*time.Minute), 1, int64(10*(i+1)))
	}
	// capped at the window size, oldest two minutes evicted
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, baseMinute.Add(4*time.Minute), c.Head().Minute)
	// only the three retained minutes participate in the average
	assert.InDelta(t, float64(30+40+50)/3, c.Average(), 1e-9)
}

func TestHeadMutation(t *testing.T) {
	c := NewChronology(10)
	head := c.PushHead(baseMinute, 1, 20)
	head.EventCount++
	head.TotalDuration += 31
	assert.Equal(t, int64(2), c.Head().EventCount)
	assert.Equal(t, int64(51), c.Head().TotalDuration)
	assert.InDelta(t, 25.5, c.Average(), 1e-9)
}

func TestAverageEmptyWindow(t *testing.T) {
	c := NewChronology(5)
	assert.Zero(t, c.Average())

	// a window composed entirely of synthetic empty minutes must not fault
	for i := 0; i < 5; i++ {
		c.PushHead(baseMinute.Add(time.Duration(i)*time.Minute), 0, 0)
	}
	assert.Zero(t, c.Average())
}

func TestAverageShorterThanWindow(t *testing.T) {
	c := NewChronology(10)
	c.PushHead(baseMinute, 0, 0)
	c.PushHead(baseMinute.Add(time.Minute), 1, 20)
	assert.InDelta(t, 20, c.Average(), 1e-9)
}

func TestWindowSizeOne(t *testing.T) {
	c := NewChronology(1)
	c.PushHead(baseMinute, 2, 30)
	assert.InDelta(t, 15, c.Average(), 1e-9)
	// no history carried across minutes
	c.PushHead(baseMinute.Add(time.Minute), 1, 100)
	assert.Equal(t, 1, c.Len())
	assert.InDelta(t, 100, c.Average(), 1e-9)
}
