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

func TestCeilToMinute(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		expected time.Time
	}{
		{
			name:     "mid minute rounds up",
			in:       time.Date(2018, 12, 26, 18, 11, 8, 509654000, time.UTC),
			expected: time.Date(2018, 12, 26, 18, 12, 0, 0, time.UTC),
		},
		{
			name:     "exact boundary unchanged",
			in:       time.Date(2018, 12, 26, 18, 11, 0, 0, time.UTC),
			expected: time.Date(2018, 12, 26, 18, 11, 0, 0, time.UTC),
		},
		{
			name:     "sub-second past boundary rounds up",
			in:       time.Date(2018, 12, 26, 18, 11, 0, 1000, time.UTC),
			expected: time.Date(2018, 12, 26, 18, 12, 0, 0, time.UTC),
		},
		{
			name:     "last second of minute rounds up",
			in:       time.Date(2018, 12, 26, 18, 11, 59, 999999000, time.UTC),
			expected: time.Date(2018, 12, 26, 18, 12, 0, 0, time.UTC),
		},
		{
			name:     "hour rollover",
			in:       time.Date(2018, 12, 26, 18, 59, 30, 0, time.UTC),
			expected: time.Date(2018, 12, 26, 19, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CeilToMinute(tt.in))
		})
	}
}

func TestFormatAverage(t *testing.T) {
	assert.Equal(t, "0", FormatAverage(0))
	assert.Equal(t, "20", FormatAverage(20.0))
	assert.Equal(t, "25.5", FormatAverage(25.5))
	assert.Equal(t, "42.5", FormatAverage(42.5))
	assert.Equal(t, "33.333", FormatAverage(100.0/3))
	assert.Equal(t, "0.001", FormatAverage(0.001))
	// integral within floating-point noise stays integral
	assert.Equal(t, "3", FormatAverage(0.1+0.2+0.3+2.4))
}

func TestRoundAverage(t *testing.T) {
	assert.Equal(t, 20.0, RoundAverage(20.0))
	assert.Equal(t, 25.5, RoundAverage(25.5))
	assert.InDelta(t, 33.333, RoundAverage(100.0/3), 1e-12)
	assert.Equal(t, 3.0, RoundAverage(0.1+0.2+0.3+2.4))
}

func TestFormatMinute(t *testing.T) {
	m := time.Date(2018, 12, 26, 18, 11, 0, 0, time.UTC)
	assert.Equal(t, "2018-12-26 18:11:00", FormatMinute(m))
	m = time.Date(2018, 1, 2, 3, 4, 0, 0, time.UTC)
	assert.Equal(t, "2018-01-02 03:04:00", FormatMinute(m))
}
