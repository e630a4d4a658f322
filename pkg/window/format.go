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
	"math"
	"strconv"
	"strings"
	"time"
)

// MinuteLayout is the canonical, sortable form of an emitted minute:
// second precision, zero padded, no sub-second component, no zone.
const MinuteLayout = "2006-01-02 15:04:05"

// integerEpsilon bounds the distance from the nearest integer below which an
// average is considered mathematically integral.
const integerEpsilon = 1e-9

// CeilToMinute rounds t up to the next minute boundary. A timestamp already
// on an exact minute boundary is returned unchanged, so an event landing
// exactly on HH:MM:00.000000 belongs to that minute and not the next.
func CeilToMinute(t time.Time) time.Time {
	truncated := t.Truncate(time.Minute)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(time.Minute)
}

// RoundAverage normalizes a window average before emission: integral values
// are returned exact, anything else is rounded to 3 decimal digits.
func RoundAverage(f float64) float64 {
	if isIntegral(f) {
		return math.Round(f)
	}
	return math.Round(f*1000) / 1000
}

// FormatAverage renders an average the way the output expects it: an
// integral value has no fractional suffix, a non-integral value is rounded
// to 3 decimal digits with trailing zeros trimmed.
func FormatAverage(f float64) string {
	if isIntegral(f) {
		return strconv.FormatInt(int64(math.Round(f)), 10)
	}
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// FormatMinute renders a minute boundary in MinuteLayout.
func FormatMinute(t time.Time) string {
	return t.Format(MinuteLayout)
}

func isIntegral(f float64) bool {
	return math.Abs(f-math.Round(f)) < integerEpsilon
}
