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

package pipeline

import (
	"github.com/montanaflynn/stats"
)

// runSummary describes the distribution of the averages emitted by one run.
type runSummary struct {
	Results int
	Min     float64
	Max     float64
	Mean    float64
	Median  float64
}

// summarize computes the run summary; it fails on an empty run, which the
// caller reports as zero results.
func summarize(averages []float64) (*runSummary, error) {
	min, err := stats.Min(averages)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(averages)
	if err != nil {
		return nil, err
	}
	mean, err := stats.Mean(averages)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(averages)
	if err != nil {
		return nil, err
	}
	return &runSummary{
		Results: len(averages),
		Min:     min,
		Max:     max,
		Mean:    mean,
		Median:  median,
	}, nil
}
