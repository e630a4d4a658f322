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

package reduce

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// eventsReadCount is used to indicate the number of events read by the engine
var eventsReadCount = promauto.NewCounter(prometheus.CounterOpts{
	Subsystem: "reduce",
	Name:      "events_read_total",
	Help:      "Total number of translation events read",
})

// resultsEmittedCount is used to indicate the number of per-minute results emitted
var resultsEmittedCount = promauto.NewCounter(prometheus.CounterOpts{
	Subsystem: "reduce",
	Name:      "results_emitted_total",
	Help:      "Total number of per-minute results emitted",
})

// syntheticMinutesCount is used to indicate the number of empty minutes synthesized to keep the chronology gap-free
var syntheticMinutesCount = promauto.NewCounter(prometheus.CounterOpts{
	Subsystem: "reduce",
	Name:      "synthetic_minutes_total",
	Help:      "Total number of synthetic empty minutes inserted",
})
