// Copyright 2026 The wasish Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package imports

import (
	"time"

	"wasish.dev/wasish/pkg/metric"
)

var importField = metric.NewField("import", Env.Names())

var (
	callCount = metric.MustCreateNewUint64Metric("/imports/calls",
		"Number of guest calls to each host import.", importField)
	errorCount = metric.MustCreateNewUint64Metric("/imports/errors",
		"Number of host import calls that failed.", importField)
	unsupportedCount = metric.MustCreateNewUint64Metric("/imports/unsupported_calls",
		"Number of guest calls to imports that are not implemented.")
	callLatency = metric.MustCreateNewTimerMetric("/imports/latency",
		metric.NewDurationBucketer(12, time.Microsecond, 100*time.Millisecond),
		"Time spent in host imports.", importField)
)
