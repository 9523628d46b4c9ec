// Copyright 2022 The gVisor Authors.
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

// Package prometheus writes metric snapshots in the Prometheus text
// exposition format, documented at:
// https://prometheus.io/docs/instrumenting/exposition_formats/
package prometheus

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// timeNow is the time.Now() function. Can be mocked in tests.
var timeNow = time.Now

// Type is a Prometheus metric type.
type Type int

// List of supported Prometheus metric types.
const (
	TypeUntyped = Type(iota)
	TypeGauge
	TypeCounter
	TypeHistogram
)

// String returns the name the exposition format uses for t.
func (t Type) String() string {
	switch t {
	case TypeGauge:
		return "gauge"
	case TypeCounter:
		return "counter"
	case TypeHistogram:
		return "histogram"
	default:
		return "untyped"
	}
}

// Metric is a Prometheus metric metadata.
type Metric struct {
	// Name is the Prometheus metric name.
	Name string `json:"name"`

	// Type is the type of the metric.
	Type Type `json:"type"`

	// Help is an optional helpful string explaining what the metric is about.
	Help string `json:"help"`
}

// writeHeaderTo writes the HELP and TYPE comments of m.
func (m *Metric) writeHeaderTo(w io.Writer, prefix string) error {
	if m.Help != "" {
		// Only backslashes and line breaks need escaping in HELP text.
		help := strings.NewReplacer("\\", "\\\\", "\n", "\\n").Replace(m.Help)
		if _, err := fmt.Fprintf(w, "# HELP %s%s %s\n", prefix, m.Name, help); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "# TYPE %s%s %s\n", prefix, m.Name, m.Type)
	return err
}

// Number represents a numerical value. Prometheus numbers are all float64,
// but counters are far easier to keep exact as integers; a Number holds one
// or the other and is written out as a float.
type Number struct {
	// Float is the float value of this number.
	// Mutually exclusive with Int.
	Float float64 `json:"float,omitempty"`

	// Int is the integer value of this number.
	// Mutually exclusive with Float.
	Int int64 `json:"int,omitempty"`
}

// String returns a string representation of this number.
func (n Number) String() string {
	switch {
	case n.Int == 0 && n.Float == 0:
		return "0"
	case n.Int != 0:
		return strconv.FormatInt(n.Int, 10)
	case math.IsInf(n.Float, -1):
		return "-Inf"
	case math.IsInf(n.Float, 1):
		return "+Inf"
	case math.IsNaN(n.Float):
		return "NaN"
	default:
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	}
}

// Bucket is a single histogram bucket.
type Bucket struct {
	// UpperBound is the upper bound of the bucket. The last bucket of a
	// histogram has +Inf here.
	UpperBound Number `json:"le"`

	// Samples is the number of samples in the bucket, not cumulative. The
	// writer accumulates them, as the exposition format requires.
	Samples uint64 `json:"n,omitempty"`
}

// Histogram contains data about histogram values.
type Histogram struct {
	// Total is the sum of sample values across all buckets.
	Total Number `json:"total"`
	// Buckets contains per-bucket data in increasing UpperBound order.
	Buckets []Bucket `json:"buckets,omitempty"`
}

// Data is an observation of the value of a single metric at a certain point in time.
type Data struct {
	// Metric is the metric for which the value is being reported.
	Metric *Metric `json:"metric"`

	// Labels is a key-value pair representing the labels set on this metric.
	Labels map[string]string `json:"labels,omitempty"`

	// Exactly one of the fields below is set, depending on Metric.Type.

	// Number is used for all numerical types.
	Number *Number `json:"val,omitempty"`

	// HistogramValue is used for histogram-typed metrics.
	HistogramValue *Histogram `json:"histogram,omitempty"`
}

// NewIntData returns a new Data struct with the given metric and value.
func NewIntData(metric *Metric, val int64) *Data {
	return &Data{Metric: metric, Number: &Number{Int: val}}
}

// LabeledIntData returns a new Data struct with the given metric, labels, and value.
func LabeledIntData(metric *Metric, labels map[string]string, val int64) *Data {
	return &Data{Metric: metric, Labels: labels, Number: &Number{Int: val}}
}

// Snapshot is a snapshot of the values of all the metrics at a certain point in time.
type Snapshot struct {
	// When is the timestamp at which the snapshot was taken.
	When time.Time `json:"when,omitempty"`

	// Data is the whole snapshot data. Each (Metric, Labels) pair appears
	// at most once.
	Data []*Data `json:"data,omitempty"`
}

// NewSnapshot returns a new Snapshot at the current time.
func NewSnapshot() *Snapshot {
	return &Snapshot{When: timeNow()}
}

// Add data point(s) to the snapshot.
// Returns itself for chainability.
func (s *Snapshot) Add(data ...*Data) *Snapshot {
	s.Data = append(s.Data, data...)
	return s
}

// ExportOptions contains options that control how metric data is exported.
type ExportOptions struct {
	// CommentHeader is prepended as a comment before any metric data.
	CommentHeader string

	// Prefix is prepended to all metric names.
	Prefix string

	// ExtraLabels is added as labels for all metric values.
	ExtraLabels map[string]string
}

// OrderedLabels returns the list of 'label_key="label_value"' in sorted order, except "le" which is
// a reserved Prometheus label name and should go last.
func OrderedLabels(labels ...map[string]string) ([]string, error) {
	var le string
	seen := make(map[string]struct{})
	var ordered []string
	for _, labelMap := range labels {
		for k, v := range labelMap {
			if _, found := seen[k]; found {
				return nil, fmt.Errorf("duplicate label name %q", k)
			}
			seen[k] = struct{}{}
			if k == "le" {
				le = v
				continue
			}
			ordered = append(ordered, fmt.Sprintf("%s=%q", k, v))
		}
	}
	sort.Strings(ordered)
	if _, ok := seen["le"]; ok {
		ordered = append(ordered, fmt.Sprintf("le=%q", le))
	}
	return ordered, nil
}

// writeLine writes a single sample line.
func (d *Data) writeLine(w io.Writer, suffix string, val Number, when time.Time, options ExportOptions, le *Number) error {
	var extra []map[string]string
	extra = append(extra, d.Labels, options.ExtraLabels)
	if le != nil {
		extra = append(extra, map[string]string{"le": le.String()})
	}
	labels, err := OrderedLabels(extra...)
	if err != nil {
		return err
	}
	var labelStr string
	if len(labels) > 0 {
		labelStr = "{" + strings.Join(labels, ",") + "}"
	}
	_, err = fmt.Fprintf(w, "%s%s%s%s %s %d\n", options.Prefix, d.Metric.Name, suffix, labelStr, val, when.UnixMilli())
	return err
}

// writeTo writes the samples of d.
func (d *Data) writeTo(w io.Writer, when time.Time, options ExportOptions) error {
	switch d.Metric.Type {
	case TypeUntyped, TypeGauge, TypeCounter:
		if d.Number == nil {
			return fmt.Errorf("metric %s has no value", d.Metric.Name)
		}
		return d.writeLine(w, "", *d.Number, when, options, nil)
	case TypeHistogram:
		if d.HistogramValue == nil {
			return fmt.Errorf("histogram %s has no value", d.Metric.Name)
		}
		var count uint64
		for i := range d.HistogramValue.Buckets {
			b := &d.HistogramValue.Buckets[i]
			count += b.Samples
			if err := d.writeLine(w, "_bucket", Number{Int: int64(count)}, when, options, &b.UpperBound); err != nil {
				return err
			}
		}
		if err := d.writeLine(w, "_sum", d.HistogramValue.Total, when, options, nil); err != nil {
			return err
		}
		return d.writeLine(w, "_count", Number{Int: int64(count)}, when, options, nil)
	default:
		return fmt.Errorf("unknown metric type for metric %s: %v", d.Metric.Name, d.Metric.Type)
	}
}

// Write writes s to w. Samples of the same metric are grouped under a single
// HELP/TYPE preamble, and metrics are written in name order.
func Write(w io.Writer, options ExportOptions, s *Snapshot) error {
	bw := bufio.NewWriter(w)
	if options.CommentHeader != "" {
		for _, line := range strings.Split(options.CommentHeader, "\n") {
			if _, err := fmt.Fprintf(bw, "# %s\n", line); err != nil {
				return err
			}
		}
	}

	byName := make(map[string][]*Data)
	var names []string
	for _, d := range s.Data {
		if _, ok := byName[d.Metric.Name]; !ok {
			names = append(names, d.Metric.Name)
		}
		byName[d.Metric.Name] = append(byName[d.Metric.Name], d)
	}
	sort.Strings(names)

	for _, name := range names {
		data := byName[name]
		if _, err := io.WriteString(bw, "\n"); err != nil {
			return err
		}
		if err := data[0].Metric.writeHeaderTo(bw, options.Prefix); err != nil {
			return err
		}
		for _, d := range data {
			if err := d.writeTo(bw, s.When, options); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
