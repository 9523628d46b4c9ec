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

package prometheus

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/common/expfmt"
)

func TestNumberString(t *testing.T) {
	for _, tc := range []struct {
		n    Number
		want string
	}{
		{Number{}, "0"},
		{Number{Int: -12}, "-12"},
		{Number{Float: 1.5}, "1.5"},
		{Number{Float: math.Inf(1)}, "+Inf"},
		{Number{Float: math.Inf(-1)}, "-Inf"},
		{Number{Float: math.NaN()}, "NaN"},
	} {
		if got := tc.n.String(); got != tc.want {
			t.Errorf("%+v.String() = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestOrderedLabels(t *testing.T) {
	got, err := OrderedLabels(map[string]string{"le": "10", "b": "2"}, map[string]string{"a": "1"})
	if err != nil {
		t.Fatalf("OrderedLabels: %v", err)
	}
	want := []string{`a="1"`, `b="2"`, `le="10"`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OrderedLabels mismatch (-want +got):\n%s", diff)
	}
	if _, err := OrderedLabels(map[string]string{"a": "1"}, map[string]string{"a": "2"}); err == nil {
		t.Errorf("OrderedLabels with duplicate label succeeded")
	}
}

// TestWriteParses checks the output against the reference parser.
func TestWriteParses(t *testing.T) {
	calls := &Metric{Name: "calls", Type: TypeCounter, Help: "Number of calls.\nPer import."}
	latency := &Metric{Name: "latency", Type: TypeHistogram, Help: "Latency."}
	s := &Snapshot{When: time.UnixMilli(1700000000000)}
	s.Add(
		LabeledIntData(calls, map[string]string{"import": "dup"}, 3),
		LabeledIntData(calls, map[string]string{"import": "fcntl"}, 5),
		&Data{
			Metric: latency,
			HistogramValue: &Histogram{
				Total: Number{Int: 700},
				Buckets: []Bucket{
					{UpperBound: Number{Int: 100}, Samples: 2},
					{UpperBound: Number{Int: 1000}, Samples: 1},
					{UpperBound: Number{Float: math.Inf(1)}, Samples: 0},
				},
			},
		},
	)

	var buf bytes.Buffer
	if err := Write(&buf, ExportOptions{CommentHeader: "test", Prefix: "wasish_", ExtraLabels: map[string]string{"guest": "a.wasm"}}, s); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# test\n") {
		t.Errorf("missing comment header:\n%s", buf.String())
	}

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("output does not parse: %v\n%s", err, buf.String())
	}
	c, ok := families["wasish_calls"]
	if !ok {
		t.Fatalf("wasish_calls missing from %v", families)
	}
	if got := len(c.GetMetric()); got != 2 {
		t.Errorf("wasish_calls has %d samples, want 2", got)
	}
	for _, m := range c.GetMetric() {
		labels := make(map[string]string)
		for _, lp := range m.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		if labels["guest"] != "a.wasm" {
			t.Errorf("sample %v lacks the extra label", labels)
		}
		want := map[string]float64{"dup": 3, "fcntl": 5}[labels["import"]]
		if got := m.GetCounter().GetValue(); got != want {
			t.Errorf("calls{import=%q} = %v, want %v", labels["import"], got, want)
		}
	}

	h, ok := families["wasish_latency"]
	if !ok {
		t.Fatalf("wasish_latency missing")
	}
	hist := h.GetMetric()[0].GetHistogram()
	if hist.GetSampleCount() != 3 || hist.GetSampleSum() != 700 {
		t.Errorf("histogram count/sum = %d/%v, want 3/700", hist.GetSampleCount(), hist.GetSampleSum())
	}
	// Buckets are cumulative.
	var cumulative []uint64
	for _, b := range hist.GetBucket() {
		cumulative = append(cumulative, b.GetCumulativeCount())
	}
	if diff := cmp.Diff([]uint64{2, 3, 3}, cumulative); diff != "" {
		t.Errorf("bucket counts mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteErrors(t *testing.T) {
	m := &Metric{Name: "bad", Type: TypeGauge}
	s := NewSnapshot().Add(&Data{Metric: m})
	if err := Write(&bytes.Buffer{}, ExportOptions{}, s); err == nil {
		t.Errorf("Write of a value-less gauge succeeded")
	}
}
