// Copyright 2018 The gVisor Authors.
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

// Package metric provides primitives for collecting metrics.
//
// Metrics are registered at package initialization, before Initialize is
// called, and exported as a Prometheus snapshot with Write.
package metric

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"wasish.dev/wasish/pkg/prometheus"
)

var (
	// ErrNameInUse indicates that another metric is already defined for
	// the given name.
	ErrNameInUse = errors.New("metric name already in use")

	// ErrInitializationDone indicates that the caller tried to create a
	// new metric after initialization.
	ErrInitializationDone = errors.New("metric cannot be created after initialization is complete")

	// ErrFieldValueContainsIllegalChar indicates that the value of a metric
	// field had an invalid character in it.
	ErrFieldValueContainsIllegalChar = errors.New("metric field value contains illegal character")

	// ErrFieldHasNoAllowedValues indicates that the field needs to define some
	// allowed values to be a valid and useful field.
	ErrFieldHasNoAllowedValues = errors.New("metric field does not define any allowed values")

	// ErrTooManyFieldCombinations indicates that the number of unique
	// combinations of fields is too large to support.
	ErrTooManyFieldCombinations = errors.New("metric has too many combinations of allowed field values")
)

// Units of a metric's value.
type Units int

// Supported units.
const (
	UnitsNone Units = iota
	UnitsNanoseconds
)

// metadata describes a registered metric.
type metadata struct {
	name        string
	description string
	cumulative  bool
	units       Units
	fields      []Field
}

// promMetric returns the Prometheus metadata for m. Metric names use '/' as
// separator; Prometheus names use '_'.
func (m *metadata) promMetric(typ prometheus.Type) *prometheus.Metric {
	name := strings.ReplaceAll(strings.TrimPrefix(m.name, "/"), "/", "_")
	if m.units == UnitsNanoseconds {
		name += "_nanoseconds"
	}
	return &prometheus.Metric{Name: name, Type: typ, Help: m.description}
}

func (m *metadata) promType() prometheus.Type {
	if m.cumulative {
		return prometheus.TypeCounter
	}
	return prometheus.TypeGauge
}

// Field contains the field name and allowed values for the metric which is
// used in registration of the metric.
type Field struct {
	// name is the metric field name.
	name string

	// allowedValues is the list of allowed values for the field.
	allowedValues []string
}

// NewField defines a new Field that can be used to break down a metric.
func NewField(name string, allowedValues []string) Field {
	return Field{name: name, allowedValues: allowedValues}
}

// maxFieldCombinations bounds the number of counters a metric with fields
// may allocate.
const maxFieldCombinations = 1 << 14

// fieldMapper maps a combination of field values to a dense integer key, in
// mixed radix over each field's allowed values.
type fieldMapper struct {
	fields []Field
	index  []map[string]int
	keys   int
}

func newFieldMapper(fields ...Field) (fieldMapper, error) {
	m := fieldMapper{fields: fields, keys: 1}
	for _, f := range fields {
		if len(f.allowedValues) == 0 {
			return fieldMapper{}, ErrFieldHasNoAllowedValues
		}
		idx := make(map[string]int, len(f.allowedValues))
		for i, v := range f.allowedValues {
			if strings.ContainsAny(v, "\"\\\n") {
				return fieldMapper{}, ErrFieldValueContainsIllegalChar
			}
			idx[v] = i
		}
		m.index = append(m.index, idx)
		m.keys *= len(f.allowedValues)
		if m.keys > maxFieldCombinations {
			return fieldMapper{}, ErrTooManyFieldCombinations
		}
	}
	return m, nil
}

// lookup returns the key for values. It panics if the number of values is
// wrong or a value is not allowed; both are programming errors.
func (m fieldMapper) lookup(values ...string) int {
	if len(values) != len(m.fields) {
		panic(fmt.Sprintf("invalid field lookup depth: got %d values, want %d", len(values), len(m.fields)))
	}
	key := 0
	for i, v := range values {
		idx, ok := m.index[i][v]
		if !ok {
			panic(fmt.Sprintf("invalid value %q for field %q", v, m.fields[i].name))
		}
		key = key*len(m.fields[i].allowedValues) + idx
	}
	return key
}

// numKeys returns the number of distinct keys.
func (m fieldMapper) numKeys() int {
	return m.keys
}

// keyToMultiField is the inverse of lookup.
func (m fieldMapper) keyToMultiField(key int) []string {
	values := make([]string, len(m.fields))
	for i := len(m.fields) - 1; i >= 0; i-- {
		n := len(m.fields[i].allowedValues)
		values[i] = m.fields[i].allowedValues[key%n]
		key /= n
	}
	return values
}

// labels returns the Prometheus labels for key.
func (m fieldMapper) labels(key int) map[string]string {
	if len(m.fields) == 0 {
		return nil
	}
	values := m.keyToMultiField(key)
	l := make(map[string]string, len(values))
	for i, f := range m.fields {
		l[f.name] = values[i]
	}
	return l
}

// Uint64Metric encapsulates a uint64 that represents some kind of metric to be
// monitored.
type Uint64Metric struct {
	metadata

	// fieldMapper is used to generate index keys for the values array
	// based on field value combinations, and vice-versa.
	fieldMapper fieldMapper

	// values holds one counter per field value combination.
	values []atomic.Uint64
}

// customUint64Metric is a metric whose value is computed on export.
type customUint64Metric struct {
	metadata
	fieldMapper fieldMapper
	value       func(fieldValues ...string) uint64
}

// metricSet holds all registered metrics.
type metricSet struct {
	uint64Metrics       map[string]*Uint64Metric
	customMetrics       map[string]*customUint64Metric
	distributionMetrics map[string]*DistributionMetric
}

func makeMetricSet() *metricSet {
	return &metricSet{
		uint64Metrics:       make(map[string]*Uint64Metric),
		customMetrics:       make(map[string]*customUint64Metric),
		distributionMetrics: make(map[string]*DistributionMetric),
	}
}

func (s *metricSet) inUse(name string) bool {
	_, u := s.uint64Metrics[name]
	_, c := s.customMetrics[name]
	_, d := s.distributionMetrics[name]
	return u || c || d
}

var (
	// mu protects initialized and allMetrics' maps.
	mu sync.Mutex

	// initialized indicates that all metrics are registered. allMetrics is
	// immutable once initialized is true.
	initialized bool

	// allMetrics are the registered metrics.
	allMetrics = makeMetricSet()
)

// Initialize marks registration complete.
//
// Precondition:
//   - All metrics are registered.
//   - Initialize/Disable has not been called.
func Initialize() error {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return errors.New("metric.Initialize called after metric.Initialize or metric.Disable")
	}
	initialized = true
	return nil
}

// Disable marks registration complete and drops every registered metric, so
// nothing is exported.
//
// Precondition:
//   - All metrics are registered.
//   - Initialize/Disable has not been called.
func Disable() error {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return errors.New("metric.Disable called after metric.Initialize or metric.Disable")
	}
	initialized = true
	allMetrics = makeMetricSet()
	return nil
}

// register validates name and fields and calls add with the field mapper.
func register(name string, add func(fieldMapper), fields ...Field) error {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return ErrInitializationDone
	}
	if allMetrics.inUse(name) {
		return ErrNameInUse
	}
	fm, err := newFieldMapper(fields...)
	if err != nil {
		return err
	}
	add(fm)
	return nil
}

// NewUint64Metric creates and registers a new metric. A cumulative metric is
// exported as a counter, any other as a gauge.
func NewUint64Metric(name string, cumulative bool, units Units, description string, fields ...Field) (*Uint64Metric, error) {
	m := &Uint64Metric{metadata: metadata{name: name, description: description, cumulative: cumulative, units: units, fields: fields}}
	err := register(name, func(fm fieldMapper) {
		m.fieldMapper = fm
		m.values = make([]atomic.Uint64, fm.numKeys())
		allMetrics.uint64Metrics[name] = m
	}, fields...)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// MustCreateNewUint64Metric creates and registers a cumulative metric. If an
// error occurs, it panics.
func MustCreateNewUint64Metric(name, description string, fields ...Field) *Uint64Metric {
	m, err := NewUint64Metric(name, true /* cumulative */, UnitsNone, description, fields...)
	if err != nil {
		panic(fmt.Sprintf("Unable to create metric %q: %s", name, err))
	}
	return m
}

// RegisterCustomUint64Metric registers a metric whose value is obtained by
// calling value on export, once per field value combination.
func RegisterCustomUint64Metric(name string, cumulative bool, units Units, description string, value func(...string) uint64, fields ...Field) error {
	m := &customUint64Metric{metadata: metadata{name: name, description: description, cumulative: cumulative, units: units, fields: fields}, value: value}
	return register(name, func(fm fieldMapper) {
		m.fieldMapper = fm
		allMetrics.customMetrics[name] = m
	}, fields...)
}

// MustRegisterCustomUint64Metric calls RegisterCustomUint64Metric and panics
// if it returns an error.
func MustRegisterCustomUint64Metric(name string, cumulative bool, description string, value func(...string) uint64, fields ...Field) {
	if err := RegisterCustomUint64Metric(name, cumulative, UnitsNone, description, value, fields...); err != nil {
		panic(fmt.Sprintf("Unable to register metric %q: %s", name, err))
	}
}

// Value returns the current value of the metric for the given set of fields.
func (m *Uint64Metric) Value(fieldValues ...string) uint64 {
	return m.values[m.fieldMapper.lookup(fieldValues...)].Load()
}

// Increment increments the metric field by 1.
func (m *Uint64Metric) Increment(fieldValues ...string) {
	m.IncrementBy(1, fieldValues...)
}

// IncrementBy increments the metric by v.
func (m *Uint64Metric) IncrementBy(v uint64, fieldValues ...string) {
	m.values[m.fieldMapper.lookup(fieldValues...)].Add(v)
}

// Snapshot returns the current values of all registered metrics. Field
// combinations that were never incremented are omitted from metrics with
// fields.
func Snapshot() *prometheus.Snapshot {
	mu.Lock()
	defer mu.Unlock()
	s := prometheus.NewSnapshot()

	for _, name := range sortedKeys(allMetrics.uint64Metrics) {
		m := allMetrics.uint64Metrics[name]
		pm := m.promMetric(m.promType())
		for key := range m.values {
			v := m.values[key].Load()
			if v == 0 && len(m.fields) > 0 {
				continue
			}
			s.Add(prometheus.LabeledIntData(pm, m.fieldMapper.labels(key), int64(v)))
		}
	}
	for _, name := range sortedKeys(allMetrics.customMetrics) {
		m := allMetrics.customMetrics[name]
		pm := m.promMetric(m.promType())
		for key := 0; key < m.fieldMapper.numKeys(); key++ {
			var values []string
			if len(m.fields) > 0 {
				values = m.fieldMapper.keyToMultiField(key)
			}
			s.Add(prometheus.LabeledIntData(pm, m.fieldMapper.labels(key), int64(m.value(values...))))
		}
	}
	for _, name := range sortedKeys(allMetrics.distributionMetrics) {
		s.Add(allMetrics.distributionMetrics[name].data()...)
	}
	return s
}

// Write writes a snapshot of all registered metrics to w in Prometheus text
// format.
func Write(w io.Writer, options prometheus.ExportOptions) error {
	return prometheus.Write(w, options, Snapshot())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
