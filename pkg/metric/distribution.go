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

package metric

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"wasish.dev/wasish/pkg/prometheus"
)

// Bucketer is an interface to bucket values into finite, distinct buckets.
type Bucketer interface {
	// NumFiniteBuckets is the number of finite buckets in the distribution.
	// This is only called once and never expected to return a different value.
	NumFiniteBuckets() int

	// LowerBound takes the index of a bucket (within [0, NumBuckets()]) and
	// returns the inclusive lower bound of that bucket. The upper bound of a
	// bucket is the lower bound of the next one; the last bucket, at index
	// NumFiniteBuckets(), has no upper bound.
	LowerBound(bucketIndex int) int64

	// BucketIndex takes a sample and returns the index of the bucket that the
	// sample should fall into: a value in [0, NumFiniteBuckets()-1] for a
	// finite bucket, NumFiniteBuckets() for the last (infinite) bucket, or -1
	// if the sample falls below every bucket.
	BucketIndex(sample int64) int
}

// ExponentialBucketer implements Bucketer, with the first bucket starting
// with 0 as lowest bound with `Width` width, and each subsequent bucket being
// wider by a scaled exponentially-growing series, until `NumFiniteBuckets`
// buckets exist.
type ExponentialBucketer struct {
	numFiniteBuckets int
	width            float64
	scale            float64
	growth           float64

	// maxSample is the max sample value which can be represented in a finite
	// bucket.
	maxSample int64

	// lowerBounds[i] is the lower bound of finite bucket i;
	// lowerBounds[numFiniteBuckets] is the lower bound of the overflow bucket.
	lowerBounds []int64
}

// Minimum/maximum finite buckets for exponential bucketers.
const (
	exponentialMinBuckets = 1
	exponentialMaxBuckets = 100
)

// NewExponentialBucketer returns a new Bucketer with exponential buckets.
func NewExponentialBucketer(numFiniteBuckets int, width uint64, scale, growth float64) *ExponentialBucketer {
	if numFiniteBuckets < exponentialMinBuckets || numFiniteBuckets > exponentialMaxBuckets {
		panic(fmt.Sprintf("number of finite buckets must be in [%d, %d]", exponentialMinBuckets, exponentialMaxBuckets))
	}
	if scale < 0 || growth < 0 {
		panic(fmt.Sprintf("scale and growth for exponential buckets must be >0, got scale=%f and growth=%f", scale, growth))
	}
	b := &ExponentialBucketer{
		numFiniteBuckets: numFiniteBuckets,
		width:            float64(width),
		scale:            scale,
		growth:           growth,
		lowerBounds:      make([]int64, numFiniteBuckets+1),
	}
	for i := 1; i <= numFiniteBuckets; i++ {
		b.lowerBounds[i] = int64(b.width*float64(i) + b.scale*math.Pow(b.growth, float64(i-1)))
		if b.lowerBounds[i] < 0 {
			panic(fmt.Sprintf("encountered bucket width overflow at bucket %d", i))
		}
	}
	b.maxSample = b.lowerBounds[numFiniteBuckets] - 1
	return b
}

// NumFiniteBuckets implements Bucketer.NumFiniteBuckets.
func (b *ExponentialBucketer) NumFiniteBuckets() int {
	return b.numFiniteBuckets
}

// LowerBound implements Bucketer.LowerBound.
func (b *ExponentialBucketer) LowerBound(bucketIndex int) int64 {
	return b.lowerBounds[bucketIndex]
}

// BucketIndex implements Bucketer.BucketIndex.
func (b *ExponentialBucketer) BucketIndex(sample int64) int {
	if sample < 0 {
		return -1
	}
	if sample > b.maxSample {
		return b.numFiniteBuckets
	}
	// Binary search over the few dozen bounds.
	lo, hi := 0, b.numFiniteBuckets
	for lo < hi {
		mid := (lo + hi) / 2
		if sample >= b.lowerBounds[mid+1] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Verify that ExponentialBucketer implements Bucketer.
var _ = (Bucketer)((*ExponentialBucketer)(nil))

// Minimum number of buckets for NewDurationBucketer.
const durationMinBuckets = 3

// NewDurationBucketer returns a Bucketer well-suited for measuring durations in
// nanoseconds. Useful for NewTimerMetric.
// minDuration and maxDuration are conservative estimates of the minimum and
// maximum durations expected to be accurately measured by the Bucketer.
func NewDurationBucketer(numFiniteBuckets int, minDuration, maxDuration time.Duration) Bucketer {
	if numFiniteBuckets < durationMinBuckets {
		panic(fmt.Sprintf("duration bucketer must have at least %d buckets, got %d", durationMinBuckets, numFiniteBuckets))
	}
	minNs := minDuration.Nanoseconds()
	exponentCoversNs := float64(maxDuration.Nanoseconds()-int64(numFiniteBuckets-durationMinBuckets)*minNs) / float64(minNs)
	exponent := math.Log(exponentCoversNs) / math.Log(float64(numFiniteBuckets-durationMinBuckets))
	minNs = int64(float64(minNs) / exponent)
	return NewExponentialBucketer(numFiniteBuckets, uint64(minNs), float64(minNs), exponent)
}

// DistributionMetric represents a distribution of values in finite buckets.
type DistributionMetric struct {
	metadata

	bucketer    Bucketer
	fieldMapper fieldMapper

	// samples holds, per field combination, the sample count of each bucket:
	// index 0 is the underflow bucket, index i+1 finite bucket i, and the
	// last index the overflow bucket.
	samples [][]atomic.Uint64

	// sums holds the sum of all samples, per field combination.
	sums []atomic.Int64
}

// NewDistributionMetric creates and registers a new distribution metric.
func NewDistributionMetric(name string, bucketer Bucketer, units Units, description string, fields ...Field) (*DistributionMetric, error) {
	d := &DistributionMetric{
		metadata: metadata{name: name, description: description, units: units, fields: fields},
		bucketer: bucketer,
	}
	err := register(name, func(fm fieldMapper) {
		d.fieldMapper = fm
		d.samples = make([][]atomic.Uint64, fm.numKeys())
		for i := range d.samples {
			d.samples[i] = make([]atomic.Uint64, bucketer.NumFiniteBuckets()+2)
		}
		d.sums = make([]atomic.Int64, fm.numKeys())
		allMetrics.distributionMetrics[name] = d
	}, fields...)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// MustCreateNewDistributionMetric creates and registers a distribution metric.
// If an error occurs, it panics.
func MustCreateNewDistributionMetric(name string, bucketer Bucketer, units Units, description string, fields ...Field) *DistributionMetric {
	d, err := NewDistributionMetric(name, bucketer, units, description, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

// AddSample adds a sample to the distribution.
// This *must* be called with the correct number of fields, or it will panic.
func (d *DistributionMetric) AddSample(sample int64, fields ...string) {
	key := d.fieldMapper.lookup(fields...)
	d.samples[key][d.bucketer.BucketIndex(sample)+1].Add(1)
	d.sums[key].Add(sample)
}

// Count returns the number of samples recorded for fields.
func (d *DistributionMetric) Count(fields ...string) uint64 {
	counts := d.samples[d.fieldMapper.lookup(fields...)]
	var n uint64
	for i := range counts {
		n += counts[i].Load()
	}
	return n
}

// data returns one histogram per field combination with samples.
func (d *DistributionMetric) data() []*prometheus.Data {
	pm := d.promMetric(prometheus.TypeHistogram)
	nb := d.bucketer.NumFiniteBuckets()
	var out []*prometheus.Data
	for key, counts := range d.samples {
		h := &prometheus.Histogram{
			Total:   prometheus.Number{Int: d.sums[key].Load()},
			Buckets: make([]prometheus.Bucket, 0, nb+2),
		}
		var total uint64
		for i := range counts {
			n := counts[i].Load()
			total += n
			var upper prometheus.Number
			if i <= nb {
				// Bucket i-1 ends where bucket i begins; the underflow
				// bucket ends at the first lower bound.
				upper.Int = d.bucketer.LowerBound(i)
			} else {
				upper.Float = math.Inf(1)
			}
			h.Buckets = append(h.Buckets, prometheus.Bucket{UpperBound: upper, Samples: n})
		}
		if total == 0 && len(d.fields) > 0 {
			continue
		}
		out = append(out, &prometheus.Data{Metric: pm, Labels: d.fieldMapper.labels(key), HistogramValue: h})
	}
	return out
}

// TimerMetric wraps a distribution metric with convenience functions for
// latency measurements, which is a popular specialization of distribution
// metrics.
type TimerMetric struct {
	*DistributionMetric
}

// NewTimerMetric provides a convenient way to measure latencies. nanoBucketer
// is expected to hold durations in nanoseconds; NewDurationBucketer may be
// helpful here.
func NewTimerMetric(name string, nanoBucketer Bucketer, description string, fields ...Field) (*TimerMetric, error) {
	d, err := NewDistributionMetric(name, nanoBucketer, UnitsNanoseconds, description, fields...)
	if err != nil {
		return nil, err
	}
	return &TimerMetric{DistributionMetric: d}, nil
}

// MustCreateNewTimerMetric creates and registers a timer metric.
// If an error occurs, it panics.
func MustCreateNewTimerMetric(name string, nanoBucketer Bucketer, description string, fields ...Field) *TimerMetric {
	t, err := NewTimerMetric(name, nanoBucketer, description, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

// TimedOperation is used by TimerMetric to keep track of the time elapsed
// between an operation starting and stopping.
type TimedOperation struct {
	metric *TimerMetric

	// partialFields is a prefix of the fields used in this operation.
	// The rest of the fields is provided in TimedOperation.Finish.
	partialFields []string

	started time.Time
}

// Start starts a timer measurement for the given combination of fields.
// The fields may be partially specified; the rest are passed to Finish.
func (t *TimerMetric) Start(fields ...string) TimedOperation {
	return TimedOperation{
		metric:        t,
		partialFields: fields,
		started:       time.Now(),
	}
}

// Finish marks an operation as finished and records its duration.
func (o TimedOperation) Finish(extraFields ...string) {
	fields := append(o.partialFields[:len(o.partialFields):len(o.partialFields)], extraFields...)
	o.metric.AddSample(time.Since(o.started).Nanoseconds(), fields...)
}
