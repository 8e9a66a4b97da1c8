package deploy

import (
	"sort"

	"github.com/prometheus/common/model"
	"github.com/sirupsen/logrus"

	"github.com/kuberlab/deploy/pkg/errors"
)

// ServiceStatistics is a time series of serving latency and throughput.
// All sequences are parallel to Time.
type ServiceStatistics struct {
	AverageLatency []float64 `json:"averageLatency"`
	P50Latency     []float64 `json:"p50Latency"`
	P90Latency     []float64 `json:"p90Latency"`
	P99Latency     []float64 `json:"p99Latency"`
	Throughput     []float64 `json:"throughput"`
	Time           []float64 `json:"time"`
}

func (s *ServiceStatistics) Len() int {
	return len(s.Time)
}

func (s *ServiceStatistics) Validate() error {
	n := len(s.Time)
	for name, seq := range map[string][]float64{
		"averageLatency": s.AverageLatency,
		"p50Latency":     s.P50Latency,
		"p90Latency":     s.P90Latency,
		"p99Latency":     s.P99Latency,
		"throughput":     s.Throughput,
	} {
		if len(seq) != n {
			return errors.Invalid(
				errors.ReasonInvalidStatistics, "%v has %v points, time has %v", name, len(seq), n,
			)
		}
	}
	return nil
}

// Series names one sequence of ServiceStatistics in a range query result.
type Series string

const (
	SeriesAverageLatency Series = "average_latency"
	SeriesP50Latency     Series = "p50_latency"
	SeriesP90Latency     Series = "p90_latency"
	SeriesP99Latency     Series = "p99_latency"
	SeriesThroughput     Series = "throughput"
)

// ServiceStatisticsFromMatrix builds statistics from a range query result.
// Each stream is identified by the value of its seriesLabel. The time axis
// is the union of all sample timestamps, in unix seconds; a series without
// a sample at some timestamp gets 0 there.
func ServiceStatisticsFromMatrix(m model.Matrix, seriesLabel model.LabelName) *ServiceStatistics {
	streams := make(map[Series]map[model.Time]float64)
	seen := make(map[model.Time]bool)
	for _, stream := range m {
		series := Series(stream.Metric[seriesLabel])
		switch series {
		case SeriesAverageLatency, SeriesP50Latency, SeriesP90Latency, SeriesP99Latency, SeriesThroughput:
		default:
			logrus.Debugf("Skip unknown statistics series %q", series)
			continue
		}
		values, ok := streams[series]
		if !ok {
			values = make(map[model.Time]float64)
			streams[series] = values
		}
		for _, p := range stream.Values {
			values[p.Timestamp] = float64(p.Value)
			seen[p.Timestamp] = true
		}
	}

	times := make([]model.Time, 0, len(seen))
	for ts := range seen {
		times = append(times, ts)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	column := func(series Series) []float64 {
		res := make([]float64, len(times))
		for i, ts := range times {
			res[i] = streams[series][ts]
		}
		return res
	}

	stats := &ServiceStatistics{
		AverageLatency: column(SeriesAverageLatency),
		P50Latency:     column(SeriesP50Latency),
		P90Latency:     column(SeriesP90Latency),
		P99Latency:     column(SeriesP99Latency),
		Throughput:     column(SeriesThroughput),
		Time:           make([]float64, len(times)),
	}
	for i, ts := range times {
		stats.Time[i] = float64(ts.Unix())
	}
	return stats
}

// ServiceDataFeature is the histogram of one input feature.
type ServiceDataFeature struct {
	Count        []float64 `json:"count"`
	BucketLimits []float64 `json:"bucketLimits"`
	Reference    []float64 `json:"reference"`
}

// DataStatistics maps feature name to its histogram. Order is not defined.
type DataStatistics map[string]ServiceDataFeature

// FeatureNames returns the feature names in sorted order.
func (d DataStatistics) FeatureNames() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
