package observability

import (
	"context"
	"errors"
	"sort"

	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// ErrNoReader is returned by Snapshot on a noop provider.
var ErrNoReader = errors.New("metrics are not collected")

// MetricPoint summarizes one instrument across all attribute sets.
type MetricPoint struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Unit  string  `json:"unit,omitempty"`
	Value float64 `json:"value"`
	Count uint64  `json:"count,omitempty"`
}

// Snapshot collects the current metric values. Sums report their total,
// histograms report the recorded sum and count.
func (p *Provider) Snapshot(ctx context.Context) ([]MetricPoint, error) {
	if p.reader == nil {
		return nil, ErrNoReader
	}

	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}

	var points []MetricPoint
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			mp := MetricPoint{Name: m.Name, Unit: m.Unit}
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				mp.Kind = "sum"
				for _, dp := range data.DataPoints {
					mp.Value += float64(dp.Value)
				}
			case metricdata.Sum[float64]:
				mp.Kind = "sum"
				for _, dp := range data.DataPoints {
					mp.Value += dp.Value
				}
			case metricdata.Histogram[int64]:
				mp.Kind = "histogram"
				for _, dp := range data.DataPoints {
					mp.Value += float64(dp.Sum)
					mp.Count += dp.Count
				}
			case metricdata.Histogram[float64]:
				mp.Kind = "histogram"
				for _, dp := range data.DataPoints {
					mp.Value += dp.Sum
					mp.Count += dp.Count
				}
			default:
				continue
			}
			points = append(points, mp)
		}
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })
	return points, nil
}
