package obs

import (
	"github.com/packagewjx/kmeans/internal/kmeans"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

const namespace = "kmeans"

// Metrics 记录聚类运行的统计数据。每个实例使用独立的registry
type Metrics struct {
	Runs          *prometheus.CounterVec // 按结束状态统计的运行次数
	Failures      *prometheus.CounterVec // 按错误类型统计的失败次数
	Iterations    prometheus.Counter
	Points        prometheus.Counter
	LastMaxShift  prometheus.Gauge
	EmptyClusters prometheus.Gauge
	RunDuration   prometheus.Histogram
	registry      *prometheus.Registry
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total clustering runs by terminal state",
		}, []string{"state"}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Total failed clustering runs by error kind",
		}, []string{"kind"}),
		Iterations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Total Lloyd iterations executed",
		}),
		Points: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Total points clustered",
		}),
		LastMaxShift: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_max_shift",
			Help:      "Max centroid shift of the last iteration of the last run",
		}),
		EmptyClusters: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "empty_clusters",
			Help:      "Centroids without points after the last run",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Clustering run duration",
			Buckets:   prometheus.DefBuckets,
		}),
		registry: registry,
	}
}

// ObserveResult 记录一次成功的运行
func (m *Metrics) ObserveResult(numPoints int, result *kmeans.Result, duration time.Duration) {
	m.Runs.WithLabelValues(result.State.String()).Inc()
	m.Iterations.Add(float64(result.Iterations))
	m.Points.Add(float64(numPoints))
	m.LastMaxShift.Set(result.MaxShift)
	empty := 0
	for _, size := range result.Sizes {
		if size == 0 {
			empty++
		}
	}
	m.EmptyClusters.Set(float64(empty))
	m.RunDuration.Observe(duration.Seconds())
}

// ObserveError 按照错误类型记录一次失败
func (m *Metrics) ObserveError(err error) {
	m.Failures.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind 返回错误在错误分类中的名称
func ErrorKind(err error) string {
	var inputErr *core.InputError
	var paramErr *core.ParameterError
	var resourceErr *core.ResourceError
	switch {
	case errors.As(err, &inputErr):
		return "input"
	case errors.As(err, &paramErr):
		return "parameter"
	case errors.As(err, &resourceErr):
		return "resource"
	default:
		return "unknown"
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToFile 以文本格式将所有指标写入文件
func (m *Metrics) WriteToFile(filename string) error {
	err := prometheus.WriteToTextfile(filename, m.registry)
	if err != nil {
		return &core.ResourceError{Err: errors.Wrapf(err, "写入指标文件%s错误", filename)}
	}
	return nil
}
