// Package metrics keeps counters and gauges in an on-disk time-series
// store under the application workdir. Every call is a no-op until
// InitMetrics succeeds, so packages can record unconditionally.
package metrics

import (
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	OrderPlaced          = "order_placed"
	OrderSchemaViolation = "order_schema_violation"
	OrderConnFailure     = "order_connection_failure"
	OrderInvalid         = "order_invalid"
	ProcessCPUUse        = "tireshop_cpuuse"
	ProcessMemUse        = "tireshop_memuse"
)

var (
	mu      sync.RWMutex
	storage tstorage.Storage
	// tstorage only serves in-order points from its head partition, so
	// timestamps are kept strictly increasing per metric.
	lastTimestamp = map[string]int64{}
)

// InitMetrics opens (or creates) the store in dir.
func InitMetrics(dir string) error {
	mu.Lock()
	defer mu.Unlock()
	if storage != nil {
		return nil
	}
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(dir),
		tstorage.WithTimestampPrecision(tstorage.Nanoseconds),
		tstorage.WithRetention(90*24*time.Hour),
	)
	if err != nil {
		return errors.Wrap(err, "open metrics storage")
	}
	storage = s
	return nil
}

// Close flushes buffered points to disk.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}

// Incr records a single occurrence of name.
func Incr(name string) {
	insert(name, 1)
}

// SetGauge records the current value of name.
func SetGauge(name string, value int64) {
	insert(name, float64(value))
}

func insert(name string, value float64) {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return
	}
	ts := time.Now().UnixNano()
	if last := lastTimestamp[name]; ts <= last {
		ts = last + 1
	}
	lastTimestamp[name] = ts
	err := storage.InsertRows([]tstorage.Row{{
		Metric:    name,
		DataPoint: tstorage.DataPoint{Timestamp: ts, Value: value},
	}})
	if err != nil {
		zap.L().Warn("metrics write failed", zap.String("metric", name), zap.Error(err))
	}
}

// Sum adds up every point of name recorded in [start, end).
func Sum(name string, start, end time.Time) (float64, error) {
	points, err := selectPoints(name, start, end)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range points {
		total += p.Value
	}
	return total, nil
}

// Last returns the most recent point of name recorded in [start, end).
func Last(name string, start, end time.Time) (float64, bool, error) {
	points, err := selectPoints(name, start, end)
	if err != nil || len(points) == 0 {
		return 0, false, err
	}
	last := points[0]
	for _, p := range points[1:] {
		if p.Timestamp >= last.Timestamp {
			last = p
		}
	}
	return last.Value, true, nil
}

func selectPoints(name string, start, end time.Time) ([]*tstorage.DataPoint, error) {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return nil, errors.New("metrics storage not initialized")
	}
	points, err := storage.Select(name, nil, start.UnixNano(), end.UnixNano())
	if errors.Is(err, tstorage.ErrNoDataPoints) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", name)
	}
	return points, nil
}
