package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/wheelmaster/tireshop/pkg/metrics"
)

var orderCounters = []struct {
	label  string
	metric string
}{
	{"placed", metrics.OrderPlaced},
	{"invalid", metrics.OrderInvalid},
	{"schema violation", metrics.OrderSchemaViolation},
	{"connection failure", metrics.OrderConnFailure},
}

// Metrics prints order counters for the window ending at now and the most
// recent process sample. The metrics store must already be open.
func Metrics(w io.Writer, window time.Duration, now time.Time) error {
	start := now.Add(-window)
	end := now.Add(time.Second)

	fmt.Fprintf(w, "Order metrics for the last %s:\n", window)
	for _, c := range orderCounters {
		total, err := metrics.Sum(c.metric, start, end)
		if err != nil {
			return errors.Wrapf(err, "read %s", c.metric)
		}
		fmt.Fprintf(w, "  %-20s %d\n", c.label+":", int64(total))
	}

	cpu, okCPU, err := metrics.Last(metrics.ProcessCPUUse, start, end)
	if err != nil {
		return errors.Wrap(err, "read process cpu")
	}
	mem, okMem, err := metrics.Last(metrics.ProcessMemUse, start, end)
	if err != nil {
		return errors.Wrap(err, "read process memory")
	}
	if !okCPU && !okMem {
		fmt.Fprintln(w, "No process samples recorded.")
		return nil
	}
	fmt.Fprintf(w, "Process: cpu %.2f%%, memory %d MB\n", cpu/100, int64(mem))
	return nil
}
