package observability

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Reporter periodically logs the relay counters together with the process's
// own CPU and memory usage. It runs as a supervised worker.
type Reporter struct {
	log      *slog.Logger
	stats    *RelayStats
	interval time.Duration
}

func NewReporter(log *slog.Logger, stats *RelayStats, interval time.Duration) *Reporter {
	return &Reporter{log: log, stats: stats, interval: interval}
}

func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Context done, stopping stats reporter")
			return nil
		case <-ticker.C:
			snap := r.stats.Snapshot()
			cpu, err := p.CPUPercent()
			if err != nil {
				r.log.Debug("Failed to read self cpu usage", "err", err)
			}
			mem, err := p.MemoryPercent()
			if err != nil {
				r.log.Debug("Failed to read self memory usage", "err", err)
			}
			r.log.Info("Relay stats",
				"connections_opened", snap.ConnectionsOpened,
				"connections_closed", snap.ConnectionsClosed,
				"joins", snap.Joins,
				"leaves", snap.Leaves,
				"broadcasts", snap.Broadcasts,
				"deliveries_failed", snap.DeliveriesFailed,
				"commands_dropped", snap.CommandsDropped,
				"cpu_percent", cpu,
				"mem_percent", mem,
			)
		}
	}
}
