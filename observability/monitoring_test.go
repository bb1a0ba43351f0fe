package observability

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelayStats_Snapshot(t *testing.T) {
	req := require.New(t)
	stats := NewRelayStats()

	stats.ConnectionOpened()
	stats.ConnectionOpened()
	stats.ConnectionClosed()
	stats.Joined()
	stats.Broadcast()
	stats.DeliveryFailed()
	stats.CommandDropped()

	snapshot := stats.Snapshot()
	req.Equal(uint64(2), snapshot.ConnectionsOpened)
	req.Equal(uint64(1), snapshot.ConnectionsClosed)
	req.Equal(uint64(1), snapshot.Joins)
	req.Equal(uint64(0), snapshot.Leaves)
	req.Equal(uint64(1), snapshot.Broadcasts)
	req.Equal(uint64(1), snapshot.DeliveriesFailed)
	req.Equal(uint64(1), snapshot.CommandsDropped)
}

func TestRelayStats_Concurrent_Increments(t *testing.T) {
	req := require.New(t)
	stats := NewRelayStats()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				stats.Broadcast()
			}
		}()
	}
	wg.Wait()

	req.Equal(uint64(5000), stats.Snapshot().Broadcasts)
}
