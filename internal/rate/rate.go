// Package rate turns cumulative network counters into per-interval throughput.
package rate

import "github.com/Dicklesworthstone/hostmon/internal/model"

// Aggregate pairs prev and cur by position and sums the per-interface
// counter growth. Providers enumerate interfaces in a stable order, so names
// are not compared. Only the overlapping prefix is paired, and a counter that
// went backwards (reset, hot-plug) contributes nothing for that interval.
func Aggregate(prev, cur []model.NetCounter) model.Throughput {
	n := min(len(prev), len(cur))
	var t model.Throughput
	for i := 0; i < n; i++ {
		t.RecvBytes += delta(prev[i].BytesRecv, cur[i].BytesRecv)
		t.SentBytes += delta(prev[i].BytesSent, cur[i].BytesSent)
	}
	return t
}

func delta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}
