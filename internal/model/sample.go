package model

import "time"

const bytesPerGiB = 1024 * 1024 * 1024

// DiskReading is the capacity of one mounted disk in bytes.
type DiskReading struct {
	Mountpoint     string `json:"mountpoint" yaml:"mountpoint"`
	TotalBytes     uint64 `json:"total_bytes" yaml:"total_bytes"`
	AvailableBytes uint64 `json:"available_bytes" yaml:"available_bytes"`
}

// UsedBytes is total minus available, floored at zero.
func (d DiskReading) UsedBytes() uint64 {
	if d.AvailableBytes >= d.TotalBytes {
		return 0
	}
	return d.TotalBytes - d.AvailableBytes
}

// UsedPercent returns the used share of the disk, 0-100.
func (d DiskReading) UsedPercent() float64 { return pct(d.UsedBytes(), d.TotalBytes) }

func (d DiskReading) UsedGiB() float64  { return bytesToGiB(d.UsedBytes()) }
func (d DiskReading) TotalGiB() float64 { return bytesToGiB(d.TotalBytes) }

// NetCounter holds the cumulative byte counters of one network interface.
type NetCounter struct {
	Name      string `json:"name" yaml:"name"`
	BytesRecv uint64 `json:"bytes_recv" yaml:"bytes_recv"`
	BytesSent uint64 `json:"bytes_sent" yaml:"bytes_sent"`
}

// Snapshot is a point-in-time capture of every tracked metric.
type Snapshot struct {
	Timestamp   time.Time     `json:"timestamp" yaml:"timestamp"`
	CPUPercent  float64       `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryUsed  uint64        `json:"memory_used" yaml:"memory_used"`
	MemoryTotal uint64        `json:"memory_total" yaml:"memory_total"`
	Disks       []DiskReading `json:"disks" yaml:"disks"`
	Interfaces  []NetCounter  `json:"interfaces" yaml:"interfaces"`
}

// MemoryPercent returns used memory as a percentage of total.
func (s Snapshot) MemoryPercent() float64 { return pct(s.MemoryUsed, s.MemoryTotal) }

// TotalRecv sums the cumulative received counters of all interfaces.
func (s Snapshot) TotalRecv() uint64 {
	var n uint64
	for _, c := range s.Interfaces {
		n += c.BytesRecv
	}
	return n
}

// TotalSent sums the cumulative transmitted counters of all interfaces.
func (s Snapshot) TotalSent() uint64 {
	var n uint64
	for _, c := range s.Interfaces {
		n += c.BytesSent
	}
	return n
}

// Throughput is the byte count moved during one sampling interval, summed
// over every interface.
type Throughput struct {
	RecvBytes uint64 `json:"recv_bytes" yaml:"recv_bytes"`
	SentBytes uint64 `json:"sent_bytes" yaml:"sent_bytes"`
}

// RecvKBps converts the received bytes into KB/s for the given interval.
func (t Throughput) RecvKBps(interval time.Duration) float64 { return kbps(t.RecvBytes, interval) }

// SentKBps converts the transmitted bytes into KB/s for the given interval.
func (t Throughput) SentKBps(interval time.Duration) float64 { return kbps(t.SentBytes, interval) }

// Frame is everything one tick renders.
type Frame struct {
	CPUPercent float64
	RAMPercent float64
	Disks      []DiskReading
	Net        Throughput
	Interval   time.Duration
}

// NewFrame assembles a frame from the current snapshot and the throughput
// measured since the previous one.
func NewFrame(s Snapshot, net Throughput, interval time.Duration) Frame {
	return Frame{
		CPUPercent: s.CPUPercent,
		RAMPercent: s.MemoryPercent(),
		Disks:      s.Disks,
		Net:        net,
		Interval:   interval,
	}
}

// Zero returns an empty snapshot for initialization.
func Zero() Snapshot { return Snapshot{Timestamp: time.Now()} }

func pct(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) * 100 / float64(total)
}

// BytesToGiB converts a byte count to GiB (2^30 bytes).
func BytesToGiB(b uint64) float64 { return bytesToGiB(b) }

func bytesToGiB(b uint64) float64 { return float64(b) / bytesPerGiB }

func kbps(b uint64, interval time.Duration) float64 {
	dt := interval.Seconds()
	if dt <= 0 {
		dt = 1
	}
	return float64(b) / 1024 / dt
}
