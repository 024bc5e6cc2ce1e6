package models

import "time"

// InterfaceCounters holds the cumulative byte counters of one network interface
type InterfaceCounters struct {
	Name      string `json:"name"`
	BytesSent uint64 `json:"bytes_sent"`
	BytesRecv uint64 `json:"bytes_recv"`
}

// Snapshot is a complete reading of every interface's counters taken at one instant.
// Interface names are unique and keep the order in which they were observed.
type Snapshot struct {
	Timestamp  time.Time           `json:"timestamp"`
	Interfaces []InterfaceCounters `json:"interfaces"`
}

// NewSnapshot builds a snapshot from raw counters. A name seen twice keeps its first
// position and takes the later value.
func NewSnapshot(ts time.Time, counters []InterfaceCounters) Snapshot {
	ifaces := make([]InterfaceCounters, 0, len(counters))
	index := make(map[string]int, len(counters))
	for _, c := range counters {
		if i, seen := index[c.Name]; seen {
			ifaces[i] = c
			continue
		}
		index[c.Name] = len(ifaces)
		ifaces = append(ifaces, c)
	}
	return Snapshot{Timestamp: ts, Interfaces: ifaces}
}

// Lookup returns the counters of the named interface
func (s Snapshot) Lookup(name string) (InterfaceCounters, bool) {
	for _, c := range s.Interfaces {
		if c.Name == name {
			return c, true
		}
	}
	return InterfaceCounters{}, false
}

// Totals sums sent and received bytes across all interfaces
func (s Snapshot) Totals() (sent, recv uint64) {
	for _, c := range s.Interfaces {
		sent += c.BytesSent
		recv += c.BytesRecv
	}
	return sent, recv
}

// Names lists interface names in snapshot order
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Interfaces))
	for _, c := range s.Interfaces {
		names = append(names, c.Name)
	}
	return names
}

// Clone returns a deep copy so callers cannot mutate stored state
func (s Snapshot) Clone() Snapshot {
	ifaces := make([]InterfaceCounters, len(s.Interfaces))
	copy(ifaces, s.Interfaces)
	return Snapshot{Timestamp: s.Timestamp, Interfaces: ifaces}
}

// RateResult is the network block of the stats payload
type RateResult struct {
	BytesSent         uint64   `json:"bytes_sent"`
	BytesRecv         uint64   `json:"bytes_recv"`
	SentPerSec        *float64 `json:"sent_per_sec"` // bytes/sec, null without a usable prior sample
	RecvPerSec        *float64 `json:"recv_per_sec"` // bytes/sec, null without a usable prior sample
	Interfaces        []string `json:"interfaces"`
	SelectedInterface *string  `json:"selected_interface"`
	BaselineMbps      int      `json:"baseline_mbps"`
}
