package models

import "time"

// HistoryPoint is one recorded sample in the recent-history window
type HistoryPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	BytesSent     uint64    `json:"bytes_sent"`
	BytesRecv     uint64    `json:"bytes_recv"`
	SentPerSec    *float64  `json:"sent_per_sec"`
	RecvPerSec    *float64  `json:"recv_per_sec"`
}
