package models

// SystemStats is the payload served by the stats endpoint
type SystemStats struct {
	CPUPercent float64      `json:"cpu_percent"`
	CPUCount   int          `json:"cpu_count"`
	CPUFreq    *float64     `json:"cpu_freq"` // GHz
	PerCore    []float64    `json:"per_core"`
	Memory     MemoryStatus `json:"memory"`
	Timestamp  int64        `json:"timestamp"`
	Network    RateResult   `json:"network"`
}
