package models

// CPUStatus represents CPU usage information
type CPUStatus struct {
	UsagePercent float64   `json:"usage_percent"`
	PerCore      []float64 `json:"per_core"`
	CoreCount    int       `json:"core_count"`
	FrequencyGHz *float64  `json:"frequency_ghz"`
}
