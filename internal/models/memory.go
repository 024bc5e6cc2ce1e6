package models

// MemoryStatus mirrors virtual memory usage in bytes
type MemoryStatus struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Used      uint64  `json:"used"`
	Percent   float64 `json:"percent"`
}
