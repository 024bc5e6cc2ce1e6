package models

// DefaultBaselineMbps is the reference capacity used when none is configured
const DefaultBaselineMbps = 1000

// Selection picks which interface the dashboard follows. A nil Interface means
// the aggregate of all interfaces.
type Selection struct {
	Interface    *string `json:"net_interface"`
	BaselineMbps int     `json:"net_baseline_mbps"`
}

// DefaultSelection follows the aggregate at the default baseline
func DefaultSelection() Selection {
	return Selection{BaselineMbps: DefaultBaselineMbps}
}
