package services

import (
	"jelly/internal/models"
)

// EstimateRates turns the current snapshot and the previous one into totals and
// per-second rates for the selected interface, or for the aggregate of all
// interfaces when nothing is selected or the selection is not present.
//
// Rates are nil when there is no previous snapshot or the elapsed time is not
// positive. Counter decreases give negative rates; they are reported as-is.
func EstimateRates(current models.Snapshot, previous *models.Snapshot, sel models.Selection) models.RateResult {
	sent, recv := selectedTotals(current, sel.Interface)

	result := models.RateResult{
		BytesSent:         sent,
		BytesRecv:         recv,
		Interfaces:        current.Names(),
		SelectedInterface: copyString(sel.Interface),
		BaselineMbps:      sel.BaselineMbps,
	}

	if previous == nil {
		return result
	}

	dt := current.Timestamp.Sub(previous.Timestamp).Seconds()
	if dt <= 0 {
		return result
	}

	prevSent, prevRecv := selectedTotals(*previous, sel.Interface)
	sentRate := delta(sent, prevSent) / dt
	recvRate := delta(recv, prevRecv) / dt
	result.SentPerSec = &sentRate
	result.RecvPerSec = &recvRate

	return result
}

// selectedTotals returns the counters of iface when it is present in snap and the
// aggregate otherwise
func selectedTotals(snap models.Snapshot, iface *string) (sent, recv uint64) {
	if iface != nil {
		if c, ok := snap.Lookup(*iface); ok {
			return c.BytesSent, c.BytesRecv
		}
	}
	return snap.Totals()
}

// delta is cur-prev as a float, negative when the counter went backwards
func delta(cur, prev uint64) float64 {
	if cur >= prev {
		return float64(cur - prev)
	}
	return -float64(prev - cur)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
