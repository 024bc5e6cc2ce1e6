package services

import (
	"math"
	"testing"
	"time"

	"jelly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(sec int64) time.Time {
	return time.Unix(sec, 0)
}

func strPtr(s string) *string {
	return &s
}

func eth0(sec int64, sent, recv uint64) models.Snapshot {
	return models.NewSnapshot(at(sec), []models.InterfaceCounters{
		{Name: "eth0", BytesSent: sent, BytesRecv: recv},
	})
}

func TestEstimateRatesSelectedInterface(t *testing.T) {
	previous := eth0(100, 1000, 2000)
	current := eth0(101, 1500, 2100)
	sel := models.Selection{Interface: strPtr("eth0"), BaselineMbps: 1000}

	result := EstimateRates(current, &previous, sel)

	assert.Equal(t, uint64(1500), result.BytesSent)
	assert.Equal(t, uint64(2100), result.BytesRecv)
	require.NotNil(t, result.SentPerSec)
	require.NotNil(t, result.RecvPerSec)
	assert.Equal(t, 500.0, *result.SentPerSec)
	assert.Equal(t, 100.0, *result.RecvPerSec)
	assert.Equal(t, []string{"eth0"}, result.Interfaces)
	require.NotNil(t, result.SelectedInterface)
	assert.Equal(t, "eth0", *result.SelectedInterface)
	assert.Equal(t, 1000, result.BaselineMbps)
}

func TestEstimateRatesCounterResetIsNegative(t *testing.T) {
	previous := eth0(100, 1000, 2000)
	current := eth0(102, 200, 2100)
	sel := models.Selection{Interface: strPtr("eth0"), BaselineMbps: 1000}

	result := EstimateRates(current, &previous, sel)

	require.NotNil(t, result.SentPerSec)
	assert.Equal(t, -400.0, *result.SentPerSec)
	assert.Equal(t, 50.0, *result.RecvPerSec)
}

func TestEstimateRatesWithoutPrevious(t *testing.T) {
	current := eth0(101, 1500, 2100)

	result := EstimateRates(current, nil, models.DefaultSelection())

	assert.Nil(t, result.SentPerSec)
	assert.Nil(t, result.RecvPerSec)
	assert.Equal(t, uint64(1500), result.BytesSent)
}

func TestEstimateRatesNonPositiveElapsed(t *testing.T) {
	current := eth0(100, 1500, 2100)
	for _, prevSec := range []int64{100, 101, 500} {
		previous := eth0(prevSec, 1000, 2000)
		result := EstimateRates(current, &previous, models.DefaultSelection())
		assert.Nil(t, result.SentPerSec, "previous at %d", prevSec)
		assert.Nil(t, result.RecvPerSec, "previous at %d", prevSec)
	}
}

func TestEstimateRatesAggregate(t *testing.T) {
	previous := models.NewSnapshot(at(10), []models.InterfaceCounters{
		{Name: "eth0", BytesSent: 100, BytesRecv: 200},
		{Name: "wlan0", BytesSent: 10, BytesRecv: 20},
	})
	current := models.NewSnapshot(at(12), []models.InterfaceCounters{
		{Name: "eth0", BytesSent: 300, BytesRecv: 600},
		{Name: "wlan0", BytesSent: 50, BytesRecv: 40},
	})

	result := EstimateRates(current, &previous, models.DefaultSelection())

	assert.Equal(t, uint64(350), result.BytesSent)
	assert.Equal(t, uint64(640), result.BytesRecv)
	assert.Equal(t, 120.0, *result.SentPerSec)
	assert.Equal(t, 210.0, *result.RecvPerSec)
	assert.Equal(t, []string{"eth0", "wlan0"}, result.Interfaces)
	assert.Nil(t, result.SelectedInterface)
}

func TestEstimateRatesMissingInterfaceFallsBackToAggregate(t *testing.T) {
	current := models.NewSnapshot(at(5), []models.InterfaceCounters{
		{Name: "eth0", BytesSent: 1, BytesRecv: 2},
		{Name: "lo", BytesSent: 3, BytesRecv: 4},
	})
	sel := models.Selection{Interface: strPtr("wlan0"), BaselineMbps: 100}

	result := EstimateRates(current, nil, sel)

	assert.Equal(t, uint64(4), result.BytesSent)
	assert.Equal(t, uint64(6), result.BytesRecv)
	require.NotNil(t, result.SelectedInterface)
	assert.Equal(t, "wlan0", *result.SelectedInterface)
	assert.Equal(t, 100, result.BaselineMbps)
}

func TestEstimateRatesInterfaceAppearsBetweenSamples(t *testing.T) {
	// Previous has no wlan0 so its totals are the aggregate; current uses wlan0 alone.
	previous := models.NewSnapshot(at(0), []models.InterfaceCounters{
		{Name: "eth0", BytesSent: 1000, BytesRecv: 1000},
	})
	current := models.NewSnapshot(at(1), []models.InterfaceCounters{
		{Name: "eth0", BytesSent: 1100, BytesRecv: 1100},
		{Name: "wlan0", BytesSent: 10, BytesRecv: 20},
	})
	sel := models.Selection{Interface: strPtr("wlan0"), BaselineMbps: 1000}

	result := EstimateRates(current, &previous, sel)

	assert.Equal(t, -990.0, *result.SentPerSec)
	assert.Equal(t, -980.0, *result.RecvPerSec)
}

func TestEstimateRatesEmptySnapshot(t *testing.T) {
	current := models.NewSnapshot(at(3), nil)
	previous := models.NewSnapshot(at(2), nil)

	result := EstimateRates(current, &previous, models.DefaultSelection())

	assert.Zero(t, result.BytesSent)
	assert.Zero(t, result.BytesRecv)
	assert.NotNil(t, result.Interfaces)
	assert.Empty(t, result.Interfaces)
	assert.Equal(t, 0.0, *result.SentPerSec)
}

func TestEstimateRatesNeverLeaksNaNOrInf(t *testing.T) {
	previous := eth0(100, math.MaxUint64, 0)
	current := models.NewSnapshot(previous.Timestamp.Add(time.Nanosecond), []models.InterfaceCounters{
		{Name: "eth0", BytesSent: 0, BytesRecv: math.MaxUint64},
	})

	result := EstimateRates(current, &previous, models.DefaultSelection())

	require.NotNil(t, result.SentPerSec)
	assert.False(t, math.IsNaN(*result.SentPerSec) || math.IsInf(*result.SentPerSec, 0))
	assert.False(t, math.IsNaN(*result.RecvPerSec) || math.IsInf(*result.RecvPerSec, 0))
	assert.Less(t, *result.SentPerSec, 0.0)
}

func TestEstimateRatesDoesNotAliasSelection(t *testing.T) {
	name := "eth0"
	sel := models.Selection{Interface: &name, BaselineMbps: 1000}

	result := EstimateRates(eth0(1, 1, 1), nil, sel)
	name = "other"

	assert.Equal(t, "eth0", *result.SelectedInterface)
}
