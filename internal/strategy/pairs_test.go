package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEntryZ = 1.2
	testExitZ  = 0.5
)

// alternating 9/11 gives mean 10 and population stddev 1.
func warmPair(p *pair, n int) {
	for i := 0; i < n; i++ {
		spread := 9.0
		if i%2 == 1 {
			spread = 11.0
		}
		p.observe(spread, testEntryZ)
	}
}

func TestPairWarmingTakesNoAction(t *testing.T) {
	p := newPair("ABRA", "DROWZEE")
	warmPair(p, 49)

	assert.Equal(t, StateWarming, p.state)
	assert.Nil(t, p.legs(map[string]float64{"ABRA": 100, "DROWZEE": 90}, 5))
	assert.False(t, p.flattenEligible(testExitZ), "warming pairs are never flatten-eligible")
}

func TestPairMonitoringAtFiftyObservations(t *testing.T) {
	p := newPair("ABRA", "DROWZEE")
	warmPair(p, 50)

	assert.Equal(t, StateMonitoring, p.state)
	assert.Nil(t, p.legs(map[string]float64{"ABRA": 100, "DROWZEE": 90}, 5))
}

func TestPairEntryIsAntisymmetric(t *testing.T) {
	mids := map[string]float64{"ABRA": 100, "DROWZEE": 90}

	rich := newPair("ABRA", "DROWZEE")
	warmPair(rich, 50)
	rich.observe(13, testEntryZ) // spread well above the mean
	require.Equal(t, StateEngaged, rich.state)
	require.Greater(t, rich.z, testEntryZ)

	legs := rich.legs(mids, 5)
	require.Len(t, legs, 2)
	assert.Equal(t, "ABRA", legs[0].Symbol)
	assert.Equal(t, -5, legs[0].Qty, "rich leg is sold")
	assert.Equal(t, "DROWZEE", legs[1].Symbol)
	assert.Equal(t, 5, legs[1].Qty, "cheap leg is bought")

	cheap := newPair("ABRA", "DROWZEE")
	warmPair(cheap, 50)
	cheap.observe(7, testEntryZ) // mirrored spread below the mean
	require.Equal(t, StateEngaged, cheap.state)
	require.Less(t, cheap.z, -testEntryZ)

	mirror := cheap.legs(mids, 5)
	require.Len(t, mirror, 2)
	assert.Equal(t, 5, mirror[0].Qty, "entry must mirror exactly")
	assert.Equal(t, -5, mirror[1].Qty)
	assert.InDelta(t, rich.z, -cheap.z, 1e-9, "z must be antisymmetric under mirrored history")
}

func TestPairFlattenEligibleNearMean(t *testing.T) {
	p := newPair("DROWZEE", "SUDOWOODO")
	warmPair(p, 50)
	p.observe(10, testEntryZ) // right at the historical mean

	assert.Equal(t, StateMonitoring, p.state)
	assert.True(t, p.flattenEligible(testExitZ))
	assert.False(t, p.flattenEligible(0), "a zero exit gate can never fire")
}

func TestPairSpreadHistoryBounded(t *testing.T) {
	p := newPair("ABRA", "DROWZEE")
	for i := 0; i < spreadCapacity+40; i++ {
		p.observe(10, testEntryZ)
	}
	assert.Equal(t, spreadCapacity, p.spreads.Len())
}
