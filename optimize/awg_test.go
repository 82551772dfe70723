package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResistance(t *testing.T) {
	// 30 turns of AWG 20 around a 1 m square coil:
	// 1.68e-8 * 120 / 0.325e-6 ohms.
	r, err := Resistance(20, 30, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 6.203, r, 1e-3)
}

func TestResistanceScalesWithTurns(t *testing.T) {
	r1, err := Resistance(24, 10, 0.5)
	require.NoError(t, err)
	r2, err := Resistance(24, 20, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 2*r1, r2, 1e-12)
}

func TestUnknownGauge(t *testing.T) {
	_, err := Resistance(21, 30, 1.0)
	assert.Error(t, err)

	_, err = WireFor(99)
	assert.Error(t, err)
}

func TestWireFor(t *testing.T) {
	w, err := WireFor(20)
	require.NoError(t, err)
	assert.Equal(t, 0.8128, w.DiameterMM)
	assert.Equal(t, 0.325, w.AreaMM2)
}
