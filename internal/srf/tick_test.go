package srf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTickScale(t *testing.T) {
	scale, err := NewTickScale(2e-6)
	require.NoError(t, err)
	require.Equal(t, 2e-6, scale.Duration())

	require.Equal(t, 0.0, scale.Seconds(0))
	require.InDelta(t, 1.0, scale.Seconds(500000), 1e-12)
	require.Equal(t, float64(math.MaxUint32)*2e-6, scale.Seconds(math.MaxUint32))
}

func TestTickScaleInvalid(t *testing.T) {
	for _, dt := range []float64{0, -1e-6, math.NaN(), math.Inf(-1)} {
		_, err := NewTickScale(dt)

		var scaleErr *InvalidScaleError
		require.ErrorAs(t, err, &scaleErr)
	}
}
