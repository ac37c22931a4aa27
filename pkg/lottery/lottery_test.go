package lottery

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand replays a single Float64 value.
type fixedRand struct{ f float64 }

func (r fixedRand) Intn(n int) int   { return int(r.f * float64(n)) }
func (r fixedRand) Float64() float64 { return r.f }

func TestChoose(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		n, err := Choose(rng, 3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 3)
	}

	_, err := Choose(rng, 0)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestChooseWeighted_Boundaries(t *testing.T) {
	weights := []float64{1, 2, 7}

	tests := []struct {
		f    float64
		want int
	}{
		{0, 0},
		{0.099, 0},
		{0.101, 1},
		{0.299, 1},
		{0.301, 2},
		{0.999999, 2},
	}
	for _, tt := range tests {
		got, err := ChooseWeighted(fixedRand{tt.f}, weights)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "f=%v", tt.f)
	}
}

func TestChooseWeighted_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := ChooseWeighted(rng, nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ChooseWeighted(rng, []float64{1, 0})
	assert.ErrorIs(t, err, ErrBadWeight)

	_, err = ChooseWeighted(rng, []float64{-3})
	assert.ErrorIs(t, err, ErrBadWeight)

	_, err = ChooseWeighted(rng, []float64{1, math.Inf(1)})
	assert.ErrorIs(t, err, ErrBadWeight)

	_, err = ChooseWeighted(rng, []float64{math.NaN()})
	assert.ErrorIs(t, err, ErrBadWeight)
}

func TestChooseWeighted_SumOverflows(t *testing.T) {
	weights := []float64{1e308, 1e308}

	got, err := ChooseWeighted(fixedRand{0.25}, weights)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = ChooseWeighted(fixedRand{0.75}, weights)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestChooseWeighted_Distribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	weights := []float64{10, 30}
	counts := make([]int, 2)

	const runs = 20000
	for i := 0; i < runs; i++ {
		n, err := ChooseWeighted(rng, weights)
		require.NoError(t, err)
		counts[n]++
	}

	assert.InDelta(t, 0.25, float64(counts[0])/runs, 0.02)
	assert.InDelta(t, 0.75, float64(counts[1])/runs, 0.02)
}
