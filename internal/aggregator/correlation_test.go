package aggregator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationMatrix(t *testing.T) {
	m := CorrelationMatrix(table(
		[]int{1, 2, 3, 4, 5},
		[]int{5, 4, 3, 2, 1},
		[]int{1, 2, 3, 4, 4},
	))
	require.Equal(t, 3, m.Size)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, m.At(i, i).Value)
		for j := 0; j < 3; j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
		}
	}
	assert.InDelta(t, -1.0, m.At(1, 0).Value, 1e-12)
	assert.InDelta(t, 8/math.Sqrt(68), m.At(2, 0).Value, 1e-12)
	assert.InDelta(t, -8/math.Sqrt(68), m.At(2, 1).Value, 1e-12)
}

func TestCorrelationPairwiseComplete(t *testing.T) {
	m := CorrelationMatrix(table(
		[]int{1, 2, 3, 0},
		[]int{1, 2, 3, 5},
	))
	assert.True(t, m.At(1, 0).Valid)
	assert.InDelta(t, 1.0, m.At(1, 0).Value, 1e-12)
}

func TestCorrelationUndefined(t *testing.T) {
	m := CorrelationMatrix(table(
		[]int{3, 3, 3},
		[]int{1, 2, 3},
		[]int{0, 0, 4},
	))
	assert.False(t, m.At(0, 0).Valid, "constant column has no self-correlation")
	assert.False(t, m.At(1, 0).Valid)
	assert.False(t, m.At(2, 1).Valid, "single complete pair")
	assert.True(t, m.At(1, 1).Valid)
	assert.False(t, m.At(5, 5).Valid)
}

func TestLowerTriangle(t *testing.T) {
	m := CorrelationMatrix(table(
		[]int{1, 2, 3, 4, 5},
		[]int{2, 1, 4, 3, 5},
		[]int{1, 2, 3, 4, 4},
		[]int{5, 3, 4, 1, 2},
	))
	lower := m.LowerTriangle()
	for i := 0; i < m.Size; i++ {
		for j := 0; j < m.Size; j++ {
			if j < i {
				assert.Equal(t, m.At(i, j), lower.At(i, j))
			} else {
				assert.False(t, lower.At(i, j).Valid)
			}
		}
	}
	// the source matrix stays whole
	assert.True(t, m.At(0, 0).Valid)
	assert.True(t, m.At(0, 3).Valid)
}
