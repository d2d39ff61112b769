package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityIdentical(t *testing.T) {
	v := []float32{0.3, 0.5, 0.2}
	assert.InDelta(t, 1.0, Similarity(v, v), 1e-9)
}

func TestSimilaritySymmetric(t *testing.T) {
	a := []float32{1, 0, 2}
	b := []float32{0.5, 1, 0}
	assert.InDelta(t, Similarity(a, b), Similarity(b, a), 1e-12)
}

func TestSimilarityOrthogonal(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	assert.InDelta(t, 0, Similarity(a, b), 1e-12)
}

func TestSimilarityDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, Similarity(nil, nil))
	assert.Equal(t, 0.0, Similarity([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Equal(t, 0.0, Similarity([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, 0.0, Similarity([]float32{1, 1}, []float32{0, 0}))
}

func TestBaseScore(t *testing.T) {
	assert.InDelta(t, 56.0, BaseScore(0.8), 1e-9)
	assert.InDelta(t, 70.0, BaseScore(1.0), 1e-9)
	assert.InDelta(t, 0.0, BaseScore(0), 1e-9)
}
