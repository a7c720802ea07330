package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSourcesRepeat(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.Intn(10), b.Intn(10))
	}
}

func TestScriptedIntnMapsIntoRange(t *testing.T) {
	s := NewScripted(0, 0.26, 0.99, 1.0)
	assert.Equal(t, 0, s.Intn(4))
	assert.Equal(t, 1, s.Intn(4))
	assert.Equal(t, 3, s.Intn(4))
	assert.Equal(t, 3, s.Intn(4), "1.0 clamps to last index")
	assert.Equal(t, 4, s.Consumed())
	assert.Equal(t, 0, s.Intn(4), "fallback after script ends")
}

func TestPickWeighted(t *testing.T) {
	weights := []float64{1, 0, 3}
	assert.Equal(t, 0, Pick(NewScripted(0.1), weights))
	assert.Equal(t, 2, Pick(NewScripted(0.3), weights))
	assert.Equal(t, 2, Pick(NewScripted(0.999), weights))
	assert.Equal(t, -1, Pick(NewScripted(0.5), []float64{0, -1}))
}
