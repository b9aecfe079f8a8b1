package docrag_test

import (
	"testing"

	"github.com/ragtools/docrag"
	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical vectors", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal vectors", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite vectors", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "mismatched lengths", a: []float32{1, 2}, b: []float32{1}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "empty vectors", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tt.want, docrag.Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosine_is_symmetric(t *testing.T) {
	t.Parallel()

	a := []float32{0.3, -0.7, 0.2, 0.9}
	b := []float32{-0.1, 0.4, 0.8, 0.5}

	assert.InDelta(t, docrag.Cosine(a, b), docrag.Cosine(b, a), 1e-12)
}
