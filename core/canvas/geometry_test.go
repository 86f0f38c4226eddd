package canvas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridToPixel(t *testing.T) {
	tests := []struct {
		name string
		gp   GridPosition
		want Position
	}{
		{name: "origin", gp: GridPosition{Row: 0, Col: 0}, want: Position{X: 24, Y: 24}},
		{name: "value propositions", gp: GridPosition{Row: 0, Col: 2}, want: Position{X: 456, Y: 24}},
		{name: "last cell", gp: GridPosition{Row: 2, Col: 5}, want: Position{X: 1104, Y: 356}},
		{name: "out of grid is still total", gp: GridPosition{Row: -1, Col: 7}, want: Position{X: 1536, Y: -142}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GridToPixel(tt.gp))
		})
	}
}

func TestPixelToGrid_roundTrip(t *testing.T) {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			gp := GridPosition{Row: row, Col: col}
			assert.Equal(t, gp, PixelToGrid(GridToPixel(gp)), "round trip of %+v", gp)
		}
	}
}

func TestPixelToGrid_clamping(t *testing.T) {
	last := GridPosition{Row: Rows - 1, Col: Cols - 1}
	tests := []struct {
		name string
		p    Position
		want GridPosition
	}{
		{name: "negative x", p: Position{X: -1, Y: 10}, want: GridPosition{Row: 0, Col: 0}},
		{name: "negative y", p: Position{X: 10, Y: -500}, want: GridPosition{Row: 0, Col: 0}},
		{name: "both negative", p: Position{X: -10000, Y: -0.5}, want: GridPosition{Row: 0, Col: 0}},
		{name: "beyond extent", p: Position{X: 5000, Y: 5000}, want: last},
		{name: "huge", p: Position{X: math.MaxFloat64, Y: math.Inf(1)}, want: last},
		{name: "NaN", p: Position{X: math.NaN(), Y: math.NaN()}, want: GridPosition{Row: 0, Col: 0}},
		{name: "cell edge", p: Position{X: 215.9, Y: 166}, want: GridPosition{Row: 1, Col: 0}},
		{name: "inside", p: Position{X: 700, Y: 200}, want: GridPosition{Row: 1, Col: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PixelToGrid(tt.p))
		})
	}
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(GridPosition{Row: 0, Col: 0}))
	assert.True(t, InBounds(GridPosition{Row: 2, Col: 5}))
	assert.False(t, InBounds(GridPosition{Row: 3, Col: 0}))
	assert.False(t, InBounds(GridPosition{Row: 0, Col: 6}))
	assert.False(t, InBounds(GridPosition{Row: -1, Col: 0}))
}
