package canvas

import "math"

// Grid dimensions, in cells and pixels.
const (
	Rows = 3
	Cols = 6

	CellWidth  = 200
	CellHeight = 150
	Gap        = 16
	Padding    = 24
)

// GridToPixel returns the top-left pixel of the grid cell at gp.
func GridToPixel(gp GridPosition) Position {
	return Position{
		X: float64(gp.Col*(CellWidth+Gap) + Padding),
		Y: float64(gp.Row*(CellHeight+Gap) + Padding),
	}
}

// PixelToGrid returns the grid cell under p, clamped to the grid.
// Drops outside the canvas land on the nearest edge cell.
func PixelToGrid(p Position) GridPosition {
	return GridPosition{
		Row: clampIndex(p.Y/(CellHeight+Gap), Rows),
		Col: clampIndex(p.X/(CellWidth+Gap), Cols),
	}
}

// InBounds reports whether gp lies within the grid.
func InBounds(gp GridPosition) bool {
	return gp.Row >= 0 && gp.Row < Rows && gp.Col >= 0 && gp.Col < Cols
}

func clampIndex(f float64, n int) int {
	f = math.Floor(f)
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > float64(n-1):
		return n - 1
	}
	return int(f)
}
