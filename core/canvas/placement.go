package canvas

// IsValidGridPosition reports whether gp is inside the grid and inside cell.
// Rows are matched against cell.Y/Height, columns against cell.X/Width.
func IsValidGridPosition(gp GridPosition, cell Cell) bool {
	return InBounds(gp) && cell.Contains(gp)
}
