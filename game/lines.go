package game

// Line is one set of Connect cells that would form a win.
type Line [Connect]Point

var (
	// every horizontal, vertical and diagonal line on the board; read-only
	winningLines = buildLines()

	// starting cells of every left (+1,+1) and right (-1,+1) diagonal, in scan order
	leftOrigins  = buildOrigins(0)
	rightOrigins = buildOrigins(Width - 1)
)

// Lines returns the precomputed winning line table. Callers must not modify it.
func Lines() []Line {
	return winningLines
}

func buildLines() []Line {
	directions := []Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	lines := []Line{}
	for _, d := range directions {
		for y := 0; y < Height; y++ {
			for x := 0; x < Width; x++ {
				lastX, lastY := x+d.X*(Connect-1), y+d.Y*(Connect-1)
				if !inBounds(lastX, lastY) {
					continue
				}
				var line Line
				for i := range line {
					line[i] = Point{X: x + d.X*i, Y: y + d.Y*i}
				}
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// buildOrigins lists the top-row and side-edge cells that start a diagonal,
// side edge first (column edgeX, rows top to bottom), then the remaining top row.
func buildOrigins(edgeX int) []Point {
	origins := make([]Point, 0, Width+Height-1)
	for y := 0; y < Height; y++ {
		origins = append(origins, Point{X: edgeX, Y: y})
	}
	for x := 0; x < Width; x++ {
		if x != edgeX {
			origins = append(origins, Point{X: x, Y: 0})
		}
	}
	return origins
}
