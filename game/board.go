package game

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

type WinKind int

const (
	NoWin WinKind = iota
	Horizontal
	Vertical
	DiagonalLeft  // top-left to bottom-right, scanned along (+1,+1)
	DiagonalRight // top-right to bottom-left, scanned along (-1,+1)
)

func (k WinKind) String() string {
	switch k {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagonalLeft:
		return "diagonal-left"
	case DiagonalRight:
		return "diagonal-right"
	default:
		return "none"
	}
}

// Win describes the first winning run found by a scan.
type Win struct {
	Found bool
	Start Point
	End   Point
	Kind  WinKind
}

// Board is the Width x Height grid. It is a value type: assigning a Board copies it.
// Occupied cells of a column are always contiguous from the bottom row up.
type Board struct {
	cells [Width * Height]Cell
}

func index(x, y int) int {
	return y*Width + x
}

// Reset empties every cell.
func (b *Board) Reset() {
	b.cells = [Width * Height]Cell{}
}

// At returns the content of (x, y); ok is false when out of range.
func (b *Board) At(x, y int) (Cell, bool) {
	if !inBounds(x, y) {
		return Empty, false
	}
	return b.cells[index(x, y)], true
}

func (b *Board) set(x, y int, c Cell) {
	b.cells[index(x, y)] = c
}

// IsFree reports whether (x, y) is empty. Out-of-range cells are not free.
func (b *Board) IsFree(x, y int) bool {
	if !inBounds(x, y) {
		log.Error().Int("x", x).Int("y", y).Msg("cell out of range")
		return false
	}
	return b.cells[index(x, y)] == Empty
}

// IsOccupied reports whether (x, y) holds a token. Out-of-range cells count as occupied.
func (b *Board) IsOccupied(x, y int) bool {
	if !inBounds(x, y) {
		log.Error().Int("x", x).Int("y", y).Msg("cell out of range")
		return true
	}
	return b.cells[index(x, y)] != Empty
}

// ColumnFull reports whether the top cell of column x is taken.
func (b *Board) ColumnFull(x int) bool {
	return b.IsOccupied(x, 0)
}

// LegalColumns lists the columns that can still take a token, in column order.
func (b *Board) LegalColumns() []int {
	columns := make([]int, 0, Width)
	for x := 0; x < Width; x++ {
		if b.cells[index(x, 0)] == Empty {
			columns = append(columns, x)
		}
	}
	return columns
}

// Count returns the number of tokens on the board.
func (b *Board) Count() int {
	n := 0
	for _, c := range b.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// Drop lets a token for player fall into column and returns the row it landed on.
// Nothing changes when the column is out of range, the player is invalid or the
// column is full.
func (b *Board) Drop(player Cell, column int) (int, bool) {
	if column < 0 || column >= Width {
		log.Debug().Int("column", column).Msg("drop rejected: column out of range")
		return -1, false
	}
	if !player.Valid() {
		log.Debug().Int("player", int(player)).Msg("drop rejected: invalid player")
		return -1, false
	}
	if b.cells[index(column, 0)] != Empty {
		return -1, false
	}

	row := Height - 1
	for b.cells[index(column, row)] != Empty {
		row--
	}
	b.set(column, row, player)
	return row, true
}

// CheckForWin scans the whole board for a run owned by player, checking rows,
// then columns, then left diagonals, then right diagonals.
func (b *Board) CheckForWin(player Cell) Win {
	for y := 0; y < Height; y++ {
		if start, end, ok := b.scan(player, 0, y, 1, 0); ok {
			return Win{Found: true, Start: start, End: end, Kind: Horizontal}
		}
	}
	for x := 0; x < Width; x++ {
		if start, end, ok := b.scan(player, x, 0, 0, 1); ok {
			return Win{Found: true, Start: start, End: end, Kind: Vertical}
		}
	}
	for _, origin := range leftOrigins {
		if start, end, ok := b.scan(player, origin.X, origin.Y, 1, 1); ok {
			return Win{Found: true, Start: start, End: end, Kind: DiagonalLeft}
		}
	}
	for _, origin := range rightOrigins {
		if start, end, ok := b.scan(player, origin.X, origin.Y, -1, 1); ok {
			return Win{Found: true, Start: start, End: end, Kind: DiagonalRight}
		}
	}
	return Win{}
}

// CheckForWinIncremental runs the same checks as CheckForWin, restricted to the
// four lines through cell.
func (b *Board) CheckForWinIncremental(player Cell, cell Point) Win {
	if owner, ok := b.At(cell.X, cell.Y); !ok || owner != player {
		return Win{}
	}

	if start, end, ok := b.scan(player, 0, cell.Y, 1, 0); ok {
		return Win{Found: true, Start: start, End: end, Kind: Horizontal}
	}
	if start, end, ok := b.scan(player, cell.X, 0, 0, 1); ok {
		return Win{Found: true, Start: start, End: end, Kind: Vertical}
	}
	origin := leftOrigin(cell)
	if start, end, ok := b.scan(player, origin.X, origin.Y, 1, 1); ok {
		return Win{Found: true, Start: start, End: end, Kind: DiagonalLeft}
	}
	origin = rightOrigin(cell)
	if start, end, ok := b.scan(player, origin.X, origin.Y, -1, 1); ok {
		return Win{Found: true, Start: start, End: end, Kind: DiagonalRight}
	}
	return Win{}
}

// CheckForStalemate reports whether no cell is free.
func (b *Board) CheckForStalemate() bool {
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// scan walks from (x, y) along (dx, dy) until it leaves the board and returns the
// first Connect-long run owned by player.
func (b *Board) scan(player Cell, x, y, dx, dy int) (start, end Point, found bool) {
	run := 0
	for ; inBounds(x, y); x, y = x+dx, y+dy {
		if b.cells[index(x, y)] != player {
			run = 0
			continue
		}
		run++
		if run == Connect {
			start = Point{X: x - dx*(Connect-1), Y: y - dy*(Connect-1)}
			return start, Point{X: x, Y: y}, true
		}
	}
	return Point{}, Point{}, false
}

// leftOrigin moves cell toward the top-left corner to the start of its (+1,+1) diagonal.
func leftOrigin(cell Point) Point {
	d := min(cell.X, cell.Y)
	return Point{X: cell.X - d, Y: cell.Y - d}
}

// rightOrigin moves cell toward the top-right corner to the start of its (-1,+1) diagonal.
func rightOrigin(cell Point) Point {
	d := min(Width-1-cell.X, cell.Y)
	return Point{X: cell.X + d, Y: cell.Y - d}
}

// String dumps the board with row 0 on top and column indices underneath.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			sb.WriteByte(b.cells[index(x, y)].symbol())
		}
		sb.WriteByte('\n')
	}
	for x := 0; x < Width; x++ {
		sb.WriteString(strconv.Itoa(x % 10))
	}
	return sb.String()
}
