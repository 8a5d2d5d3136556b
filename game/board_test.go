package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func place(b *Board, player Cell, points ...Point) {
	for _, p := range points {
		b.set(p.X, p.Y, player)
	}
}

func TestDrop(t *testing.T) {
	t.Run("token lands on the lowest empty row", func(t *testing.T) {
		var b Board

		row, ok := b.Drop(PlayerA, 3)
		require.True(t, ok)
		require.Equal(t, Height-1, row, "First token should land on the bottom row")

		row, ok = b.Drop(PlayerB, 3)
		require.True(t, ok)
		require.Equal(t, Height-2, row, "Second token should stack on the first")
		require.Equal(t, 2, b.Count())
	})

	t.Run("column fills after Height drops", func(t *testing.T) {
		var b Board
		for i := 0; i < Height; i++ {
			_, ok := b.Drop(PlayerA, 3)
			require.True(t, ok, "Drop %d should succeed", i+1)
		}
		before := b

		row, ok := b.Drop(PlayerB, 3)

		require.False(t, ok, "Drop into a full column should fail")
		require.Equal(t, -1, row)
		require.Equal(t, before, b, "Failed drop should not mutate the board")
		require.True(t, b.ColumnFull(3))
		require.NotContains(t, b.LegalColumns(), 3)
	})

	t.Run("rejects bad input without mutation", func(t *testing.T) {
		var b Board

		_, ok := b.Drop(PlayerA, -1)
		require.False(t, ok, "Negative column should be rejected")
		_, ok = b.Drop(PlayerA, Width)
		require.False(t, ok, "Column past the edge should be rejected")
		_, ok = b.Drop(Empty, 0)
		require.False(t, ok, "Empty is not a player")
		_, ok = b.Drop(Cell(7), 0)
		require.False(t, ok, "Unknown player id should be rejected")
		require.Equal(t, Board{}, b)
	})
}

func TestBounds(t *testing.T) {
	var b Board
	place(&b, PlayerA, Point{X: 0, Y: 5})

	require.False(t, b.IsFree(-1, 0), "Out of range is never free")
	require.True(t, b.IsOccupied(Width, 0), "Out of range counts as occupied")
	require.False(t, b.IsFree(0, 5))
	require.True(t, b.IsOccupied(0, 5))
	require.True(t, b.IsFree(1, 5))

	_, ok := b.At(0, Height)
	require.False(t, ok)
}

func TestCheckForWin(t *testing.T) {
	t.Run("left diagonal from the top-left corner", func(t *testing.T) {
		var b Board
		place(&b, PlayerA, Point{0, 0}, Point{1, 1}, Point{2, 2}, Point{3, 3})

		win := b.CheckForWin(PlayerA)

		require.True(t, win.Found)
		require.Equal(t, DiagonalLeft, win.Kind)
		require.Equal(t, Point{0, 0}, win.Start)
		require.Equal(t, Point{3, 3}, win.End)
		require.False(t, b.CheckForWin(PlayerB).Found, "Opponent owns nothing")
	})

	t.Run("right diagonal", func(t *testing.T) {
		var b Board
		place(&b, PlayerB, Point{6, 1}, Point{5, 2}, Point{4, 3}, Point{3, 4})

		win := b.CheckForWin(PlayerB)

		require.True(t, win.Found)
		require.Equal(t, DiagonalRight, win.Kind)
		require.Equal(t, Point{6, 1}, win.Start)
		require.Equal(t, Point{3, 4}, win.End)
	})

	t.Run("horizontal outranks vertical", func(t *testing.T) {
		var b Board
		place(&b, PlayerA, Point{0, 5}, Point{1, 5}, Point{2, 5}, Point{3, 5})
		place(&b, PlayerA, Point{6, 2}, Point{6, 3}, Point{6, 4}, Point{6, 5})

		win := b.CheckForWin(PlayerA)

		require.Equal(t, Horizontal, win.Kind)
		require.Equal(t, Point{0, 5}, win.Start)
		require.Equal(t, Point{3, 5}, win.End)
	})

	t.Run("vertical", func(t *testing.T) {
		var b Board
		for i := 0; i < Connect; i++ {
			b.Drop(PlayerB, 2)
		}

		win := b.CheckForWin(PlayerB)

		require.Equal(t, Vertical, win.Kind)
		require.Equal(t, Point{2, 2}, win.Start)
		require.Equal(t, Point{2, 5}, win.End)
	})

	t.Run("broken run is not a win", func(t *testing.T) {
		var b Board
		place(&b, PlayerA, Point{0, 5}, Point{1, 5}, Point{3, 5}, Point{4, 5})
		place(&b, PlayerB, Point{2, 5})

		require.False(t, b.CheckForWin(PlayerA).Found)
	})
}

func TestCheckForWinIncremental(t *testing.T) {
	t.Run("cell not owned by player", func(t *testing.T) {
		var b Board
		place(&b, PlayerA, Point{0, 0}, Point{1, 1}, Point{2, 2}, Point{3, 3})

		require.False(t, b.CheckForWinIncremental(PlayerB, Point{1, 1}).Found)
		require.False(t, b.CheckForWinIncremental(PlayerA, Point{4, 4}).Found, "Empty cell cannot win")
		require.False(t, b.CheckForWinIncremental(PlayerA, Point{-1, 9}).Found, "Out of range cell cannot win")
	})

	t.Run("every cell of a run finds the same win", func(t *testing.T) {
		var b Board
		run := []Point{{5, 1}, {4, 2}, {3, 3}, {2, 4}}
		place(&b, PlayerA, run...)

		for _, cell := range run {
			win := b.CheckForWinIncremental(PlayerA, cell)
			require.Equal(t, b.CheckForWin(PlayerA), win, "Cell %v should report the full scan's win", cell)
		}
	})

	t.Run("agrees with the full scan after random winning drops", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		wins := 0
		for game := 0; game < 500; game++ {
			var b Board
			player := PlayerA
			for {
				columns := b.LegalColumns()
				if len(columns) == 0 {
					break
				}
				column := columns[rng.Intn(len(columns))]
				row, ok := b.Drop(player, column)
				require.True(t, ok)

				incremental := b.CheckForWinIncremental(player, Point{column, row})
				full := b.CheckForWin(player)
				require.Equal(t, full, incremental, "Game %d:\n%s", game, b.String())
				if full.Found {
					wins++
					break
				}
				player = player.Opponent()
			}
		}
		require.Positive(t, wins, "Random games should produce wins")
	})
}

func TestCheckForStalemate(t *testing.T) {
	var b Board
	require.False(t, b.CheckForStalemate())

	// Fill columns in pairs so no four line up
	pattern := []Cell{PlayerA, PlayerA, PlayerB, PlayerB, PlayerA, PlayerA, PlayerB}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := pattern[x]
			if y%2 == 1 {
				c = c.Opponent()
			}
			place(&b, c, Point{x, y})
		}
	}

	require.True(t, b.CheckForStalemate())
	require.Empty(t, b.LegalColumns())

	b.Reset()
	require.Equal(t, 0, b.Count())
}

func TestLines(t *testing.T) {
	lines := Lines()

	require.Len(t, lines, 69, "7x6 board has 24 horizontal, 21 vertical and 24 diagonal lines")
	for _, line := range lines {
		for _, p := range line {
			require.True(t, inBounds(p.X, p.Y), "Line %v leaves the board", line)
		}
	}
}

func TestBoardString(t *testing.T) {
	var b Board
	b.Drop(PlayerA, 0)
	b.Drop(PlayerB, 6)

	expected := "" +
		".......\n" +
		".......\n" +
		".......\n" +
		".......\n" +
		".......\n" +
		"X.....O\n" +
		"0123456"
	require.Equal(t, expected, b.String())
}
