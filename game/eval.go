package game

// Score of a run that wins (or would win) on the next move
const Threat = 100

// Directions of the four axes a run can lie on
var axes = [...]Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: 1}}

// Weight of a winning line by the number of one player's tokens in it
var lineWeights = [Connect + 1]int{0, 0, 1, 4, 100}

// EvaluatePlacement scores the token at `at` by the longest run through it, for
// player (offense) and for the opponent as if the cell were theirs (defense).
// Runs are capped at Connect-1 and a capped run saturates to Threat. Offense
// counts double so that winning outranks blocking.
func EvaluatePlacement(b *Board, player Cell, at Point) int {
	if !player.Valid() || !inBounds(at.X, at.Y) {
		return 0
	}
	offense := placementScore(b, player, at)
	defense := placementScore(b, player.Opponent(), at)
	return max(offense*2, defense)
}

func placementScore(b *Board, player Cell, at Point) int {
	best := 0
	for _, axis := range axes {
		run := 1 + b.count(player, at, axis.X, axis.Y) + b.count(player, at, -axis.X, -axis.Y)
		best = max(best, min(run, Connect-1))
	}
	if best == Connect-1 {
		return Threat
	}
	return best
}

// count returns how many consecutive cells after `from` along (dx, dy) belong to player.
func (b *Board) count(player Cell, from Point, dx, dy int) int {
	n := 0
	for x, y := from.X+dx, from.Y+dy; inBounds(x, y) && b.cells[index(x, y)] == player; x, y = x+dx, y+dy {
		n++
	}
	return n
}

// EvaluateLines tallies every winning line by how many tokens each player has in
// it and returns the weighted difference from player's perspective. The placed
// cell is ignored.
func EvaluateLines(b *Board, player Cell, _ Point) int {
	var scoreA, scoreB int
	for _, line := range winningLines {
		var countA, countB int
		for _, p := range line {
			switch b.cells[index(p.X, p.Y)] {
			case PlayerA:
				countA++
			case PlayerB:
				countB++
			}
		}
		scoreA += lineWeights[countA]
		scoreB += lineWeights[countB]
	}

	if player == PlayerB {
		return scoreB - scoreA
	}
	return scoreA - scoreB
}
