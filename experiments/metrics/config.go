package metrics

// Agent kinds
const (
	Computer = "computer"
	Random   = "random"
)

type AgentConfig struct {
	ID        int
	Kind      string // Computer or Random
	Depth     int
	Heuristic string // game.LookupEvaluation name
	Selection string // searcher.ParseSelection name
	Seed      uint64
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID, seat A
	Agent2 int // AgentConfig.ID, seat B
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}
