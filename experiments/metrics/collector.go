package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarises one expansion pass of a planner.
type SearchMetric struct {
	StartTime time.Time
	Duration  time.Duration
	Horizon   int
	Created   int // positions cloned and scored
	Reused    int // positions kept from an earlier pass
	Rescored  int // positions re-scored for a new mover
	Pruned    int // slots left empty under a full column
}

type MoveMetric struct {
	Step   int
	Player string // game.Cell
	Column int
	SearchMetric
}

type GameMetric struct {
	Starting   string // game.Cell
	Winner     string // game.Cell, empty on a draw
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(horizon int)
	AddCreated()
	AddReused()
	AddRescored()
	AddPruned()
	Complete() SearchMetric
}

type collector struct {
	startTime time.Time
	horizon   int
	created   atomic.Int32
	reused    atomic.Int32
	rescored  atomic.Int32
	pruned    atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(horizon int) {
	m.startTime = time.Now()
	m.horizon = horizon
}

func (m *collector) AddCreated() {
	m.created.Add(1)
}

func (m *collector) AddReused() {
	m.reused.Add(1)
}

func (m *collector) AddRescored() {
	m.rescored.Add(1)
}

func (m *collector) AddPruned() {
	m.pruned.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Horizon:   m.horizon,
		Created:   int(m.created.Load()),
		Reused:    int(m.reused.Load()),
		Rescored:  int(m.rescored.Load()),
		Pruned:    int(m.pruned.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(horizon int)      {}
func (m *dummyCollector) AddCreated()            {}
func (m *dummyCollector) AddReused()             {}
func (m *dummyCollector) AddRescored()           {}
func (m *dummyCollector) AddPruned()             {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
