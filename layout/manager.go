package layout

import (
	"github.com/graphscene/core"
)

const historyCap = 100

// Snapshot is one undo-history entry: the set of positions immediately
// before an algorithm ran.
type Snapshot struct {
	Positions map[graphscene.SceneId]graphscene.Vec3
}

// Manager runs Algorithm implementations against a Scene, keeping a bounded
// position-snapshot history for undo and quality metrics per run.
type Manager struct {
	scene *graphscene.Scene
	history []Snapshot
	metrics []Metrics
}

// NewManager binds a layout Manager to scene.
func NewManager(scene *graphscene.Scene) *Manager {
	return &Manager{scene: scene}
}

// Run executes algo against scene's current nodes/edges, snapshots the
// pre-run positions for undo, writes the result back into the Scene, and
// records quality metrics. shortestPath is passed through to ComputeMetrics
// for the stress term (nil skips it).
func (m *Manager) Run(algo Algorithm, nodes []graphscene.SceneId, edges []Edge, shortestPath func(a, b graphscene.SceneId) (float64, bool)) (Result, error) {
	pre := currentPositions(m.scene, nodes)
	m.pushHistory(Snapshot{Positions: pre})

	result, err := algo.CalculateLayout(nodes, edges)
	if err != nil {
 return result, err
	}

	for id, pos := range result.Positions {
 m.scene.SetNodePosition(id, pos)
	}

	metrics := ComputeMetrics(result.Positions, edges, shortestPath)
	m.metrics = append(m.metrics, metrics)

	return result, nil
}

func (m *Manager) pushHistory(s Snapshot) {
	m.history = append(m.history, s)
	if len(m.history) > historyCap {
 m.history = m.history[len(m.history)-historyCap:]
	}
}

// Undo restores the most recent history snapshot into the Scene and pops
// it, returning whether a snapshot was available.
func (m *Manager) Undo() bool {
	if len(m.history) == 0 {
 return false
	}
	last := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	for id, pos := range last.Positions {
 m.scene.SetNodePosition(id, pos)
	}
	return true
}

// HistoryLen reports how many undo snapshots are currently retained.
func (m *Manager) HistoryLen() int { return len(m.history) }

// LastMetrics returns the most recently recorded quality metrics, or the
// zero value if no layout has run yet.
func (m *Manager) LastMetrics() (Metrics, bool) {
	if len(m.metrics) == 0 {
 return Metrics{}, false
	}
	return m.metrics[len(m.metrics)-1], true
}
