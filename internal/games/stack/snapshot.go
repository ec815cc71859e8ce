package stack

import "math"

// Snapshot contains the simulation state of a game for determinism testing.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick          uint64
	Score         int
	PerfectStreak int
	Placements    int
	GameOver      bool
	Speed         float64
	Darkness      float64

	HasMoving bool
	MovingX   float64
	MovingY   float64
	MovingW   float64
	Direction int

	// Tower blocks flattened as CenterX, CenterY, Width triples, bottom first
	TowerData []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.engine.State()
	blocks := g.engine.Tower()

	data := make([]float64, 0, len(blocks)*3)
	for _, b := range blocks {
		data = append(data, b.CenterX, b.CenterY, b.Width)
	}

	snap := Snapshot{
		Tick:          uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Score:         st.Score,
		PerfectStreak: st.PerfectStreak,
		Placements:    st.Placements,
		GameOver:      st.GameOver,
		Speed:         st.Speed,
		Darkness:      st.Darkness,
		TowerData:     data,
	}

	if m, ok := g.engine.Moving(); ok {
		snap.HasMoving = true
		snap.MovingX = m.CenterX
		snap.MovingY = m.CenterY
		snap.MovingW = m.Width
		snap.Direction = m.Direction
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PerfectStreak) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Placements)    //#nosec G115 -- hash computation
	if snap.GameOver {
		h = h*31 + 1
	}
	h = h*31 + math.Float64bits(snap.Speed)
	h = h*31 + math.Float64bits(snap.Darkness)

	if snap.HasMoving {
		h = h*31 + math.Float64bits(snap.MovingX)
		h = h*31 + math.Float64bits(snap.MovingY)
		h = h*31 + math.Float64bits(snap.MovingW)
		h = h*31 + uint64(snap.Direction+1) //#nosec G115 -- direction is -1 or +1
	}

	for _, v := range snap.TowerData {
		h = h*31 + math.Float64bits(v)
	}
	return h
}
