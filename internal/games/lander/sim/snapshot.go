package sim

import (
	"fmt"
	"hash/fnv"
)

// Snapshot captures the session state for determinism testing and the
// status API.
type Snapshot struct {
	Tick      uint64
	Level     int
	State     State
	Success   bool
	Score     int
	Countdown float64
	X, Y      float64
	VX, VY    float64
	Rotation  float64
	Fuel      int
	Zones     []SafeZone
	Terrain   uint64 // Hash of the terrain polyline
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	zones := append([]SafeZone(nil), s.terrain.Zones...)
	return Snapshot{
		Tick:      s.tick,
		Level:     s.level,
		State:     s.state,
		Success:   s.success,
		Score:     s.score,
		Countdown: s.Countdown(),
		X:         s.lander.Position.X,
		Y:         s.lander.Position.Y,
		VX:        s.lander.Velocity.X,
		VY:        s.lander.Velocity.Y,
		Rotation:  s.lander.Rotation,
		Fuel:      s.lander.Fuel,
		Zones:     zones,
		Terrain:   s.terrain.Hash(),
	}
}

// Hash returns an FNV-1a hash of the snapshot.
func (snap Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "T:%d;L:%d;S:%s:%v;P:%d;C:%g;", snap.Tick, snap.Level, snap.State, snap.Success, snap.Score, snap.Countdown)
	fmt.Fprintf(h, "X:%g,%g;V:%g,%g;R:%g;F:%d;", snap.X, snap.Y, snap.VX, snap.VY, snap.Rotation, snap.Fuel)
	for _, z := range snap.Zones {
		fmt.Fprintf(h, "Z:%d-%d@%g,", z.Start, z.End, z.Height)
	}
	fmt.Fprintf(h, ";G:%d", snap.Terrain)
	return h.Sum64()
}

// Hash returns an FNV-1a hash of the terrain points and zones.
func (t *Terrain) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d;", t.Width, t.Height)
	for _, p := range t.Points {
		fmt.Fprintf(h, "%g,", p.Y)
	}
	for _, z := range t.Zones {
		fmt.Fprintf(h, ";%d-%d", z.Start, z.End)
	}
	return h.Sum64()
}
