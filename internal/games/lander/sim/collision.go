package sim

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Intersects reports whether segment p1-p2 touches the circle (c, r).
// It solves |p1 + t(p2-p1) - c|² = r² for t: a root inside [0, 1] means the
// segment crosses the boundary, and roots straddling [0, 1] mean the segment
// lies wholly inside the circle. A zero-length segment is a point test.
func Intersects(p1, p2, c core.Vec2, r float64) bool {
	d := p2.Sub(p1)
	f := p1.Sub(c)

	a := d.Dot(d)
	cc := f.Dot(f) - r*r
	if a == 0 {
		return cc <= 0
	}
	b := 2 * f.Dot(d)

	disc := b*b - 4*a*cc
	if disc < 0 {
		return false
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)

	if (t1 >= 0 && t1 <= 1) || (t2 >= 0 && t2 <= 1) {
		return true
	}
	return t1 < 0 && t2 > 1
}

// ClosestPoint returns the point on segment p1-p2 nearest to c.
func ClosestPoint(p1, p2, c core.Vec2) core.Vec2 {
	d := p2.Sub(p1)
	a := d.Dot(d)
	if a == 0 {
		return p1
	}
	t := core.ClampF(c.Sub(p1).Dot(d)/a, 0, 1)
	return p1.Add(d.Scale(t))
}

// Contact describes a lander touching the terrain.
type Contact struct {
	Segment  int       // Index i of the hit segment Points[i]-Points[i+1]
	Point    core.Vec2 // Closest point on that segment
	Position core.Vec2 // Lander centre at contact
	Distance float64   // Centre to Point
}

// Collide tests a circle against every terrain segment and returns the
// nearest one it touches.
func (t *Terrain) Collide(center core.Vec2, radius float64) (Contact, bool) {
	best := Contact{Segment: -1, Distance: math.Inf(1)}
	for i := 0; i+1 < len(t.Points); i++ {
		p1, p2 := t.Points[i], t.Points[i+1]
		if math.Max(p1.X, p2.X) < center.X-radius || math.Min(p1.X, p2.X) > center.X+radius {
			continue
		}
		if !Intersects(p1, p2, center, radius) {
			continue
		}
		cp := ClosestPoint(p1, p2, center)
		if dist := cp.Sub(center).Len(); dist < best.Distance {
			best = Contact{Segment: i, Point: cp, Position: center, Distance: dist}
		}
	}
	return best, best.Segment >= 0
}

// Detect sweeps the circle from one position to the next in steps no longer
// than half the radius and returns the first contact along the path.
// The starting position itself is not tested. Only the part of the path
// within reach of the terrain is sampled, so a huge step stays cheap.
func Detect(t *Terrain, from, to core.Vec2, radius float64) (Contact, bool) {
	lo, hi, ok := t.reach(from, to, radius)
	if !ok {
		return Contact{Segment: -1}, false
	}
	d := to.Sub(from)
	step := math.Max(radius/2, 1)
	n := max(int(math.Ceil(d.Len()*(hi-lo)/step)), 1)

	for k := 1; k <= n; k++ {
		p := from.Add(d.Scale(lo + (hi-lo)*float64(k)/float64(n)))
		if c, ok := t.Collide(p, radius); ok {
			return c, true
		}
	}
	return Contact{Segment: -1}, false
}

// reach clips the path from→to to the box around the terrain grown by the
// radius and returns the path fractions where it enters and leaves.
func (t *Terrain) reach(from, to core.Vec2, radius float64) (lo, hi float64, ok bool) {
	if len(t.Points) == 0 {
		return 0, 0, false
	}
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range t.Points {
		top = math.Min(top, p.Y)
		bottom = math.Max(bottom, p.Y)
	}
	r := radius + 1
	left, right := t.Points[0].X-r, t.Points[len(t.Points)-1].X+r

	lo, hi = 0, 1
	d := to.Sub(from)
	for _, ax := range [...]struct{ p, d, min, max float64 }{
		{from.X, d.X, left, right},
		{from.Y, d.Y, top - r, bottom + r},
	} {
		if ax.d == 0 {
			if ax.p < ax.min || ax.p > ax.max {
				return 0, 0, false
			}
			continue
		}
		a, b := (ax.min-ax.p)/ax.d, (ax.max-ax.p)/ax.d
		if a > b {
			a, b = b, a
		}
		lo, hi = math.Max(lo, a), math.Min(hi, b)
	}
	return lo, hi, lo <= hi
}

// Verdict is the outcome of a touch-down.
type Verdict struct {
	InSafeZone bool
	SpeedSafe  bool
	AngleSafe  bool
	Zone       int     // Index into Terrain.Zones, -1 when outside every zone
	Speed      float64 // |vy| at contact
	AngleDeg   float64
}

// Safe reports whether all three landing conditions hold.
func (v Verdict) Safe() bool {
	return v.InSafeZone && v.SpeedSafe && v.AngleSafe
}

// Reason names the first failed condition, or "" for a safe landing.
func (v Verdict) Reason() string {
	switch {
	case !v.InSafeZone:
		return "missed the landing zone"
	case !v.SpeedSafe:
		return "descent too fast"
	case !v.AngleSafe:
		return "not upright"
	}
	return ""
}

// Upright reports whether rotation lies within maxDeg of vertical.
func Upright(rotation, maxDeg float64) bool {
	deg := Degrees(NormalizeAngle(rotation))
	return deg <= maxDeg || deg >= 360-maxDeg
}

// Evaluate classifies a touch-down. Zone membership uses the lander centre,
// so brushing a ramp beside the pad still counts. Speed uses the vertical
// component only.
func Evaluate(l Lander, t *Terrain, p LandingParams) Verdict {
	zone := t.ZoneUnder(l.Position.X)
	speed := math.Abs(l.Velocity.Y)
	return Verdict{
		InSafeZone: zone >= 0,
		SpeedSafe:  speed < p.MaxVerticalSpeed,
		AngleSafe:  Upright(l.Rotation, p.MaxAngleDeg),
		Zone:       zone,
		Speed:      speed,
		AngleDeg:   l.AngleDeg(),
	}
}
