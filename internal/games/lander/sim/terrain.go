package sim

import (
	"sort"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// SafeZone is a flattened run of terrain points [Start, End) at a single height.
type SafeZone struct {
	Start  int
	End    int
	Height float64
}

// Width returns the number of points in the zone.
func (z SafeZone) Width() int { return z.End - z.Start }

// Contains reports whether world x lies inside the half-open zone span.
func (z SafeZone) Contains(x float64) bool {
	return x >= float64(z.Start) && x < float64(z.End)
}

// Spans reports whether world x lies over the zone, both edges included.
func (z SafeZone) Spans(x float64) bool {
	return x >= float64(z.Start) && x <= float64(z.End)
}

// Terrain is a polyline with one point per world column.
type Terrain struct {
	Points []core.Vec2
	Zones  []SafeZone
	Width  int
	Height int
	Top    float64 // Highest point any terrain may reach (smallest y)
	Margin int     // Side margin used for zone placement
}

// Segments returns the number of line segments in the polyline.
func (t *Terrain) Segments() int {
	if len(t.Points) < 2 {
		return 0
	}
	return len(t.Points) - 1
}

// HeightAt interpolates the terrain y at world x. x outside the terrain
// clamps to the nearest endpoint.
func (t *Terrain) HeightAt(x float64) float64 {
	n := len(t.Points)
	if n == 0 {
		return float64(t.Height)
	}
	if x <= 0 {
		return t.Points[0].Y
	}
	if x >= float64(n-1) {
		return t.Points[n-1].Y
	}
	i := int(x)
	frac := x - float64(i)
	return t.Points[i].Y + (t.Points[i+1].Y-t.Points[i].Y)*frac
}

// ZoneAt returns the index of the safe zone containing world x, or -1.
func (t *Terrain) ZoneAt(x float64) int {
	for i, z := range t.Zones {
		if z.Contains(x) {
			return i
		}
	}
	return -1
}

// ZoneUnder returns the index of the safe zone a lander centred at x is
// over, or -1. Unlike ZoneAt both zone edges count.
func (t *Terrain) ZoneUnder(x float64) int {
	for i, z := range t.Zones {
		if z.Spans(x) {
			return i
		}
	}
	return -1
}

// InZone reports whether point index i belongs to any safe zone.
func (t *Terrain) InZone(i int) bool {
	for _, z := range t.Zones {
		if i >= z.Start && i < z.End {
			return true
		}
	}
	return false
}

// span is one pending midpoint-displacement interval.
type span struct {
	left, right int
	stddev      float64
}

// GenerateTerrain builds terrain for the given world size and level policy.
// Width below 2 and height below 1 are raised to those minimums; generation
// never fails. The result depends only on the RNG state.
func GenerateTerrain(width, height int, params TerrainParams, policy LevelPolicy, rng *RNG) *Terrain {
	width = max(width, 2)
	height = max(height, 1)

	h := float64(height)
	maxTerrain := h * params.MaxHeightFraction
	top := core.ClampF(h*params.TopFraction, 0, h)
	clampY := func(y float64) float64 { return core.ClampF(y, top, h) }

	pts := make([]core.Vec2, width)
	for i := range pts {
		pts[i].X = float64(i)
	}
	last := width - 1
	pts[0].Y = clampY(h - rng.Range(maxTerrain/2, maxTerrain))
	pts[last].Y = clampY(h - rng.Range(maxTerrain/2, maxTerrain))

	// Breadth-first midpoint displacement; each depth halves the stddev.
	queue := []span{{left: 0, right: last, stddev: params.Roughness * maxTerrain}}
	for head := 0; head < len(queue); head++ {
		s := queue[head]
		if s.right-s.left < 2 {
			continue
		}
		mid := (s.left + s.right) / 2
		avg := (pts[s.left].Y + pts[s.right].Y) / 2
		pts[mid].Y = clampY(avg + rng.Gaussian(0, s.stddev))
		next := s.stddev / 2
		queue = append(queue,
			span{left: s.left, right: mid, stddev: next},
			span{left: mid, right: s.right, stddev: next},
		)
	}

	t := &Terrain{
		Points: pts,
		Width:  width,
		Height: height,
		Top:    top,
	}
	t.Margin = sideMargin(width, params.SideMargin)
	t.Zones = placeZones(width, t.Margin, policy.LandingZones, policy.ZoneWidth, rng)
	flattenZones(t)
	blendZones(t, params.BlendWindow)
	return t
}

func sideMargin(width int, fraction float64) int {
	m := int(float64(width) * fraction)
	if m < 0 || width-2*m < 2 {
		return 0
	}
	return m
}

// interval is a half-open range of allowed zone start..end indices.
type interval struct {
	lo, hi int
}

// placeZones picks count non-overlapping zones inside [margin, width-margin).
// Every placed zone reserves its own width of free space on either side.
func placeZones(width, margin, count, zoneWidth int, rng *RNG) []SafeZone {
	if count <= 0 {
		return nil
	}
	free := []interval{{lo: margin, hi: width - margin}}
	zones := make([]SafeZone, 0, count)

	for range count {
		zw := max(zoneWidth, 2)
		start := -1
		for zw >= 2 {
			start = pickStart(free, zw, rng)
			if start >= 0 {
				break
			}
			zw /= 2
		}
		if start < 0 {
			break
		}
		zones = append(zones, SafeZone{Start: start, End: start + zw})
		free = reserve(free, start-zw, start+2*zw)
	}

	sort.Slice(zones, func(i, j int) bool { return zones[i].Start < zones[j].Start })
	return zones
}

// pickStart draws a start index uniformly over every position where a zone
// of width zw fits inside a free interval. Returns -1 when none fits.
func pickStart(free []interval, zw int, rng *RNG) int {
	total := 0
	for _, iv := range free {
		if n := iv.hi - iv.lo - zw + 1; n > 0 {
			total += n
		}
	}
	if total == 0 {
		return -1
	}
	k := rng.Intn(total)
	for _, iv := range free {
		n := iv.hi - iv.lo - zw + 1
		if n <= 0 {
			continue
		}
		if k < n {
			return iv.lo + k
		}
		k -= n
	}
	return -1
}

// reserve removes [lo, hi) from the free list.
func reserve(free []interval, lo, hi int) []interval {
	out := make([]interval, 0, len(free)+1)
	for _, iv := range free {
		if hi <= iv.lo || lo >= iv.hi {
			out = append(out, iv)
			continue
		}
		if lo > iv.lo {
			out = append(out, interval{lo: iv.lo, hi: lo})
		}
		if hi < iv.hi {
			out = append(out, interval{lo: hi, hi: iv.hi})
		}
	}
	return out
}

// flattenZones sets every zone to the height of its highest point.
func flattenZones(t *Terrain) {
	for zi := range t.Zones {
		z := &t.Zones[zi]
		y := t.Points[z.Start].Y
		for i := z.Start + 1; i < z.End; i++ {
			y = min(y, t.Points[i].Y)
		}
		for i := z.Start; i < z.End; i++ {
			t.Points[i].Y = y
		}
		z.Height = y
	}
}

// blendZones linearly ramps the terrain into and out of each zone over
// window points. Anchors come from the flattened terrain, not from earlier
// blends, and zone points are never touched.
func blendZones(t *Terrain, window int) {
	if window <= 0 {
		return
	}
	base := make([]float64, len(t.Points))
	for i, p := range t.Points {
		base[i] = p.Y
	}
	last := len(t.Points) - 1

	for _, z := range t.Zones {
		if a := max(z.Start-window, 0); a < z.Start {
			span := float64(z.Start - a)
			for i := a + 1; i < z.Start; i++ {
				if t.InZone(i) {
					continue
				}
				t.Points[i].Y = core.Lerp(base[a], z.Height, float64(i-a)/span)
			}
		}
		edge := z.End - 1
		if b := min(edge+window, last); b > edge {
			span := float64(b - edge)
			for i := z.End; i < b; i++ {
				if t.InZone(i) {
					continue
				}
				t.Points[i].Y = core.Lerp(z.Height, base[b], float64(i-edge)/span)
			}
		}
	}
}
