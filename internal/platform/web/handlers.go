package web

import (
	"net/http"
	"strconv"

	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	minWorld     = 16
	maxWorld     = 8192
)

// listScores handles GET /api/scores?limit=N.
func (s *Server) listScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxLimit)
	}

	scores, err := s.store.TopScores(r.Context(), s.cfg.GameID, limit)
	if err != nil {
		s.logger.Error("top scores", "error", err)
		respondError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	respondJSON(w, http.StatusOK, scores)
}

// bestScore handles GET /api/scores/best.
func (s *Server) bestScore(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}

	best, err := s.store.HighScore(r.Context(), s.cfg.GameID)
	if err != nil {
		s.logger.Error("high score", "error", err)
		respondError(w, http.StatusInternalServerError, "cannot load high score")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"score": best})
}

// stats handles GET /api/stats.
func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "score storage unavailable")
		return
	}

	st, err := s.store.GetGameStats(r.Context(), s.cfg.GameID)
	if err != nil {
		s.logger.Error("game stats", "error", err)
		respondError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// TerrainResponse is the body of GET /api/terrain.
type TerrainResponse struct {
	Seed   uint64       `json:"seed"`
	Level  int          `json:"level"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Top    float64      `json:"top"`
	Points [][2]float64 `json:"points"`
	Zones  []ZoneJSON   `json:"zones"`
	Hash   string       `json:"hash"`
}

// ZoneJSON is one landing zone in a TerrainResponse.
type ZoneJSON struct {
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Height float64 `json:"height"`
}

// terrain handles GET /api/terrain?seed=S&level=L&width=W&height=H.
// The result is the terrain a session seeded with S shows when it starts
// at level L.
func (s *Server) terrain(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lc := s.cfg.Lander

	var seed uint64
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid seed")
			return
		}
		seed = n
	}

	level, ok := intParam(q.Get("level"), 1, 1, len(lc.Levels))
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid level")
		return
	}
	width, ok := intParam(q.Get("width"), lc.World.Width, minWorld, maxWorld)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid width")
		return
	}
	height, ok := intParam(q.Get("height"), lc.World.Height, minWorld, maxWorld)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid height")
		return
	}

	// Zone widths are fractions of the world width, so resize before converting.
	lc.World.Width, lc.World.Height = width, height
	lc.Session.StartLevel = level
	t := sim.NewSession(lander.SimConfig(lc), seed).Terrain()

	resp := TerrainResponse{
		Seed:   seed,
		Level:  level,
		Width:  t.Width,
		Height: t.Height,
		Top:    t.Top,
		Points: make([][2]float64, len(t.Points)),
		Zones:  make([]ZoneJSON, len(t.Zones)),
		Hash:   strconv.FormatUint(t.Hash(), 16),
	}
	for i, p := range t.Points {
		resp.Points[i] = [2]float64{p.X, p.Y}
	}
	for i, z := range t.Zones {
		resp.Zones[i] = ZoneJSON{Start: z.Start, End: z.End, Height: z.Height}
	}
	respondJSON(w, http.StatusOK, resp)
}

// intParam parses an optional integer query value within [lo, hi].
func intParam(v string, def, lo, hi int) (int, bool) {
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
