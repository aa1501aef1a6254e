// Package api provides the HTTP API for playing and observing a career.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (the career's owner).
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talgya/pitchside/internal/engine"
	"github.com/talgya/pitchside/internal/game"
	"github.com/talgya/pitchside/internal/persistence"
)

// Server serves the career state over HTTP. It is the single writer: every
// command runs under the mutex and swaps in the snapshot it returns, so GET
// handlers can read a grabbed snapshot without holding the lock.
type Server struct {
	Eng      *engine.Engine
	DB       *persistence.DB
	Addr     string
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	mu    sync.Mutex
	state *game.GameState
}

// NewServer wires a server around an initial snapshot.
func NewServer(eng *engine.Engine, db *persistence.DB, addr, adminKey string, state *game.GameState) *Server {
	return &Server{
		Eng:      eng,
		DB:       db,
		Addr:     addr,
		AdminKey: adminKey,
		state:    state,
	}
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can check in on the career).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/player", s.handlePlayer)
	mux.HandleFunc("/api/v1/table", s.handleTable)
	mux.HandleFunc("/api/v1/log", s.handleLog)
	mux.HandleFunc("/api/v1/offers", s.handleOffers)
	mux.HandleFunc("/api/v1/interactions", s.handleInteractions)
	mux.HandleFunc("/api/v1/national", s.handleNational)
	mux.Handle("/metrics", promhttp.Handler())

	// Command endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/advance", s.adminOnly(s.handleAdvance))
	mux.HandleFunc("/api/v1/train", s.adminOnly(s.handleTrain))
	mux.HandleFunc("/api/v1/tactic", s.adminOnly(s.handleTactic))
	mux.HandleFunc("/api/v1/transfer-request", s.adminOnly(s.handleTransferRequest))
	mux.HandleFunc("/api/v1/offer/respond", s.adminOnly(s.handleOfferRespond))
	mux.HandleFunc("/api/v1/interaction/respond", s.adminOnly(s.handleInteractionRespond))
	mux.HandleFunc("/api/v1/save", s.adminOnly(s.handleSave))

	slog.Info("HTTP API starting", "addr", s.Addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(s.Addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Snapshot returns the current game snapshot. The returned value is never
// mutated afterwards; commands always install a fresh clone.
func (s *Server) Snapshot() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// mutate runs a command under the writer lock, installs the snapshot it
// returns, and persists it.
func (s *Server) mutate(cmd func(*game.GameState) *game.GameState) *game.GameState {
	s.mu.Lock()
	next := cmd(s.state)
	s.state = next
	s.mu.Unlock()

	s.persist(next)
	return next
}

func (s *Server) persist(state *game.GameState) {
	if s.DB == nil {
		return
	}
	if err := s.DB.SaveState(state); err != nil {
		slog.Error("autosave failed", "error", err)
	}
}

// Advance simulates one week. When the tracked player featured in a club
// fixture, the narrative text is fetched in the background and folded into
// a later snapshot; the interim snapshot carries a pending placeholder.
func (s *Server) Advance() *game.GameState {
	s.mu.Lock()
	next, req := s.Eng.AdvanceWeek(s.state)
	s.state = next
	s.mu.Unlock()

	s.persist(next)

	if req != nil {
		go func() {
			text := s.Eng.FetchNarrative(req.Prompt)
			s.mutate(func(st *game.GameState) *game.GameState {
				return s.Eng.ApplyNarrative(st, req.PerfID, text)
			})
		}()
	}
	return next
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "command endpoints disabled (no admin token set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Snapshot()

	pending := 0
	for _, o := range st.Offers {
		if o.Status == game.OfferPending {
			pending++
		}
	}
	openInteractions := 0
	for _, i := range st.Interactions {
		if i.Status == game.InteractionPending {
			openInteractions++
		}
	}

	status := map[string]any{
		"season":             st.League.CurrentSeason,
		"week":               st.League.CurrentWeek,
		"weeks_per_season":   game.WeeksPerSeason,
		"transfer_window":    string(st.Window),
		"international_week": st.IsInternationalWeek(st.League.CurrentWeek + 1),
		"pending_offers":     pending,
		"open_interactions":  openInteractions,
	}

	if user := st.UserPlayer(); user != nil {
		playerInfo := map[string]any{
			"name":     user.Name,
			"position": user.Position.String(),
			"age":      user.Attributes.Age,
			"form":     user.Attributes.Form,
			"morale":   user.Attributes.Morale,
			"stamina":  user.Attributes.Stamina,
			"injured":  user.Injury != nil,
		}
		if club := st.FindTeam(user.TeamID); club != nil {
			playerInfo["club"] = club.Name
			playerInfo["division"] = club.Division.String()
		} else {
			playerInfo["club"] = "Free Agent"
		}
		status["player"] = playerInfo
	}
	writeJSON(w, status)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	st := s.Snapshot()
	user := st.UserPlayer()
	if user == nil {
		http.Error(w, "no tracked player", http.StatusNotFound)
		return
	}
	writeJSON(w, user)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	st := s.Snapshot()

	division := -1
	if d := r.URL.Query().Get("division"); d != "" {
		if n, err := strconv.Atoi(d); err == nil && n >= 0 && n < game.DivisionCount {
			division = n
		} else {
			http.Error(w, "invalid division", http.StatusBadRequest)
			return
		}
	}
	if division < 0 {
		division = game.DivisionCount - 1
		if user := st.UserPlayer(); user != nil {
			if club := st.FindTeam(user.TeamID); club != nil {
				division = int(club.Division)
			}
		}
	}

	teams := st.DivisionTeams(game.Division(division))
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Name < b.Name
	})

	type tableRow struct {
		Position     int    `json:"position"`
		Name         string `json:"name"`
		Played       int    `json:"played"`
		Wins         int    `json:"wins"`
		Draws        int    `json:"draws"`
		Losses       int    `json:"losses"`
		GoalsFor     int    `json:"goals_for"`
		GoalsAgainst int    `json:"goals_against"`
		GoalDiff     int    `json:"goal_diff"`
		Points       int    `json:"points"`
	}

	rows := make([]tableRow, 0, len(teams))
	for i, t := range teams {
		rows = append(rows, tableRow{
			Position:     i + 1,
			Name:         t.Name,
			Played:       t.Played,
			Wins:         t.Wins,
			Draws:        t.Draws,
			Losses:       t.Losses,
			GoalsFor:     t.GoalsFor,
			GoalsAgainst: t.GoalsAgainst,
			GoalDiff:     t.GoalDifference(),
			Points:       t.Points,
		})
	}
	writeJSON(w, map[string]any{
		"division": game.Division(division).String(),
		"table":    rows,
	})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	st := s.Snapshot()

	limit := len(st.Log)
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n < limit {
			limit = n
		}
	}
	writeJSON(w, st.Log[len(st.Log)-limit:])
}

func (s *Server) handleOffers(w http.ResponseWriter, r *http.Request) {
	st := s.Snapshot()
	if st.Offers == nil {
		writeJSON(w, []any{})
		return
	}
	writeJSON(w, st.Offers)
}

func (s *Server) handleInteractions(w http.ResponseWriter, r *http.Request) {
	st := s.Snapshot()
	pending := []*game.Interaction{}
	for _, i := range st.Interactions {
		if i.Status == game.InteractionPending {
			pending = append(pending, i)
		}
	}
	writeJSON(w, pending)
}

func (s *Server) handleNational(w http.ResponseWriter, r *http.Request) {
	st := s.Snapshot()

	type nationalSummary struct {
		Name       string `json:"name"`
		Reputation int    `json:"reputation"`
		Manager    string `json:"manager"`
		SquadSize  int    `json:"squad_size"`
		UserCalled bool   `json:"user_called"`
	}

	user := st.UserPlayer()
	var result []nationalSummary
	for _, nt := range st.NationalTeams {
		called := false
		if user != nil {
			for _, id := range nt.Squad {
				if id == user.ID {
					called = true
					break
				}
			}
		}
		result = append(result, nationalSummary{
			Name:       nt.Name,
			Reputation: nt.Reputation,
			Manager:    nt.Manager,
			SquadSize:  len(nt.Squad),
			UserCalled: called,
		})
	}

	out := map[string]any{
		"teams":         result,
		"fixture_weeks": st.InternationalWeeks,
	}
	if st.UpcomingInternational != nil {
		out["upcoming"] = st.UpcomingInternational
	}
	writeJSON(w, out)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	next := s.Advance()
	writeJSON(w, map[string]any{
		"season": next.League.CurrentSeason,
		"week":   next.League.CurrentWeek,
		"log":    recentLog(next, 10),
	})
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	target, ok := game.ParseTrainingTarget(req.Target)
	if !ok {
		http.Error(w, "unknown training target", http.StatusBadRequest)
		return
	}

	next := s.mutate(func(st *game.GameState) *game.GameState {
		return s.Eng.Train(st, target)
	})
	writeJSON(w, map[string]any{"log": recentLog(next, 5)})
}

func (s *Server) handleTactic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tactic string `json:"tactic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	id := game.TacticID(req.Tactic)
	if !game.ValidTactic(id) {
		http.Error(w, "unknown tactic", http.StatusBadRequest)
		return
	}

	next := s.mutate(func(st *game.GameState) *game.GameState {
		return s.Eng.SetTactic(st, id)
	})
	writeJSON(w, map[string]any{"log": recentLog(next, 3)})
}

func (s *Server) handleTransferRequest(w http.ResponseWriter, r *http.Request) {
	next := s.mutate(func(st *game.GameState) *game.GameState {
		return s.Eng.RequestTransfer(st)
	})
	writeJSON(w, map[string]any{"log": recentLog(next, 3)})
}

func (s *Server) handleOfferRespond(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OfferID string `json:"offer_id"`
		Accept  bool   `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.OfferID == "" {
		http.Error(w, "missing offer_id", http.StatusBadRequest)
		return
	}

	next := s.mutate(func(st *game.GameState) *game.GameState {
		return s.Eng.RespondToOffer(st, req.OfferID, req.Accept)
	})
	writeJSON(w, map[string]any{"log": recentLog(next, 5)})
}

func (s *Server) handleInteractionRespond(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InteractionID string `json:"interaction_id"`
		OptionID      string `json:"option_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.InteractionID == "" || req.OptionID == "" {
		http.Error(w, "missing interaction_id or option_id", http.StatusBadRequest)
		return
	}

	next := s.mutate(func(st *game.GameState) *game.GameState {
		return s.Eng.RespondToInteraction(st, req.InteractionID, req.OptionID)
	})
	writeJSON(w, map[string]any{"log": recentLog(next, 5)})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	st := s.Snapshot()
	if err := s.DB.SaveState(st); err != nil {
		slog.Error("save failed", "error", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{
		"season":  st.League.CurrentSeason,
		"week":    st.League.CurrentWeek,
		"message": "game saved",
	})
}

func recentLog(st *game.GameState, n int) []string {
	if len(st.Log) <= n {
		return st.Log
	}
	return st.Log[len(st.Log)-n:]
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
