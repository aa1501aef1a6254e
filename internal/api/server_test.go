package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/talgya/pitchside/internal/engine"
	"github.com/talgya/pitchside/internal/game"
)

func testServer(t *testing.T, adminKey string) *Server {
	t.Helper()
	eng := engine.New(1, nil, nil, nil)
	return NewServer(eng, nil, "127.0.0.1:0", adminKey, eng.NewGame(nil))
}

func TestAdminOnlyRejectsNonPost(t *testing.T) {
	s := testServer(t, "secret")
	handler := s.adminOnly(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/advance", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestAdminOnlyDisabledWithoutKey(t *testing.T) {
	s := testServer(t, "")
	handler := s.adminOnly(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestAdminOnlyBadToken(t *testing.T) {
	s := testServer(t, "secret")
	handler := s.adminOnly(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAdminOnlyValidToken(t *testing.T) {
	s := testServer(t, "secret")
	called := false
	handler := s.adminOnly(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil)
	req.Header.Set("Authorization", "Bearer secret")
	handler(httptest.NewRecorder(), req)
	if !called {
		t.Error("valid token should reach the handler")
	}
}

func TestHandleStatus(t *testing.T) {
	s := testServer(t, "")

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["season"].(float64) != 1 || out["week"].(float64) != 1 {
		t.Errorf("calendar = S%v W%v, want S1 W1", out["season"], out["week"])
	}
	player, ok := out["player"].(map[string]any)
	if !ok {
		t.Fatal("status should include the tracked player")
	}
	if player["division"] != game.DivisionFifth.String() {
		t.Errorf("division = %v, want the bottom tier", player["division"])
	}
}

func TestHandleTableDefaultsToUserDivision(t *testing.T) {
	s := testServer(t, "")

	rec := httptest.NewRecorder()
	s.handleTable(rec, httptest.NewRequest(http.MethodGet, "/api/v1/table", nil))

	var out struct {
		Division string `json:"division"`
		Table    []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
		} `json:"table"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Division != game.DivisionFifth.String() {
		t.Errorf("division = %q, want the player's division", out.Division)
	}
	if len(out.Table) != game.TeamsPerDivision {
		t.Errorf("rows = %d, want %d", len(out.Table), game.TeamsPerDivision)
	}
}

func TestHandleTableRejectsInvalidDivision(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.handleTable(rec, httptest.NewRequest(http.MethodGet, "/api/v1/table?division=9", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleLogLimit(t *testing.T) {
	s := testServer(t, "")
	s.mutate(func(st *game.GameState) *game.GameState {
		next := st.Clone()
		for i := 0; i < 10; i++ {
			next.AppendLog("filler entry")
		}
		return next
	})

	rec := httptest.NewRecorder()
	s.handleLog(rec, httptest.NewRequest(http.MethodGet, "/api/v1/log?limit=3", nil))

	var entries []string
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}
}

func TestHandleTrain(t *testing.T) {
	s := testServer(t, "secret")

	body := strings.NewReader(`{"target":"shooting"}`)
	rec := httptest.NewRecorder()
	s.handleTrain(rec, httptest.NewRequest(http.MethodPost, "/api/v1/train", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out struct {
		Log []string `json:"log"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	joined := strings.Join(out.Log, "\n")
	if !strings.Contains(joined, "trained") && !strings.Contains(joined, "stamina") {
		t.Errorf("training outcome missing from log: %q", joined)
	}
}

func TestHandleTrainUnknownTarget(t *testing.T) {
	s := testServer(t, "secret")
	body := strings.NewReader(`{"target":"juggling"}`)
	rec := httptest.NewRecorder()
	s.handleTrain(rec, httptest.NewRequest(http.MethodPost, "/api/v1/train", body))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTacticUnknown(t *testing.T) {
	s := testServer(t, "secret")
	body := strings.NewReader(`{"tactic":"PARK_THE_BUS"}`)
	rec := httptest.NewRecorder()
	s.handleTactic(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tactic", body))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleOfferRespondRequiresID(t *testing.T) {
	s := testServer(t, "secret")
	body := strings.NewReader(`{"accept":true}`)
	rec := httptest.NewRecorder()
	s.handleOfferRespond(rec, httptest.NewRequest(http.MethodPost, "/api/v1/offer/respond", body))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAdvanceSwapsSnapshot(t *testing.T) {
	s := testServer(t, "secret")
	before := s.Snapshot()

	next := s.Advance()
	if next.League.CurrentWeek != before.League.CurrentWeek+1 {
		t.Errorf("week = %d, want %d", next.League.CurrentWeek, before.League.CurrentWeek+1)
	}
	if s.Snapshot().League.CurrentWeek != next.League.CurrentWeek {
		t.Error("advance did not install the new snapshot")
	}
	if before.League.CurrentWeek != 1 {
		t.Error("previous snapshot was mutated")
	}
}

func TestHandlePlayer(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.handlePlayer(rec, httptest.NewRequest(http.MethodGet, "/api/v1/player", nil))

	var p game.Player
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !p.IsUser {
		t.Error("player endpoint should serve the tracked player")
	}
}
