package persistence

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/talgya/pitchside/internal/game"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "career.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	rng := rand.New(rand.NewSource(1))
	state := game.NewWorld(rng, nil)
	state.League.CurrentWeek = 7

	if err := db.SaveState(state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := db.LoadLatest()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.League.CurrentSeason != 1 || loaded.League.CurrentWeek != 7 {
		t.Errorf("calendar = S%d W%d, want S1 W7", loaded.League.CurrentSeason, loaded.League.CurrentWeek)
	}
	if loaded.UserPlayerID != state.UserPlayerID {
		t.Error("tracked player id lost in the round trip")
	}
	if loaded.UserPlayer() == nil {
		t.Error("tracked player not reachable after restore")
	}
	if len(loaded.Teams) != len(state.Teams) {
		t.Errorf("teams = %d, want %d", len(loaded.Teams), len(state.Teams))
	}
}

func TestLoadLatestPicksNewest(t *testing.T) {
	db := openTestDB(t)
	rng := rand.New(rand.NewSource(2))
	state := game.NewWorld(rng, nil)

	for week := 1; week <= 3; week++ {
		state.League.CurrentWeek = week
		if err := db.SaveState(state); err != nil {
			t.Fatalf("save week %d: %v", week, err)
		}
	}

	loaded, err := db.LoadLatest()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.League.CurrentWeek != 3 {
		t.Errorf("week = %d, want newest save", loaded.League.CurrentWeek)
	}
}

func TestLoadLatestEmpty(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadLatest(); !errors.Is(err, ErrNoSave) {
		t.Errorf("err = %v, want ErrNoSave", err)
	}
}

func TestSaveStateWritesMeta(t *testing.T) {
	db := openTestDB(t)
	rng := rand.New(rand.NewSource(3))
	state := game.NewWorld(rng, nil)
	state.League.CurrentSeason = 2
	state.League.CurrentWeek = 14

	if err := db.SaveState(state); err != nil {
		t.Fatalf("save: %v", err)
	}

	week, err := db.GetMeta("last_week")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if week != "14" {
		t.Errorf("last_week = %q, want 14", week)
	}
	season, err := db.GetMeta("last_season")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if season != "2" {
		t.Errorf("last_season = %q, want 2", season)
	}
}

func TestSnapshotPruning(t *testing.T) {
	db := openTestDB(t)
	rng := rand.New(rand.NewSource(4))
	state := game.NewWorld(rng, nil)

	for week := 1; week <= snapshotRetention+5; week++ {
		state.League.CurrentWeek = week
		if err := db.SaveState(state); err != nil {
			t.Fatalf("save week %d: %v", week, err)
		}
	}

	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM snapshots"); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != snapshotRetention {
		t.Errorf("snapshots = %d, want %d", count, snapshotRetention)
	}

	loaded, err := db.LoadLatest()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.League.CurrentWeek != snapshotRetention+5 {
		t.Error("pruning dropped the newest snapshot")
	}
}

func TestSaveMetaOverwrites(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveMeta("difficulty", "normal"); err != nil {
		t.Fatalf("save meta: %v", err)
	}
	if err := db.SaveMeta("difficulty", "hard"); err != nil {
		t.Fatalf("save meta: %v", err)
	}
	got, err := db.GetMeta("difficulty")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if got != "hard" {
		t.Errorf("value = %q, want hard", got)
	}
}
