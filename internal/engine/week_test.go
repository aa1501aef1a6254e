package engine

import (
	"testing"

	"github.com/talgya/pitchside/internal/game"
	"github.com/talgya/pitchside/internal/narrative"
)

func TestAdvanceWeekClubRound(t *testing.T) {
	e := testEngine(7)
	state := e.NewGame(nil)

	next, req := e.AdvanceWeek(state)

	if next.League.CurrentWeek != 2 {
		t.Errorf("week = %d, want 2", next.League.CurrentWeek)
	}
	if state.League.CurrentWeek != 1 {
		t.Error("advance mutated the caller's snapshot")
	}
	for _, team := range next.Teams {
		if team.Played != 1 {
			t.Fatalf("%s played %d matches, want 1", team.Name, team.Played)
		}
	}

	user := next.UserPlayer()
	if user.Stats.Appearances != 1 {
		t.Errorf("appearances = %d, want 1", user.Stats.Appearances)
	}
	if user.LastMatch == nil {
		t.Fatal("club appearance should record a performance")
	}
	if user.LastMatch.Narrative != narrative.SummaryPending {
		t.Errorf("narrative = %q, want pending placeholder", user.LastMatch.Narrative)
	}
	if req == nil {
		t.Fatal("club appearance should request narrative text")
	}
	if req.PerfID != user.LastMatch.ID {
		t.Error("request does not reference the recorded performance")
	}
}

func TestApplyNarrative(t *testing.T) {
	e := testEngine(7)
	state := e.NewGame(nil)
	next, req := e.AdvanceWeek(state)

	done := e.ApplyNarrative(next, req.PerfID, "A composed debut.")
	if done.UserPlayer().LastMatch.Narrative != "A composed debut." {
		t.Error("narrative text not applied")
	}
	if next.UserPlayer().LastMatch.Narrative != narrative.SummaryPending {
		t.Error("apply mutated the caller's snapshot")
	}

	stale := e.ApplyNarrative(done, "some-old-perf", "late text")
	if stale.UserPlayer().LastMatch.Narrative != "A composed debut." {
		t.Error("stale request should be a no-op")
	}
}

func TestAdvanceWeekInternationalBreak(t *testing.T) {
	e := testEngine(7)
	state := e.NewGame(nil)
	state.InternationalWeeks = []int{2}

	next, req := e.AdvanceWeek(state)
	if req != nil {
		t.Error("no club narrative during an international break")
	}
	for _, team := range next.Teams {
		if team.Played != 0 {
			t.Fatalf("%s played a club match during the break", team.Name)
		}
	}
}

func TestAdvanceWeekClosesWindow(t *testing.T) {
	e := testEngine(7)
	state := e.NewGame(nil)
	state.League.CurrentWeek = 4

	next, _ := e.AdvanceWeek(state)
	if next.Window != game.WindowClosed {
		t.Errorf("window = %s, want closed at week 5", next.Window)
	}
}

func TestTickInjuryCountdown(t *testing.T) {
	state := smallState()
	user := state.UserPlayer()
	user.Injury = &game.Injury{Type: "Bruised Ribs", DurationWeeks: 4, WeeksRemaining: 3}

	logs := tickInjury(state)
	if user.Injury == nil || user.Injury.WeeksRemaining != 2 {
		t.Fatal("countdown should tick to 2 weeks")
	}
	if user.Injury.RecoveryProgress != 50 {
		t.Errorf("progress = %d, want 50", user.Injury.RecoveryProgress)
	}
	if len(logs) != 1 {
		t.Errorf("logs = %d, want 1", len(logs))
	}
}

func TestTickInjuryHeals(t *testing.T) {
	state := smallState()
	user := state.UserPlayer()
	user.Injury = &game.Injury{Type: "Bruised Ribs", DurationWeeks: 2, WeeksRemaining: 1}
	user.Attributes.Form = 40
	user.Attributes.Morale = 40

	tickInjury(state)
	if user.Injury != nil {
		t.Fatal("injury should heal when the countdown ends")
	}
	if user.Attributes.Form != 60 || user.Attributes.Morale != 50 {
		t.Errorf("recovery boost form/morale = %d/%d, want 60/50", user.Attributes.Form, user.Attributes.Morale)
	}
}

func TestCountPendingOffers(t *testing.T) {
	state := smallState()
	clubB := state.FindTeam("club-b")
	open := pendingOffer("a", clubB, 0, 300, 1, 0)
	closed := pendingOffer("b", clubB, 0, 300, 1, 0)
	closed.Status = game.OfferRejected
	state.Offers = append(state.Offers, open, closed)

	if n := countPendingOffers(state); n != 1 {
		t.Errorf("pending offers = %d, want 1", n)
	}
}
