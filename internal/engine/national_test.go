package engine

import (
	"strings"
	"testing"

	"github.com/talgya/pitchside/internal/game"
)

func internationalState() *game.GameState {
	state := smallState()
	state.NationalTeams = []*game.NationalTeam{
		{ID: "nat-eng", Name: "England National Team", Nationality: "England", Reputation: 85},
		{ID: "nat-bra", Name: "Brazil National Team", Nationality: "Brazil", Reputation: 90},
	}
	return state
}

func TestSelectNationalSquadsThresholds(t *testing.T) {
	state := internationalState()
	user := state.UserPlayer()
	user.Attributes.Reputation = game.MinReputationForCall
	user.Attributes.Form = game.MinFormForCall

	logs := selectNationalSquads(state)
	if !user.OnNationalTeam {
		t.Fatal("player at both floors should make the squad")
	}
	if !strings.Contains(strings.Join(logs, "\n"), "called up") {
		t.Error("call-up should be logged for the tracked player")
	}

	below := internationalState()
	below.UserPlayer().Attributes.Reputation = game.MinReputationForCall - 1
	below.UserPlayer().Attributes.Form = 90
	selectNationalSquads(below)
	if below.UserPlayer().OnNationalTeam {
		t.Error("reputation below the floor should miss selection")
	}

	poorForm := internationalState()
	poorForm.UserPlayer().Attributes.Reputation = 90
	poorForm.UserPlayer().Attributes.Form = game.MinFormForCall - 1
	selectNationalSquads(poorForm)
	if poorForm.UserPlayer().OnNationalTeam {
		t.Error("form below the floor should miss selection")
	}
}

func TestSelectNationalSquadsExcludesInjured(t *testing.T) {
	state := internationalState()
	user := state.UserPlayer()
	user.Attributes.Reputation = 90
	user.Attributes.Form = 90
	user.Injury = &game.Injury{Type: "Calf Strain", WeeksRemaining: 2}

	selectNationalSquads(state)
	if user.OnNationalTeam {
		t.Error("injured player must not be selected")
	}
}

func TestSelectNationalSquadsDropLog(t *testing.T) {
	state := internationalState()
	user := state.UserPlayer()
	user.OnNationalTeam = true
	user.Attributes.Reputation = 40

	logs := selectNationalSquads(state)
	if user.OnNationalTeam {
		t.Error("player below the floors should be dropped")
	}
	if !strings.Contains(strings.Join(logs, "\n"), "dropped") {
		t.Error("drop should be logged for the tracked player")
	}
}

func TestRunInternationalWeekCapsAndCleanup(t *testing.T) {
	e := testEngine(1)
	state := internationalState()
	user := state.UserPlayer()
	user.Attributes.Reputation = 80
	user.Attributes.Form = 80

	logs := e.runInternationalWeek(state)

	if user.Career.InternationalCaps != 1 {
		t.Errorf("caps = %d, want 1", user.Career.InternationalCaps)
	}
	if user.LastMatch == nil {
		t.Fatal("international appearance should record a performance")
	}
	if user.LastMatch.Narrative == "" {
		t.Error("narrative should be resolved before the break ends")
	}
	if user.OnNationalTeam {
		t.Error("selection flags should be cleared after the break")
	}
	if state.UpcomingInternational != nil {
		t.Error("fixture should be consumed")
	}
	if !strings.Contains(strings.Join(logs, "\n"), "international break") {
		t.Error("break should be announced")
	}
}

func TestRunInternationalWeekWithoutCallUp(t *testing.T) {
	e := testEngine(1)
	state := internationalState()

	logs := e.runInternationalWeek(state)
	user := state.UserPlayer()
	if user.Career.InternationalCaps != 0 {
		t.Error("unselected player must not earn caps")
	}
	if user.LastMatch != nil {
		t.Error("unselected player has no performance to record")
	}
	if len(logs) == 0 {
		t.Error("break week should still be logged")
	}
}
