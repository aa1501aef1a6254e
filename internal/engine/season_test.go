package engine

import (
	"testing"

	"github.com/talgya/pitchside/internal/game"
)

func TestStandingsOrdering(t *testing.T) {
	teams := []*game.Team{
		{Name: "Third", Points: 10, GoalsFor: 12, GoalsAgainst: 10},
		{Name: "First", Points: 20, GoalsFor: 30, GoalsAgainst: 8},
		{Name: "Fourth", Points: 10, GoalsFor: 10, GoalsAgainst: 10},
		{Name: "Second", Points: 20, GoalsFor: 25, GoalsAgainst: 8},
	}
	table := standings(teams)
	want := []string{"First", "Second", "Third", "Fourth"}
	for i, name := range want {
		if table[i].Name != name {
			t.Errorf("position %d = %s, want %s", i+1, table[i].Name, name)
		}
	}
	if teams[0].Name != "Third" {
		t.Error("standings must not reorder the input slice")
	}
}

func TestStandingsNameTieBreak(t *testing.T) {
	teams := []*game.Team{
		{Name: "Zebra", Points: 5, GoalsFor: 5, GoalsAgainst: 5},
		{Name: "Acorn", Points: 5, GoalsFor: 5, GoalsAgainst: 5},
	}
	table := standings(teams)
	if table[0].Name != "Acorn" {
		t.Error("identical records should fall back to name order")
	}
}

func TestRolloverSeasonTransition(t *testing.T) {
	e := testEngine(9)
	state := e.NewGame(nil)
	state.League.CurrentWeek = game.WeeksPerSeason

	next, _ := e.AdvanceWeek(state)

	if next.League.CurrentSeason != 2 || next.League.CurrentWeek != 1 {
		t.Fatalf("calendar = S%d W%d, want S2 W1", next.League.CurrentSeason, next.League.CurrentWeek)
	}
	for _, team := range next.Teams {
		if team.Played != 0 || team.Points != 0 || team.GoalsFor != 0 {
			t.Fatalf("%s carries a stale record into the new season", team.Name)
		}
	}

	user := next.UserPlayer()
	if user.Stats.Appearances != 0 {
		t.Error("season stats should reset")
	}
	var npcBefore, npcAfter *game.Player
	for _, p := range state.Teams[0].Players {
		if !p.IsUser && p.Attributes.Age < game.RetirementStartAge {
			npcBefore = p
			break
		}
	}
	npcAfter = next.FindPlayer(npcBefore.ID)
	if npcAfter == nil || npcAfter.Attributes.Age != npcBefore.Attributes.Age+1 {
		t.Error("squad players should age a year over the off-season")
	}
	if user.Attributes.Stamina != game.MaxHundredScale {
		t.Error("stamina should refill over the off-season")
	}
	if user.ManagerRelationship != game.InitialManagerRelations {
		t.Error("manager relationship should reset with the new staff cycle")
	}
}

func TestRolloverTalliesAndHonours(t *testing.T) {
	e := testEngine(9)
	state := smallState()
	user := state.UserPlayer()
	user.Stats = game.SeasonStats{
		Goals: 12, Assists: 4, Appearances: 20,
		TotalMatchRating: 150, MatchesRated: 20,
	}

	e.rollover(state)

	if user.Career.Goals != 12 || user.Career.Appearances != 20 {
		t.Errorf("career tally = %d goals / %d apps, want 12/20", user.Career.Goals, user.Career.Appearances)
	}

	topScorer := false
	for _, a := range user.Awards {
		if a.Base == game.AwardLeagueTopScorer {
			topScorer = true
		}
	}
	if !topScorer {
		t.Error("leading scorer with a full half-season should take the honour")
	}

	// Sole club in the bottom division tops its table and goes up.
	if state.FindTeam("club-a").Division != game.DivisionFourth {
		t.Error("table-topping club should be promoted")
	}
	if len(user.Career.Promotions) != 1 {
		t.Errorf("promotion records = %d, want 1", len(user.Career.Promotions))
	}
}

func TestExpireUserContract(t *testing.T) {
	state := smallState()
	state.League.CurrentSeason = 4
	user := state.UserPlayer()
	user.ContractExpirySeason = 3

	logs := expireUserContract(state)
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	if user.TeamID != "" || user.Wage != 0 || user.KitNumber != 0 {
		t.Error("expired contract should fully release the player")
	}
	if state.UserPlayer() == nil {
		t.Fatal("released player must stay reachable as a free agent")
	}
	club := state.FindTeam("club-a")
	for _, k := range club.UsedKits {
		if k == 9 {
			t.Error("kit not released on departure")
		}
	}
	last := user.ClubHistory[len(user.ClubHistory)-1]
	if last.TeamName != "Free Agent" {
		t.Error("free agency spell not recorded")
	}
}

func TestExpireUserContractStillRunning(t *testing.T) {
	state := smallState()
	state.League.CurrentSeason = 3
	user := state.UserPlayer()
	user.ContractExpirySeason = 3

	if logs := expireUserContract(state); len(logs) != 0 {
		t.Error("contract through the current season should not expire")
	}
	if user.TeamID != "club-a" {
		t.Error("player released early")
	}
}

func TestSeasonalAwardsAppearanceFloor(t *testing.T) {
	state := smallState()
	user := state.UserPlayer()
	user.Stats = game.SeasonStats{Goals: 30, Appearances: game.MinAppearancesForSeasonalAwards - 1}

	seasonalAwards(state)
	if len(user.Awards) != 0 {
		t.Error("too few appearances should block seasonal honours")
	}
}

func TestRatingAwardFloor(t *testing.T) {
	p := &game.Player{ID: "p", Name: "Steady"}
	p.Stats = game.SeasonStats{
		Appearances: 20, TotalMatchRating: 110, MatchesRated: 20,
	}
	p.Attributes.Age = 24

	// Average 5.5 sits under the 6.0 qualifying bar.
	if logs := ratingAward([]*game.Player{p}, "Fifth Division", 1, false); len(logs) != 0 {
		t.Error("sub-6.0 average should not win player of the season")
	}

	p.Stats.TotalMatchRating = 140
	if len(p.Awards) != 0 {
		t.Fatal("unexpected award before the qualifying run")
	}
	ratingAward([]*game.Player{p}, "Fifth Division", 1, false)
	if len(p.Awards) != 1 {
		t.Error("7.0 average should win player of the season")
	}
}

func TestRatingAwardYoungAgeLimit(t *testing.T) {
	old := &game.Player{ID: "old", Name: "Veteran"}
	old.Stats = game.SeasonStats{Appearances: 20, TotalMatchRating: 160, MatchesRated: 20}
	old.Attributes.Age = game.YoungPlayerAgeLimit + 1

	if logs := ratingAward([]*game.Player{old}, "Fifth Division", 1, true); len(logs) != 0 {
		t.Error("players past the age limit cannot win the young player award")
	}
}
