package engine

import (
	"fmt"
	"sort"

	"github.com/talgya/pitchside/internal/game"
	"github.com/talgya/pitchside/internal/narrative"
)

// selectNationalSquads rebuilds every nation's squad for an international
// week: fit, contracted players of the nationality meeting the reputation
// and form floors, best first, capped at the squad size. Call-ups and drops
// for the tracked player are logged.
func selectNationalSquads(state *game.GameState) []string {
	var logs []string
	user := state.UserPlayer()

	selected := make(map[string]bool)
	for _, nt := range state.NationalTeams {
		var eligible []*game.Player
		for _, t := range state.Teams {
			for _, p := range t.Players {
				if p.Injury != nil || p.TeamID == "" {
					continue
				}
				if p.Nationality != nt.Nationality {
					continue
				}
				if p.Attributes.Reputation < game.MinReputationForCall ||
					p.Attributes.Form < game.MinFormForCall {
					continue
				}
				eligible = append(eligible, p)
			}
		}
		sort.SliceStable(eligible, func(i, j int) bool {
			if eligible[i].Attributes.Reputation != eligible[j].Attributes.Reputation {
				return eligible[i].Attributes.Reputation > eligible[j].Attributes.Reputation
			}
			return eligible[i].Attributes.Form > eligible[j].Attributes.Form
		})
		if len(eligible) > game.NationalSquadSize {
			eligible = eligible[:game.NationalSquadSize]
		}

		nt.Squad = nt.Squad[:0]
		for _, p := range eligible {
			nt.Squad = append(nt.Squad, p.ID)
			selected[p.ID] = true
		}

		if user != nil && selected[user.ID] && !user.OnNationalTeam && user.Nationality == nt.Nationality {
			logs = append(logs, fmt.Sprintf("%s has been called up to the %s!", user.Name, nt.Name))
		}
	}

	for _, t := range state.Teams {
		for _, p := range t.Players {
			wasOn := p.OnNationalTeam
			p.OnNationalTeam = selected[p.ID]
			if p.IsUser && wasOn && !p.OnNationalTeam {
				nt := state.FindNationalTeam(p.Nationality)
				name := "national squad"
				if nt != nil {
					name = nt.Name
				}
				logs = append(logs, fmt.Sprintf("%s has been dropped from the %s.", p.Name, name))
			}
		}
	}
	return logs
}

// scheduleInternational lines up a friendly for the tracked player's nation
// against a random opponent, when the player made the squad and is fit.
func (e *Engine) scheduleInternational(state *game.GameState) {
	state.UpcomingInternational = nil
	user := state.UserPlayer()
	if user == nil || !user.OnNationalTeam || user.Injury != nil {
		return
	}
	home := state.FindNationalTeam(user.Nationality)
	if home == nil {
		return
	}
	var others []*game.NationalTeam
	for _, nt := range state.NationalTeams {
		if nt.ID != home.ID {
			others = append(others, nt)
		}
	}
	if len(others) == 0 {
		return
	}
	away := others[e.rng.Intn(len(others))]
	state.UpcomingInternational = &game.InternationalMatch{
		Week:         state.League.CurrentWeek,
		HomeID:       home.ID,
		AwayID:       away.ID,
		UserInvolved: true,
		MatchType:    "Friendly",
	}
}

// runInternationalWeek handles an international break: squads, the fixture,
// and the tracked player's caps, condition, and honours. The narrative is
// generated before returning, with fixed-text fallback. Selection flags are
// cleared at the end of the break.
func (e *Engine) runInternationalWeek(state *game.GameState) []string {
	logs := []string{fmt.Sprintf("It's an international break! Week %d.", state.League.CurrentWeek)}
	logs = append(logs, selectNationalSquads(state)...)
	e.scheduleInternational(state)

	user := state.UserPlayer()
	if state.UpcomingInternational != nil && user != nil && user.OnNationalTeam && user.Injury == nil {
		home := nationalByID(state, state.UpcomingInternational.HomeID)
		away := nationalByID(state, state.UpcomingInternational.AwayID)
		if home != nil && away != nil {
			result := e.simulateInternationalMatch(home, away, user, state)
			e.metrics.AddMatches(1)
			logs = append(logs, "International Friendly: "+result.Summary)

			if perf := result.Perf; perf != nil {
				perf.Narrative = e.generateText(narrative.MatchSummaryPrompt(narrative.MatchSummaryParams{
					PlayerName:       user.Name,
					TeamName:         home.Name,
					OpponentName:     away.Name,
					PlayerScore:      result.HomeScore,
					OpponentScore:    result.AwayScore,
					International:    true,
					Rating:           perf.Rating,
					Goals:            perf.Goals,
					Assists:          perf.Assists,
					Shots:            perf.Shots,
					ShotsOnTarget:    perf.ShotsOnTarget,
					TacklesWon:       perf.TacklesWon,
					TacklesAttempted: perf.TacklesAttempted,
					KeyPasses:        perf.KeyPasses,
					Interceptions:    perf.Interceptions,
				}), narrative.SummaryFailed)

				user.LastMatch = perf
				user.InternationalCaps++
				user.InternationalGoals += perf.Goals
				user.Career.InternationalCaps++
				user.Career.InternationalGoals += perf.Goals

				user.Attributes.Form = game.Clamp(user.Attributes.Form+int(perf.Rating)-5, 0, 100)
				user.Attributes.Morale = game.Clamp(user.Attributes.Morale+int(perf.Rating/1.5)-3, 0, 100)
				user.Attributes.Stamina = max(0, user.Attributes.Stamina-e.randRange(15, 25))
				switch {
				case perf.Rating > 7:
					user.Attributes.Reputation = min(100, user.Attributes.Reputation+2)
				case perf.Rating < 5:
					user.Attributes.Reputation = max(0, user.Attributes.Reputation-1)
				default:
					user.Attributes.Reputation = min(100, user.Attributes.Reputation+1)
				}

				logs = append(logs, game.CheckTraits(user, state.League.CurrentSeason)...)
				logs = append(logs, game.CheckAllMilestones(user, state.League.CurrentSeason)...)
			}
		}
	} else if user != nil && user.OnNationalTeam && user.Injury != nil {
		logs = append(logs, fmt.Sprintf("%s misses the international match for %s due to injury.", user.Name, user.Nationality))
	}

	state.UpcomingInternational = nil
	for _, t := range state.Teams {
		for _, p := range t.Players {
			p.OnNationalTeam = false
		}
	}
	return logs
}

func nationalByID(state *game.GameState, id string) *game.NationalTeam {
	for _, nt := range state.NationalTeams {
		if nt.ID == id {
			return nt
		}
	}
	return nil
}
