package engine

import (
	"fmt"
	"hash/fnv"

	"github.com/talgya/pitchside/internal/game"
	"github.com/talgya/pitchside/internal/narrative"
)

// NarrativeRequest asks the caller to fetch narrative text for a match
// performance. The snapshot already carries a pending placeholder; the
// caller applies the finished text with ApplyNarrative.
type NarrativeRequest struct {
	PerfID string
	Prompt string
}

// AdvanceWeek simulates one week and returns the new snapshot. When the
// tracked player featured in a club fixture, the second return value asks
// for that match's narrative text.
func (e *Engine) AdvanceWeek(state *game.GameState) (*game.GameState, *NarrativeRequest) {
	next := state.Clone()
	next.League.CurrentWeek++
	e.metrics.IncWeeks()

	var logs []string

	if w := game.WindowForWeek(next.League.CurrentWeek); w != next.Window {
		next.Window = w
		if w == game.WindowClosed {
			logs = append(logs, "Transfer window is now CLOSED.")
		} else {
			logs = append(logs, "Transfer window is now OPEN.")
		}
	}

	logs = append(logs, sweepOffers(next)...)
	logs = append(logs, sweepInteractions(next)...)

	if next.UserPlayerID != "" {
		logs = append(logs, e.generateOffers(next)...)
		e.generateInteractions(next)
	}
	logs = append(logs, e.decideTransferRequest(next)...)
	logs = append(logs, tickInjury(next)...)

	var req *NarrativeRequest
	if next.IsInternationalWeek(next.League.CurrentWeek) {
		logs = append(logs, e.runInternationalWeek(next)...)
	} else {
		var clubLogs []string
		clubLogs, req = e.runClubWeek(next)
		logs = append(logs, clubLogs...)
		e.npcFormDrift(next)
	}

	game.RecomputeChemistry(next)

	if next.League.CurrentWeek > game.WeeksPerSeason {
		logs = append(logs, e.rollover(next)...)
	}

	next.AppendLog(logs...)
	e.metrics.SetPendingOffers(countPendingOffers(next))
	e.log.Info("week advanced",
		"season", next.League.CurrentSeason,
		"week", next.League.CurrentWeek,
	)
	return next, req
}

// ApplyNarrative fills in narrative text for a match performance. Stale
// requests (the performance has since been replaced) are no-ops.
func (e *Engine) ApplyNarrative(state *game.GameState, perfID, text string) *game.GameState {
	next := state.Clone()
	user := next.UserPlayer()
	if user != nil && user.LastMatch != nil && user.LastMatch.ID == perfID {
		user.LastMatch.Narrative = text
	}
	return next
}

func countPendingOffers(state *game.GameState) int {
	n := 0
	for _, o := range state.Offers {
		if o.Status == game.OfferPending {
			n++
		}
	}
	return n
}

// tickInjury counts the tracked player's injury down one week, healing it
// when the countdown ends.
func tickInjury(state *game.GameState) []string {
	user := state.UserPlayer()
	if user == nil || user.Injury == nil {
		return nil
	}
	inj := user.Injury
	inj.WeeksRemaining--
	if inj.WeeksRemaining <= 0 {
		user.Injury = nil
		user.Attributes.Form = min(game.MaxHundredScale, user.Attributes.Form+20)
		user.Attributes.Morale = min(game.MaxHundredScale, user.Attributes.Morale+10)
		return []string{fmt.Sprintf("%s has recovered from their %s!", user.Name, inj.Type)}
	}
	inj.RecoveryProgress = min(100, (inj.DurationWeeks-inj.WeeksRemaining)*100/inj.DurationWeeks)
	return []string{fmt.Sprintf("%s is still recovering from %s (%d weeks left).", user.Name, inj.Type, inj.WeeksRemaining)}
}

// runClubWeek plays a league round in every division and applies the
// tracked player's post-match updates.
func (e *Engine) runClubWeek(state *game.GameState) ([]string, *NarrativeRequest) {
	var logs []string
	user := state.UserPlayer()

	fixtures := e.weekFixtures(state)
	var userResult *matchResult
	var userHomeTeam, userAwayTeam *game.Team
	for _, f := range fixtures {
		home, away := f[0], f[1]
		result := e.simulateClubMatch(home, away, user)

		home.Played++
		away.Played++
		home.GoalsFor += result.HomeScore
		home.GoalsAgainst += result.AwayScore
		away.GoalsFor += result.AwayScore
		away.GoalsAgainst += result.HomeScore
		switch {
		case result.HomeScore > result.AwayScore:
			home.Wins++
			home.Points += 3
			away.Losses++
		case result.AwayScore > result.HomeScore:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
		logs = append(logs, "Match: "+result.Summary)

		if result.Perf != nil {
			r := result
			userResult = &r
			userHomeTeam, userAwayTeam = home, away
		}
	}
	e.metrics.AddMatches(len(fixtures))

	var req *NarrativeRequest
	switch {
	case user != nil && user.TeamID != "" && user.Injury == nil:
		if userResult != nil {
			var moreLogs []string
			moreLogs, req = e.applyUserClubMatch(state, user, userResult, userHomeTeam, userAwayTeam)
			logs = append(logs, moreLogs...)
		} else {
			// Sat out this round: freshen up.
			user.Attributes.Form = min(game.MaxHundredScale, user.Attributes.Form+2)
			user.Attributes.Stamina = min(game.MaxHundredScale, user.Attributes.Stamina+10)
			user.LastMatch = nil
		}
	case user != nil:
		if user.Injury == nil {
			user.Attributes.Form = min(game.MaxHundredScale, user.Attributes.Form+1)
			user.Attributes.Stamina = min(game.MaxHundredScale, user.Attributes.Stamina+5)
		}
		user.LastMatch = nil
	}
	return logs, req
}

// applyUserClubMatch folds one club appearance into the tracked player's
// stats, condition, reputation, and honours, and raises the narrative
// request for the performance.
func (e *Engine) applyUserClubMatch(state *game.GameState, user *game.Player, result *matchResult, home, away *game.Team) ([]string, *NarrativeRequest) {
	var logs []string
	perf := result.Perf
	perf.Narrative = narrative.SummaryPending
	user.LastMatch = perf

	userHome := user.TeamID == home.ID
	playerTeam, opponent := home, away
	playerScore, opponentScore := result.HomeScore, result.AwayScore
	if !userHome {
		playerTeam, opponent = away, home
		playerScore, opponentScore = result.AwayScore, result.HomeScore
	}

	req := &NarrativeRequest{
		PerfID: perf.ID,
		Prompt: narrative.MatchSummaryPrompt(narrative.MatchSummaryParams{
			PlayerName:       user.Name,
			TeamName:         playerTeam.Name,
			OpponentName:     opponent.Name,
			PlayerScore:      playerScore,
			OpponentScore:    opponentScore,
			Rating:           perf.Rating,
			Goals:            perf.Goals,
			Assists:          perf.Assists,
			Shots:            perf.Shots,
			ShotsOnTarget:    perf.ShotsOnTarget,
			TacklesWon:       perf.TacklesWon,
			TacklesAttempted: perf.TacklesAttempted,
			KeyPasses:        perf.KeyPasses,
			Interceptions:    perf.Interceptions,
		}),
	}

	user.Stats.Appearances++
	user.Stats.Goals += perf.Goals
	user.Stats.Assists += perf.Assists
	if perf.Rating > 0 {
		user.Stats.TotalMatchRating += perf.Rating
		user.Stats.MatchesRated++
	}

	user.Attributes.Form = game.Clamp(user.Attributes.Form+int(perf.Rating)-6, 0, 100)
	user.Attributes.Morale += int(perf.Rating/2) - 2
	if user.HasTrait(game.TraitFanFavourite) && perf.Rating > 7 {
		user.Attributes.FanSupport = min(game.MaxHundredScale, user.Attributes.FanSupport+2)
	} else if perf.Rating > 6 {
		user.Attributes.FanSupport = min(game.MaxHundredScale, user.Attributes.FanSupport+1)
	} else {
		user.Attributes.FanSupport = user.Attributes.FanSupport - 1
	}
	user.Attributes.Stamina = max(0, user.Attributes.Stamina-e.randRange(10, 20))
	if user.HasTrait(game.TraitSeasonedPro) || user.HasTrait(game.TraitWorkhorse) {
		user.Attributes.Stamina = min(game.MaxHundredScale, user.Attributes.Stamina+5)
	}

	// Reputation moves faster in higher divisions.
	divisionMultiplier := 1 + float64(game.DivisionCount-1-int(playerTeam.Division))*0.2
	if perf.Rating > 7.5 {
		user.Attributes.Reputation = min(100, user.Attributes.Reputation+int(divisionMultiplier+0.5))
	} else if perf.Rating < 5.5 {
		user.Attributes.Reputation = max(0, user.Attributes.Reputation-int(divisionMultiplier+0.5))
	}
	user.Attributes.Morale = game.Clamp(user.Attributes.Morale, 0, 100)
	user.Attributes.FanSupport = game.Clamp(user.Attributes.FanSupport, 0, 100)
	if perf.Rating > 7 {
		user.ManagerRelationship = min(100, user.ManagerRelationship+1)
	} else if perf.Rating < 5 {
		user.ManagerRelationship = max(0, user.ManagerRelationship-1)
	}

	if injuryLog := e.rollInjury(user, state.League.CurrentSeason, state.League.CurrentWeek, game.InjuryBaseChance); injuryLog != "" {
		logs = append(logs, injuryLog)
	}
	logs = append(logs, game.CheckTraits(user, state.League.CurrentSeason)...)
	logs = append(logs, game.CheckAllMilestones(user, state.League.CurrentSeason)...)
	return logs, req
}

// npcFormDrift nudges each NPC's form along a smooth per-player noise
// channel so league strength keeps moving between seasons. The tracked
// player is exempt; their form moves only through matches and recovery.
func (e *Engine) npcFormDrift(state *game.GameState) {
	t := float64(state.League.CurrentSeason*game.WeeksPerSeason+state.League.CurrentWeek) * 0.35
	for _, team := range state.Teams {
		for _, p := range team.Players {
			if p.IsUser || p.Injury != nil {
				continue
			}
			x := noiseChannel(p.ID)
			drift := e.noise.Eval2(x, t)
			p.Attributes.Form = game.Clamp(p.Attributes.Form+int(drift*3), 30, 95)
			p.Attributes.Morale = game.Clamp(p.Attributes.Morale+int(drift*1.5), 20, 95)
		}
	}
}

func noiseChannel(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()%10000) * 0.13
}
