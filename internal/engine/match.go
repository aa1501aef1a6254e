package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/pitchside/internal/game"
)

const (
	homeAdvantage      = 1.1
	intlHostAdvantage  = 1.05
	clubScoreSpread    = 3.0
	intlScoreSpread    = 2.5
	maxGoalsPerSide    = 7
)

// matchResult is one resolved fixture. Perf is non-nil only when the
// tracked player took part.
type matchResult struct {
	HomeID        string
	AwayID        string
	HomeScore     int
	AwayScore     int
	Summary       string
	Perf          *game.MatchPerformance
	International bool
}

// teamStrength rates a club from its fit players' skill and form, scaled by
// chemistry. A squad with nobody fit is nearly helpless.
func teamStrength(t *game.Team) float64 {
	chemFactor := 0.8 + float64(t.Chemistry)/500
	total, fit := 0, 0
	for _, p := range t.Players {
		if p.Injury != nil {
			continue
		}
		total += p.Attributes.Skill + p.Attributes.Form
		fit++
	}
	if fit == 0 {
		return 30
	}
	return float64(total) / float64(fit) * chemFactor
}

// nationalStrength rates a nation from its selected squad, or from team
// reputation when the squad is empty.
func nationalStrength(nt *game.NationalTeam, state *game.GameState) float64 {
	total, count := 0.0, 0
	for _, id := range nt.Squad {
		p := state.FindPlayer(id)
		if p == nil || p.Injury != nil {
			continue
		}
		total += float64(p.Attributes.Skill+p.Attributes.Form) + float64(p.Attributes.Reputation)*0.5
		count++
	}
	if count == 0 {
		return float64(nt.Reputation) * 0.8
	}
	return total / float64(count)
}

// weakFootModifier scales an action's success chance when the ball falls on
// the weak foot. The 0.1 floor keeps one-star weak foots in the game.
func weakFootModifier(weakFoot int, penalty float64) float64 {
	return math.Max(0.1, 1.0-float64(game.MaxStars-weakFoot)*penalty)
}

func (e *Engine) rollScore(attack, defend, spread float64) int {
	if defend == 0 {
		defend = 1
	}
	score := int(e.rng.Float64() * (attack / defend) * spread)
	return min(score, maxGoalsPerSide)
}

// simulateClubMatch resolves one league fixture. When the tracked player is
// on either side and fit, their individual performance is generated too.
func (e *Engine) simulateClubMatch(home, away *game.Team, user *game.Player) matchResult {
	homeStrength := teamStrength(home) * homeAdvantage
	awayStrength := teamStrength(away)

	result := matchResult{
		HomeID:    home.ID,
		AwayID:    away.ID,
		HomeScore: e.rollScore(homeStrength, awayStrength, clubScoreSpread),
		AwayScore: e.rollScore(awayStrength, homeStrength, clubScoreSpread),
	}
	result.Summary = fmt.Sprintf("%s %d - %d %s", home.Name, result.HomeScore, result.AwayScore, away.Name)

	if user != nil && user.Injury == nil && (user.TeamID == home.ID || user.TeamID == away.ID) {
		userHome := user.TeamID == home.ID
		win := (userHome && result.HomeScore > result.AwayScore) || (!userHome && result.AwayScore > result.HomeScore)
		oppFactor := awayStrength / homeStrength
		if !userHome {
			oppFactor = homeStrength / awayStrength
		}
		result.Perf = e.playerPerformance(user, win, oppFactor, false)
	}
	return result
}

// simulateInternationalMatch resolves an international friendly the same
// way, with the host's smaller advantage and tighter scoring.
func (e *Engine) simulateInternationalMatch(home, away *game.NationalTeam, user *game.Player, state *game.GameState) matchResult {
	homeStrength := nationalStrength(home, state) * intlHostAdvantage
	awayStrength := nationalStrength(away, state)

	result := matchResult{
		HomeID:        home.ID,
		AwayID:        away.ID,
		HomeScore:     e.rollScore(homeStrength, awayStrength, intlScoreSpread),
		AwayScore:     e.rollScore(awayStrength, homeStrength, intlScoreSpread),
		International: true,
	}
	result.Summary = fmt.Sprintf("%s %d - %d %s", home.Name, result.HomeScore, result.AwayScore, away.Name)

	if user != nil && user.Injury == nil && user.OnNationalTeam {
		userHome := false
		onEither := false
		for _, id := range home.Squad {
			if id == user.ID {
				userHome, onEither = true, true
			}
		}
		for _, id := range away.Squad {
			if id == user.ID {
				onEither = true
			}
		}
		if onEither {
			win := (userHome && result.HomeScore > result.AwayScore) || (!userHome && result.AwayScore > result.HomeScore)
			oppFactor := awayStrength / homeStrength
			if !userHome {
				oppFactor = homeStrength / awayStrength
			}
			result.Perf = e.playerPerformance(user, win, oppFactor, true)
		}
	}
	return result
}

// playerPerformance generates the tracked player's detailed match stats.
// Attack stats come from event loops whose counts scale with a performance
// roll; the rating folds in events, the roll, and the result.
func (e *Engine) playerPerformance(p *game.Player, win bool, oppFactor float64, intl bool) *game.MatchPerformance {
	perf := &game.MatchPerformance{ID: uuid.NewString()}
	rating := 5.0

	var primary int
	switch p.Position {
	case game.PositionGoalkeeper:
		primary = p.Attributes.Goalkeeping
	case game.PositionDefender:
		primary = p.Attributes.Tackle
	case game.PositionForward:
		primary = p.Attributes.Shooting
	default:
		primary = p.Attributes.Passing
	}
	repWeight := 0.1
	if intl {
		repWeight = 0.3
	}
	basePerf := (float64(primary+p.Attributes.Skill+p.Attributes.Speed) + float64(p.Attributes.Reputation)*repWeight) / 3.3
	formFactor := float64(p.Attributes.Form) / 100
	perfRoll := e.rng.Float64() * basePerf * formFactor * oppFactor

	shootingBonus, keyPassBonus, tackleBonus := 0, 0, 0
	forwardRunFactor, dribbleFactor := 1.0, 1.0

	switch p.Tactic {
	case game.TacticShootOnSight:
		shootingBonus = 2 + p.Attributes.Shooting/30
	case game.TacticThroughBalls:
		keyPassBonus = 1 + p.Attributes.Passing/35
	case game.TacticAggressiveTackle:
		tackleBonus = 2 + p.Attributes.Tackle/30
	case game.TacticMakeForwardRuns:
		forwardRunFactor = 1.15
		perfRoll *= 1.05
	case game.TacticDribbleMore:
		dribbleFactor = 1.2 * float64(p.Attributes.SkillMoves) / 3
		perfRoll *= 1.0 + float64(p.Attributes.SkillMoves-1)*0.015
	case game.TacticStayBack:
		perfRoll *= 0.9
		rating += 0.2
	case game.TacticHoldUpPlay:
		perfRoll *= 0.95
		if e.rng.Float64() < 0.1 {
			perf.KeyPasses++
		}
	}

	if p.HasTrait(game.TraitSeasonedPro) {
		perfRoll *= 1.02
	}
	if p.HasTrait(game.TraitWorkhorse) {
		perfRoll *= 1.02
	}
	if p.HasTrait(game.TraitSpeedDemon) {
		perfRoll *= 1.01
	}

	// One in-match action attempt. 30% of attempts land on the weak foot,
	// where low star ratings shrink the success chance.
	attempt := func(successChance, weakFootPenalty float64) bool {
		if p.Foot != game.FootAmbidextrous && e.rng.Float64() < 0.3 {
			successChance *= weakFootModifier(p.Attributes.WeakFoot, weakFootPenalty)
		}
		return e.rng.Float64()*100 < successChance
	}

	intlDiv := func(intlVal, clubVal float64) float64 {
		if intl {
			return intlVal
		}
		return clubVal
	}

	if p.Position == game.PositionForward || p.Position == game.PositionMidfielder {
		perf.Shots = int(e.rng.Float64()*(perfRoll/intlDiv(18, 20))*forwardRunFactor) + shootingBonus
		if p.HasTrait(game.TraitGoalPoacher) {
			poacherShots := int(e.rng.Float64() * (perfRoll / intlDiv(13, 15)) * forwardRunFactor)
			perf.Shots = max(perf.Shots, poacherShots)
		}
		for i := 0; i < perf.Shots; i++ {
			quality := float64(p.Attributes.Shooting) * formFactor
			if p.HasTrait(game.TraitClinicalFinisher) {
				quality *= 1.1
			}
			if p.Tactic == game.TacticShootOnSight && p.Attributes.Shooting < 70 {
				quality *= 0.9
			}
			if attempt(quality*0.7, 0.15) {
				perf.ShotsOnTarget++
			}
			if attempt(quality*0.3, 0.25) {
				perf.Goals++
				rating += 1.5
			}
		}

		perf.KeyPasses += int(e.rng.Float64()*(float64(p.Attributes.Passing)/intlDiv(22, 25))*dribbleFactor) + keyPassBonus
		if p.HasTrait(game.TraitPlaymakerVision) {
			visionPasses := int(e.rng.Float64() * (float64(p.Attributes.Passing) / intlDiv(16, 18)))
			perf.KeyPasses = max(perf.KeyPasses, visionPasses)
		}
		for i := 0; i < perf.KeyPasses; i++ {
			if attempt(float64(p.Attributes.Passing)*0.2, 0.20) {
				perf.Assists++
				rating += 1.0
			}
		}
	}

	if p.Position == game.PositionDefender || p.Position == game.PositionMidfielder {
		perf.TacklesAttempted = int(e.rng.Float64()*(float64(p.Attributes.Tackle)/intlDiv(13, 15))) + tackleBonus
		for i := 0; i < perf.TacklesAttempted; i++ {
			quality := float64(p.Attributes.Tackle) * formFactor
			if p.HasTrait(game.TraitDefensiveRock) {
				quality *= 1.1
			}
			if p.Tactic == game.TacticAggressiveTackle {
				quality *= 1.05
			}
			if e.rng.Float64()*100 < quality {
				perf.TacklesWon++
			}
		}
		perf.Interceptions = int(e.rng.Float64() * (float64(p.Attributes.Tackle) / intlDiv(18, 20)))
		if p.Tactic == game.TacticStayBack && e.rng.Float64() < 0.2 {
			perf.Interceptions++
		}
		rating += float64(perf.TacklesWon)*0.3 + float64(perf.Interceptions)*0.2
	}

	if p.Position == game.PositionGoalkeeper {
		rating += math.Max(0, float64(3-e.rng.Intn(4)))
	}

	rating += perfRoll / intlDiv(25, 30)
	if win {
		rating += intlDiv(0.7, 0.5)
	} else {
		rating -= intlDiv(0.3, 0.2)
	}
	if p.HasTrait(game.TraitFanFavourite) && win {
		rating += 0.2
	}

	rating += e.rng.Float64() - 0.5
	rating = math.Round(rating*10) / 10
	perf.Rating = game.ClampF(rating, 3.0, 10.0)
	return perf
}

// weekFixtures pairs up each division for one round: shuffle, pop pairs,
// coin-flip home advantage. An odd team count leaves one side idle.
func (e *Engine) weekFixtures(state *game.GameState) [][2]*game.Team {
	var fixtures [][2]*game.Team
	for d := game.Division(0); d < game.DivisionCount; d++ {
		teams := state.DivisionTeams(d)
		if len(teams) < 2 {
			continue
		}
		shuffled := append([]*game.Team(nil), teams...)
		e.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for len(shuffled) >= 2 {
			a := shuffled[len(shuffled)-1]
			b := shuffled[len(shuffled)-2]
			shuffled = shuffled[:len(shuffled)-2]
			if e.rng.Float64() < 0.5 {
				fixtures = append(fixtures, [2]*game.Team{a, b})
			} else {
				fixtures = append(fixtures, [2]*game.Team{b, a})
			}
		}
	}
	return fixtures
}
