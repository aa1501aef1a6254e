package engine

import (
	"fmt"
	"math"

	"github.com/talgya/pitchside/internal/game"
)

// Train applies one weekly training session for the tracked player. Invalid
// sessions (injured, too tired) leave the player unchanged apart from a log
// entry. Stamina equal to the cost is enough to train.
func (e *Engine) Train(state *game.GameState, target game.TrainingTarget) *game.GameState {
	next := state.Clone()
	player := next.UserPlayer()
	if player == nil {
		return next
	}
	option, ok := game.FindTrainingOption(target)
	if !ok {
		next.AppendLog("Unknown training option.")
		return next
	}

	restorative := target == game.TrainStamina || target == game.TrainPhysio
	if player.Injury != nil && !restorative {
		next.AppendLog(fmt.Sprintf("%s cannot perform '%s' training while injured. Only Rest or Physio allowed.", player.Name, option.Name))
		return next
	}
	if player.Attributes.Stamina < option.Cost && !restorative {
		next.AppendLog(fmt.Sprintf("Not enough stamina to train %s. Rest or choose lighter training.", option.Name))
		return next
	}

	player.Attributes.Stamina = max(0, player.Attributes.Stamina-option.Cost)

	if target == game.TrainPhysio {
		e.applyPhysio(next, player)
		return next
	}

	improvement := float64(option.Improvement)
	if player.Attributes.Morale > 75 {
		improvement *= 1.2
	}
	if player.Attributes.Form > 75 {
		improvement *= 1.2
	}
	if player.Attributes.Morale < 40 {
		improvement *= 0.8
	}
	if player.Attributes.Form < 40 {
		improvement *= 0.8
	}
	if player.Attributes.Age < 20 {
		improvement *= 1.3
	} else if player.Attributes.Age > 30 {
		improvement *= 0.7
	}
	gain := int(math.Round(improvement))

	a := &player.Attributes
	switch target {
	case game.TrainShooting:
		a.Shooting = min(game.MaxAttribute, a.Shooting+gain)
	case game.TrainPassing:
		a.Passing = min(game.MaxAttribute, a.Passing+gain)
	case game.TrainTackle:
		a.Tackle = min(game.MaxAttribute, a.Tackle+gain)
	case game.TrainSpeed:
		a.Speed = min(game.MaxAttribute, a.Speed+gain)
	case game.TrainSkill:
		a.Skill = min(game.MaxAttribute, a.Skill+gain)
	case game.TrainSkillMoves:
		a.SkillMoves = min(game.MaxStars, a.SkillMoves+gain)
	case game.TrainWeakFoot:
		a.WeakFoot = min(game.MaxStars, a.WeakFoot+gain)
	case game.TrainStamina:
		a.Stamina = min(game.MaxAttribute, a.Stamina+gain)
	case game.TrainGoalkeeping:
		a.Goalkeeping = min(game.MaxAttribute, a.Goalkeeping+gain)
	case game.TrainHeading:
		a.Heading = min(game.MaxAttribute, a.Heading+gain)
	case game.TrainReputation:
		a.Reputation = min(game.MaxHundredScale, a.Reputation+gain)
		a.PressRelations = min(game.MaxHundredScale, a.PressRelations+int(math.Round(improvement*0.5)))
	}

	traitLogs := game.CheckTraits(player, next.League.CurrentSeason)
	next.AppendLog(fmt.Sprintf("%s trained %s. +%d. Stamina: %d.", player.Name, option.Name, gain, a.Stamina))
	next.AppendLog(traitLogs...)

	if injuryLog := e.rollInjury(player, next.League.CurrentSeason, next.League.CurrentWeek, game.InjuryTrainingBaseChance); injuryLog != "" {
		next.AppendLog(injuryLog)
	}
	return next
}

// applyPhysio runs a physio session: a chance to shave a week off recovery,
// with a full-recovery path when the countdown reaches zero.
func (e *Engine) applyPhysio(state *game.GameState, player *game.Player) {
	inj := player.Injury
	if inj == nil {
		state.AppendLog(fmt.Sprintf("%s had a light physio session. No specific injury to treat.", player.Name))
		player.Attributes.Stamina = min(game.MaxHundredScale, player.Attributes.Stamina+5)
		return
	}

	if e.rng.Float64() < game.PhysioRecoveryChance {
		inj.WeeksRemaining = max(0, inj.WeeksRemaining-1)
		state.AppendLog(fmt.Sprintf("%s had a good physio session. Recovery time for %s slightly reduced!", player.Name, inj.Type))
	} else {
		state.AppendLog(fmt.Sprintf("%s completed a physio session for their %s.", player.Name, inj.Type))
	}

	if inj.WeeksRemaining > 0 {
		inj.RecoveryProgress = min(100, (inj.DurationWeeks-inj.WeeksRemaining)*100/inj.DurationWeeks)
		return
	}
	state.AppendLog(fmt.Sprintf("%s has fully recovered from %s after the physio session!", player.Name, inj.Type))
	player.Injury = nil
	player.Attributes.Form = min(game.MaxHundredScale, player.Attributes.Form+15)
	player.Attributes.Morale = min(game.MaxHundredScale, player.Attributes.Morale+10)
}
