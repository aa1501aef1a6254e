package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/talgya/pitchside/internal/game"
)

// rollInjury runs one injury check against the given base chance. Low
// stamina and age raise the odds; Seasoned Pro and Workhorse lower them.
// An already injured player never picks up a second knock. Returns a log
// line when an injury occurs.
func (e *Engine) rollInjury(player *game.Player, season, week int, baseChance float64) string {
	if player.Injury != nil {
		return ""
	}

	chance := baseChance
	if player.Attributes.Stamina < 50 {
		chance += float64(50-player.Attributes.Stamina) * game.InjuryStaminaFactor
	}
	if player.Attributes.Age > 30 {
		chance += float64(player.Attributes.Age-30) * game.InjuryAgeFactor
	}
	if player.HasTrait(game.TraitSeasonedPro) || player.HasTrait(game.TraitWorkhorse) {
		chance *= 0.85
	}

	if e.rng.Float64() >= chance {
		return ""
	}

	severity := game.InjuryMinor
	switch roll := e.rng.Float64(); {
	case roll < 0.6:
		severity = game.InjuryMinor
	case roll < 0.9:
		severity = game.InjuryModerate
	default:
		severity = game.InjurySerious
	}

	lo, hi := game.InjuryDurationRange(severity)
	duration := e.randRange(lo, hi)
	injuryType := game.InjuryTypes[e.rng.Intn(len(game.InjuryTypes))]

	context := "match"
	if baseChance == game.InjuryTrainingBaseChance {
		context = "training session"
	}
	player.Injury = &game.Injury{
		ID:              uuid.NewString(),
		Type:            injuryType,
		Description:     "Sustained during a " + context + ".",
		Severity:        severity,
		DurationWeeks:   duration,
		WeeksRemaining:  duration,
		DiagnosedSeason: season,
		DiagnosedWeek:   week,
	}

	formHit, moraleHit := 10, 5
	switch severity {
	case game.InjuryModerate:
		formHit, moraleHit = 20, 10
	case game.InjurySerious:
		formHit, moraleHit = 30, 15
	}
	player.Attributes.Form = max(0, player.Attributes.Form-formHit)
	player.Attributes.Morale = max(0, player.Attributes.Morale-moraleHit)

	return fmt.Sprintf("%s has suffered a %s %s (%d weeks)!",
		player.Name, strings.ToLower(string(severity)), injuryType, duration)
}
