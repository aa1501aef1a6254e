package game

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// traitStatValue reads the stat a trait condition watches. The condition
// kind picks the source: season stats reset at rollover, attributes do not.
func traitStatValue(p *Player, def TraitDefinition) int {
	if def.Kind == TraitCondSeasonStat {
		switch def.Stat {
		case TraitStatSeasonGoals:
			return p.Stats.Goals
		case TraitStatSeasonAssists:
			return p.Stats.Assists
		}
		return 0
	}
	switch def.Stat {
	case TraitStatShooting:
		return p.Attributes.Shooting
	case TraitStatPassing:
		return p.Attributes.Passing
	case TraitStatTackle:
		return p.Attributes.Tackle
	case TraitStatFanSupport:
		return p.Attributes.FanSupport
	case TraitStatAge:
		return p.Attributes.Age
	case TraitStatStamina:
		return p.Attributes.Stamina
	case TraitStatSpeed:
		return p.Attributes.Speed
	}
	return 0
}

// CheckTraits unlocks any traits whose condition the player now meets and
// re-checks the traits-unlocked milestone family. Already-unlocked traits
// are never granted twice. Returns log lines for new unlocks.
func CheckTraits(p *Player, season int) []string {
	var logs []string
	unlocked := false
	for _, def := range TraitDefinitions {
		if p.HasTrait(def.ID) {
			continue
		}
		if traitStatValue(p, def) >= def.Threshold {
			p.Traits = append(p.Traits, def.ID)
			unlocked = true
			if p.IsUser {
				logs = append(logs, "Trait Unlocked: "+def.Name+"!")
			}
		}
	}
	if unlocked {
		logs = append(logs, CheckMilestoneFamily(p, AwardCareerTraitsUnlocked, season)...)
	}
	return logs
}

// GrantAward records an award and applies its reputation and fan-support
// bumps. Granting the same (base, name) pair twice is a no-op, which keeps
// every milestone check idempotent.
func GrantAward(p *Player, a Award) []string {
	for _, have := range p.Awards {
		if have.Base == a.Base && have.Name == a.Name {
			return nil
		}
	}
	a.ID = uuid.NewString()
	a.PlayerID = p.ID
	p.Awards = append(p.Awards, a)

	repGain, fanGain := 5, 3
	switch a.Type {
	case AwardCareerMilestone:
		repGain, fanGain = 2, 1
	case AwardSeasonalInternational:
		repGain, fanGain = 7, 4
	}
	p.Attributes.Reputation = Clamp(p.Attributes.Reputation+repGain, 0, 100)
	p.Attributes.FanSupport = Clamp(p.Attributes.FanSupport+fanGain, 0, 100)
	if a.Type != AwardCareerMilestone {
		p.Career.AwardCount++
	}

	if p.IsUser {
		return []string{"AWARD: " + a.Name + " - " + a.Description}
	}
	return nil
}

func milestoneStatValue(p *Player, stat MilestoneStat) int {
	switch stat {
	case MilestoneGoals:
		return p.Career.Goals
	case MilestoneAssists:
		return p.Career.Assists
	case MilestoneAppearances:
		return p.Career.Appearances
	case MilestoneTraitsUnlocked:
		return len(p.Traits)
	case MilestoneIntlCaps:
		return p.Career.InternationalCaps
	case MilestoneIntlGoals:
		return p.Career.InternationalGoals
	}
	return 0
}

func expandTemplate(tmpl string, x int) string {
	return strings.ReplaceAll(tmpl, "{X}", strconv.Itoa(x))
}

// CheckMilestoneFamily grants every threshold in one milestone family the
// player has reached but not yet been awarded.
func CheckMilestoneFamily(p *Player, base AwardBase, season int) []string {
	var logs []string
	for _, def := range MilestoneDefinitions {
		if def.Base != base {
			continue
		}
		current := milestoneStatValue(p, def.Stat)
		for _, threshold := range def.Thresholds {
			if current < threshold {
				break
			}
			logs = append(logs, GrantAward(p, Award{
				Base:        def.Base,
				Name:        expandTemplate(def.NameTemplate, threshold),
				Description: expandTemplate(def.DescTemplate, threshold),
				Type:        AwardCareerMilestone,
				Season:      season,
			})...)
		}
	}
	return logs
}

// CheckAllMilestones runs every milestone family against the player's
// current career tallies.
func CheckAllMilestones(p *Player, season int) []string {
	var logs []string
	for _, def := range MilestoneDefinitions {
		logs = append(logs, CheckMilestoneFamily(p, def.Base, season)...)
	}
	return logs
}
