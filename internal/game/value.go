package game

// Attribute bounds. Skill attributes never develop below the NPC floor and
// never exceed the cap; star ratings run 1 to 5.
const (
	MaxAttribute      = 99
	MinAttributeDev   = 20
	MaxHundredScale   = 100
	MinStars          = 1
	MaxStars          = 5
	MaxPlayerValue    = 100_000_000
	MinPlayerValue    = 1000
)

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampF bounds v to [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PlayerValue derives a market value from the attribute profile and the
// division the player competes in. Deterministic: same inputs, same value.
func PlayerValue(a Attributes, d Division) int {
	keySkills := float64(a.Skill+a.Passing+a.Shooting+a.Tackle+a.Speed+a.Heading) / 6

	value := keySkills*500 + float64(a.Reputation)*1000 +
		float64(a.SkillMoves)*2000 + float64(a.WeakFoot)*1000

	switch {
	case a.Age < 22:
		value *= 1.5 - float64(a.Age-16)*0.05
	case a.Age > 32:
		value *= 0.8 - float64(a.Age-32)*0.07
	case a.Age > 28:
		value *= 0.9
	}

	// Higher divisions inflate value; Fifth is the baseline.
	value *= 1 + float64(DivisionCount-1-int(d))*0.2

	rounded := int(value/100) * 100
	if rounded < MinPlayerValue {
		rounded = MinPlayerValue
	}
	if rounded > MaxPlayerValue {
		rounded = MaxPlayerValue
	}
	return rounded
}

// TeamChemistry derives squad chemistry from average morale. Empty squads
// sit at the neutral 50.
func TeamChemistry(t *Team) int {
	if len(t.Players) == 0 {
		return 50
	}
	total := 0
	for _, p := range t.Players {
		total += p.Attributes.Morale
	}
	avg := float64(total) / float64(len(t.Players))
	return Clamp(int(avg*0.8+20), 10, 100)
}

// RecomputeChemistry refreshes chemistry on every team.
func RecomputeChemistry(s *GameState) {
	for _, t := range s.Teams {
		t.Chemistry = TeamChemistry(t)
	}
}

// SeasonAverageRating is the mean rating over rated matches this season,
// zero when none were rated.
func (st SeasonStats) SeasonAverageRating() float64 {
	if st.MatchesRated == 0 {
		return 0
	}
	return st.TotalMatchRating / float64(st.MatchesRated)
}
