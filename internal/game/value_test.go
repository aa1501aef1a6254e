package game

import "testing"

func flatAttributes() Attributes {
	return Attributes{
		Skill: 60, Passing: 60, Shooting: 60, Tackle: 60, Speed: 60, Heading: 60,
		Reputation: 50, SkillMoves: 2, WeakFoot: 2, Age: 25,
	}
}

func TestPlayerValueBaseline(t *testing.T) {
	// keySkills 60 -> 30000, rep 50 -> 50000, stars -> 6000. Fifth Division
	// is the 1.0 baseline and age 25 carries no multiplier.
	got := PlayerValue(flatAttributes(), DivisionFifth)
	if got != 86000 {
		t.Errorf("PlayerValue = %d, want 86000", got)
	}
}

func TestPlayerValueYouthPremium(t *testing.T) {
	a := flatAttributes()
	a.Age = 16
	got := PlayerValue(a, DivisionFifth)
	if got != 129000 {
		t.Errorf("PlayerValue at 16 = %d, want 129000 (1.5x)", got)
	}
}

func TestPlayerValueDivisionInflation(t *testing.T) {
	fifth := PlayerValue(flatAttributes(), DivisionFifth)
	first := PlayerValue(flatAttributes(), DivisionFirst)
	if first <= fifth {
		t.Errorf("First Division value %d should exceed Fifth Division value %d", first, fifth)
	}
}

func TestPlayerValueDeterministic(t *testing.T) {
	a := flatAttributes()
	if PlayerValue(a, DivisionThird) != PlayerValue(a, DivisionThird) {
		t.Error("PlayerValue should be deterministic for identical inputs")
	}
}

func TestPlayerValueFloor(t *testing.T) {
	var a Attributes
	a.Age = 36
	if got := PlayerValue(a, DivisionFifth); got != MinPlayerValue {
		t.Errorf("PlayerValue = %d, want floor %d", got, MinPlayerValue)
	}
}

func TestTeamChemistry(t *testing.T) {
	empty := &Team{}
	if got := TeamChemistry(empty); got != 50 {
		t.Errorf("empty squad chemistry = %d, want 50", got)
	}

	team := &Team{Players: []*Player{
		{Attributes: Attributes{Morale: 70}},
		{Attributes: Attributes{Morale: 80}},
	}}
	// avg 75 -> 75*0.8+20 = 80
	if got := TeamChemistry(team); got != 80 {
		t.Errorf("chemistry = %d, want 80", got)
	}

	glum := &Team{Players: []*Player{{Attributes: Attributes{Morale: 0}}}}
	if got := TeamChemistry(glum); got != 20 {
		t.Errorf("zero-morale chemistry = %d, want 20", got)
	}
}

func TestSeasonAverageRating(t *testing.T) {
	var st SeasonStats
	if st.SeasonAverageRating() != 0 {
		t.Error("no rated matches should average 0")
	}
	st = SeasonStats{TotalMatchRating: 21.0, MatchesRated: 3}
	if got := st.SeasonAverageRating(); got != 7.0 {
		t.Errorf("average = %v, want 7.0", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(150, 0, 100) != 100 || Clamp(-5, 0, 100) != 0 || Clamp(42, 0, 100) != 42 {
		t.Error("Clamp bounds wrong")
	}
}
