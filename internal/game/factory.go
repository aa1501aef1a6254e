package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// DefaultPlayerName is used when world creation gets no custom player.
const DefaultPlayerName = "My Player"

// CustomPlayer carries the creation-screen choices for the tracked player.
// Zero values fall back to defaults.
type CustomPlayer struct {
	Name         string
	Position     Position
	Foot         Foot
	Nationality  string
	PreferredKit int
	SkillMoves   int
	WeakFoot     int
}

// randRange returns a uniform int in [min, max].
func randRange(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}

// WindowForWeek maps a season week to the transfer-window status.
func WindowForWeek(week int) WindowStatus {
	switch {
	case week >= PreSeasonWindowStart && week <= PreSeasonWindowEnd:
		return WindowOpenPreSeason
	case week >= MidSeasonWindowStart && week <= MidSeasonWindowEnd:
		return WindowOpenMidSeason
	default:
		return WindowClosed
	}
}

// AssignKit gives the player a unique number on the team: the preference if
// free, then the position's conventional numbers, then the lowest free 1-99,
// then an overflow number at 100+. Updates both the player and the roster.
func AssignKit(rng *rand.Rand, p *Player, t *Team, preferred int) {
	if preferred >= 1 && preferred <= 99 && !t.KitInUse(preferred) {
		p.KitNumber = preferred
		t.UsedKits = append(t.UsedKits, preferred)
		return
	}
	for _, n := range positionKitNumbers[p.Position] {
		if !t.KitInUse(n) {
			p.KitNumber = n
			t.UsedKits = append(t.UsedKits, n)
			return
		}
	}
	for n := 1; n <= 99; n++ {
		if !t.KitInUse(n) {
			p.KitNumber = n
			t.UsedKits = append(t.UsedKits, n)
			return
		}
	}
	n := 100 + rng.Intn(100)
	p.KitNumber = n
	t.UsedKits = append(t.UsedKits, n)
}

// NewNPCPlayer generates a squad filler for the given team. Attribute ranges
// lean on the position; reputation and fan support lean on the division.
func NewNPCPlayer(rng *rand.Rand, team *Team, season int, pos Position) *Player {
	baseRep := DivisionBaseReputation[team.Division]

	a := Attributes{
		Goalkeeping:    randRange(rng, 10, 30),
		Tackle:         randRange(rng, 30, 60),
		Passing:        randRange(rng, 40, 70),
		Shooting:       randRange(rng, 30, 60),
		Heading:        randRange(rng, 40, 70),
		Morale:         randRange(rng, 60, 90),
		Stamina:        randRange(rng, 50, 80),
		Speed:          randRange(rng, 40, 75),
		Skill:          randRange(rng, 40, 70),
		Age:            randRange(rng, 18, 28),
		PressRelations: randRange(rng, 40, 70),
		FanSupport:     randRange(rng, max(10, baseRep-20), min(100, baseRep+20)),
		Form:           randRange(rng, 50, 80),
		Reputation:     randRange(rng, max(10, baseRep-10), min(100, baseRep+10)),
		SkillMoves:     randRange(rng, 1, 3),
		WeakFoot:       randRange(rng, 1, 3),
	}

	switch pos {
	case PositionGoalkeeper:
		a.Goalkeeping = randRange(rng, 50, 75)
		a.Shooting = randRange(rng, 10, 25)
		a.Tackle = randRange(rng, 10, 25)
	case PositionDefender:
		a.Tackle = randRange(rng, 50, 75)
		a.Shooting = randRange(rng, 20, 40)
	case PositionForward:
		a.Shooting = randRange(rng, 50, 75)
		a.Tackle = randRange(rng, 20, 40)
	}
	a.Value = PlayerValue(a, team.Division)

	foot := FootRight
	if rng.Intn(2) == 0 {
		foot = FootLeft
	}

	return &Player{
		ID:         uuid.NewString(),
		Name:       PlayerFirstNames[rng.Intn(len(PlayerFirstNames))] + " " + PlayerLastNames[rng.Intn(len(PlayerLastNames))],
		Attributes: a,
		Position:   pos,
		TeamID:     team.ID,
		ClubHistory: []ClubHistoryEntry{
			{TeamName: team.Name, Season: season, JoinedWeek: 1},
		},
		Wage:                 int(float64(DivisionBaseWage[team.Division]) * (rng.Float64()*0.4 + 0.8)),
		ContractExpirySeason: season + randRange(rng, 1, 3),
		TransferRequest:      RequestNone,
		ManagerRelationship:  InitialManagerRelations,
		Nationality:          Nationalities[rng.Intn(len(Nationalities))],
		Tactic:               TacticNone,
		Foot:                 foot,
	}
}

// NewTeam generates a club with a position-balanced starting squad.
func NewTeam(rng *rand.Rand, id, name string, d Division, season int) *Team {
	t := &Team{
		ID:         id,
		Name:       name,
		Division:   d,
		Budget:     int(float64(DivisionBaseBudget[d]) * (rng.Float64()*0.4 + 0.8)),
		Reputation: DivisionBaseReputation[d] + randRange(rng, -10, 10),
		Chemistry:  50,
	}

	n := randRange(rng, MinPlayersPerTeam, MaxPlayersPerTeam-5)
	for i := 0; i < n; i++ {
		var pos Position
		switch {
		case i < n*15/100:
			pos = PositionGoalkeeper
		case i < n*45/100:
			pos = PositionDefender
		case i < n*75/100:
			pos = PositionMidfielder
		default:
			pos = PositionForward
		}
		p := NewNPCPlayer(rng, t, season, pos)
		AssignKit(rng, p, t, 0)
		t.Players = append(t.Players, p)
	}
	t.Chemistry = TeamChemistry(t)
	return t
}

// NewWorld builds a fresh five-division league, national teams, and the
// tracked player placed on a Fifth Division club at age 16.
func NewWorld(rng *rand.Rand, custom *CustomPlayer) *GameState {
	state := &GameState{
		League:             League{CurrentSeason: 1, CurrentWeek: 1},
		Window:             WindowForWeek(1),
		InternationalWeeks: append([]int(nil), InternationalFixtureWeeks...),
		PlayerCreated:      custom != nil,
	}

	for d := Division(0); d < DivisionCount; d++ {
		for i := 0; i < TeamsPerDivision; i++ {
			id := fmt.Sprintf("%s-%d", strings.ReplaceAll(d.String(), " ", ""), i)
			name := TeamNamePrefixes[rng.Intn(len(TeamNamePrefixes))] + " " + TeamNameSuffixes[rng.Intn(len(TeamNameSuffixes))]
			state.Teams = append(state.Teams, NewTeam(rng, id, name, d, 1))
		}
	}

	user := newUserPlayer(rng, custom)
	homeTeams := state.DivisionTeams(DivisionFifth)
	home := homeTeams[0]
	user.TeamID = home.ID
	user.ClubHistory = []ClubHistoryEntry{
		{TeamName: home.Name, Season: 1, JoinedWeek: 1},
	}
	AssignKit(rng, user, home, user.PreferredKit)
	home.Players = append(home.Players, user)
	home.Chemistry = TeamChemistry(home)
	state.UserPlayerID = user.ID

	for _, nat := range Nationalities {
		state.NationalTeams = append(state.NationalTeams, &NationalTeam{
			ID:          "NATIONAL_" + strings.ToUpper(strings.ReplaceAll(nat, " ", "_")),
			Name:        nat + " National Team",
			Nationality: nat,
			Reputation:  randRange(rng, 60, 85),
			Manager:     "National Coach " + nat[:3],
		})
	}

	state.AppendLog("Game initialized. Welcome to your football career!")
	return state
}

func newUserPlayer(rng *rand.Rand, custom *CustomPlayer) *Player {
	name := DefaultPlayerName
	pos := PositionForward
	foot := FootRight
	nationality := Nationalities[rng.Intn(len(Nationalities))]
	preferredKit := 0
	skillMoves, weakFoot := 2, 2

	if custom != nil {
		if custom.Name != "" {
			name = custom.Name
		}
		pos = custom.Position
		foot = custom.Foot
		if custom.Nationality != "" {
			nationality = custom.Nationality
		}
		preferredKit = custom.PreferredKit
		if custom.SkillMoves >= MinStars && custom.SkillMoves <= MaxStars {
			skillMoves = custom.SkillMoves
		}
		if custom.WeakFoot >= MinStars && custom.WeakFoot <= MaxStars {
			weakFoot = custom.WeakFoot
		}
	}

	// Star-rating choices nudge the starting skill either way.
	baseSkill := randRange(rng, 40, 60) + (skillMoves-2)*2 + (weakFoot - 2)

	a := Attributes{
		Goalkeeping:    randRange(rng, 30, 50),
		Tackle:         randRange(rng, 40, 60),
		Passing:        randRange(rng, 45, 65),
		Shooting:       randRange(rng, 45, 65),
		Heading:        randRange(rng, 40, 60),
		Morale:         70,
		Stamina:        80,
		Speed:          randRange(rng, 45, 65),
		Skill:          Clamp(baseSkill, MinAttributeDev+5, MaxAttribute-10),
		Age:            InitialPlayerAge,
		PressRelations: 50,
		FanSupport:     30,
		Form:           75,
		Reputation:     InitialPlayerReputation,
		SkillMoves:     skillMoves,
		WeakFoot:       weakFoot,
	}
	switch pos {
	case PositionGoalkeeper:
		a.Goalkeeping = randRange(rng, 50, 65)
	case PositionDefender:
		a.Tackle = randRange(rng, 50, 65)
	case PositionMidfielder:
		a.Passing = randRange(rng, 50, 65)
	case PositionForward:
		a.Shooting = randRange(rng, 50, 65)
	}
	a.Value = PlayerValue(a, DivisionFifth)

	return &Player{
		ID:                   uuid.NewString(),
		Name:                 name,
		Attributes:           a,
		Position:             pos,
		IsUser:               true,
		Wage:                 DivisionBaseWage[DivisionFifth],
		ContractExpirySeason: 1 + randRange(rng, 1, 2),
		TransferRequest:      RequestNone,
		ManagerRelationship:  InitialManagerRelations,
		Nationality:          nationality,
		Tactic:               TacticNone,
		Foot:                 foot,
		PreferredKit:         preferredKit,
	}
}
