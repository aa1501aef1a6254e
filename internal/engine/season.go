package engine

import (
	"fmt"
	"sort"

	"github.com/talgya/pitchside/internal/game"
)

// rollover closes the finished season and opens the next: honours, career
// tallies, promotion and relegation, player development, retirement, and
// contract expiry.
func (e *Engine) rollover(state *game.GameState) []string {
	endedSeason := state.League.CurrentSeason
	logs := []string{fmt.Sprintf("Season %d has ended!", endedSeason)}

	tally := func(p *game.Player) {
		p.Career.Goals += p.Stats.Goals
		p.Career.Assists += p.Stats.Assists
		p.Career.Appearances += p.Stats.Appearances
	}
	for _, t := range state.Teams {
		for _, p := range t.Players {
			tally(p)
		}
	}
	for _, p := range state.FreeAgents {
		tally(p)
	}

	logs = append(logs, seasonalAwards(state)...)
	for _, t := range state.Teams {
		for _, p := range t.Players {
			logs = append(logs, game.CheckAllMilestones(p, endedSeason)...)
		}
	}
	for _, p := range state.FreeAgents {
		logs = append(logs, game.CheckAllMilestones(p, endedSeason)...)
	}

	logs = append(logs, "Processing promotions and relegations...")
	logs = append(logs, e.promoteAndRelegate(state)...)

	state.League.CurrentSeason++
	state.League.CurrentWeek = 1
	newSeason := state.League.CurrentSeason
	logs = append(logs, fmt.Sprintf("Starting new season: %d.", newSeason))

	for _, team := range state.Teams {
		team.Played, team.Wins, team.Draws, team.Losses = 0, 0, 0, 0
		team.Points, team.GoalsFor, team.GoalsAgainst = 0, 0, 0

		var retiring []*game.Player
		for _, p := range team.Players {
			p.Stats = game.SeasonStats{}
			if !p.IsUser || p.Injury == nil {
				p.Attributes.Age++
			}
			if !p.IsUser {
				e.developNPC(p, team.Division)
				p.Attributes.Form = game.Clamp(p.Attributes.Form+e.randRange(-10, 10), 50, 85)
			}
			p.Attributes.Stamina = game.MaxHundredScale

			if !p.IsUser && float64(p.Attributes.Age) > float64(game.RetirementStartAge)+e.rng.Float64()*7 {
				retiring = append(retiring, p)
			}
		}
		for _, p := range retiring {
			logs = append(logs, fmt.Sprintf("%s (%d) from %s has retired.", p.Name, p.Attributes.Age, team.Name))
			if p.KitNumber != 0 {
				team.ReleaseKit(p.KitNumber)
			}
			team.RemovePlayer(p.ID)
			if len(team.Players) < game.MinPlayersPerTeam {
				rookie := game.NewNPCPlayer(e.rng, team, newSeason, p.Position)
				game.AssignKit(e.rng, rookie, team, 0)
				team.Players = append(team.Players, rookie)
			}
		}
		team.Chemistry = game.TeamChemistry(team)
	}

	for _, p := range state.FreeAgents {
		p.Stats = game.SeasonStats{}
		if p.Injury == nil {
			p.Attributes.Age++
		}
		p.Attributes.Stamina = game.MaxHundredScale
	}

	logs = append(logs, expireUserContract(state)...)

	if user := state.UserPlayer(); user != nil {
		if user.TeamID != "" {
			user.TransferRequest = game.RequestNone
			user.TransferListed = false
		}
		user.ManagerRelationship = game.InitialManagerRelations
		if user.Injury != nil {
			user.Attributes.Form = game.Clamp(user.Attributes.Form, 10, 50)
		} else {
			user.Attributes.Form = game.Clamp(user.Attributes.Form+e.randRange(-10, 10), 50, 85)
		}
	}
	return logs
}

// expireUserContract releases the tracked player into free agency when
// their contract ran out with the old season.
func expireUserContract(state *game.GameState) []string {
	user := state.UserPlayer()
	if user == nil || user.TeamID == "" || user.ContractExpirySeason >= state.League.CurrentSeason {
		return nil
	}
	club := state.FindTeam(user.TeamID)
	clubName := "their club"
	if club != nil {
		clubName = club.Name
		if user.KitNumber != 0 {
			club.ReleaseKit(user.KitNumber)
		}
		club.RemovePlayer(user.ID)
		club.Chemistry = game.TeamChemistry(club)
	}
	user.TeamID = ""
	user.Wage = 0
	user.KitNumber = 0
	if n := len(user.ClubHistory); n > 0 && user.ClubHistory[n-1].LeftWeek == 0 {
		user.ClubHistory[n-1].LeftWeek = game.WeeksPerSeason
	}
	user.ClubHistory = append(user.ClubHistory, game.ClubHistoryEntry{
		TeamName:   "Free Agent",
		Season:     state.League.CurrentSeason,
		JoinedWeek: 1,
	})
	state.FreeAgents = append(state.FreeAgents, user)
	return []string{fmt.Sprintf("%s's contract with %s has expired! They are now a free agent.", user.Name, clubName)}
}

// seasonalAwards grants the per-division season honours. Ties share the
// award; rating awards require a 6.0 average and half a season's
// appearances.
func seasonalAwards(state *game.GameState) []string {
	var logs []string
	season := state.League.CurrentSeason

	for d := game.Division(0); d < game.DivisionCount; d++ {
		divName := d.String()
		var eligible []*game.Player
		for _, t := range state.DivisionTeams(d) {
			for _, p := range t.Players {
				if p.Stats.Appearances >= game.MinAppearancesForSeasonalAwards {
					eligible = append(eligible, p)
				}
			}
		}
		if len(eligible) == 0 {
			continue
		}

		maxGoals := 0
		for _, p := range eligible {
			maxGoals = max(maxGoals, p.Stats.Goals)
		}
		if maxGoals > 0 {
			for _, p := range eligible {
				if p.Stats.Goals != maxGoals {
					continue
				}
				logs = append(logs, game.GrantAward(p, game.Award{
					Base:        game.AwardLeagueTopScorer,
					Name:        fmt.Sprintf("%s Top Scorer - S%d", divName, season),
					Description: fmt.Sprintf("Scored %d goals.", maxGoals),
					Type:        game.AwardSeasonalLeague,
					Season:      season,
					Division:    divName,
					Value:       fmt.Sprintf("%d", maxGoals),
				})...)
				logs = append(logs, fmt.Sprintf("%s wins %s Top Scorer with %d goals! (S%d)", p.Name, divName, maxGoals, season))
			}
		}

		maxAssists := 0
		for _, p := range eligible {
			maxAssists = max(maxAssists, p.Stats.Assists)
		}
		if maxAssists > 0 {
			for _, p := range eligible {
				if p.Stats.Assists != maxAssists {
					continue
				}
				logs = append(logs, game.GrantAward(p, game.Award{
					Base:        game.AwardLeagueMostAssists,
					Name:        fmt.Sprintf("%s Most Assists - S%d", divName, season),
					Description: fmt.Sprintf("Provided %d assists.", maxAssists),
					Type:        game.AwardSeasonalLeague,
					Season:      season,
					Division:    divName,
					Value:       fmt.Sprintf("%d", maxAssists),
				})...)
				logs = append(logs, fmt.Sprintf("%s wins %s Most Assists with %d assists! (S%d)", p.Name, divName, maxAssists, season))
			}
		}

		logs = append(logs, ratingAward(eligible, divName, season, false)...)
		logs = append(logs, ratingAward(eligible, divName, season, true)...)
	}
	return logs
}

func ratingAward(eligible []*game.Player, divName string, season int, young bool) []string {
	var logs []string
	best := 0.0
	for _, p := range eligible {
		if p.Stats.MatchesRated == 0 || (young && p.Attributes.Age > game.YoungPlayerAgeLimit) {
			continue
		}
		best = max(best, p.Stats.SeasonAverageRating())
	}
	if best < 6.0 {
		return nil
	}
	for _, p := range eligible {
		if p.Stats.MatchesRated == 0 || (young && p.Attributes.Age > game.YoungPlayerAgeLimit) {
			continue
		}
		if p.Stats.SeasonAverageRating() != best {
			continue
		}
		if young {
			logs = append(logs, game.GrantAward(p, game.Award{
				Base:        game.AwardLeagueYoungPlayer,
				Name:        fmt.Sprintf("%s Young Player of the Season - S%d", divName, season),
				Description: fmt.Sprintf("Age: %d, Avg Rating: %.2f", p.Attributes.Age, best),
				Type:        game.AwardSeasonalLeague,
				Season:      season,
				Division:    divName,
				Value:       fmt.Sprintf("%.2f", best),
			})...)
			logs = append(logs, fmt.Sprintf("%s (Age %d) wins %s Young Player of the Season with an average rating of %.2f! (S%d)",
				p.Name, p.Attributes.Age, divName, best, season))
		} else {
			logs = append(logs, game.GrantAward(p, game.Award{
				Base:        game.AwardLeaguePlayerOfSeason,
				Name:        fmt.Sprintf("%s Player of the Season - S%d", divName, season),
				Description: fmt.Sprintf("Avg Rating: %.2f", best),
				Type:        game.AwardSeasonalLeague,
				Season:      season,
				Division:    divName,
				Value:       fmt.Sprintf("%.2f", best),
			})...)
			logs = append(logs, fmt.Sprintf("%s wins %s Player of the Season with an average rating of %.2f! (S%d)",
				p.Name, divName, best, season))
		}
	}
	return logs
}

// standings sorts a division best-first: points, then goal difference,
// then goals for, then name.
func standings(teams []*game.Team) []*game.Team {
	sorted := append([]*game.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Name < b.Name
	})
	return sorted
}

// promoteAndRelegate swaps the top and bottom three of adjacent divisions
// and records the tracked player's title and promotion honours.
func (e *Engine) promoteAndRelegate(state *game.GameState) []string {
	var logs []string
	season := state.League.CurrentSeason

	type change struct {
		team *game.Team
		to   game.Division
	}
	var changes []change

	for d := game.Division(0); d < game.DivisionCount; d++ {
		table := standings(state.DivisionTeams(d))
		if len(table) == 0 {
			continue
		}
		divName := d.String()

		if d > 0 {
			for _, team := range table[:min(game.PromotionCount, len(table))] {
				changes = append(changes, change{team, d - 1})
				if user := teamUser(team, state.UserPlayerID); user != nil {
					logs = append(logs, game.GrantAward(user, game.Award{
						Base:        game.AwardCareerPromotion,
						Name:        fmt.Sprintf("Promoted with %s to %s - S%d", team.Name, (d - 1).String(), season),
						Description: fmt.Sprintf("Achieved promotion from %s with %s.", divName, team.Name),
						Type:        game.AwardCareerMilestone,
						Season:      season,
						Division:    divName,
						Value:       team.Name,
					})...)
					user.Career.Promotions = append(user.Career.Promotions, game.PromotionRecord{
						FromDivision: d,
						ToDivision:   d - 1,
						Season:       season,
						TeamName:     team.Name,
					})
					logs = append(logs, fmt.Sprintf("%s has been promoted with %s to %s! (Career Achievement)", user.Name, team.Name, (d - 1).String()))
				}
			}
		}
		if d < game.DivisionCount-1 && len(table) > game.RelegationCount {
			for _, team := range table[len(table)-game.RelegationCount:] {
				changes = append(changes, change{team, d + 1})
			}
		}

		if table[0].Points > 0 {
			if user := teamUser(table[0], state.UserPlayerID); user != nil {
				logs = append(logs, game.GrantAward(user, game.Award{
					Base:        game.AwardCareerLeagueTitle,
					Name:        fmt.Sprintf("Won %s with %s - S%d", divName, table[0].Name, season),
					Description: fmt.Sprintf("Clinched the %s title.", divName),
					Type:        game.AwardCareerMilestone,
					Season:      season,
					Division:    divName,
					Value:       table[0].Name,
				})...)
				user.Career.LeagueTitles = append(user.Career.LeagueTitles, game.TitleRecord{
					Division: d,
					Season:   season,
					TeamName: table[0].Name,
				})
				logs = append(logs, fmt.Sprintf("%s has won %s with %s! (Career Achievement)", user.Name, divName, table[0].Name))
			}
		}
	}

	for _, c := range changes {
		old := c.team.Division
		if c.to == old {
			continue
		}
		if c.to < old {
			logs = append(logs, fmt.Sprintf("%s has been PROMOTED from %s to %s!", c.team.Name, old.String(), c.to.String()))
		} else {
			logs = append(logs, fmt.Sprintf("%s has been RELEGATED from %s to %s.", c.team.Name, old.String(), c.to.String()))
		}
		c.team.Division = c.to
		c.team.Budget = int(float64(game.DivisionBaseBudget[c.to]) * (0.85 + e.rng.Float64()*0.3))
		c.team.Reputation = game.Clamp(game.DivisionBaseReputation[c.to]+e.randRange(-5, 10), 10, 100)
	}
	return logs
}

func teamUser(team *game.Team, userID string) *game.Player {
	for _, p := range team.Players {
		if p.ID == userID && p.IsUser {
			return p
		}
	}
	return nil
}

// developNPC evolves an NPC's attributes over the off-season by age band.
// Speed and stamina decay first; goalkeepers mature later in their
// specialty. Injured players skip development.
func (e *Engine) developNPC(p *game.Player, d game.Division) {
	if p.Injury != nil {
		return
	}
	age := p.Attributes.Age
	a := &p.Attributes

	type slot struct {
		val      *int
		star     bool
		physical bool
		gk       bool
	}
	slots := []slot{
		{&a.Goalkeeping, false, false, true},
		{&a.Tackle, false, false, false},
		{&a.Passing, false, false, false},
		{&a.Shooting, false, false, false},
		{&a.Heading, false, false, false},
		{&a.Stamina, false, true, false},
		{&a.Speed, false, true, false},
		{&a.Skill, false, false, false},
		{&a.SkillMoves, true, false, false},
		{&a.WeakFoot, true, false, false},
	}

	for _, s := range slots {
		change := 0
		current := *s.val
		maxVal, minVal := game.MaxAttribute, game.MinAttributeDev
		if s.star {
			maxVal, minVal = game.MaxStars, game.MinStars
		}

		switch {
		case age < 20:
			growthCeiling := 85
			if s.star {
				growthCeiling = 4
			}
			if current < growthCeiling {
				if s.star {
					change = e.rng.Intn(2)
				} else {
					change = e.rng.Intn(3) + 1
				}
			} else if current < maxVal {
				if s.star {
					change = e.rng.Intn(1)
				} else {
					change = e.rng.Intn(2)
				}
			}
		case age < 25:
			growthCeiling := 80
			if s.star {
				growthCeiling = 3
			}
			if current < growthCeiling {
				if s.star {
					change = e.rng.Intn(1)
				} else {
					change = e.rng.Intn(3)
				}
			} else if current < maxVal {
				if s.star {
					change = e.rng.Intn(1)
				} else {
					change = e.rng.Intn(2)
				}
			}
		case age < 30:
			if s.physical {
				change = e.rng.Intn(2) - 1
			} else if !s.star {
				change = e.rng.Intn(3) - 1
			} else {
				switch r := e.rng.Float64(); {
				case r < 0.1:
					change = -1
				case r < 0.3:
					change = 1
				}
			}
		case age < 34:
			if s.physical {
				change = -(e.rng.Intn(3) + 1)
			} else if !s.star {
				change = -e.rng.Intn(2)
			} else if e.rng.Float64() < 0.3 {
				change = -1
			}
		default:
			if s.physical {
				change = -(e.rng.Intn(3) + 2)
			} else if !s.star {
				change = -(e.rng.Intn(2) + 1)
			} else if e.rng.Float64() < 0.5 {
				change = -1
			}
		}

		if p.Position == game.PositionGoalkeeper && s.gk {
			if age < 27 && current < 85 {
				change = max(change, e.rng.Intn(2))
			}
			if age > 32 && change < 0 {
				change = max(change, -2)
			}
		}

		*s.val = game.Clamp(current+change, minVal, maxVal)
	}

	a.Value = game.PlayerValue(*a, d)
}
