// Package game provides the career-sim data model: players, teams, the
// league, transfer offers, interactions, and the GameState snapshot that the
// engine transforms one week at a time.
package game

// Position is a player's preferred position on the pitch.
type Position uint8

const (
	PositionGoalkeeper Position = iota
	PositionDefender
	PositionMidfielder
	PositionForward
)

var positionNames = [...]string{"Goalkeeper", "Defender", "Midfielder", "Forward"}

func (p Position) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return "Unknown"
}

// Foot is a player's preferred foot.
type Foot uint8

const (
	FootRight Foot = iota
	FootLeft
	FootAmbidextrous
)

var footNames = [...]string{"Right", "Left", "Ambidextrous"}

func (f Foot) String() string {
	if int(f) < len(footNames) {
		return footNames[f]
	}
	return "Unknown"
}

// Division is one of the five ordered league tiers. Lower value = higher tier.
type Division uint8

const (
	DivisionFirst Division = iota
	DivisionSecond
	DivisionThird
	DivisionFourth
	DivisionFifth

	DivisionCount = 5
)

var divisionNames = [...]string{
	"First Division", "Second Division", "Third Division", "Fourth Division", "Fifth Division",
}

func (d Division) String() string {
	if int(d) < len(divisionNames) {
		return divisionNames[d]
	}
	return "Unknown Division"
}

// Attributes holds a player's numeric profile. Skill attributes run 0–99;
// morale/stamina/form/reputation/press-relations/fan-support run 0–100;
// skill moves and weak foot are 1–5 star ratings.
type Attributes struct {
	Goalkeeping    int `json:"goalkeeping"`
	Tackle         int `json:"tackle"`
	Passing        int `json:"passing"`
	Shooting       int `json:"shooting"`
	Heading        int `json:"heading"`
	Morale         int `json:"morale"`
	Stamina        int `json:"stamina"`
	Speed          int `json:"speed"`
	Skill          int `json:"skill"`
	Age            int `json:"age"`
	Value          int `json:"value"`
	PressRelations int `json:"press_relations"`
	FanSupport     int `json:"fan_support"`
	Form           int `json:"form"`
	Reputation     int `json:"reputation"`
	SkillMoves     int `json:"skill_moves"`
	WeakFoot       int `json:"weak_foot"`
}

// MatchPerformance is the tracked player's detailed record for one fixture.
type MatchPerformance struct {
	ID               string  `json:"id"`
	Rating           float64 `json:"rating"`
	Goals            int     `json:"goals"`
	Assists          int     `json:"assists"`
	Shots            int     `json:"shots"`
	ShotsOnTarget    int     `json:"shots_on_target"`
	TacklesAttempted int     `json:"tackles_attempted"`
	TacklesWon       int     `json:"tackles_won"`
	KeyPasses        int     `json:"key_passes"`
	Interceptions    int     `json:"interceptions"`
	Narrative        string  `json:"narrative"`
}

// TraitID identifies an unlockable player trait.
type TraitID string

const (
	TraitClinicalFinisher TraitID = "CLINICAL_FINISHER"
	TraitPlaymakerVision  TraitID = "PLAYMAKER_VISION"
	TraitDefensiveRock    TraitID = "DEFENSIVE_ROCK"
	TraitFanFavourite     TraitID = "FAN_FAVOURITE"
	TraitSeasonedPro      TraitID = "SEASONED_PRO"
	TraitGoalPoacher      TraitID = "GOAL_POACHER"
	TraitAssistKing       TraitID = "ASSIST_KING"
	TraitWorkhorse        TraitID = "WORKHORSE"
	TraitSpeedDemon       TraitID = "SPEED_DEMON"
)

// TransferRequestStatus tracks the player-initiated transfer request flow.
type TransferRequestStatus string

const (
	RequestNone           TransferRequestStatus = "NONE"
	RequestedByPlayer     TransferRequestStatus = "REQUESTED_BY_PLAYER"
	RequestApprovedByClub TransferRequestStatus = "APPROVED_BY_CLUB"
	RequestRejectedByClub TransferRequestStatus = "REJECTED_BY_CLUB"
)

// SeasonStats is the per-season ledger, reset at rollover.
type SeasonStats struct {
	Goals            int     `json:"goals"`
	Assists          int     `json:"assists"`
	Appearances      int     `json:"appearances"`
	TotalMatchRating float64 `json:"total_match_rating"`
	MatchesRated     int     `json:"matches_rated"`
}

// TitleRecord records a league title won with a club.
type TitleRecord struct {
	Division Division `json:"division"`
	Season   int      `json:"season"`
	TeamName string   `json:"team_name"`
}

// PromotionRecord records a promotion achieved with a club.
type PromotionRecord struct {
	FromDivision Division `json:"from_division"`
	ToDivision   Division `json:"to_division"`
	Season       int      `json:"season"`
	TeamName     string   `json:"team_name"`
}

// CareerStats accumulates across seasons, tallied at rollover.
type CareerStats struct {
	Goals              int               `json:"goals"`
	Assists            int               `json:"assists"`
	Appearances        int               `json:"appearances"`
	LeagueTitles       []TitleRecord     `json:"league_titles"`
	Promotions         []PromotionRecord `json:"promotions"`
	AwardCount         int               `json:"award_count"`
	InternationalCaps  int               `json:"international_caps"`
	InternationalGoals int               `json:"international_goals"`
}

// AwardType classifies an award.
type AwardType string

const (
	AwardSeasonalLeague        AwardType = "SEASONAL_LEAGUE"
	AwardSeasonalTeam          AwardType = "SEASONAL_TEAM"
	AwardCareerMilestone       AwardType = "CAREER_MILESTONE"
	AwardSeasonalInternational AwardType = "SEASONAL_INTERNATIONAL"
)

// AwardBase identifies an award family; the computed name distinguishes
// instances within a family.
type AwardBase string

const (
	AwardLeagueTopScorer       AwardBase = "LEAGUE_TOP_SCORER"
	AwardLeagueMostAssists     AwardBase = "LEAGUE_MOST_ASSISTS"
	AwardLeaguePlayerOfSeason  AwardBase = "LEAGUE_PLAYER_OF_THE_SEASON"
	AwardLeagueYoungPlayer     AwardBase = "LEAGUE_YOUNG_PLAYER_OF_THE_SEASON"
	AwardCareerGoals           AwardBase = "CAREER_GOALS_MILESTONE"
	AwardCareerAssists         AwardBase = "CAREER_ASSISTS_MILESTONE"
	AwardCareerAppearances     AwardBase = "CAREER_APPEARANCES_MILESTONE"
	AwardCareerLeagueTitle     AwardBase = "CAREER_LEAGUE_TITLE_WON"
	AwardCareerPromotion       AwardBase = "CAREER_PROMOTION_WON"
	AwardCareerTraitsUnlocked  AwardBase = "CAREER_TRAITS_UNLOCKED_MILESTONE"
	AwardCareerIntlCaps        AwardBase = "CAREER_INTERNATIONAL_CAPS_MILESTONE"
	AwardCareerIntlGoals       AwardBase = "CAREER_INTERNATIONAL_GOALS_MILESTONE"
)

// Award is immutable once granted. The (Base, Name) pair is unique per
// player; milestone checks rely on that for idempotence.
type Award struct {
	ID          string    `json:"id"`
	Base        AwardBase `json:"base"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        AwardType `json:"type"`
	Season      int       `json:"season"`
	Division    string    `json:"division,omitempty"`
	Value       string    `json:"value,omitempty"`
	PlayerID    string    `json:"player_id"`
	Nationality string    `json:"nationality,omitempty"`
}

// InteractionType distinguishes the narrative prompt kinds.
type InteractionType string

const (
	InteractionMediaInterview InteractionType = "MEDIA_INTERVIEW_POST_MATCH"
	InteractionManagerTalk    InteractionType = "MANAGER_TALK_FORM"
)

// InteractionStatus is PENDING until answered or expired.
type InteractionStatus string

const (
	InteractionPending   InteractionStatus = "PENDING"
	InteractionCompleted InteractionStatus = "COMPLETED"
)

// EffectTarget says what an interaction option's effect modifies.
type EffectTarget uint8

const (
	EffectPlayerAttribute EffectTarget = iota
	EffectManagerRelationship
)

// InteractionStat enumerates the attributes an interaction may touch.
type InteractionStat uint8

const (
	StatMorale InteractionStat = iota
	StatPressRelations
	StatFanSupport
)

// InteractionEffect is one numeric consequence of choosing an option.
type InteractionEffect struct {
	Target     EffectTarget    `json:"target"`
	Stat       InteractionStat `json:"stat"`
	Change     int             `json:"change"`
	LogPublic  string          `json:"log_public,omitempty"`
	LogPrivate string          `json:"log_private,omitempty"`
}

// InteractionOption is one choice on an interaction's menu.
type InteractionOption struct {
	ID      string              `json:"id"`
	Text    string              `json:"text"`
	Effects []InteractionEffect `json:"effects"`
}

// Interaction is a one-shot narrative prompt. Only the first response is
// ever applied; it expires automatically past ExpiresWeek.
type Interaction struct {
	ID            string              `json:"id"`
	Type          InteractionType     `json:"type"`
	Prompt        string              `json:"prompt"`
	Options       []InteractionOption `json:"options"`
	Status        InteractionStatus   `json:"status"`
	TriggerSeason int                 `json:"trigger_season"`
	TriggerWeek   int                 `json:"trigger_week"`
	ExpiresWeek   int                 `json:"expires_week"`
	MatchPerfID   string              `json:"match_perf_id,omitempty"`
}

// InjurySeverity bands injuries into duration ranges.
type InjurySeverity string

const (
	InjuryMinor    InjurySeverity = "Minor"
	InjuryModerate InjurySeverity = "Moderate"
	InjurySerious  InjurySeverity = "Serious"
)

// Injury is the player's current knock, nil when fit.
type Injury struct {
	ID               string         `json:"id"`
	Type             string         `json:"type"`
	Description      string         `json:"description"`
	Severity         InjurySeverity `json:"severity"`
	DurationWeeks    int            `json:"duration_weeks"`
	WeeksRemaining   int            `json:"weeks_remaining"`
	RecoveryProgress int            `json:"recovery_progress"`
	DiagnosedSeason  int            `json:"diagnosed_season"`
	DiagnosedWeek    int            `json:"diagnosed_week"`
}

// TacticID is a per-player tactical instruction, active for one match at a
// time. TacticNone means no adjustment.
type TacticID string

const (
	TacticNone             TacticID = "NONE"
	TacticMakeForwardRuns  TacticID = "MAKE_FORWARD_RUNS"
	TacticShootOnSight     TacticID = "SHOOT_ON_SIGHT"
	TacticDribbleMore      TacticID = "DRIBBLE_MORE"
	TacticStayBack         TacticID = "STAY_BACK_DEFENDING"
	TacticAggressiveTackle TacticID = "AGGRESSIVE_TACKLING"
	TacticThroughBalls     TacticID = "LOOK_FOR_THROUGH_BALLS"
	TacticHoldUpPlay       TacticID = "HOLD_UP_PLAY"
)

// ClubHistoryEntry is one stint in the player's club ledger. LeftWeek zero
// means the stint is current.
type ClubHistoryEntry struct {
	TeamName    string `json:"team_name"`
	Season      int    `json:"season"`
	JoinedWeek  int    `json:"joined_week"`
	LeftWeek    int    `json:"left_week,omitempty"`
	TransferFee int    `json:"transfer_fee,omitempty"`
}

// Player is one simulated footballer. TeamID empty means free agent; when
// set, the referenced Team must include this player in its roster.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Attributes Attributes `json:"attributes"`
	Position   Position   `json:"position"`
	TeamID     string     `json:"team_id,omitempty"`
	IsUser     bool       `json:"is_user"`

	ClubHistory []ClubHistoryEntry `json:"club_history"`
	Stats       SeasonStats        `json:"stats"`
	Career      CareerStats        `json:"career"`
	Awards      []Award            `json:"awards"`
	Traits      []TraitID          `json:"traits"`

	Wage                 int                   `json:"wage"`
	ContractExpirySeason int                   `json:"contract_expiry_season"`
	TransferRequest      TransferRequestStatus `json:"transfer_request"`
	TransferListed       bool                  `json:"transfer_listed"`
	ManagerRelationship  int                   `json:"manager_relationship"`

	Nationality        string `json:"nationality"`
	InternationalCaps  int    `json:"international_caps"`
	InternationalGoals int    `json:"international_goals"`
	OnNationalTeam     bool   `json:"on_national_team"`

	LastMatch *MatchPerformance `json:"last_match,omitempty"`
	Injury    *Injury           `json:"injury,omitempty"`
	Tactic    TacticID          `json:"tactic"`

	Foot         Foot `json:"foot"`
	PreferredKit int  `json:"preferred_kit,omitempty"` // 0 = no preference
	KitNumber    int  `json:"kit_number,omitempty"`    // 0 = unassigned
}

// HasTrait reports whether the trait is unlocked.
func (p *Player) HasTrait(id TraitID) bool {
	for _, t := range p.Traits {
		if t == id {
			return true
		}
	}
	return false
}

// Team is a club.
type Team struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Division Division  `json:"division"`
	Players  []*Player `json:"players"`

	Played       int `json:"played"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	Points       int `json:"points"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`

	Budget     int `json:"budget"`
	Reputation int `json:"reputation"`
	Chemistry  int `json:"chemistry"`

	UsedKits []int `json:"used_kits"`
}

// KitInUse reports whether a kit number is taken on this team.
func (t *Team) KitInUse(n int) bool {
	for _, k := range t.UsedKits {
		if k == n {
			return true
		}
	}
	return false
}

// ReleaseKit frees a kit number.
func (t *Team) ReleaseKit(n int) {
	for i, k := range t.UsedKits {
		if k == n {
			t.UsedKits = append(t.UsedKits[:i], t.UsedKits[i+1:]...)
			return
		}
	}
}

// RemovePlayer drops a player from the roster. Kit release is separate.
func (t *Team) RemovePlayer(id string) {
	for i, p := range t.Players {
		if p.ID == id {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			return
		}
	}
}

// GoalDifference is goals for minus goals against.
func (t *Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// League tracks the calendar. Division membership lives on each Team.
type League struct {
	CurrentSeason int `json:"current_season"`
	CurrentWeek   int `json:"current_week"`
}

// OfferStatus is terminal once it leaves PENDING_PLAYER_RESPONSE.
type OfferStatus string

const (
	OfferPending         OfferStatus = "PENDING_PLAYER_RESPONSE"
	OfferAccepted        OfferStatus = "ACCEPTED_BY_PLAYER"
	OfferRejected        OfferStatus = "REJECTED_BY_PLAYER"
	OfferExpired         OfferStatus = "EXPIRED"
	OfferWithdrawn       OfferStatus = "WITHDRAWN_BY_CLUB"
)

// TransferOffer is an immutable-once-created proposal from a club.
// ClosedSeason/ClosedWeek record when it reached a terminal status; the
// weekly sweep retains terminal offers for a fixed window, then drops them.
type TransferOffer struct {
	ID            string      `json:"id"`
	FromTeamID    string      `json:"from_team_id"`
	FromTeamName  string      `json:"from_team_name"`
	FromDivision  Division    `json:"from_division"`
	PlayerID      string      `json:"player_id"`
	Fee           int         `json:"fee"`
	Wage          int         `json:"wage"`
	ContractYears int         `json:"contract_years"`
	SigningBonus  int         `json:"signing_bonus"`
	Status        OfferStatus `json:"status"`
	Season        int         `json:"season"`
	Week          int         `json:"week"`
	ExpiresSeason int         `json:"expires_season"`
	ExpiresWeek   int         `json:"expires_week"`
	ClosedSeason  int         `json:"closed_season,omitempty"`
	ClosedWeek    int         `json:"closed_week,omitempty"`
}

// WindowStatus is the transfer-window state for the current week.
type WindowStatus string

const (
	WindowOpenPreSeason WindowStatus = "OPEN_PRE_SEASON"
	WindowOpenMidSeason WindowStatus = "OPEN_MID_SEASON"
	WindowClosed        WindowStatus = "CLOSED"
)

// Open reports whether any transfer window is open.
func (w WindowStatus) Open() bool { return w != WindowClosed }

// NationalTeam is a nation's pool. Squad is a derived view recomputed each
// international week; the Player.OnNationalTeam flag is the source of truth.
type NationalTeam struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Nationality string   `json:"nationality"`
	Squad       []string `json:"squad"`
	Reputation  int      `json:"reputation"`
	Manager     string   `json:"manager"`
}

// InternationalMatch is the one scheduled fixture for an international week.
type InternationalMatch struct {
	Week         int    `json:"week"`
	HomeID       string `json:"home_id"`
	AwayID       string `json:"away_id"`
	UserInvolved bool   `json:"user_involved"`
	MatchType    string `json:"match_type"`
}

// GameState is the aggregate world snapshot: the unit of persistence and the
// unit the orchestrator transforms each week.
type GameState struct {
	UserPlayerID          string                `json:"user_player_id"`
	Teams                 []*Team               `json:"teams"`
	FreeAgents            []*Player             `json:"free_agents,omitempty"`
	League                League                `json:"league"`
	Log                   []string              `json:"log"`
	Offers                []*TransferOffer      `json:"offers"`
	Window                WindowStatus          `json:"window"`
	Interactions          []*Interaction        `json:"interactions"`
	NationalTeams         []*NationalTeam       `json:"national_teams"`
	InternationalWeeks    []int                 `json:"international_weeks"`
	UpcomingInternational *InternationalMatch   `json:"upcoming_international,omitempty"`
	PlayerCreated         bool                  `json:"player_created"`
}

// FindTeam returns the team with the given id, or nil.
func (s *GameState) FindTeam(id string) *Team {
	for _, t := range s.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FindPlayer returns the player with the given id, searching every roster
// and the free-agent pool.
func (s *GameState) FindPlayer(id string) *Player {
	for _, t := range s.Teams {
		for _, p := range t.Players {
			if p.ID == id {
				return p
			}
		}
	}
	for _, p := range s.FreeAgents {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RemoveFreeAgent drops a player from the free-agent pool.
func (s *GameState) RemoveFreeAgent(id string) {
	for i, p := range s.FreeAgents {
		if p.ID == id {
			s.FreeAgents = append(s.FreeAgents[:i], s.FreeAgents[i+1:]...)
			return
		}
	}
}

// UserPlayer returns the tracked player, or nil before world creation.
func (s *GameState) UserPlayer() *Player {
	if s.UserPlayerID == "" {
		return nil
	}
	return s.FindPlayer(s.UserPlayerID)
}

// FindNationalTeam returns the national team for a nationality, or nil.
func (s *GameState) FindNationalTeam(nationality string) *NationalTeam {
	for _, nt := range s.NationalTeams {
		if nt.Nationality == nationality {
			return nt
		}
	}
	return nil
}

// DivisionTeams returns the teams in a division, in snapshot order.
func (s *GameState) DivisionTeams(d Division) []*Team {
	var out []*Team
	for _, t := range s.Teams {
		if t.Division == d {
			out = append(out, t)
		}
	}
	return out
}

// IsInternationalWeek reports whether the given week hosts an international
// fixture window.
func (s *GameState) IsInternationalWeek(week int) bool {
	for _, w := range s.InternationalWeeks {
		if w == week {
			return true
		}
	}
	return false
}

// AppendLog adds entries to the game log, keeping only the most recent
// MaxLogEntries.
func (s *GameState) AppendLog(entries ...string) {
	s.Log = append(s.Log, entries...)
	if len(s.Log) > MaxLogEntries {
		s.Log = s.Log[len(s.Log)-MaxLogEntries:]
	}
}
