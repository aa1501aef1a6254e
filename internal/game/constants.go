package game

// Calendar. A season is a double round-robin over a 20-team division.
const (
	TeamsPerDivision = 20
	WeeksPerSeason   = (TeamsPerDivision - 1) * 2 // 38

	MaxLogEntries = 50
)

// Transfer windows.
const (
	PreSeasonWindowStart = 1
	PreSeasonWindowEnd   = 4
	MidSeasonWindowStart = WeeksPerSeason/2 - 1 // 18
	MidSeasonWindowEnd   = WeeksPerSeason/2 + 2 // 21

	OfferExpiryWeeks       = 2
	InteractionExpiryWeeks = 2
	// Terminal offers stay visible this long before the sweep drops them.
	ClosedOfferRetentionWeeks = 2
)

// International play.
const (
	NationalSquadSize          = 23
	MinReputationForCall       = 65
	MinFormForCall             = 60
)

// InternationalFixtureWeeks are the season weeks that host an international
// fixture instead of a club round.
var InternationalFixtureWeeks = []int{8, 12, 26, 30}

// Injuries.
const (
	InjuryBaseChance         = 0.05
	InjuryTrainingBaseChance = 0.01
	InjuryStaminaFactor      = 0.001  // per stamina point below 50
	InjuryAgeFactor          = 0.0005 // per year over 30
	PhysioRecoveryChance     = 0.3
)

// InjuryDurationRange gives the inclusive week band for a severity.
func InjuryDurationRange(s InjurySeverity) (min, max int) {
	switch s {
	case InjuryMinor:
		return 1, 2
	case InjuryModerate:
		return 3, 6
	default:
		return 8, 24
	}
}

// InjuryTypes are the flavor names drawn for new injuries.
var InjuryTypes = []string{
	"Sprained Ankle", "Pulled Hamstring", "Bruised Ribs", "Twisted Knee",
	"Strained Groin", "Calf Strain", "Shoulder Dislocation",
}

// Season boundaries.
const (
	PromotionCount  = 3
	RelegationCount = 3

	MinAppearancesForSeasonalAwards = WeeksPerSeason / 2 // 19
	YoungPlayerAgeLimit             = 21
	RetirementStartAge              = 33
)

// Squads and the tracked player.
const (
	MinPlayersPerTeam = 16
	MaxPlayersPerTeam = 28

	InitialPlayerAge        = 16
	InitialPlayerReputation = 30
	InitialManagerRelations = 50
)

// Per-division scalars, indexed by Division (First..Fifth).
var (
	DivisionBaseWage       = [DivisionCount]int{5000, 2500, 1200, 750, 250}
	DivisionBaseReputation = [DivisionCount]int{75, 60, 45, 30, 15}
	DivisionBaseBudget     = [DivisionCount]int{50_000_000, 10_000_000, 2_000_000, 500_000, 100_000}
)

// Name pools for generated entities.
var (
	Nationalities = []string{
		"England", "Brazil", "Germany", "Argentina", "France",
		"Spain", "Italy", "Netherlands", "Portugal", "Belgium",
		"USA", "Mexico", "Japan", "South Korea", "Australia",
		"Nigeria", "Egypt", "Canada", "Sweden", "Norway",
	}

	TeamNamePrefixes = []string{
		"United", "City", "Rovers", "Wanderers", "Albion",
		"Athletic", "Town", "County", "FC", "Sporting",
	}
	TeamNameSuffixes = []string{
		"North", "South", "East", "West", "Central",
		"Metropolitan", "Valley", "Hills", "River", "Coastal",
	}

	PlayerFirstNames = []string{
		"Alex", "Ben", "Chris", "David", "Ethan", "Finn", "George", "Harry",
		"Ian", "Jack", "Kyle", "Liam", "Max", "Noah", "Oscar", "Paul",
		"Quinn", "Ryan", "Sam", "Tom",
	}
	PlayerLastNames = []string{
		"Smith", "Jones", "Williams", "Brown", "Davis", "Miller", "Wilson",
		"Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White", "Harris",
		"Martin", "Thompson", "Garcia", "Martinez", "Robinson", "Clark",
	}
)

// TrainingTarget enumerates the weekly training choices.
type TrainingTarget uint8

const (
	TrainShooting TrainingTarget = iota
	TrainPassing
	TrainTackle
	TrainSpeed
	TrainSkill
	TrainSkillMoves
	TrainWeakFoot
	TrainStamina
	TrainGoalkeeping
	TrainHeading
	TrainReputation
	TrainPhysio
)

// TrainingOption describes one training choice: the attribute gain and the
// stamina cost.
type TrainingOption struct {
	Target      TrainingTarget
	Name        string
	Improvement int
	Cost        int
}

// TrainingOptions lists every training choice. Goalkeeper training is only
// offered to goalkeepers; physio only helps when injured.
var TrainingOptions = []TrainingOption{
	{TrainShooting, "Shooting Practice", 2, 7},
	{TrainPassing, "Passing Drills", 2, 6},
	{TrainTackle, "Defensive Work", 2, 8},
	{TrainSpeed, "Sprint Training", 1, 10},
	{TrainSkill, "Skill Drills", 2, 5},
	{TrainSkillMoves, "Skill Moves Training", 1, 6},
	{TrainWeakFoot, "Weak Foot Training", 1, 6},
	{TrainStamina, "Endurance Run", 3, 0},
	{TrainGoalkeeping, "GK Training", 2, 7},
	{TrainHeading, "Heading Practice", 1, 5},
	{TrainReputation, "Media Training", 1, 3},
	{TrainPhysio, "Physio Session", 0, 0},
}

var trainingTargetNames = map[TrainingTarget]string{
	TrainShooting:    "shooting",
	TrainPassing:     "passing",
	TrainTackle:      "tackling",
	TrainSpeed:       "speed",
	TrainSkill:       "skill",
	TrainSkillMoves:  "skill_moves",
	TrainWeakFoot:    "weak_foot",
	TrainStamina:     "stamina",
	TrainGoalkeeping: "goalkeeping",
	TrainHeading:     "heading",
	TrainReputation:  "reputation",
	TrainPhysio:      "physio",
}

func (t TrainingTarget) String() string {
	if name, ok := trainingTargetNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTrainingTarget maps a wire name back to a training target.
func ParseTrainingTarget(name string) (TrainingTarget, bool) {
	for t, n := range trainingTargetNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// FindTrainingOption looks up a training option by target.
func FindTrainingOption(t TrainingTarget) (TrainingOption, bool) {
	for _, opt := range TrainingOptions {
		if opt.Target == t {
			return opt, true
		}
	}
	return TrainingOption{}, false
}

// TraitConditionKind distinguishes attribute-threshold unlocks from
// season-stat unlocks.
type TraitConditionKind uint8

const (
	TraitCondAttribute TraitConditionKind = iota
	TraitCondSeasonStat
)

// TraitStat names the stat a trait condition inspects.
type TraitStat uint8

const (
	TraitStatShooting TraitStat = iota
	TraitStatPassing
	TraitStatTackle
	TraitStatFanSupport
	TraitStatAge
	TraitStatStamina
	TraitStatSpeed
	TraitStatSeasonGoals
	TraitStatSeasonAssists
)

// TraitDefinition is one unlockable trait and its condition.
type TraitDefinition struct {
	ID        TraitID
	Name      string
	Kind      TraitConditionKind
	Stat      TraitStat
	Threshold int
}

// TraitDefinitions lists every unlockable trait.
var TraitDefinitions = []TraitDefinition{
	{TraitClinicalFinisher, "Clinical Finisher", TraitCondAttribute, TraitStatShooting, 80},
	{TraitPlaymakerVision, "Playmaker Vision", TraitCondAttribute, TraitStatPassing, 80},
	{TraitDefensiveRock, "Defensive Rock", TraitCondAttribute, TraitStatTackle, 80},
	{TraitFanFavourite, "Fan Favourite", TraitCondAttribute, TraitStatFanSupport, 85},
	{TraitSeasonedPro, "Seasoned Pro", TraitCondAttribute, TraitStatAge, 28},
	{TraitGoalPoacher, "Goal Poacher", TraitCondSeasonStat, TraitStatSeasonGoals, 15},
	{TraitAssistKing, "Assist King", TraitCondSeasonStat, TraitStatSeasonAssists, 10},
	{TraitWorkhorse, "Workhorse", TraitCondAttribute, TraitStatStamina, 85},
	{TraitSpeedDemon, "Speed Demon", TraitCondAttribute, TraitStatSpeed, 85},
}

// TraitName returns the display name for a trait id.
func TraitName(id TraitID) string {
	for _, def := range TraitDefinitions {
		if def.ID == id {
			return def.Name
		}
	}
	return string(id)
}

// MilestoneStat names the career tally a milestone family watches.
type MilestoneStat uint8

const (
	MilestoneGoals MilestoneStat = iota
	MilestoneAssists
	MilestoneAppearances
	MilestoneTraitsUnlocked
	MilestoneIntlCaps
	MilestoneIntlGoals
)

// MilestoneDefinition is one career milestone family: ascending thresholds
// with name/description templates ({X} is the threshold).
type MilestoneDefinition struct {
	Base         AwardBase
	Thresholds   []int
	NameTemplate string
	DescTemplate string
	Stat         MilestoneStat
}

// MilestoneDefinitions lists every career milestone family.
var MilestoneDefinitions = []MilestoneDefinition{
	{AwardCareerGoals, []int{10, 25, 50, 100, 150, 200, 300},
		"Goal Machine: {X} Goals", "Celebrated scoring {X} career goals.", MilestoneGoals},
	{AwardCareerAssists, []int{10, 25, 50, 100, 150, 200},
		"Assist Virtuoso: {X} Assists", "Provided {X} career assists for teammates.", MilestoneAssists},
	{AwardCareerAppearances, []int{25, 50, 100, 200, 300, 400, 500},
		"Club Legend: {X} Appearances", "Made {X} professional appearances.", MilestoneAppearances},
	{AwardCareerTraitsUnlocked, []int{1, 3, 5, 7},
		"Specialist: {X} Traits", "Mastered {X} unique player traits.", MilestoneTraitsUnlocked},
	{AwardCareerIntlCaps, []int{1, 5, 10, 25, 50, 75, 100},
		"International Star: {X} Caps", "Earned {X} caps for their national team.", MilestoneIntlCaps},
	{AwardCareerIntlGoals, []int{1, 5, 10, 20, 30, 50},
		"National Hero: {X} Int. Goals", "Scored {X} goals for their country.", MilestoneIntlGoals},
}

// TacticDefinition describes one tactical instruction.
type TacticDefinition struct {
	ID          TacticID
	Name        string
	Category    string
	Description string
}

// TacticDefinitions lists the selectable instructions. Effects live in the
// match simulation.
var TacticDefinitions = []TacticDefinition{
	{TacticNone, "Balanced Approach", "General", "No specific tactical emphasis. Play your natural game."},
	{TacticMakeForwardRuns, "Make Forward Runs", "Attacking", "Focus on getting into attacking positions more often."},
	{TacticShootOnSight, "Shoot on Sight", "Attacking", "Take more shots when opportunities arise, even from distance."},
	{TacticDribbleMore, "Dribble More", "Attacking", "Attempt to take on opponents with the ball more frequently."},
	{TacticThroughBalls, "Look for Through Balls", "Playmaking", "Prioritize trying to play incisive passes to create scoring chances."},
	{TacticHoldUpPlay, "Hold Up Play", "Playmaking", "Focus on retaining possession high up the pitch, bringing teammates into play."},
	{TacticStayBack, "Stay Back Defending", "Defensive", "Prioritize defensive duties and maintain a cautious position."},
	{TacticAggressiveTackle, "Aggressive Tackling", "Defensive", "Attempt more tackles and apply high pressure when defending."},
}

// ValidTactic reports whether id names a known instruction.
func ValidTactic(id TacticID) bool {
	for _, def := range TacticDefinitions {
		if def.ID == id {
			return true
		}
	}
	return false
}

// Kit numbers preferred per position, tried in order before falling back to
// the first free number.
var positionKitNumbers = map[Position][]int{
	PositionGoalkeeper: {1},
	PositionDefender:   {2, 3, 4, 5, 6},
	PositionMidfielder: {6, 7, 8, 10, 11},
	PositionForward:    {7, 9, 10, 11},
}
