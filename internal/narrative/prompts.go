package narrative

import "fmt"

// Fixed fallback text used when generation is disabled or fails.
const (
	SummaryPending     = "Loading summary..."
	SummaryUnavailable = "Match summary generation is currently unavailable."
	SummaryFailed      = "Could not retrieve detailed match summary at this time."
	NoMediaQuestion    = "The media had no specific questions for you after the last game."
	AwaitingQuestions  = "Awaiting media questions..."
)

// MatchSummaryParams carries everything the match-summary prompt needs.
type MatchSummaryParams struct {
	PlayerName    string
	TeamName      string
	OpponentName  string
	PlayerScore   int
	OpponentScore int
	International bool

	Rating           float64
	Goals            int
	Assists          int
	Shots            int
	ShotsOnTarget    int
	TacklesWon       int
	TacklesAttempted int
	KeyPasses        int
	Interceptions    int
}

// MatchSummaryPrompt builds the pundit-narrative prompt for one fixture.
func MatchSummaryPrompt(p MatchSummaryParams) string {
	matchType := "league match"
	if p.International {
		matchType = "international friendly"
	}
	return fmt.Sprintf(
		"Generate a short, engaging pundit-style narrative (1-2 sentences) for a football player named %s playing for %s against %s in an %s.\n"+
			"The match result was %s %d - %d %s.\n"+
			"%s's key stats: Rating: %.1f, Goals: %d, Assists: %d, Shots: %d (%d on target), Tackles Won: %d/%d, Key Passes: %d, Interceptions: %d.\n"+
			"Focus on their individual contribution and the overall match context. Be creative and avoid just listing stats.",
		p.PlayerName, p.TeamName, p.OpponentName, matchType,
		p.TeamName, p.PlayerScore, p.OpponentScore, p.OpponentName,
		p.PlayerName, p.Rating, p.Goals, p.Assists, p.Shots, p.ShotsOnTarget,
		p.TacklesWon, p.TacklesAttempted, p.KeyPasses, p.Interceptions,
	)
}

// MediaQuestionParams carries everything the journalist-question prompt needs.
type MediaQuestionParams struct {
	PlayerName string
	TeamName   string
	Rating     float64
	Goals      int
	Assists    int
}

// MediaQuestionPrompt builds the post-match journalist question prompt.
func MediaQuestionPrompt(p MediaQuestionParams) string {
	resultText := "a mixed result"
	if p.Rating > 7 {
		resultText = "a great result"
	} else if p.Rating < 5 {
		resultText = "a disappointing outcome"
	}
	team := p.TeamName
	if team == "" {
		team = "their club"
	}
	return fmt.Sprintf(
		"You are a sports journalist. Generate one concise, open-ended question for football player %s of %s after a match which was %s for them. "+
			"Your performance included %d goals, %d assists, and a rating of %.1f. "+
			"Ask about their feelings, the team's performance, or future outlook. Avoid yes/no questions.",
		p.PlayerName, team, resultText, p.Goals, p.Assists, p.Rating,
	)
}
