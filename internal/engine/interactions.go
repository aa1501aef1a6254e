package engine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/talgya/pitchside/internal/game"
	"github.com/talgya/pitchside/internal/narrative"
)

// sweepInteractions expires pending interactions past their deadline. An
// expired interaction completes without applying any effects.
func sweepInteractions(state *game.GameState) []string {
	var logs []string
	for _, it := range state.Interactions {
		if it.Status != game.InteractionPending {
			continue
		}
		if state.League.CurrentSeason == it.TriggerSeason && state.League.CurrentWeek >= it.ExpiresWeek {
			it.Status = game.InteractionCompleted
			kind := strings.ToLower(strings.ReplaceAll(string(it.Type), "_", " "))
			logs = append(logs, "Interaction opportunity '"+kind+"' has expired.")
		}
	}
	return logs
}

// generateInteractions rolls for a post-match media interview and a manager
// talk. Nothing is generated while the player is injured.
func (e *Engine) generateInteractions(state *game.GameState) {
	player := state.UserPlayer()
	if player == nil || player.Injury != nil {
		return
	}
	season, week := state.League.CurrentSeason, state.League.CurrentWeek

	if player.LastMatch != nil && e.rng.Float64() < 0.4 {
		team := state.FindTeam(player.TeamID)
		teamName := ""
		if team != nil {
			teamName = team.Name
		}
		question := e.generateText(narrative.MediaQuestionPrompt(narrative.MediaQuestionParams{
			PlayerName: player.Name,
			TeamName:   teamName,
			Rating:     player.LastMatch.Rating,
			Goals:      player.LastMatch.Goals,
			Assists:    player.LastMatch.Assists,
		}), narrative.NoMediaQuestion)

		perfID := ""
		if player.LastMatch != nil {
			perfID = player.LastMatch.ID
		}
		state.Interactions = append(state.Interactions, &game.Interaction{
			ID:            uuid.NewString(),
			Type:          game.InteractionMediaInterview,
			Prompt:        question,
			Options:       mediaInterviewOptions(),
			Status:        game.InteractionPending,
			TriggerSeason: season,
			TriggerWeek:   week,
			ExpiresWeek:   week + game.InteractionExpiryWeeks,
			MatchPerfID:   perfID,
		})
	}

	if e.rng.Float64() < 0.2 {
		prompt := "The manager calls you into their office. 'How are you feeling about your current form and role in the team?'"
		if player.Attributes.Form < 40 {
			prompt = "The manager looks concerned. 'Your recent performances haven't been up to scratch. What's going on?'"
		} else if player.Attributes.Form > 80 {
			prompt = "The manager beams. 'Excellent work recently! You're a key part of our success. Anything on your mind?'"
		}
		state.Interactions = append(state.Interactions, &game.Interaction{
			ID:            uuid.NewString(),
			Type:          game.InteractionManagerTalk,
			Prompt:        prompt,
			Options:       managerTalkOptions(player.ManagerRelationship),
			Status:        game.InteractionPending,
			TriggerSeason: season,
			TriggerWeek:   week,
			ExpiresWeek:   week + game.InteractionExpiryWeeks,
		})
	}
}

func mediaInterviewOptions() []game.InteractionOption {
	return []game.InteractionOption{
		{ID: "media_positive", Text: "Praise the team and look forward positively.", Effects: []game.InteractionEffect{
			{Target: game.EffectPlayerAttribute, Stat: game.StatFanSupport, Change: 5, LogPrivate: "The fans appreciate your positive attitude."},
			{Target: game.EffectPlayerAttribute, Stat: game.StatPressRelations, Change: 3, LogPrivate: "The media noted your positive comments."},
			{Target: game.EffectPlayerAttribute, Stat: game.StatMorale, Change: 2},
		}},
		{ID: "media_humble", Text: "Acknowledge your role but focus on team effort.", Effects: []game.InteractionEffect{
			{Target: game.EffectPlayerAttribute, Stat: game.StatFanSupport, Change: 3},
			{Target: game.EffectPlayerAttribute, Stat: game.StatPressRelations, Change: 5, LogPrivate: "Your humility was well-received by the press."},
			{Target: game.EffectManagerRelationship, Change: 2, LogPrivate: "Your manager appreciates your team-first mentality."},
		}},
		{ID: "media_critical_self", Text: "Critique your own performance, vow to improve.", Effects: []game.InteractionEffect{
			{Target: game.EffectPlayerAttribute, Stat: game.StatPressRelations, Change: 2},
			{Target: game.EffectPlayerAttribute, Stat: game.StatMorale, Change: -2, LogPrivate: "You feel the pressure to improve."},
			{Target: game.EffectManagerRelationship, Change: 3, LogPrivate: "Your manager respects your self-awareness."},
		}},
		{ID: "media_no_comment", Text: "Offer a polite 'no comment' or a generic statement.", Effects: []game.InteractionEffect{
			{Target: game.EffectPlayerAttribute, Stat: game.StatPressRelations, Change: -5, LogPrivate: "The media were disappointed by your lack of engagement."},
		}},
	}
}

func managerTalkOptions(managerRelationship int) []game.InteractionOption {
	concernChange, concernLog := -3, "Your manager seemed a bit defensive about your concern."
	if managerRelationship > 60 {
		concernChange, concernLog = 2, "Your manager listened to your concern."
	}
	return []game.InteractionOption{
		{ID: "manager_positive", Text: "Express confidence and commitment.", Effects: []game.InteractionEffect{
			{Target: game.EffectManagerRelationship, Change: 5, LogPrivate: "Your manager seems pleased with your attitude."},
			{Target: game.EffectPlayerAttribute, Stat: game.StatMorale, Change: 3},
		}},
		{ID: "manager_ask_feedback", Text: "Ask for specific feedback on how to improve.", Effects: []game.InteractionEffect{
			{Target: game.EffectManagerRelationship, Change: 7, LogPrivate: "Your manager appreciates your desire to improve."},
		}},
		{ID: "manager_raise_concern", Text: "Politely raise a minor concern (e.g., playing time if low, preferred role).", Effects: []game.InteractionEffect{
			{Target: game.EffectManagerRelationship, Change: concernChange, LogPrivate: concernLog},
			{Target: game.EffectPlayerAttribute, Stat: game.StatMorale, Change: -1},
		}},
	}
}

// RespondToInteraction applies the chosen option's effects and completes
// the interaction. Unknown ids, completed interactions, and unknown options
// are all no-ops.
func (e *Engine) RespondToInteraction(state *game.GameState, interactionID, optionID string) *game.GameState {
	next := state.Clone()

	var interaction *game.Interaction
	for _, it := range next.Interactions {
		if it.ID == interactionID {
			interaction = it
			break
		}
	}
	if interaction == nil || interaction.Status != game.InteractionPending {
		return next
	}

	var option *game.InteractionOption
	for i := range interaction.Options {
		if interaction.Options[i].ID == optionID {
			option = &interaction.Options[i]
			break
		}
	}
	if option == nil {
		return next
	}
	player := next.UserPlayer()
	if player == nil {
		return next
	}

	for _, effect := range option.Effects {
		switch effect.Target {
		case game.EffectPlayerAttribute:
			switch effect.Stat {
			case game.StatMorale:
				player.Attributes.Morale = game.Clamp(player.Attributes.Morale+effect.Change, 0, 100)
			case game.StatPressRelations:
				player.Attributes.PressRelations = game.Clamp(player.Attributes.PressRelations+effect.Change, 0, 100)
			case game.StatFanSupport:
				player.Attributes.FanSupport = game.Clamp(player.Attributes.FanSupport+effect.Change, 0, 100)
			}
		case game.EffectManagerRelationship:
			player.ManagerRelationship = game.Clamp(player.ManagerRelationship+effect.Change, 0, 100)
		}
		if effect.LogPublic != "" {
			next.AppendLog(effect.LogPublic)
		}
		if effect.LogPrivate != "" {
			next.AppendLog("(Private) " + effect.LogPrivate)
		}
	}

	interaction.Status = game.InteractionCompleted
	game.RecomputeChemistry(next)
	return next
}
