package engine

import (
	"testing"

	"github.com/talgya/pitchside/internal/game"
)

func pendingInteraction(id string) *game.Interaction {
	return &game.Interaction{
		ID:            id,
		Type:          game.InteractionMediaInterview,
		Prompt:        "A reporter waves you over.",
		Options:       mediaInterviewOptions(),
		Status:        game.InteractionPending,
		TriggerSeason: 1,
		TriggerWeek:   2,
		ExpiresWeek:   2 + game.InteractionExpiryWeeks,
	}
}

func TestRespondToInteractionAppliesEffects(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	state.Interactions = append(state.Interactions, pendingInteraction("int-1"))

	next := e.RespondToInteraction(state, "int-1", "media_positive")
	player := next.UserPlayer()
	if player.Attributes.FanSupport != 35 {
		t.Errorf("fan support = %d, want 35", player.Attributes.FanSupport)
	}
	if player.Attributes.PressRelations != 53 {
		t.Errorf("press relations = %d, want 53", player.Attributes.PressRelations)
	}
	if player.Attributes.Morale != 72 {
		t.Errorf("morale = %d, want 72", player.Attributes.Morale)
	}
	if next.Interactions[0].Status != game.InteractionCompleted {
		t.Error("interaction should complete after a response")
	}
	if len(next.Log) == 0 {
		t.Error("private effect notes should be logged")
	}
	if state.UserPlayer().Attributes.FanSupport != 30 {
		t.Error("response mutated the caller's snapshot")
	}
}

func TestRespondToInteractionManagerRelationship(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	it := pendingInteraction("int-1")
	it.Type = game.InteractionManagerTalk
	it.Options = managerTalkOptions(state.UserPlayer().ManagerRelationship)
	state.Interactions = append(state.Interactions, it)

	next := e.RespondToInteraction(state, "int-1", "manager_ask_feedback")
	if got := next.UserPlayer().ManagerRelationship; got != 57 {
		t.Errorf("manager relationship = %d, want 57", got)
	}
}

func TestRespondToInteractionCompletedIsNoOp(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	state.Interactions = append(state.Interactions, pendingInteraction("int-1"))

	once := e.RespondToInteraction(state, "int-1", "media_positive")
	twice := e.RespondToInteraction(once, "int-1", "media_positive")
	if twice.UserPlayer().Attributes.FanSupport != 35 {
		t.Error("second response must not re-apply effects")
	}
}

func TestRespondToInteractionUnknownOption(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	state.Interactions = append(state.Interactions, pendingInteraction("int-1"))

	next := e.RespondToInteraction(state, "int-1", "media_shout")
	if next.Interactions[0].Status != game.InteractionPending {
		t.Error("unknown option must leave the interaction open")
	}
	if next.UserPlayer().Attributes.FanSupport != 30 {
		t.Error("unknown option must not apply effects")
	}
}

func TestRespondToInteractionUnknownID(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	next := e.RespondToInteraction(state, "missing", "media_positive")
	if next.UserPlayer().Attributes.FanSupport != 30 {
		t.Error("unknown interaction must be a no-op")
	}
}

func TestSweepInteractions(t *testing.T) {
	state := smallState()
	state.League.CurrentWeek = 5

	overdue := pendingInteraction("overdue")
	overdue.ExpiresWeek = 5
	fresh := pendingInteraction("fresh")
	fresh.TriggerWeek = 4
	fresh.ExpiresWeek = 6
	state.Interactions = append(state.Interactions, overdue, fresh)

	logs := sweepInteractions(state)
	if overdue.Status != game.InteractionCompleted {
		t.Error("overdue interaction should expire")
	}
	if fresh.Status != game.InteractionPending {
		t.Error("unexpired interaction should stay open")
	}
	if len(logs) != 1 {
		t.Errorf("expiry logs = %d, want 1", len(logs))
	}
}

func TestManagerTalkConcernDependsOnRelationship(t *testing.T) {
	cool := managerTalkOptions(50)
	warm := managerTalkOptions(70)

	pick := func(opts []game.InteractionOption) int {
		for _, o := range opts {
			if o.ID == "manager_raise_concern" {
				return o.Effects[0].Change
			}
		}
		t.Fatal("concern option missing")
		return 0
	}
	if pick(cool) != -3 {
		t.Error("distant manager should take the concern badly")
	}
	if pick(warm) != 2 {
		t.Error("trusted manager should hear the concern out")
	}
}
