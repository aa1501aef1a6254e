package engine

import (
	"testing"

	"github.com/talgya/pitchside/internal/game"
)

func TestTrainShooting(t *testing.T) {
	e := testEngine(1)
	state := smallState()

	next := e.Train(state, game.TrainShooting)
	player := next.UserPlayer()

	// Base gain 2, age 18 applies the youth multiplier: round(2*1.3) = 3.
	if player.Attributes.Shooting != 58 {
		t.Errorf("shooting = %d, want 58", player.Attributes.Shooting)
	}
	if player.Attributes.Stamina != 73 {
		t.Errorf("stamina = %d, want 73", player.Attributes.Stamina)
	}
	if player.Injury != nil {
		t.Error("seeded run should not produce a training injury")
	}
	if state.UserPlayer().Attributes.Shooting != 55 {
		t.Error("training mutated the caller's snapshot")
	}
}

func TestTrainExactStaminaAllowed(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	state.UserPlayer().Attributes.Stamina = 7

	next := e.Train(state, game.TrainShooting)
	player := next.UserPlayer()
	if player.Attributes.Shooting != 58 {
		t.Errorf("stamina equal to cost should still train, shooting = %d", player.Attributes.Shooting)
	}
	if player.Attributes.Stamina != 0 {
		t.Errorf("stamina = %d, want 0", player.Attributes.Stamina)
	}
}

func TestTrainInsufficientStamina(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	state.UserPlayer().Attributes.Stamina = 6

	next := e.Train(state, game.TrainShooting)
	player := next.UserPlayer()
	if player.Attributes.Shooting != 55 {
		t.Error("training should be refused below the stamina cost")
	}
	if player.Attributes.Stamina != 6 {
		t.Error("refused session must not spend stamina")
	}
	if len(next.Log) == 0 {
		t.Error("refusal should be logged")
	}
}

func TestTrainInjuredRejectsSkillWork(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	state.UserPlayer().Injury = &game.Injury{
		Type: "Sprained Ankle", DurationWeeks: 3, WeeksRemaining: 3,
	}

	next := e.Train(state, game.TrainShooting)
	if next.UserPlayer().Attributes.Shooting != 55 {
		t.Error("injured player must not gain from skill training")
	}
}

func TestTrainStaminaWhileInjuredAllowed(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	state.UserPlayer().Injury = &game.Injury{
		Type: "Sprained Ankle", DurationWeeks: 3, WeeksRemaining: 3,
	}
	state.UserPlayer().Attributes.Stamina = 40

	next := e.Train(state, game.TrainStamina)
	if next.UserPlayer().Attributes.Stamina <= 40 {
		t.Error("rest training should restore stamina while injured")
	}
}

func TestTrainPhysioWithoutInjury(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	state.UserPlayer().Attributes.Stamina = 50

	next := e.Train(state, game.TrainPhysio)
	if next.UserPlayer().Attributes.Stamina != 55 {
		t.Errorf("light physio stamina = %d, want 55", next.UserPlayer().Attributes.Stamina)
	}
}

func TestTrainPhysioCompletesRecovery(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	user := state.UserPlayer()
	user.Injury = &game.Injury{
		Type: "Sprained Ankle", DurationWeeks: 2, WeeksRemaining: 0,
	}
	user.Attributes.Form = 50
	user.Attributes.Morale = 50

	next := e.Train(state, game.TrainPhysio)
	player := next.UserPlayer()
	if player.Injury != nil {
		t.Fatal("physio with no weeks remaining should clear the injury")
	}
	if player.Attributes.Form != 65 || player.Attributes.Morale != 60 {
		t.Errorf("recovery boost form/morale = %d/%d, want 65/60", player.Attributes.Form, player.Attributes.Morale)
	}
}

func TestTrainPhysioShavesWeek(t *testing.T) {
	// Seed 2's first roll is 0.167, under the physio success chance.
	e := testEngine(2)
	state := smallState()
	state.UserPlayer().Injury = &game.Injury{
		Type: "Pulled Hamstring", DurationWeeks: 4, WeeksRemaining: 2,
	}

	next := e.Train(state, game.TrainPhysio)
	inj := next.UserPlayer().Injury
	if inj == nil {
		t.Fatal("injury should still be active")
	}
	if inj.WeeksRemaining != 1 {
		t.Errorf("weeks remaining = %d, want 1", inj.WeeksRemaining)
	}
	if inj.RecoveryProgress != 75 {
		t.Errorf("recovery progress = %d, want 75", inj.RecoveryProgress)
	}
}

func TestTrainReputationRaisesPressRelations(t *testing.T) {
	e := testEngine(1)
	state := smallState()

	next := e.Train(state, game.TrainReputation)
	player := next.UserPlayer()
	// Base gain 1 at age 18: round(1*1.3) = 1, press bump round(1.3*0.5) = 1.
	if player.Attributes.Reputation != 31 {
		t.Errorf("reputation = %d, want 31", player.Attributes.Reputation)
	}
	if player.Attributes.PressRelations != 51 {
		t.Errorf("press relations = %d, want 51", player.Attributes.PressRelations)
	}
}

func TestTrainUnknownTarget(t *testing.T) {
	e := testEngine(1)
	state := smallState()
	next := e.Train(state, game.TrainingTarget(99))
	if next.UserPlayer().Attributes.Stamina != 80 {
		t.Error("unknown option must not spend stamina")
	}
	if len(next.Log) == 0 {
		t.Error("unknown option should be logged")
	}
}
