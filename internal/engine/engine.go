// Package engine advances the career simulation one week at a time. Every
// command takes a snapshot and returns a new one; callers' snapshots are
// never mutated.
package engine

import (
	"log/slog"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/pitchside/internal/game"
	"github.com/talgya/pitchside/internal/monitor"
	"github.com/talgya/pitchside/internal/narrative"
)

// Engine owns the randomness sources and collaborators for the simulation.
// It is not safe for concurrent use; callers serialize commands.
type Engine struct {
	rng     *rand.Rand
	noise   opensimplex.Noise
	gen     narrative.TextGenerator
	metrics *monitor.Metrics
	log     *slog.Logger
}

// New creates an engine. gen may be nil (narratives fall back to fixed
// text) and metrics may be nil (collection disabled).
func New(seed int64, gen narrative.TextGenerator, metrics *monitor.Metrics, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		rng:     rand.New(rand.NewSource(seed)),
		noise:   opensimplex.New(seed),
		gen:     gen,
		metrics: metrics,
		log:     logger,
	}
}

// NewGame builds a fresh world snapshot.
func (e *Engine) NewGame(custom *game.CustomPlayer) *game.GameState {
	state := game.NewWorld(e.rng, custom)
	e.log.Info("world created",
		"teams", len(state.Teams),
		"national_teams", len(state.NationalTeams),
	)
	return state
}

func (e *Engine) randRange(min, max int) int {
	return e.rng.Intn(max-min+1) + min
}

// generateText runs the narrative generator, returning fallback when the
// generator is absent or fails.
func (e *Engine) generateText(prompt, fallback string) string {
	if e.gen == nil {
		e.metrics.IncNarrativeFallbacks()
		return fallback
	}
	text, err := e.gen.GenerateText(prompt)
	if err != nil {
		e.log.Warn("narrative generation failed", "error", err)
		e.metrics.IncNarrativeFallbacks()
		return fallback
	}
	return text
}

// FetchNarrative resolves a narrative request's prompt into display text,
// falling back to a fixed summary when generation is unavailable.
func (e *Engine) FetchNarrative(prompt string) string {
	return e.generateText(prompt, narrative.SummaryFailed)
}

// SetTactic sets or clears the tracked player's tactical instruction.
// Unknown instruction ids are logged and ignored.
func (e *Engine) SetTactic(state *game.GameState, id game.TacticID) *game.GameState {
	next := state.Clone()
	player := next.UserPlayer()
	if player == nil {
		return next
	}
	if !game.ValidTactic(id) {
		next.AppendLog("Unknown tactical instruction.")
		return next
	}
	player.Tactic = id
	if id == game.TacticNone {
		next.AppendLog(player.Name + " has cleared their tactical instruction.")
	} else {
		for _, def := range game.TacticDefinitions {
			if def.ID == id {
				next.AppendLog(player.Name + " will now focus on: " + def.Name + ".")
				break
			}
		}
	}
	return next
}
