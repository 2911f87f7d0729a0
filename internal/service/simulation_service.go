// Package service holds the orchestration logic between sessions and the
// remote engine: the two-phase simulation protocol and the quiz state machine
// sequencing. Grading and scheduling are remote; nothing here computes them.
package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cpusim/schedview/internal/engine"
	"github.com/cpusim/schedview/internal/model"
	"github.com/cpusim/schedview/internal/session"
)

var (
	// ErrUnknownAlgorithm rejects tokens outside the five known algorithms.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrSuperseded marks a response that arrived after the state it targeted
	// was gone (newer run, mode switch, or quiz exit). The response is
	// discarded, not an engine failure.
	ErrSuperseded = errors.New("response superseded by a newer request or mode switch")
)

// SimulationService orchestrates one run: submit the process batch, then
// request the simulation, strictly in that order.
type SimulationService struct {
	engine *engine.Client
	log    zerolog.Logger
}

// NewSimulationService wires the orchestrator to the engine client.
func NewSimulationService(engineClient *engine.Client, log zerolog.Logger) *SimulationService {
	return &SimulationService{
		engine: engineClient,
		log:    log.With().Str("component", "simulation_service").Logger(),
	}
}

// Run executes the two-phase protocol for the session's current batch.
//
// The quantum is normalized before anything is sent: non-RR runs always
// transmit the fixed default, RR floors at 1. An empty batch is forwarded
// as-is; the engine decides validity.
//
// The simulate call is attempted only if the submit call succeeded. There is
// no rollback of a successful submit when the run fails: the engine's
// last-submitted batch simply goes stale and a retry resubmits it. The
// loading/selection flags are cleared on every exit path, and a failed run
// leaves the previously displayed result untouched.
func (s *SimulationService) Run(ctx context.Context, sess *session.Session, algorithm model.Algorithm, quantum int) (*model.SimulationResult, error) {
	if !algorithm.Valid() {
		return nil, ErrUnknownAlgorithm
	}
	quantum = model.NormalizeQuantum(algorithm, quantum)

	token, err := sess.BeginRun(algorithm)
	if err != nil {
		return nil, err
	}
	defer sess.FinishRun(token)

	processes := sess.Processes()

	if err := s.engine.SubmitProcesses(ctx, processes); err != nil {
		s.log.Error().Err(err).Str("algorithm", string(algorithm)).Msg("process submission failed")
		sess.FailRun(token, err.Error())
		return nil, err
	}

	result, err := s.engine.RunSimulation(ctx, algorithm, quantum)
	if err != nil {
		s.log.Error().Err(err).Str("algorithm", string(algorithm)).Msg("simulation run failed")
		sess.FailRun(token, err.Error())
		return nil, err
	}

	if !sess.CommitResult(token, result) {
		s.log.Debug().Str("algorithm", string(algorithm)).Msg("stale simulation result discarded")
		return nil, ErrSuperseded
	}

	s.log.Info().
		Str("algorithm", string(algorithm)).
		Int("quantum", quantum).
		Int("processes", len(processes)).
		Int("events", len(result.Timeline)).
		Msg("simulation committed")
	return result, nil
}
