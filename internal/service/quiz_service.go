package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cpusim/schedview/internal/engine"
	"github.com/cpusim/schedview/internal/model"
	"github.com/cpusim/schedview/internal/session"
)

// QuizService sequences the quiz state machine against the remote engine:
// Idle → Loading → AwaitingAnswer → Graded, with re-entry from Graded on
// "quiz again" and an unconditional exit from any state.
type QuizService struct {
	engine *engine.Client
	log    zerolog.Logger
}

// NewQuizService wires the coordinator to the engine client.
func NewQuizService(engineClient *engine.Client, log zerolog.Logger) *QuizService {
	return &QuizService{
		engine: engineClient,
		log:    log.With().Str("component", "quiz_service").Logger(),
	}
}

// Start enters quiz mode and requests a fresh challenge. On failure the
// session returns to Idle rather than sticking in Loading. "Quiz again" from
// Graded is the same transition; the prior quiz is discarded first.
func (s *QuizService) Start(ctx context.Context, sess *session.Session) (*model.QuizData, error) {
	if err := sess.EnterQuizLoading(); err != nil {
		return nil, err
	}

	quiz, err := s.engine.GenerateQuiz(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("quiz generation failed")
		sess.FailQuizLoad(err.Error())
		return nil, err
	}

	if !sess.CommitQuizData(quiz) {
		// Session exited quiz mode while the generate call was pending.
		s.log.Debug().Str("quiz_id", quiz.QuizID).Msg("stale quiz discarded")
		return nil, ErrSuperseded
	}

	s.log.Info().
		Str("quiz_id", quiz.QuizID).
		Str("algorithm", quiz.Algorithm).
		Int("processes", len(quiz.Processes)).
		Msg("quiz ready")
	return quiz, nil
}

// Submit validates the answer structurally, then forwards it for remote
// grading bound to the held quiz id. A failed submission leaves the session
// in AwaitingAnswer with the answer unconsumed; no retry is performed.
func (s *QuizService) Submit(ctx context.Context, sess *session.Session, answer model.QuizAnswer) (*model.QuizResult, error) {
	if err := answer.Validate(); err != nil {
		return nil, err
	}

	quizID, err := sess.BeginQuizSubmit()
	if err != nil {
		return nil, err
	}
	defer sess.FinishQuizSubmit()

	result, err := s.engine.SubmitQuizAnswers(ctx, quizID, answer)
	if err != nil {
		s.log.Error().Err(err).Str("quiz_id", quizID).Msg("quiz submission failed")
		return nil, err
	}

	if !sess.CommitQuizResult(quizID, result) {
		s.log.Debug().Str("quiz_id", quizID).Msg("stale quiz result discarded")
		return nil, ErrSuperseded
	}

	s.log.Info().Str("quiz_id", quizID).Bool("all_correct", result.AllCorrect()).Msg("quiz graded")
	return result, nil
}

// Exit discards all quiz state and returns the session to normal mode. The
// suppressed normal-mode result becomes visible again unchanged.
func (s *QuizService) Exit(sess *session.Session) {
	sess.ExitQuiz()
}
