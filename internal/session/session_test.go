package session

import (
	"errors"
	"testing"
	"time"

	"github.com/cpusim/schedview/internal/model"
)

func f(v float64) *float64 { return &v }

func committedResult(t *testing.T, s *Session) *model.SimulationResult {
	t.Helper()
	token, err := s.BeginRun(model.AlgorithmFCFS)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	result := &model.SimulationResult{
		AverageWaitingTime: f(1.5),
		CompletionTimes:    map[int]float64{1: 5},
	}
	if !s.CommitResult(token, result) {
		t.Fatal("CommitResult refused")
	}
	s.FinishRun(token)
	return result
}

func TestNewSessionIsIdleNormal(t *testing.T) {
	v := New().Snapshot()
	if v.Mode != ModeNormal || v.QuizPhase != QuizIdle {
		t.Fatalf("mode=%s phase=%s, want NORMAL/IDLE", v.Mode, v.QuizPhase)
	}
	if v.Loading || v.NormalResult != nil {
		t.Fatal("fresh session must have no loading flag or result")
	}
}

func TestBeginRunRejectsOverlap(t *testing.T) {
	s := New()
	if _, err := s.BeginRun(model.AlgorithmFCFS); err != nil {
		t.Fatalf("first BeginRun: %v", err)
	}
	if _, err := s.BeginRun(model.AlgorithmSJF); !errors.Is(err, ErrRunInFlight) {
		t.Fatalf("second BeginRun err = %v, want ErrRunInFlight", err)
	}
}

func TestBeginRunRejectedInQuizMode(t *testing.T) {
	s := New()
	if err := s.EnterQuizLoading(); err != nil {
		t.Fatalf("EnterQuizLoading: %v", err)
	}
	if _, err := s.BeginRun(model.AlgorithmFCFS); !errors.Is(err, ErrQuizActive) {
		t.Fatalf("BeginRun err = %v, want ErrQuizActive", err)
	}
}

func TestStaleTokenCommitDiscarded(t *testing.T) {
	s := New()
	staleToken, err := s.BeginRun(model.AlgorithmFCFS)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	s.FinishRun(staleToken)

	newToken, err := s.BeginRun(model.AlgorithmSJF)
	if err != nil {
		t.Fatalf("second BeginRun: %v", err)
	}

	stale := &model.SimulationResult{TotalContextSwitches: 99}
	if s.CommitResult(staleToken, stale) {
		t.Fatal("stale commit accepted")
	}

	fresh := &model.SimulationResult{TotalContextSwitches: 1}
	if !s.CommitResult(newToken, fresh) {
		t.Fatal("fresh commit refused")
	}
	s.FinishRun(newToken)

	if got := s.Snapshot().NormalResult; got != fresh {
		t.Fatalf("displayed result = %+v, want the fresh one", got)
	}
}

func TestStaleFinishRunDoesNotClearNewerRun(t *testing.T) {
	s := New()
	staleToken, _ := s.BeginRun(model.AlgorithmFCFS)
	s.FinishRun(staleToken)

	if _, err := s.BeginRun(model.AlgorithmSJF); err != nil {
		t.Fatalf("second BeginRun: %v", err)
	}
	s.FinishRun(staleToken)

	if v := s.Snapshot(); !v.Loading || v.Selected != model.AlgorithmSJF {
		t.Fatalf("loading=%v selected=%s, want newer run untouched", v.Loading, v.Selected)
	}
}

func TestFailedRunKeepsPriorResult(t *testing.T) {
	s := New()
	prior := committedResult(t, s)

	token, err := s.BeginRun(model.AlgorithmSJF)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	s.FailRun(token, "engine returned status 500")
	s.FinishRun(token)

	v := s.Snapshot()
	if v.NormalResult != prior {
		t.Fatal("failed run must leave the prior result untouched")
	}
	if v.Loading {
		t.Fatal("loading flag must clear after a failed run")
	}
}

func TestQuizEntrySuppressesNormalResult(t *testing.T) {
	s := New()
	prior := committedResult(t, s)

	if err := s.EnterQuizLoading(); err != nil {
		t.Fatalf("EnterQuizLoading: %v", err)
	}

	v := s.Snapshot()
	if v.Mode != ModeQuiz {
		t.Fatalf("mode = %s, want QUIZ", v.Mode)
	}
	if v.NormalResult != nil {
		t.Fatal("quiz mode view must not expose the normal result")
	}

	s.ExitQuiz()
	v = s.Snapshot()
	if v.Mode != ModeNormal || v.QuizPhase != QuizIdle {
		t.Fatalf("mode=%s phase=%s after exit, want NORMAL/IDLE", v.Mode, v.QuizPhase)
	}
	if v.NormalResult != prior {
		t.Fatal("normal result must reappear unchanged after quiz exit")
	}
	if *v.NormalResult.AverageWaitingTime != 1.5 {
		t.Fatal("result content must be byte-for-byte the suppressed one")
	}
}

func TestAtMostOneResultExposed(t *testing.T) {
	s := New()
	committedResult(t, s)

	if err := s.EnterQuizLoading(); err != nil {
		t.Fatalf("EnterQuizLoading: %v", err)
	}
	quiz := &model.QuizData{QuizID: "q-1", Algorithm: "RR"}
	if !s.CommitQuizData(quiz) {
		t.Fatal("CommitQuizData refused")
	}
	if !s.CommitQuizResult("q-1", &model.QuizResult{}) {
		t.Fatal("CommitQuizResult refused")
	}

	v := s.Snapshot()
	if v.NormalResult != nil {
		t.Fatal("quiz mode view exposes the normal result")
	}
	if v.QuizResult == nil {
		t.Fatal("graded quiz view must expose the quiz result")
	}
}

func TestQuizStateMachineTransitions(t *testing.T) {
	s := New()

	// Idle → Loading
	if err := s.EnterQuizLoading(); err != nil {
		t.Fatalf("Idle→Loading: %v", err)
	}
	// Loading re-entry refused
	if err := s.EnterQuizLoading(); !errors.Is(err, ErrQuizBusy) {
		t.Fatalf("Loading re-entry err = %v, want ErrQuizBusy", err)
	}
	// Loading → AwaitingAnswer
	if !s.CommitQuizData(&model.QuizData{QuizID: "q-1"}) {
		t.Fatal("Loading→AwaitingAnswer refused")
	}
	// AwaitingAnswer: no fresh start
	if err := s.EnterQuizLoading(); !errors.Is(err, ErrQuizNotStartable) {
		t.Fatalf("AwaitingAnswer start err = %v, want ErrQuizNotStartable", err)
	}
	// AwaitingAnswer → Graded
	if _, err := s.BeginQuizSubmit(); err != nil {
		t.Fatalf("BeginQuizSubmit: %v", err)
	}
	s.FinishQuizSubmit()
	if !s.CommitQuizResult("q-1", &model.QuizResult{}) {
		t.Fatal("AwaitingAnswer→Graded refused")
	}
	// Graded → Loading ("quiz again") discards the old round
	if err := s.EnterQuizLoading(); err != nil {
		t.Fatalf("Graded→Loading: %v", err)
	}
	v := s.Snapshot()
	if v.QuizData != nil || v.QuizResult != nil {
		t.Fatal("quiz again must discard the prior quiz data and result")
	}
}

func TestFailQuizLoadReturnsToIdle(t *testing.T) {
	s := New()
	if err := s.EnterQuizLoading(); err != nil {
		t.Fatalf("EnterQuizLoading: %v", err)
	}
	s.FailQuizLoad("engine returned status 502")

	v := s.Snapshot()
	if v.Mode != ModeNormal || v.QuizPhase != QuizIdle {
		t.Fatalf("mode=%s phase=%s, want NORMAL/IDLE after failed load", v.Mode, v.QuizPhase)
	}
}

func TestStaleQuizGenerateDiscardedAfterExit(t *testing.T) {
	s := New()
	if err := s.EnterQuizLoading(); err != nil {
		t.Fatalf("EnterQuizLoading: %v", err)
	}
	s.ExitQuiz()

	if s.CommitQuizData(&model.QuizData{QuizID: "late"}) {
		t.Fatal("generate response arriving after exit must be discarded")
	}
	if v := s.Snapshot(); v.Mode != ModeNormal {
		t.Fatalf("mode = %s, want NORMAL", v.Mode)
	}
}

func TestQuizResultCommitKeyedByQuizIdentity(t *testing.T) {
	s := New()
	s.EnterQuizLoading()
	s.CommitQuizData(&model.QuizData{QuizID: "q-current"})

	if s.CommitQuizResult("q-old", &model.QuizResult{}) {
		t.Fatal("result for a quiz no longer held must be discarded")
	}
	if v := s.Snapshot(); v.QuizPhase != QuizAwaitingAnswer {
		t.Fatalf("phase = %s, want AWAITING_ANSWER", v.QuizPhase)
	}
}

func TestFailedSubmitLeavesAnswerAwaited(t *testing.T) {
	s := New()
	s.EnterQuizLoading()
	s.CommitQuizData(&model.QuizData{QuizID: "q-1"})

	quizID, err := s.BeginQuizSubmit()
	if err != nil {
		t.Fatalf("BeginQuizSubmit: %v", err)
	}
	if quizID != "q-1" {
		t.Fatalf("quizID = %q", quizID)
	}
	// Remote call fails; no commit happens.
	s.FinishQuizSubmit()

	v := s.Snapshot()
	if v.QuizPhase != QuizAwaitingAnswer || v.QuizLoading {
		t.Fatalf("phase=%s loading=%v, want AWAITING_ANSWER with loading clear", v.QuizPhase, v.QuizLoading)
	}
	if v.QuizData == nil || v.QuizData.QuizID != "q-1" {
		t.Fatal("failed submit must keep the same quiz")
	}
}

func TestBeginQuizSubmitRequiresAwaitingAnswer(t *testing.T) {
	s := New()
	if _, err := s.BeginQuizSubmit(); !errors.Is(err, ErrQuizNotAwaiting) {
		t.Fatalf("idle submit err = %v, want ErrQuizNotAwaiting", err)
	}

	s.EnterQuizLoading()
	s.CommitQuizData(&model.QuizData{QuizID: "q-1"})
	if _, err := s.BeginQuizSubmit(); err != nil {
		t.Fatalf("BeginQuizSubmit: %v", err)
	}
	if _, err := s.BeginQuizSubmit(); !errors.Is(err, ErrQuizBusy) {
		t.Fatalf("overlapping submit err = %v, want ErrQuizBusy", err)
	}
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe()
	defer cancel()

	token, _ := s.BeginRun(model.AlgorithmRR)
	s.CommitResult(token, &model.SimulationResult{})
	s.FinishRun(token)

	want := []EventKind{EventRunStarted, EventRunFinished}
	for _, kind := range want {
		select {
		case ev := <-events:
			if ev.Kind != kind {
				t.Fatalf("event = %s, want %s", ev.Kind, kind)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", kind)
		}
	}
}

func TestTouchAdvancesIdleClock(t *testing.T) {
	s := New()
	before := s.IdleSince()
	time.Sleep(5 * time.Millisecond)
	s.Touch()
	if !s.IdleSince().After(before) {
		t.Fatal("Touch must advance the idle timestamp")
	}
}
