package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cpusim/schedview/internal/config"
	"github.com/cpusim/schedview/internal/engine"
	"github.com/cpusim/schedview/internal/model"
	"github.com/cpusim/schedview/internal/session"
)

func newQuizService(t *testing.T, handler http.Handler) *QuizService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{EngineBaseURL: srv.URL, EngineTimeout: 5 * time.Second}
	return NewQuizService(engine.NewClient(cfg, zerolog.Nop()), zerolog.Nop())
}

func quizEngineHandler(generateStatus, submitStatus int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/simulation/quiz/generate":
			if generateStatus != http.StatusOK {
				http.Error(w, "unavailable", generateStatus)
				return
			}
			json.NewEncoder(w).Encode(model.QuizData{
				QuizID:               "q-7",
				Processes:            []model.Process{{PID: 1, BurstTime: 5, Priority: 1, ArrivalTime: 0}},
				Algorithm:            "FCFS",
				AlgorithmDisplayName: "First Come First Served",
			})
		case "/simulation/quiz/submit":
			if submitStatus != http.StatusOK {
				http.Error(w, "unavailable", submitStatus)
				return
			}
			json.NewEncoder(w).Encode(model.QuizResult{
				ContextSwitchesCorrect:       true,
				AverageWaitingTimeCorrect:    false,
				AverageTurnaroundTimeCorrect: true,
			})
		default:
			http.NotFound(w, r)
		}
	}
}

func validAnswer() model.QuizAnswer {
	return model.QuizAnswer{ContextSwitches: 2, AverageWaitingTime: 3.5, AverageTurnaroundTime: 7.5}
}

func TestQuizStartReachesAwaitingAnswer(t *testing.T) {
	svc := newQuizService(t, quizEngineHandler(http.StatusOK, http.StatusOK))
	sess := session.New()

	quiz, err := svc.Start(context.Background(), sess)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if quiz.QuizID != "q-7" {
		t.Fatalf("quiz = %+v", quiz)
	}

	v := sess.Snapshot()
	if v.Mode != session.ModeQuiz || v.QuizPhase != session.QuizAwaitingAnswer {
		t.Fatalf("mode=%s phase=%s, want QUIZ/AWAITING_ANSWER", v.Mode, v.QuizPhase)
	}
	if v.QuizData == nil || v.QuizData.QuizID != "q-7" {
		t.Fatal("session does not hold the generated quiz")
	}
}

func TestQuizStartFailureReturnsToIdle(t *testing.T) {
	svc := newQuizService(t, quizEngineHandler(http.StatusBadGateway, http.StatusOK))
	sess := session.New()

	_, err := svc.Start(context.Background(), sess)
	var statusErr *engine.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want StatusError", err)
	}

	v := sess.Snapshot()
	if v.Mode != session.ModeNormal || v.QuizPhase != session.QuizIdle {
		t.Fatalf("mode=%s phase=%s, want NORMAL/IDLE (never stuck in Loading)", v.Mode, v.QuizPhase)
	}
}

func TestQuizSubmitGrades(t *testing.T) {
	svc := newQuizService(t, quizEngineHandler(http.StatusOK, http.StatusOK))
	sess := session.New()

	if _, err := svc.Start(context.Background(), sess); err != nil {
		t.Fatalf("Start: %v", err)
	}

	result, err := svc.Submit(context.Background(), sess, validAnswer())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.AllCorrect() {
		t.Fatal("AllCorrect = true with one wrong answer")
	}

	v := sess.Snapshot()
	if v.QuizPhase != session.QuizGraded {
		t.Fatalf("phase = %s, want GRADED", v.QuizPhase)
	}
	if v.QuizResult == nil {
		t.Fatal("graded result missing from session")
	}
}

func TestQuizSubmitFailureKeepsAnswerAwaited(t *testing.T) {
	svc := newQuizService(t, quizEngineHandler(http.StatusOK, http.StatusInternalServerError))
	sess := session.New()

	if _, err := svc.Start(context.Background(), sess); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.Submit(context.Background(), sess, validAnswer()); err == nil {
		t.Fatal("Submit succeeded, want failure")
	}

	v := sess.Snapshot()
	if v.QuizPhase != session.QuizAwaitingAnswer || v.QuizLoading {
		t.Fatalf("phase=%s loading=%v, want AWAITING_ANSWER with loading clear", v.QuizPhase, v.QuizLoading)
	}
	if v.QuizData == nil || v.QuizData.QuizID != "q-7" {
		t.Fatal("failed submit must keep the same quiz awaiting its answer")
	}
}

func TestQuizSubmitRejectsNegativeAnswerBeforeNetwork(t *testing.T) {
	svc := newQuizService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/simulation/quiz/submit" {
			t.Error("negative answer must be rejected before any network call")
		}
		quizEngineHandler(http.StatusOK, http.StatusOK)(w, r)
	}))
	sess := session.New()

	if _, err := svc.Start(context.Background(), sess); err != nil {
		t.Fatalf("Start: %v", err)
	}

	answer := validAnswer()
	answer.ContextSwitches = -1
	if _, err := svc.Submit(context.Background(), sess, answer); !errors.Is(err, model.ErrNegativeContextSwitches) {
		t.Fatalf("err = %v, want ErrNegativeContextSwitches", err)
	}

	// The held quiz is untouched; a corrected answer can still be submitted.
	if _, err := svc.Submit(context.Background(), sess, validAnswer()); err != nil {
		t.Fatalf("corrected Submit: %v", err)
	}
}

func TestQuizSubmitWithoutActiveQuiz(t *testing.T) {
	svc := newQuizService(t, quizEngineHandler(http.StatusOK, http.StatusOK))
	sess := session.New()

	if _, err := svc.Submit(context.Background(), sess, validAnswer()); !errors.Is(err, session.ErrQuizNotAwaiting) {
		t.Fatalf("err = %v, want ErrQuizNotAwaiting", err)
	}
}

func TestQuizExitRestoresNormalMode(t *testing.T) {
	svc := newQuizService(t, quizEngineHandler(http.StatusOK, http.StatusOK))
	sess := session.New()

	if _, err := svc.Start(context.Background(), sess); err != nil {
		t.Fatalf("Start: %v", err)
	}
	svc.Exit(sess)

	v := sess.Snapshot()
	if v.Mode != session.ModeNormal || v.QuizPhase != session.QuizIdle {
		t.Fatalf("mode=%s phase=%s, want NORMAL/IDLE", v.Mode, v.QuizPhase)
	}
	if v.QuizData != nil || v.QuizResult != nil {
		t.Fatal("exit must discard all quiz state")
	}
}

func TestQuizAgainFromGraded(t *testing.T) {
	svc := newQuizService(t, quizEngineHandler(http.StatusOK, http.StatusOK))
	sess := session.New()

	if _, err := svc.Start(context.Background(), sess); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Submit(context.Background(), sess, validAnswer()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.Start(context.Background(), sess); err != nil {
		t.Fatalf("quiz again: %v", err)
	}

	v := sess.Snapshot()
	if v.QuizPhase != session.QuizAwaitingAnswer {
		t.Fatalf("phase = %s, want AWAITING_ANSWER", v.QuizPhase)
	}
	if v.QuizResult != nil {
		t.Fatal("quiz again must discard the prior graded result")
	}
}
