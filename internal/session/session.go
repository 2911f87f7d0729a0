// Package session holds the per-page-session state: the process batch, the
// current mode, and the results of the latest simulation or quiz. All state is
// in-memory and transient; nothing is persisted.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cpusim/schedview/internal/editor"
	"github.com/cpusim/schedview/internal/model"
)

// Mode is the top-level display mode.
type Mode string

const (
	ModeNormal Mode = "NORMAL"
	ModeQuiz   Mode = "QUIZ"
)

// QuizPhase is the quiz coordinator's state machine position.
type QuizPhase string

const (
	QuizIdle           QuizPhase = "IDLE"
	QuizLoading        QuizPhase = "LOADING"
	QuizAwaitingAnswer QuizPhase = "AWAITING_ANSWER"
	QuizGraded         QuizPhase = "GRADED"
)

var (
	ErrRunInFlight      = errors.New("a simulation run is already in flight")
	ErrQuizActive       = errors.New("quiz mode is active")
	ErrQuizBusy         = errors.New("a quiz request is already in flight")
	ErrQuizNotAwaiting  = errors.New("no quiz answer is awaited")
	ErrQuizNotStartable = errors.New("quiz can only start from idle or graded state")
)

// Session is the single state holder for one page session. Every transition
// is a named method that takes the lock once and updates all dependent fields
// before returning, so consumers never observe a partial mode switch.
//
// Remote calls happen outside the lock; their results are committed through
// token- or identity-guarded methods that drop stale responses.
type Session struct {
	ID uuid.UUID

	mu    sync.Mutex
	batch *editor.Batch

	mode         Mode
	normalResult *model.SimulationResult

	quizPhase   QuizPhase
	quizLoading bool
	quizData    *model.QuizData
	quizResult  *model.QuizResult

	loading  bool
	selected model.Algorithm
	runToken uint64

	lastSeen    time.Time
	subscribers []chan Event
}

// New creates an idle normal-mode session.
func New() *Session {
	return &Session{
		ID:        uuid.New(),
		batch:     editor.NewBatch(),
		mode:      ModeNormal,
		quizPhase: QuizIdle,
		lastSeen:  time.Now(),
	}
}

// Touch refreshes the idle timer.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// IdleSince returns the time of the last interaction.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// ─── Process editing ────────────────────────────────────────────────

// Processes returns an immutable snapshot of the batch.
func (s *Session) Processes() []model.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch.Snapshot()
}

// AddProcess appends one process to the batch.
func (s *Session) AddProcess(burstTime, priority, arrivalTime int) model.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch.Add(burstTime, priority, arrivalTime)
}

// ReplaceProcesses swaps the batch, reassigning pids 1..N.
func (s *Session) ReplaceProcesses(inputs []model.ProcessInput) []model.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch.Replace(inputs)
	return s.batch.Snapshot()
}

// RemoveProcess deletes one process and renumbers the remainder.
func (s *Session) RemoveProcess(pid int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch.Remove(pid)
}

// ─── Normal mode: run lifecycle ─────────────────────────────────────

// BeginRun marks the given algorithm as selected/loading and returns the run
// token the eventual commit must present. It fails while another run is in
// flight or while quiz mode is active; this is the UI-level mutual exclusion
// that prevents overlapping runs.
func (s *Session) BeginRun(algorithm model.Algorithm) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeQuiz {
		return 0, ErrQuizActive
	}
	if s.loading {
		return 0, ErrRunInFlight
	}

	s.loading = true
	s.selected = algorithm
	s.runToken++
	s.publishLocked(Event{Kind: EventRunStarted, Algorithm: algorithm})
	return s.runToken, nil
}

// FinishRun clears the loading flag and selection. It runs unconditionally on
// every exit path of a run, success or failure, and ignores stale tokens so a
// superseded run cannot clobber a newer one's flags.
func (s *Session) FinishRun(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.runToken {
		return
	}
	s.loading = false
	s.selected = ""
}

// CommitResult installs a fresh result, superseding (not merging) the prior
// one. The commit is refused when the token is stale or the session has left
// normal mode; a failed or stale run never clears or corrupts prior results.
func (s *Session) CommitResult(token uint64, result *model.SimulationResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.runToken || s.mode != ModeNormal {
		return false
	}
	s.normalResult = result
	s.publishLocked(Event{Kind: EventRunFinished, Algorithm: s.selected})
	return true
}

// FailRun reports a failed run to subscribers. State cleanup happens in
// FinishRun; the previously displayed result stays untouched.
func (s *Session) FailRun(token uint64, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.runToken {
		return
	}
	s.publishLocked(Event{Kind: EventRunFailed, Algorithm: s.selected, Reason: reason})
}

// ─── Quiz mode: state machine ───────────────────────────────────────

// EnterQuizLoading moves Idle→Loading (or Graded→Loading on "quiz again"),
// discarding any prior quiz data and result first. Entering quiz mode
// suppresses the normal-mode result display but leaves the result itself in
// place, so it reappears unchanged on exit.
func (s *Session) EnterQuizLoading() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quizLoading || s.quizPhase == QuizLoading {
		return ErrQuizBusy
	}
	if s.quizPhase == QuizAwaitingAnswer {
		return ErrQuizNotStartable
	}

	s.mode = ModeQuiz
	s.quizPhase = QuizLoading
	s.quizData = nil
	s.quizResult = nil
	s.publishLocked(Event{Kind: EventQuizStarted})
	return nil
}

// CommitQuizData moves Loading→AwaitingAnswer. Refused if the session left
// the loading phase meanwhile (e.g. an explicit exit), which discards the
// stale generate response.
func (s *Session) CommitQuizData(quiz *model.QuizData) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeQuiz || s.quizPhase != QuizLoading {
		return false
	}
	s.quizData = quiz
	s.quizPhase = QuizAwaitingAnswer
	s.publishLocked(Event{Kind: EventQuizReady})
	return true
}

// FailQuizLoad returns to Idle (normal mode) after a failed generate call so
// the state machine is never stuck in Loading.
func (s *Session) FailQuizLoad(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quizPhase != QuizLoading {
		return
	}
	s.mode = ModeNormal
	s.quizPhase = QuizIdle
	s.publishLocked(Event{Kind: EventQuizFailed, Reason: reason})
}

// BeginQuizSubmit reserves the submit slot and returns the quiz id the answer
// is bound to. The answer is not consumed here: a failed submit leaves the
// session in AwaitingAnswer with the same quiz.
func (s *Session) BeginQuizSubmit() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeQuiz || s.quizPhase != QuizAwaitingAnswer || s.quizData == nil {
		return "", ErrQuizNotAwaiting
	}
	if s.quizLoading {
		return "", ErrQuizBusy
	}
	s.quizLoading = true
	return s.quizData.QuizID, nil
}

// FinishQuizSubmit clears the submit-in-flight flag unconditionally.
func (s *Session) FinishQuizSubmit() {
	s.mu.Lock()
	s.quizLoading = false
	s.mu.Unlock()
}

// CommitQuizResult moves AwaitingAnswer→Graded. The commit is keyed by quiz
// identity: a response for a quiz that is no longer held is discarded.
func (s *Session) CommitQuizResult(quizID string, result *model.QuizResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeQuiz || s.quizData == nil || s.quizData.QuizID != quizID {
		return false
	}
	s.quizResult = result
	s.quizPhase = QuizGraded
	s.publishLocked(Event{Kind: EventQuizGraded, Reason: ""})
	return true
}

// ExitQuiz discards quiz data and result unconditionally, from any phase, and
// returns control to normal mode. The suppressed normal result becomes
// visible again unchanged.
func (s *Session) ExitQuiz() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = ModeNormal
	s.quizPhase = QuizIdle
	s.quizLoading = false
	s.quizData = nil
	s.quizResult = nil
	s.publishLocked(Event{Kind: EventQuizExited})
}

// ─── Read side ──────────────────────────────────────────────────────

// View is a consistent snapshot of the session for rendering. The mode
// invariant holds by construction: at most one of NormalResult/QuizResult is
// populated, according to the active mode.
type View struct {
	ID           uuid.UUID
	Mode         Mode
	Loading      bool
	Selected     model.Algorithm
	QuizPhase    QuizPhase
	QuizLoading  bool
	Processes    []model.Process
	NormalResult *model.SimulationResult
	QuizData     *model.QuizData
	QuizResult   *model.QuizResult
}

// Snapshot returns the current view under a single lock acquisition.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:          s.ID,
		Mode:        s.mode,
		Loading:     s.loading,
		Selected:    s.selected,
		QuizPhase:   s.quizPhase,
		QuizLoading: s.quizLoading,
		Processes:   s.batch.Snapshot(),
	}
	switch s.mode {
	case ModeQuiz:
		v.QuizData = s.quizData
		v.QuizResult = s.quizResult
	default:
		v.NormalResult = s.normalResult
	}
	return v
}
