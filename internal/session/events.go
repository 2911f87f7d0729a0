package session

import "github.com/cpusim/schedview/internal/model"

// EventKind labels a session lifecycle notification.
type EventKind string

const (
	EventRunStarted  EventKind = "run_started"
	EventRunFinished EventKind = "run_finished"
	EventRunFailed   EventKind = "run_failed"
	EventQuizStarted EventKind = "quiz_started"
	EventQuizReady   EventKind = "quiz_ready"
	EventQuizFailed  EventKind = "quiz_failed"
	EventQuizGraded  EventKind = "quiz_graded"
	EventQuizExited  EventKind = "quiz_exited"
)

// Event is a lifecycle notification pushed to stream subscribers.
type Event struct {
	Kind      EventKind
	Algorithm model.Algorithm
	Reason    string
}

// Subscribe registers a listener for session events. The returned cancel
// function must be called when the listener goes away.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub == ch {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

// publishLocked fans an event out to subscribers. Callers hold s.mu. Slow
// subscribers drop events rather than block a state transition.
func (s *Session) publishLocked(ev Event) {
	for _, sub := range s.subscribers {
		select {
		case sub <- ev:
		default:
		}
	}
}
