package model

import "errors"

// QuizData is a generated quiz challenge. Consumed by exactly one submit call
// bound to its QuizID, then discarded.
type QuizData struct {
	QuizID               string    `json:"quizId"`
	Processes            []Process `json:"processes"`
	Algorithm            string    `json:"algorithm"`
	AlgorithmDisplayName string    `json:"algorithmDisplayName"`
	Quantum              *int      `json:"quantum"`
}

// QuizAnswer is the user's predicted metrics. Ephemeral: it exists only
// between form completion and submission.
type QuizAnswer struct {
	ContextSwitches       int
	AverageWaitingTime    float64
	AverageTurnaroundTime float64
}

var (
	ErrNegativeContextSwitches = errors.New("context switches must be a non-negative integer")
	ErrNegativeWaitingTime     = errors.New("average waiting time must be non-negative")
	ErrNegativeTurnaroundTime  = errors.New("average turnaround time must be non-negative")
)

// Validate enforces the structural answer rules at the input boundary, before
// any network call is made.
func (a QuizAnswer) Validate() error {
	if a.ContextSwitches < 0 {
		return ErrNegativeContextSwitches
	}
	if a.AverageWaitingTime < 0 {
		return ErrNegativeWaitingTime
	}
	if a.AverageTurnaroundTime < 0 {
		return ErrNegativeTurnaroundTime
	}
	return nil
}

// QuizResult is the remotely graded comparison. The correctness booleans are
// computed by the engine and trusted as-is; nothing is regraded locally.
type QuizResult struct {
	ActualResult                 SimulationResult `json:"actualResult"`
	ContextSwitchesCorrect       bool             `json:"contextSwitchesCorrect"`
	AverageWaitingTimeCorrect    bool             `json:"averageWaitingTimeCorrect"`
	AverageTurnaroundTimeCorrect bool             `json:"averageTurnaroundTimeCorrect"`
	UserContextSwitches          int              `json:"userContextSwitches"`
	UserAverageWaitingTime       float64          `json:"userAverageWaitingTime"`
	UserAverageTurnaroundTime    float64          `json:"userAverageTurnaroundTime"`
}

// AllCorrect reports a perfect score.
func (r *QuizResult) AllCorrect() bool {
	return r.ContextSwitchesCorrect && r.AverageWaitingTimeCorrect && r.AverageTurnaroundTimeCorrect
}

// SubmitAnswerRequest is the gateway payload for quiz answers. Pointer fields
// so zero values pass the required check; negative values are rejected by
// binding before anything leaves the gateway.
type SubmitAnswerRequest struct {
	ContextSwitches       *int     `json:"context_switches" binding:"required,min=0"`
	AverageWaitingTime    *float64 `json:"average_waiting_time" binding:"required,min=0"`
	AverageTurnaroundTime *float64 `json:"average_turnaround_time" binding:"required,min=0"`
}

// Answer converts a bound request into the value object used downstream.
func (r SubmitAnswerRequest) Answer() QuizAnswer {
	return QuizAnswer{
		ContextSwitches:       *r.ContextSwitches,
		AverageWaitingTime:    *r.AverageWaitingTime,
		AverageTurnaroundTime: *r.AverageTurnaroundTime,
	}
}
