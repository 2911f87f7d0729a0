package model

import "fmt"

// Algorithm enumerates the dispatch algorithms the remote engine supports.
type Algorithm string

const (
	AlgorithmFCFS Algorithm = "FCFS"
	AlgorithmSJF  Algorithm = "SJF"
	AlgorithmSRTF Algorithm = "SRTF"
	AlgorithmPP   Algorithm = "PP"
	AlgorithmRR   Algorithm = "RR"
)

// DefaultQuantum is transmitted for every non-RR run. The engine requires the
// parameter on every call but only reads it for round robin.
const DefaultQuantum = 2

// Algorithms lists the supported algorithms in display order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmFCFS, AlgorithmSJF, AlgorithmSRTF, AlgorithmPP, AlgorithmRR}
}

// ParseAlgorithm validates a raw token against the known set.
func ParseAlgorithm(raw string) (Algorithm, error) {
	switch Algorithm(raw) {
	case AlgorithmFCFS, AlgorithmSJF, AlgorithmSRTF, AlgorithmPP, AlgorithmRR:
		return Algorithm(raw), nil
	}
	return "", fmt.Errorf("unknown algorithm %q", raw)
}

// Valid reports whether a is one of the five known tokens.
func (a Algorithm) Valid() bool {
	_, err := ParseAlgorithm(string(a))
	return err == nil
}

// DisplayName returns the human-readable algorithm name.
func (a Algorithm) DisplayName() string {
	switch a {
	case AlgorithmFCFS:
		return "First Come First Served (FCFS)"
	case AlgorithmSJF:
		return "Shortest Job First (SJF)"
	case AlgorithmSRTF:
		return "Shortest Remaining Time First (SRTF)"
	case AlgorithmPP:
		return "Preemptive Priority (PP)"
	case AlgorithmRR:
		return "Round Robin (RR)"
	}
	return string(a)
}

// NormalizeQuantum applies the quantum rules: non-RR runs always transmit
// DefaultQuantum regardless of what the caller set, RR runs use the caller's
// quantum floored at 1.
func NormalizeQuantum(a Algorithm, quantum int) int {
	if a != AlgorithmRR {
		return DefaultQuantum
	}
	if quantum < 1 {
		return 1
	}
	return quantum
}

// EventType is the wire token classifying a timeline event.
type EventType string

const (
	EventProcessArrival EventType = "PROCESS_ARRIVAL"
	EventProcessStart   EventType = "PROCESS_START"
	EventProcessFinish  EventType = "PROCESS_FINISH"
	EventContextSwitch  EventType = "CONTEXT_SWITCH"
	EventCPUIdle        EventType = "CPU_IDLE"
)

// TimelineEvent is one discrete event emitted by the engine. The sequence is
// ordered by time non-decreasing; ties keep the engine's emission order and
// are never re-sorted here.
type TimelineEvent struct {
	Time           float64   `json:"time"`
	PID            int       `json:"pid"`
	Type           EventType `json:"type"`
	BurstRemaining *float64  `json:"burstRemaining"`
	Priority       *float64  `json:"priority"`
}

// SimulationResult is the engine's output for one run. Aggregate metrics are
// pointers because the engine may omit or null them; the renderer normalizes
// per field. Map keys are pids.
type SimulationResult struct {
	Timeline              []TimelineEvent `json:"timeline"`
	AverageWaitingTime    *float64        `json:"averageWaitingTime"`
	AverageTurnaroundTime *float64        `json:"averageTurnaroundTime"`
	TotalContextSwitches  int             `json:"totalContextSwitches"`
	CompletionTimes       map[int]float64 `json:"completionTimes"`
	WaitingTimes          map[int]float64 `json:"waitingTimes"`
	TurnaroundTimes       map[int]float64 `json:"turnaroundTimes"`
}

// SimulateRequest triggers one orchestrated run for a session.
type SimulateRequest struct {
	Algorithm string `json:"algorithm" binding:"required,oneof=FCFS SJF SRTF PP RR"`
	Quantum   int    `json:"quantum" binding:"omitempty,min=1"`
}
