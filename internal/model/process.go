package model

// Process is one schedulable process as the remote engine understands it.
// PIDs are 1-based and contiguous within a batch; the editor renumbers on
// deletion so the invariant holds at submission time.
type Process struct {
	PID         int `json:"pid"`
	BurstTime   int `json:"burstTime"`
	Priority    int `json:"priority"`
	ArrivalTime int `json:"arrivalTime"`
}

// ProcessInput is the gateway payload for one process row. Pointer fields so
// an explicit zero passes the required check.
type ProcessInput struct {
	BurstTime   *int `json:"burst_time" binding:"required,min=0"`
	Priority    *int `json:"priority" binding:"required,min=0"`
	ArrivalTime *int `json:"arrival_time" binding:"required,min=0"`
}

// ReplaceProcessesRequest replaces the whole batch in editor order.
type ReplaceProcessesRequest struct {
	Processes []ProcessInput `json:"processes" binding:"dive"`
}
