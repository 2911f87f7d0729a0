// Package editor maintains the ordered process batch that feeds simulation
// requests. It owns the pid invariant: ids are unique and contiguous 1..N at
// all times, renumbered on deletion.
package editor

import (
	"fmt"

	"github.com/cpusim/schedview/internal/model"
)

// Batch is an ordered, mutable list of process descriptors. It is not
// goroutine safe; the owning session serializes access.
type Batch struct {
	processes []model.Process
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Add appends a process and assigns it the next pid.
func (b *Batch) Add(burstTime, priority, arrivalTime int) model.Process {
	p := model.Process{
		PID:         len(b.processes) + 1,
		BurstTime:   burstTime,
		Priority:    priority,
		ArrivalTime: arrivalTime,
	}
	b.processes = append(b.processes, p)
	return p
}

// Replace swaps the whole batch, reassigning pids 1..N in input order.
func (b *Batch) Replace(inputs []model.ProcessInput) {
	b.processes = make([]model.Process, 0, len(inputs))
	for i, in := range inputs {
		b.processes = append(b.processes, model.Process{
			PID:         i + 1,
			BurstTime:   *in.BurstTime,
			Priority:    *in.Priority,
			ArrivalTime: *in.ArrivalTime,
		})
	}
}

// Remove deletes the process with the given pid and renumbers the remainder
// so ids stay contiguous. It reports whether the pid existed.
func (b *Batch) Remove(pid int) bool {
	idx := -1
	for i, p := range b.processes {
		if p.PID == pid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	b.processes = append(b.processes[:idx], b.processes[idx+1:]...)
	for i := range b.processes {
		b.processes[i].PID = i + 1
	}
	return true
}

// Snapshot returns an immutable copy in editor order. The core treats the
// snapshot as frozen once handed off for a simulation request.
func (b *Batch) Snapshot() []model.Process {
	out := make([]model.Process, len(b.processes))
	copy(out, b.processes)
	return out
}

// Len returns the number of processes in the batch.
func (b *Batch) Len() int {
	return len(b.processes)
}

func (b *Batch) String() string {
	return fmt.Sprintf("Batch(%d processes)", len(b.processes))
}
