package editor

import (
	"testing"

	"github.com/cpusim/schedview/internal/model"
)

func intp(v int) *int { return &v }

func TestAddAssignsContiguousPids(t *testing.T) {
	b := NewBatch()
	b.Add(5, 1, 0)
	b.Add(3, 2, 1)
	b.Add(4, 0, 2)

	snap := b.Snapshot()
	for i, p := range snap {
		if p.PID != i+1 {
			t.Fatalf("process %d has pid %d, want %d", i, p.PID, i+1)
		}
	}
}

func TestRemoveRenumbers(t *testing.T) {
	b := NewBatch()
	b.Add(5, 1, 0)
	b.Add(3, 2, 1)
	b.Add(4, 0, 2)

	if !b.Remove(2) {
		t.Fatal("Remove(2) = false, want true")
	}

	snap := b.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len = %d, want 2", len(snap))
	}
	// ids stay unique and contiguous 1..N after deletion
	if snap[0].PID != 1 || snap[1].PID != 2 {
		t.Fatalf("pids = %d,%d, want 1,2", snap[0].PID, snap[1].PID)
	}
	// order preserved: the former p3 is now p2
	if snap[1].BurstTime != 4 {
		t.Fatalf("renumbered process burst = %d, want 4", snap[1].BurstTime)
	}
}

func TestRemoveUnknownPid(t *testing.T) {
	b := NewBatch()
	b.Add(5, 1, 0)
	if b.Remove(9) {
		t.Fatal("Remove(9) = true, want false")
	}
	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
}

func TestReplaceReassignsPids(t *testing.T) {
	b := NewBatch()
	b.Add(9, 9, 9)

	b.Replace([]model.ProcessInput{
		{BurstTime: intp(5), Priority: intp(1), ArrivalTime: intp(0)},
		{BurstTime: intp(3), Priority: intp(2), ArrivalTime: intp(1)},
	})

	snap := b.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len = %d, want 2", len(snap))
	}
	if snap[0].PID != 1 || snap[1].PID != 2 {
		t.Fatalf("pids = %d,%d, want 1,2", snap[0].PID, snap[1].PID)
	}
	if snap[0].BurstTime != 5 || snap[1].ArrivalTime != 1 {
		t.Fatal("replace did not keep input order")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	b := NewBatch()
	b.Add(5, 1, 0)

	snap := b.Snapshot()
	snap[0].BurstTime = 99

	if b.Snapshot()[0].BurstTime != 5 {
		t.Fatal("mutating a snapshot must not touch the batch")
	}
}
