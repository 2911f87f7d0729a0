// Package render transforms a simulation result into a display-ordered model.
// Build is pure: it never mutates its input, never fails, and produces the
// same model for the same result every time.
package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/cpusim/schedview/internal/model"
)

// Category is the visual grouping of a timeline event.
type Category string

const (
	CategoryArrival Category = "arrival"
	CategoryStart   Category = "start"
	CategoryFinish  Category = "finish"
	CategorySwitch  Category = "switch"
	CategoryIdle    Category = "idle"
	// CategoryNeutral is the graceful fallback for unknown event tokens.
	CategoryNeutral Category = "neutral"
)

// NotAvailable marks a per-process metric the engine did not report.
const NotAvailable = "N/A"

// EmptyMessage is shown when no simulation has run yet.
const EmptyMessage = "No simulation results to display. Run a simulation to see the timeline."

// MetricsView holds the normalized aggregate metrics.
type MetricsView struct {
	AverageWaitingTime    string `json:"average_waiting_time"`
	AverageTurnaroundTime string `json:"average_turnaround_time"`
	ContextSwitches       int    `json:"context_switches"`
}

// EventView is one classified timeline entry, in engine emission order.
type EventView struct {
	Time     float64  `json:"time"`
	PID      int      `json:"pid"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Detail   string   `json:"detail,omitempty"`
}

// ProcessRow is one per-process metrics row.
type ProcessRow struct {
	PID            int    `json:"pid"`
	CompletionTime string `json:"completion_time"`
	WaitingTime    string `json:"waiting_time"`
	TurnaroundTime string `json:"turnaround_time"`
}

// DisplayModel is the rendered form of one simulation result.
type DisplayModel struct {
	Empty       bool         `json:"empty"`
	Metrics     MetricsView  `json:"metrics"`
	Events      []EventView  `json:"events"`
	ProcessRows []ProcessRow `json:"process_rows"`
}

// Build renders a result. A nil result yields the explicit empty state, not
// an error. Events keep the order received from the engine; equal-timestamp
// tie-breaking is the engine's call and is never re-derived here.
func Build(result *model.SimulationResult) DisplayModel {
	if result == nil {
		return DisplayModel{Empty: true}
	}

	dm := DisplayModel{
		Metrics: MetricsView{
			AverageWaitingTime:    FormatMetric(result.AverageWaitingTime),
			AverageTurnaroundTime: FormatMetric(result.AverageTurnaroundTime),
			ContextSwitches:       result.TotalContextSwitches,
		},
		Events:      make([]EventView, 0, len(result.Timeline)),
		ProcessRows: buildProcessRows(result),
	}

	for _, ev := range result.Timeline {
		dm.Events = append(dm.Events, buildEventView(ev))
	}
	return dm
}

// FormatMetric normalizes one numeric display field. Absent or non-numeric
// values render as "0.00"; each field is normalized independently so one bad
// metric never discards the record.
func FormatMetric(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", *v)
}

// Classify maps an event token to its label and visual category. The mapping
// is total: unknown tokens render with the raw token as label and the neutral
// category instead of failing.
func Classify(t model.EventType) (string, Category) {
	switch t {
	case model.EventProcessArrival:
		return "Arrival", CategoryArrival
	case model.EventProcessStart:
		return "Start", CategoryStart
	case model.EventProcessFinish:
		return "Finish", CategoryFinish
	case model.EventContextSwitch:
		return "Context Switch", CategorySwitch
	case model.EventCPUIdle:
		return "CPU Idle", CategoryIdle
	}
	return string(t), CategoryNeutral
}

func buildEventView(ev model.TimelineEvent) EventView {
	label, category := Classify(ev.Type)
	view := EventView{
		Time:     ev.Time,
		PID:      ev.PID,
		Label:    label,
		Category: category,
	}

	switch ev.Type {
	case model.EventProcessArrival:
		view.Detail = burstDetail("Burst", ev)
	case model.EventProcessStart, model.EventContextSwitch:
		view.Detail = burstDetail("Burst Remaining", ev)
	}
	return view
}

// burstDetail formats the optional burst/priority annotation shown next to
// arrival, start and switch events.
func burstDetail(burstLabel string, ev model.TimelineEvent) string {
	if ev.BurstRemaining == nil {
		return ""
	}
	if ev.Priority == nil {
		return fmt.Sprintf("%s: %s", burstLabel, formatTick(*ev.BurstRemaining))
	}
	return fmt.Sprintf("%s: %s, Priority: %s", burstLabel, formatTick(*ev.BurstRemaining), formatTick(*ev.Priority))
}

// buildProcessRows derives per-process rows from completionTimes, the
// authoritative set of participating pids. Missing waiting/turnaround entries
// render the explicit not-available marker, never a computed fallback.
func buildProcessRows(result *model.SimulationResult) []ProcessRow {
	if len(result.CompletionTimes) == 0 {
		return nil
	}

	pids := make([]int, 0, len(result.CompletionTimes))
	for pid := range result.CompletionTimes {
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	rows := make([]ProcessRow, 0, len(pids))
	for _, pid := range pids {
		row := ProcessRow{
			PID:            pid,
			CompletionTime: formatTick(result.CompletionTimes[pid]),
			WaitingTime:    NotAvailable,
			TurnaroundTime: NotAvailable,
		}
		if v, ok := result.WaitingTimes[pid]; ok {
			row.WaitingTime = formatTick(v)
		}
		if v, ok := result.TurnaroundTimes[pid]; ok {
			row.TurnaroundTime = formatTick(v)
		}
		rows = append(rows, row)
	}
	return rows
}

// formatTick renders a simulated-time value without trailing zeros, so whole
// ticks read as integers.
func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
