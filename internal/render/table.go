package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/cpusim/schedview/internal/model"
)

// WriteText renders a DisplayModel as console tables.
func WriteText(w io.Writer, dm DisplayModel) {
	if dm.Empty {
		fmt.Fprintln(w, EmptyMessage)
		return
	}

	fmt.Fprintln(w, "Performance metrics")
	metrics := tablewriter.NewWriter(w)
	metrics.SetHeader([]string{"Avg Waiting Time", "Avg Turnaround Time", "Context Switches"})
	metrics.Append([]string{
		dm.Metrics.AverageWaitingTime,
		dm.Metrics.AverageTurnaroundTime,
		strconv.Itoa(dm.Metrics.ContextSwitches),
	})
	metrics.Render()

	fmt.Fprintln(w, "\nTimeline")
	timeline := tablewriter.NewWriter(w)
	timeline.SetHeader([]string{"Time", "Process", "Event", "Details"})
	for _, ev := range dm.Events {
		pid := ""
		if ev.Category != CategoryIdle {
			pid = fmt.Sprintf("P%d", ev.PID)
		}
		timeline.Append([]string{
			strconv.FormatFloat(ev.Time, 'f', -1, 64),
			pid,
			ev.Label,
			ev.Detail,
		})
	}
	timeline.Render()

	if len(dm.ProcessRows) == 0 {
		fmt.Fprintln(w, "\nNo per-process metrics available")
		return
	}

	fmt.Fprintln(w, "\nPer-process metrics")
	perProcess := tablewriter.NewWriter(w)
	perProcess.SetHeader([]string{"Process", "Completion", "Waiting", "Turnaround"})
	for _, row := range dm.ProcessRows {
		perProcess.Append([]string{
			fmt.Sprintf("P%d", row.PID),
			row.CompletionTime,
			row.WaitingTime,
			row.TurnaroundTime,
		})
	}
	perProcess.Render()
}

// WriteQuizComparison renders a graded quiz answer sheet.
func WriteQuizComparison(w io.Writer, result *model.QuizResult) {
	if result.AllCorrect() {
		fmt.Fprintln(w, "Perfect score! All answers correct.")
	} else {
		fmt.Fprintln(w, "Quiz results")
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Question", "Your Answer", "Actual", "Result"})
	table.Append([]string{
		"Context Switches",
		strconv.Itoa(result.UserContextSwitches),
		strconv.Itoa(result.ActualResult.TotalContextSwitches),
		mark(result.ContextSwitchesCorrect),
	})
	table.Append([]string{
		"Avg Waiting Time",
		fmt.Sprintf("%.2f", result.UserAverageWaitingTime),
		FormatMetric(result.ActualResult.AverageWaitingTime),
		mark(result.AverageWaitingTimeCorrect),
	})
	table.Append([]string{
		"Avg Turnaround Time",
		fmt.Sprintf("%.2f", result.UserAverageTurnaroundTime),
		FormatMetric(result.ActualResult.AverageTurnaroundTime),
		mark(result.AverageTurnaroundTimeCorrect),
	})
	table.Render()
}

// WriteQuizChallenge renders the process table a quiz asks about.
func WriteQuizChallenge(w io.Writer, quiz *model.QuizData) {
	fmt.Fprintf(w, "Quiz: schedule these processes with %s", quiz.AlgorithmDisplayName)
	if quiz.Quantum != nil {
		fmt.Fprintf(w, " (Quantum = %d)", *quiz.Quantum)
	}
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Process", "Burst", "Priority", "Arrival"})
	for _, p := range quiz.Processes {
		table.Append([]string{
			fmt.Sprintf("P%d", p.PID),
			strconv.Itoa(p.BurstTime),
			strconv.Itoa(p.Priority),
			strconv.Itoa(p.ArrivalTime),
		})
	}
	table.Render()
}

func mark(correct bool) string {
	if correct {
		return "correct"
	}
	return "wrong"
}
