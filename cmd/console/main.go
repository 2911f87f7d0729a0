// Command console is a terminal client for the remote scheduling engine. It
// loads a process batch from CSV, runs one simulation and renders the
// timeline and metrics as tables, or runs an interactive quiz round.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cpusim/schedview/internal/config"
	"github.com/cpusim/schedview/internal/engine"
	"github.com/cpusim/schedview/internal/model"
	"github.com/cpusim/schedview/internal/render"
)

var ErrInvalidRow = errors.New("invalid process row")

func main() {
	var (
		processFile = flag.String("processes", "", "CSV file of processes: burst,priority,arrival per row")
		algorithm   = flag.String("algorithm", "FCFS", "scheduling algorithm: FCFS, SJF, SRTF, PP or RR")
		quantum     = flag.Int("quantum", model.DefaultQuantum, "time quantum (RR only)")
		quizMode    = flag.Bool("quiz", false, "run an interactive quiz round instead of a simulation")
	)
	flag.Parse()

	cfg := config.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	client := engine.NewClient(cfg, log)
	ctx := context.Background()

	if *quizMode {
		if err := runQuiz(ctx, client); err != nil {
			log.Fatal().Err(err).Msg("quiz failed")
		}
		return
	}

	if err := runSimulation(ctx, client, *processFile, *algorithm, *quantum); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

func runSimulation(ctx context.Context, client *engine.Client, processFile, rawAlgorithm string, quantum int) error {
	alg, err := model.ParseAlgorithm(strings.ToUpper(rawAlgorithm))
	if err != nil {
		return fmt.Errorf("%w (supported: %v)", err, model.Algorithms())
	}

	if processFile == "" {
		return errors.New("-processes is required")
	}
	f, err := os.Open(processFile)
	if err != nil {
		return err
	}
	defer f.Close()

	processes, err := loadProcesses(f)
	if err != nil {
		return err
	}

	if err := client.SubmitProcesses(ctx, processes); err != nil {
		return err
	}
	result, err := client.RunSimulation(ctx, alg, model.NormalizeQuantum(alg, quantum))
	if err != nil {
		return err
	}

	fmt.Printf("Simulation: %s\n\n", alg.DisplayName())
	render.WriteText(os.Stdout, render.Build(result))
	return nil
}

func runQuiz(ctx context.Context, client *engine.Client) error {
	quiz, err := client.GenerateQuiz(ctx)
	if err != nil {
		return err
	}

	render.WriteQuizChallenge(os.Stdout, quiz)

	answer, err := readAnswer(os.Stdin)
	if err != nil {
		return err
	}
	if err := answer.Validate(); err != nil {
		return err
	}

	result, err := client.SubmitQuizAnswers(ctx, quiz.QuizID, *answer)
	if err != nil {
		return err
	}

	fmt.Println()
	render.WriteQuizComparison(os.Stdout, result)
	fmt.Println("\nActual schedule:")
	render.WriteText(os.Stdout, render.Build(&result.ActualResult))
	return nil
}

// readAnswer prompts for the three predicted metrics. Fractional input is
// kept as typed; nothing is rounded before submission.
func readAnswer(r io.Reader) (*model.QuizAnswer, error) {
	scanner := bufio.NewScanner(r)

	switches, err := promptInt(scanner, "Context switches: ")
	if err != nil {
		return nil, err
	}
	waitTime, err := promptFloat(scanner, "Average waiting time: ")
	if err != nil {
		return nil, err
	}
	turnaroundTime, err := promptFloat(scanner, "Average turnaround time: ")
	if err != nil {
		return nil, err
	}

	return &model.QuizAnswer{
		ContextSwitches:       switches,
		AverageWaitingTime:    waitTime,
		AverageTurnaroundTime: turnaroundTime,
	}, nil
}

func promptInt(scanner *bufio.Scanner, prompt string) (int, error) {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return 0, errors.New("no input")
	}
	return strconv.Atoi(strings.TrimSpace(scanner.Text()))
}

func promptFloat(scanner *bufio.Scanner, prompt string) (float64, error) {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return 0, errors.New("no input")
	}
	return strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
}

// loadProcesses reads burst,priority,arrival rows. Pids are assigned 1..N in
// file order, matching what the engine does on submission.
func loadProcesses(r io.Reader) ([]model.Process, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	processes := make([]model.Process, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: line %d has %d fields, want 3", ErrInvalidRow, i+1, len(row))
		}
		burst, err := parseField(row[0], i)
		if err != nil {
			return nil, err
		}
		priority, err := parseField(row[1], i)
		if err != nil {
			return nil, err
		}
		arrival, err := parseField(row[2], i)
		if err != nil {
			return nil, err
		}
		processes = append(processes, model.Process{
			PID:         i + 1,
			BurstTime:   burst,
			Priority:    priority,
			ArrivalTime: arrival,
		})
	}
	return processes, nil
}

func parseField(raw string, line int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: line %d: %q is not a non-negative integer", ErrInvalidRow, line+1, raw)
	}
	return n, nil
}
