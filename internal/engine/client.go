// Package engine is the typed client for the remote scheduling engine. It
// carries no business logic: it translates local value objects to and from the
// engine's wire payloads and reports non-2xx statuses as failures.
//
// Process submission uses the positional-triple contract
// (POST /simulation/processes with [[burst, priority, arrival], ...]); the
// legacy keyed-JSON shape is not supported.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cpusim/schedview/internal/config"
	"github.com/cpusim/schedview/internal/model"
)

// StatusError reports a non-2xx engine response. The gateway does not
// interpret status-specific semantics beyond success/failure.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: engine returned status %d", e.Op, e.Status)
}

// Client wraps the four remote endpoints.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient builds a client against cfg.EngineBaseURL with the configured
// bounded timeout.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.EngineBaseURL,
		httpc:   &http.Client{Timeout: cfg.EngineTimeout},
		log:     log.With().Str("component", "engine_client").Logger(),
	}
}

// SubmitProcesses sends the ordered batch as positional triples. The engine
// assigns pids 1..N in the order received, so batch order is preserved
// exactly. An empty batch is forwarded as-is; the engine decides validity.
func (c *Client) SubmitProcesses(ctx context.Context, processes []model.Process) error {
	payload := make([][3]int, 0, len(processes))
	for _, p := range processes {
		payload = append(payload, [3]int{p.BurstTime, p.Priority, p.ArrivalTime})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("submit processes: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/simulation/processes", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit processes: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("submit processes: %w", err)
	}
	defer drainAndClose(resp.Body)

	if !is2xx(resp.StatusCode) {
		return &StatusError{Op: "submit processes", Status: resp.StatusCode}
	}

	c.log.Debug().Int("count", len(processes)).Msg("processes submitted")
	return nil
}

// RunSimulation requests a run of the last-submitted batch. The quantum is
// required on every call but only semantically meaningful for RR; callers are
// expected to have normalized it already.
func (c *Client) RunSimulation(ctx context.Context, algorithm model.Algorithm, quantum int) (*model.SimulationResult, error) {
	q := url.Values{}
	q.Set("algorithm", string(algorithm))
	q.Set("quantum", strconv.Itoa(quantum))

	var result model.SimulationResult
	if err := c.postJSON(ctx, "run simulation", "/simulation/simulate?"+q.Encode(), &result); err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("algorithm", string(algorithm)).
		Int("quantum", quantum).
		Int("events", len(result.Timeline)).
		Msg("simulation completed")
	return &result, nil
}

// GenerateQuiz asks the engine for a fresh quiz challenge.
func (c *Client) GenerateQuiz(ctx context.Context) (*model.QuizData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simulation/quiz/generate", nil)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	defer drainAndClose(resp.Body)

	if !is2xx(resp.StatusCode) {
		return nil, &StatusError{Op: "generate quiz", Status: resp.StatusCode}
	}

	var quiz model.QuizData
	if err := json.NewDecoder(resp.Body).Decode(&quiz); err != nil {
		return nil, fmt.Errorf("generate quiz: decode: %w", err)
	}

	c.log.Debug().Str("quiz_id", quiz.QuizID).Str("algorithm", quiz.Algorithm).Msg("quiz generated")
	return &quiz, nil
}

// SubmitQuizAnswers forwards the user's answers for remote grading. Fractional
// precision of the time answers is preserved on the wire.
func (c *Client) SubmitQuizAnswers(ctx context.Context, quizID string, answer model.QuizAnswer) (*model.QuizResult, error) {
	q := url.Values{}
	q.Set("quizId", quizID)
	q.Set("contextSwitches", strconv.Itoa(answer.ContextSwitches))
	q.Set("avgWaitTime", strconv.FormatFloat(answer.AverageWaitingTime, 'f', -1, 64))
	q.Set("avgTurnaroundTime", strconv.FormatFloat(answer.AverageTurnaroundTime, 'f', -1, 64))

	var result model.QuizResult
	if err := c.postJSON(ctx, "submit quiz answers", "/simulation/quiz/submit?"+q.Encode(), &result); err != nil {
		return nil, err
	}

	c.log.Debug().Str("quiz_id", quizID).Bool("all_correct", result.AllCorrect()).Msg("quiz graded")
	return &result, nil
}

// postJSON issues a bodyless POST and decodes the JSON response into out.
func (c *Client) postJSON(ctx context.Context, op, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer drainAndClose(resp.Body)

	if !is2xx(resp.StatusCode) {
		return &StatusError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// drainAndClose reads the remainder of a body so the connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
