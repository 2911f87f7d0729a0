package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpusim/schedview/internal/model"
	"github.com/cpusim/schedview/internal/render"
	"github.com/cpusim/schedview/internal/response"
	"github.com/cpusim/schedview/internal/service"
	"github.com/cpusim/schedview/internal/session"
	"github.com/cpusim/schedview/internal/validator"
)

// QuizHandler drives the quiz state machine.
type QuizHandler struct {
	manager *session.Manager
	quiz    *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(manager *session.Manager, quiz *service.QuizService) *QuizHandler {
	return &QuizHandler{manager: manager, quiz: quiz}
}

// StartQuiz godoc
// POST /api/v1/sessions/:id/quiz/start
// POST /api/v1/sessions/:id/quiz/again
// Enters quiz mode and generates a challenge. "Again" from a graded quiz is
// the same transition; the prior quiz data and result are discarded first.
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	sess, ok := lookupSession(c, h.manager)
	if !ok {
		return
	}

	quiz, err := h.quiz.Start(c.Request.Context(), sess)
	if err != nil {
		failFlow(c, err, response.ErrQuizFailed)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// SubmitAnswers godoc
// POST /api/v1/sessions/:id/quiz/submit
// Answers are validated structurally at this boundary: all three fields
// present and non-negative, with fractional precision preserved. A malformed
// answer never reaches the network.
func (h *QuizHandler) SubmitAnswers(c *gin.Context) {
	sess, ok := lookupSession(c, h.manager)
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.quiz.Submit(c.Request.Context(), sess, req.Answer())
	if err != nil {
		failFlow(c, err, response.ErrQuizFailed)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"result":  result,
		"display": render.Build(&result.ActualResult),
	})
}

// ExitQuiz godoc
// POST /api/v1/sessions/:id/quiz/exit
// Unconditional: discards quiz state from any phase and returns to normal
// mode, where the previous simulation result reappears unchanged.
func (h *QuizHandler) ExitQuiz(c *gin.Context) {
	sess, ok := lookupSession(c, h.manager)
	if !ok {
		return
	}

	h.quiz.Exit(sess)
	response.Success(c, http.StatusOK, buildView(sess.Snapshot()))
}
