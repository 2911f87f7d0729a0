package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cpusim/schedview/internal/model"
	"github.com/cpusim/schedview/internal/render"
	"github.com/cpusim/schedview/internal/response"
	"github.com/cpusim/schedview/internal/session"
)

// SessionHandler manages page-session lifecycle and the consolidated view.
type SessionHandler struct {
	manager *session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// SessionView is the consolidated session state a client renders from. The
// mode invariant is enforced when it is built: Display always reflects the
// single result the active mode allows, so a quiz session never leaks the
// suppressed normal-mode result.
type SessionView struct {
	SessionID         uuid.UUID           `json:"session_id"`
	Mode              session.Mode        `json:"mode"`
	Loading           bool                `json:"loading"`
	SelectedAlgorithm model.Algorithm     `json:"selected_algorithm,omitempty"`
	QuizPhase         session.QuizPhase   `json:"quiz_phase"`
	QuizLoading       bool                `json:"quiz_loading"`
	Processes         []model.Process     `json:"processes"`
	Display           render.DisplayModel `json:"display"`
	QuizData          *model.QuizData     `json:"quiz_data,omitempty"`
	QuizResult        *model.QuizResult   `json:"quiz_result,omitempty"`
}

// buildView renders the session snapshot through the timeline renderer.
func buildView(v session.View) SessionView {
	view := SessionView{
		SessionID:         v.ID,
		Mode:              v.Mode,
		Loading:           v.Loading,
		SelectedAlgorithm: v.Selected,
		QuizPhase:         v.QuizPhase,
		QuizLoading:       v.QuizLoading,
		Processes:         v.Processes,
	}

	switch v.Mode {
	case session.ModeQuiz:
		view.QuizData = v.QuizData
		view.QuizResult = v.QuizResult
		if v.QuizResult != nil {
			// Graded: reveal the engine's ground-truth timeline.
			view.Display = render.Build(&v.QuizResult.ActualResult)
		} else {
			view.Display = render.Build(nil)
		}
	default:
		view.Display = render.Build(v.NormalResult)
	}
	return view
}

// CreateSession godoc
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sess := h.manager.Create()
	response.Success(c, http.StatusCreated, buildView(sess.Snapshot()))
}

// GetSession godoc
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, ok := lookupSession(c, h.manager)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, buildView(sess.Snapshot()))
}

// DeleteSession godoc
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	h.manager.Delete(id)
	response.Success(c, http.StatusOK, gin.H{"message": "session deleted"})
}
