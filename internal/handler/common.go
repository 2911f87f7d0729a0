package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cpusim/schedview/internal/response"
	"github.com/cpusim/schedview/internal/service"
	"github.com/cpusim/schedview/internal/session"
)

// lookupSession resolves the :id path parameter against the manager. On
// failure it writes the error response and returns false.
func lookupSession(c *gin.Context, manager *session.Manager) (*session.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}
	sess, ok := manager.Get(id)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return nil, false
	}
	return sess, true
}

// failFlow maps an orchestration error to the API response. Remote-call
// failures carry the failure reason so the user sees why the run or quiz
// action failed; state conflicts map to 409.
func failFlow(c *gin.Context, err error, remoteCode response.ErrCode) {
	switch {
	case errors.Is(err, service.ErrUnknownAlgorithm):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownAlgorithm)
	case errors.Is(err, session.ErrRunInFlight):
		response.Fail(c, http.StatusConflict, response.ErrRunInFlight)
	case errors.Is(err, session.ErrQuizActive):
		response.Fail(c, http.StatusConflict, response.ErrQuizActive)
	case errors.Is(err, session.ErrQuizBusy), errors.Is(err, session.ErrQuizNotStartable):
		response.Fail(c, http.StatusConflict, response.ErrQuizBusy)
	case errors.Is(err, session.ErrQuizNotAwaiting):
		response.Fail(c, http.StatusConflict, response.ErrQuizNotAwaiting)
	case errors.Is(err, service.ErrSuperseded):
		response.Fail(c, http.StatusConflict, response.ErrResultSuperseded)
	default:
		response.FailWithMessage(c, http.StatusBadGateway, remoteCode, response.GetMessage(remoteCode)+" "+err.Error())
	}
}
