package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cpusim/schedview/internal/model"
	"github.com/cpusim/schedview/internal/response"
	"github.com/cpusim/schedview/internal/session"
	"github.com/cpusim/schedview/internal/validator"
)

// ProcessHandler edits a session's process batch. The batch owns the pid
// invariant (contiguous 1..N, renumbered on delete); handlers only validate
// and forward.
type ProcessHandler struct {
	manager *session.Manager
}

// NewProcessHandler creates a new ProcessHandler.
func NewProcessHandler(manager *session.Manager) *ProcessHandler {
	return &ProcessHandler{manager: manager}
}

// ReplaceProcesses godoc
// PUT /api/v1/sessions/:id/processes
func (h *ProcessHandler) ReplaceProcesses(c *gin.Context) {
	sess, ok := lookupSession(c, h.manager)
	if !ok {
		return
	}

	var req model.ReplaceProcessesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	processes := sess.ReplaceProcesses(req.Processes)
	response.Success(c, http.StatusOK, gin.H{"processes": processes})
}

// AddProcess godoc
// POST /api/v1/sessions/:id/processes
func (h *ProcessHandler) AddProcess(c *gin.Context) {
	sess, ok := lookupSession(c, h.manager)
	if !ok {
		return
	}

	var req model.ProcessInput
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	p := sess.AddProcess(*req.BurstTime, *req.Priority, *req.ArrivalTime)
	response.Success(c, http.StatusCreated, gin.H{"process": p})
}

// RemoveProcess godoc
// DELETE /api/v1/sessions/:id/processes/:pid
func (h *ProcessHandler) RemoveProcess(c *gin.Context) {
	sess, ok := lookupSession(c, h.manager)
	if !ok {
		return
	}

	pid, err := strconv.Atoi(c.Param("pid"))
	if err != nil || pid < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !sess.RemoveProcess(pid) {
		response.Fail(c, http.StatusNotFound, response.ErrProcessNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"processes": sess.Processes()})
}
