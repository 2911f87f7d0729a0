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

// SimulationHandler triggers orchestrated runs.
type SimulationHandler struct {
	manager    *session.Manager
	simulation *service.SimulationService
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(manager *session.Manager, simulation *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{manager: manager, simulation: simulation}
}

// Simulate godoc
// POST /api/v1/sessions/:id/simulate
// Runs the two-phase submit→simulate protocol for the session's batch. While
// the run is in flight the session reports exactly one selected/loading
// algorithm; a concurrent trigger gets 409.
func (h *SimulationHandler) Simulate(c *gin.Context) {
	sess, ok := lookupSession(c, h.manager)
	if !ok {
		return
	}

	var req model.SimulateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.simulation.Run(c.Request.Context(), sess, model.Algorithm(req.Algorithm), req.Quantum)
	if err != nil {
		failFlow(c, err, response.ErrSimulationFailed)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"result":  result,
		"display": render.Build(result),
	})
}
