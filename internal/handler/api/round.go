package api

import (
	"errors"
	"net/http"

	reqdto "presale-engine/internal/handler/dto/request"
	resdto "presale-engine/internal/handler/dto/response"
	"presale-engine/internal/handler/httperr"
	"presale-engine/internal/pkg/errs"
	"presale-engine/internal/usecase/commands"
	"presale-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoundHandler struct {
	commands commands.RoundCommands
	queries  queries.RoundQueries
}

func NewRoundHandler(cmds commands.RoundCommands, qrys queries.RoundQueries) *RoundHandler {
	return &RoundHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Create funding round
// @Description Open a new presale round for a project (admin)
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoundRequest true "Round definition"
// @Success 201 {object} resdto.CreatedRoundResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /rounds [post]
func (h *RoundHandler) CreateRound(c *gin.Context) {
	var req reqdto.CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	rd, err := h.commands.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		if errors.Is(err, errs.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedRoundResponse{
		ID:     rd.ID(),
		Status: rd.Status().String(),
	})
}

// @Summary Get round
// @Description Round details with live progress and display status
// @Tags rounds
// @Produce json
// @Param id path string true "Round ID"
// @Success 200 {object} resdto.RoundResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rounds/{id} [get]
func (h *RoundHandler) GetRound(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid round ID", nil)
		return
	}

	view, err := h.queries.GetRound(c.Request.Context(), id)
	if err != nil {
		h.respondRoundError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoundView(view))
}

// @Summary Get round progress
// @Tags rounds
// @Produce json
// @Param id path string true "Round ID"
// @Success 200 {object} resdto.ProgressDetail
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rounds/{id}/progress [get]
func (h *RoundHandler) GetProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid round ID", nil)
		return
	}

	summary, err := h.queries.GetProgress(c.Request.Context(), id)
	if err != nil {
		h.respondRoundError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromProgress(summary))
}

// @Summary Close round
// @Description Evaluate the round outcome and, on failure, refund every held deposit (admin)
// @Tags rounds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Round ID"
// @Success 200 {object} resdto.CloseRoundResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rounds/{id}/close [post]
func (h *RoundHandler) CloseRound(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid round ID", nil)
		return
	}

	result, err := h.commands.Close(c.Request.Context(), id)
	if err != nil {
		h.respondRoundError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCloseResult(result))
}

func (h *RoundHandler) respondRoundError(c *gin.Context, err error) {
	if errors.Is(err, errs.ErrRoundNotFound) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Round not found", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
