package api

import (
	"errors"
	"net/http"

	reqdto "presale-engine/internal/handler/dto/request"
	resdto "presale-engine/internal/handler/dto/response"
	"presale-engine/internal/handler/httperr"
	"presale-engine/internal/handler/middleware"
	"presale-engine/internal/pkg/errs"
	"presale-engine/internal/usecase/commands"
	"presale-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MarketHandler struct {
	commands commands.ListingCommands
	queries  queries.MarketQueries
}

func NewMarketHandler(cmds commands.ListingCommands, qrys queries.MarketQueries) *MarketHandler {
	return &MarketHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Create listing
// @Description Offer confirmed slots for resale at a fixed ask price
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Listing request"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /listings [post]
func (h *MarketHandler) CreateListing(c *gin.Context) {
	sellerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	listing, err := h.commands.Create(c.Request.Context(), req.ToParams(), sellerID)
	if err != nil {
		if errors.Is(err, errs.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromListing(listing))
}

// @Summary Fill listing
// @Description Buy a listing at its ask price; exactly one buyer wins
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.TradeResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /listings/{id}/fill [post]
func (h *MarketHandler) FillListing(c *gin.Context) {
	buyerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID", nil)
		return
	}

	result, err := h.commands.Fill(c.Request.Context(), listingID, buyerID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrListingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
		case errors.Is(err, errs.ErrListingAlreadySold):
			httperr.AbortWithError(c, http.StatusConflict, err, "Listing already sold", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromFillResult(result))
}

// @Summary Project price history
// @Description Chronological per-slot trade prices for a project
// @Tags market
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} resdto.PricePointResponse
// @Failure 400 {object} httperr.Response
// @Router /projects/{id}/price-history [get]
func (h *MarketHandler) GetPriceHistory(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid project ID", nil)
		return
	}

	points, err := h.queries.PriceHistory(c.Request.Context(), projectID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	responses := make([]resdto.PricePointResponse, 0, len(points))
	for _, p := range points {
		responses = append(responses, resdto.FromPricePoint(p))
	}
	c.JSON(http.StatusOK, responses)
}
