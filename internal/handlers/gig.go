package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/gig-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/gig-marketplace-api/internal/errors"
	"github.com/yukikurage/gig-marketplace-api/internal/middleware"
	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"github.com/yukikurage/gig-marketplace-api/internal/services"
	"github.com/yukikurage/gig-marketplace-api/internal/utils"
	"go.uber.org/zap"
)

// GigHandler serves gig browsing and posting
type GigHandler struct {
	gigService *services.GigService
}

// NewGigHandler creates a new GigHandler
func NewGigHandler(gigService *services.GigService) *GigHandler {
	return &GigHandler{
		gigService: gigService,
	}
}

// ListGigs returns a page of gigs, newest first
func (h *GigHandler) ListGigs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListGigsInput{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		gigStatus := models.GigStatus(strings.ToLower(status))
		input.Status = &gigStatus
	}

	gigs, total, err := h.gigService.ListGigs(c.Request.Context(), input)
	if err != nil {
		respondGigError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GigListResponse{
		Gigs: dto.ToGigDTOs(gigs),
		Pagination: utils.NewPaginationResponse(params, total),
	})
}

// GetGig returns a single gig
func (h *GigHandler) GetGig(c *gin.Context) {
	gigID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid gig ID")
		return
	}

	gig, err := h.gigService.GetGig(c.Request.Context(), gigID)
	if err != nil {
		respondGigError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGigDTO(*gig))
}

// CreateGig posts a new open gig owned by the caller
func (h *GigHandler) CreateGig(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateGigRequest struct {
		Title       string   `json:"title" binding:"required,max=255"`
		Description string   `json:"description" binding:"required"`
		Budget      *float64 `json:"budget" binding:"required"`
	}

	var req CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Please provide title, description and budget")
		return
	}

	gig, err := h.gigService.CreateGig(c.Request.Context(), services.CreateGigInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      *req.Budget,
	})
	if err != nil {
		respondGigError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGigDTO(*gig))
}

// ListMyGigs returns the gigs the caller posted
func (h *GigHandler) ListMyGigs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	gigs, err := h.gigService.ListGigsForOwner(c.Request.Context(), userID)
	if err != nil {
		respondGigError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGigDTOs(gigs))
}

func respondGigError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrNegativeBudget),
		errors.Is(err, services.ErrInvalidGigStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGigNotFound):
		apierrors.NotFound(c, "Gig not found")
	default:
		zap.L().Error("gig request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
