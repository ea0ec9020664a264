package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/gig-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/gig-marketplace-api/internal/errors"
	"github.com/yukikurage/gig-marketplace-api/internal/middleware"
	"github.com/yukikurage/gig-marketplace-api/internal/services"
	"go.uber.org/zap"
)

// BidHandler serves bidding and hiring
type BidHandler struct {
	bidService  *services.BidService
	hireService *services.HireService
}

// NewBidHandler creates a new BidHandler
func NewBidHandler(bidService *services.BidService, hireService *services.HireService) *BidHandler {
	return &BidHandler{
		bidService:  bidService,
		hireService: hireService,
	}
}

// CreateBid submits a bid on an open gig
func (h *BidHandler) CreateBid(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateBidRequest struct {
		GigID   uint64   `json:"gig_id" binding:"required"`
		Message string   `json:"message" binding:"required"`
		Price   *float64 `json:"price" binding:"required"`
	}

	var req CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Please provide gig_id, message and price")
		return
	}

	bid, err := h.bidService.CreateBid(c.Request.Context(), services.CreateBidInput{
		GigID:        req.GigID,
		FreelancerID: userID,
		Message:      req.Message,
		Price:        *req.Price,
	})
	if err != nil {
		respondBidError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBidDTO(*bid))
}

// ListBidsForGig returns a gig's bids to its owner. RequireGigOwner has
// already loaded the gig and checked ownership.
func (h *BidHandler) ListBidsForGig(c *gin.Context) {
	gig, ok := middleware.GetGig(c)
	if !ok {
		apierrors.InternalError(c, "Gig not found in context")
		return
	}

	bids, err := h.bidService.ListBidsForGig(c.Request.Context(), gig.ID, gig.OwnerID)
	if err != nil {
		respondBidError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBidDTOs(bids))
}

// Hire hires the bid's freelancer, assigning the gig and rejecting the rest
func (h *BidHandler) Hire(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	bidID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid bid ID")
		return
	}

	result, err := h.hireService.Hire(c.Request.Context(), services.HireInput{
		BidID:   bidID,
		ActorID: userID,
	})
	if err != nil {
		respondBidError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HireResponse{
		Message: "Freelancer hired successfully",
		Bid:     dto.ToBidDTO(*result.Bid),
		Gig:     dto.ToGigDTO(*result.Gig),
	})
}

// ListMyBids returns the caller's bids with their gigs
func (h *BidHandler) ListMyBids(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	bids, err := h.bidService.ListBidsForFreelancer(c.Request.Context(), userID)
	if err != nil {
		respondBidError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBidDTOs(bids))
}

func respondBidError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMessageRequired),
		errors.Is(err, services.ErrNegativePrice):
		apierrors.BadRequest(c, err.Error())
	case services.IsConflict(err):
		apierrors.BusinessConflict(c, err.Error())
	case errors.Is(err, services.ErrGigNotFound):
		apierrors.NotFound(c, "Gig not found")
	case errors.Is(err, services.ErrBidNotFound):
		apierrors.NotFound(c, "Bid not found")
	case errors.Is(err, services.ErrNotGigOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		zap.L().Error("bid request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
