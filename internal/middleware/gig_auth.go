package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/gig-marketplace-api/internal/constants"
	apierrors "github.com/yukikurage/gig-marketplace-api/internal/errors"
	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"github.com/yukikurage/gig-marketplace-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RequireGigOwner loads the gig named by the given path parameter and only lets
// its owner through. Must run after RequireAuth.
func RequireGigOwner(gigRepo repository.GigRepository, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		gigID, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid gig ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		gig, err := gigRepo.FindByID(c.Request.Context(), gigID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Gig not found")
			} else {
				zap.L().Error("failed to load gig", zap.Uint64("gig_id", gigID), zap.Error(err))
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if gig.OwnerID != userID {
			apierrors.Forbidden(c, "Only the gig owner can view its bids")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyGig, gig)
		c.Next()
	}
}

// GetGig retrieves the gig stored by RequireGigOwner
func GetGig(c *gin.Context) (*models.Gig, bool) {
	value, exists := c.Get(constants.ContextKeyGig)
	if !exists {
		return nil, false
	}
	gig, ok := value.(*models.Gig)
	return gig, ok
}
