package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/gig-marketplace-api/internal/middleware"
	"github.com/yukikurage/gig-marketplace-api/internal/repository"
)

// Handlers groups the API handlers mounted under /api
type Handlers struct {
	Auth   *AuthHandler
	Gig    *GigHandler
	Bid    *BidHandler
	Events *EventHandler
}

// RegisterRoutes mounts the API. Session middleware must already be installed
// on r.
func RegisterRoutes(r gin.IRouter, h Handlers, gigRepo repository.GigRepository) {
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
		}

		// Gig routes (browsing is public)
		gigs := api.Group("/gigs")
		{
			gigs.GET("", h.Gig.ListGigs)
			gigs.GET("/:id", h.Gig.GetGig)
			gigs.POST("", middleware.RequireAuth(), h.Gig.CreateGig)
		}

		// Bid routes (protected)
		bids := api.Group("/bids")
		bids.Use(middleware.RequireAuth())
		{
			bids.POST("", h.Bid.CreateBid)
			bids.GET("/user/my-bids", h.Bid.ListMyBids)
			bids.GET("/user/my-gigs", h.Gig.ListMyGigs)
			// Gin requires one wildcard name per segment: :id is the gig ID
			// on GET and the bid ID on hire.
			bids.GET("/:id", middleware.RequireGigOwner(gigRepo, "id"), h.Bid.ListBidsForGig)
			bids.PATCH("/:id/hire", h.Bid.Hire)
		}

		api.GET("/events", middleware.RequireAuth(), h.Events.Stream)
	}
}
