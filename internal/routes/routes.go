package routes

import (
	"github.com/gin-gonic/gin"

	"speakerbureau/internal/authz"
	"speakerbureau/internal/handlers"
	"speakerbureau/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	dealHandler *handlers.DealHandler,
	projectHandler *handlers.ProjectHandler,
	proposalHandler *handlers.ProposalHandler,
	firmOfferHandler *handlers.FirmOfferHandler,
	reviewHandler *handlers.SpeakerReviewHandler,
	speakerHandler *handlers.SpeakerHandler,
	vendorHandler *handlers.VendorHandler,
	inquiryHandler *handlers.InquiryHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/inquiries", inquiryHandler.Create)
	r.GET("/roster", speakerHandler.Roster)

	// token-gated external views; the URL token is the credential
	r.GET("/speaker-review/:token", reviewHandler.ViewOffer)
	r.POST("/speaker-review/:token/respond", reviewHandler.RespondOffer)
	r.GET("/proposal-view/:token", reviewHandler.ViewProposal)

	// ---- protected
	r.Use(middleware.AuthMiddleware())
	r.Use(middleware.ReadOnlyGuard())

	api := r.Group("/api")

	// USERS (admin)
	users := api.Group("/users", middleware.RequireRoles(authz.RoleAdmin))
	{
		users.POST("/", userHandler.Create)
		users.GET("/", userHandler.List)
		users.GET("/:id", userHandler.GetByID)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// DEALS
	deals := api.Group("/deals")
	{
		deals.POST("/", dealHandler.Create)
		deals.GET("/", dealHandler.List)
		deals.GET("/:id", dealHandler.GetByID)
		deals.PUT("/:id", dealHandler.Update)
		deals.PATCH("/:id", dealHandler.Update)
		deals.DELETE("/:id", dealHandler.Delete)
		deals.GET("/:id/events", dealHandler.Events)
	}

	// PROJECTS (created by deal synthesis only)
	projects := api.Group("/projects")
	{
		projects.GET("/", projectHandler.List)
		projects.GET("/:id", projectHandler.GetByID)
		projects.PUT("/:id", projectHandler.Update)
		projects.PATCH("/:id", projectHandler.Update)
	}

	// PROPOSALS
	proposals := api.Group("/proposals")
	{
		proposals.POST("/", proposalHandler.Create)
		proposals.GET("/", proposalHandler.List)
		proposals.GET("/:id", proposalHandler.GetByID)
		proposals.PUT("/:id", proposalHandler.Update)
		proposals.DELETE("/:id", proposalHandler.Delete)
		proposals.POST("/:id/send", proposalHandler.Send)
		proposals.POST("/:id/status", proposalHandler.UpdateStatus)
	}

	// FIRM OFFERS
	offers := api.Group("/firm-offers")
	{
		offers.POST("/", firmOfferHandler.Create)
		offers.GET("/", firmOfferHandler.List)
		offers.GET("/:id", firmOfferHandler.GetByID)
		offers.PATCH("/:id", firmOfferHandler.Update)
		offers.POST("/:id/send", firmOfferHandler.Send)
		offers.GET("/:id/pdf", firmOfferHandler.DownloadPDF)
	}

	// SPEAKERS
	speakers := api.Group("/speakers")
	{
		speakers.POST("/", speakerHandler.Create)
		speakers.GET("/", speakerHandler.List)
		speakers.GET("/:id", speakerHandler.GetByID)
		speakers.PUT("/:id", speakerHandler.Update)
		speakers.DELETE("/:id", speakerHandler.Delete)
	}

	// VENDORS
	vendors := api.Group("/vendors")
	{
		vendors.POST("/", vendorHandler.Create)
		vendors.GET("/", vendorHandler.List)
		vendors.GET("/:id", vendorHandler.GetByID)
		vendors.PUT("/:id", vendorHandler.Update)
		vendors.DELETE("/:id", vendorHandler.Delete)
	}

	// REPORTS (audit/ops/mgmt/admin)
	reports := api.Group("/reports",
		middleware.RequireRoles(authz.RoleAudit, authz.RoleOperations, authz.RoleManagement, authz.RoleAdmin),
	)
	{
		reports.GET("/summary", reportHandler.GetSummary)
	}

	return r
}
