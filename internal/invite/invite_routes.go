package invite

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/internal/notification"
)

// InviteRoutes sets up all invitation routes.
func InviteRoutes(router *gin.RouterGroup, db *gorm.DB, notifier notification.Sender, jwtSecret string) {
	service := NewInviteService(db, notifier)
	controller := NewInviteController(service)

	invites := router.Group("/invites")
	invites.Use(mw.Auth(jwtSecret, db))
	{
		invites.POST("", controller.CreateInvite)
		invites.GET("", controller.ListMine)
		invites.POST("/:id/accept", controller.AcceptInvite)
		invites.POST("/:id/decline", controller.DeclineInvite)
		invites.POST("/:id/cancel", controller.CancelInvite)
	}

	matches := router.Group("/matches")
	matches.Use(mw.Auth(jwtSecret, db))
	{
		matches.GET("/:id/invites", controller.ListByMatch)
	}
}
