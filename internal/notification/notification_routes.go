package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/peladeiro-app/api/internal/middleware"
)

// NotificationRoutes sets up the notification history routes.
func NotificationRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewNotificationRepository(db)
	controller := NewNotificationController(repo)

	notifications := router.Group("/notifications")
	notifications.Use(mw.Auth(jwtSecret, db))
	{
		notifications.GET("", controller.ListMine)
		notifications.PUT("/:id/seen", controller.MarkSeen)
	}
}
