package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/peladeiro-app/api/internal/middleware"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewMatchRepository(db)
	controller := NewMatchController(repo)

	matches := router.Group("/matches")
	matches.Use(mw.Auth(jwtSecret, db))
	{
		matches.POST("", controller.CreateMatch)
		matches.GET("/created", controller.ListCreated)
		matches.GET("/played", controller.ListPlayed)
		matches.GET("/search", controller.SearchByCity)
		matches.GET("/:id", controller.GetMatch)
		matches.PUT("/:id", controller.UpdateMatch)
		matches.POST("/:id/cancel", controller.CancelMatch)
	}
}
