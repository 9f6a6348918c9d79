package player

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/peladeiro-app/api/internal/match"
	mw "github.com/peladeiro-app/api/internal/middleware"
)

// PlayerRoutes sets up player and participation routes.
func PlayerRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewPlayerRepository(db)
	controller := NewPlayerController(repo, match.NewMatchRepository(db))

	players := router.Group("/players")
	players.Use(mw.Auth(jwtSecret, db))
	{
		players.POST("/external", controller.CreateExternal)
	}

	matches := router.Group("/matches")
	matches.Use(mw.Auth(jwtSecret, db))
	{
		matches.POST("/:id/players", controller.AddToMatch)
		matches.GET("/:id/players", controller.ListForMatch)
		matches.GET("/:id/players/available", controller.ListAvailable)
	}

	participants := router.Group("/participants")
	participants.Use(mw.Auth(jwtSecret, db))
	{
		participants.DELETE("/:id", controller.RemoveFromMatch)
	}
}
