package game

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/peladeiro-app/api/internal/middleware"
)

// GameRoutes sets up game, team and statistics routes.
func GameRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	service := NewGameService(db)
	controller := NewGameController(service)

	matches := router.Group("/matches")
	matches.Use(mw.Auth(jwtSecret, db))
	{
		matches.POST("/:id/games", controller.CreateGame)
		matches.GET("/:id/summary", controller.MatchSummary)
	}

	games := router.Group("/games")
	games.Use(mw.Auth(jwtSecret, db))
	{
		games.DELETE("/:id", controller.DeleteGame)
		games.POST("/:id/teams", controller.CreateTeam)
		games.GET("/:id/summary", controller.GameSummary)
	}

	teams := router.Group("/teams")
	teams.Use(mw.Auth(jwtSecret, db))
	{
		teams.PUT("/:id", controller.RenameTeam)
		teams.DELETE("/:id", controller.DeleteTeam)
	}

	teamParticipants := router.Group("/team-participants")
	teamParticipants.Use(mw.Auth(jwtSecret, db))
	{
		teamParticipants.POST("", controller.AddTeamParticipant)
		teamParticipants.PUT("/:id", controller.UpdateStatistics)
		teamParticipants.DELETE("/:id", controller.RemoveTeamParticipant)
	}
}
