package formation

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/peladeiro-app/api/internal/middleware"
)

// FormationRoutes sets up team formation routes.
func FormationRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	service := NewFormationService(db)
	controller := NewFormationController(service)

	matches := router.Group("/matches")
	matches.Use(mw.Auth(jwtSecret, db))
	{
		matches.POST("/:id/formation/manual", controller.SetManual)
		matches.POST("/:id/formation/auto", controller.SetAuto)
		matches.GET("/:id/formation", controller.GetFormation)
		matches.DELETE("/:id/formation", controller.ClearFormation)
	}
}
