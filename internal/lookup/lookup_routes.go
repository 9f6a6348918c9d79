package lookup

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LookupRoutes registers the public reference-table routes.
func LookupRoutes(router *gin.RouterGroup, db *gorm.DB) {
	repo := NewLookupRepository(db)
	controller := NewLookupController(repo)

	router.GET("/states", controller.ListStates)
	router.GET("/states/:state_id/cities", controller.ListCities)
	router.GET("/match-types", controller.ListMatchTypes)
	router.GET("/positions", controller.ListPositions)
}
