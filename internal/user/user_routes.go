package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/internal/player"
)

// UserRoutes sets up profile routes.
func UserRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	controller := NewUserController(NewUserRepository(db), player.NewPlayerRepository(db))

	users := router.Group("/users")
	users.Use(mw.Auth(jwtSecret, db))
	{
		users.GET("/me", controller.GetMe)
		users.PUT("/me", controller.UpdateMe)
		users.PUT("/me/password", controller.ChangePassword)
		users.DELETE("/me", controller.DeleteMe)
	}
}
