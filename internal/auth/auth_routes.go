package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/peladeiro-app/api/config"
	"github.com/peladeiro-app/api/internal/mailer"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/user"
)

// AuthRoutes sets up the public authentication routes.
func AuthRoutes(router *gin.RouterGroup, db *gorm.DB, mail mailer.Mailer, cfg *config.Config) {
	controller := NewAuthController(
		user.NewUserRepository(db),
		player.NewPlayerRepository(db),
		NewResetRepository(db),
		mail,
		cfg,
	)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)
		authGroup.POST("/login", controller.Login)
		authGroup.POST("/forgot-password", controller.ForgotPassword)
		authGroup.POST("/reset-password", controller.ResetPassword)
	}
}
