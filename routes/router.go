package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/peladeiro-app/api/config"
	"github.com/peladeiro-app/api/internal/auth"
	"github.com/peladeiro-app/api/internal/formation"
	"github.com/peladeiro-app/api/internal/game"
	"github.com/peladeiro-app/api/internal/invite"
	"github.com/peladeiro-app/api/internal/lookup"
	"github.com/peladeiro-app/api/internal/mailer"
	"github.com/peladeiro-app/api/internal/match"
	"github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/internal/notification"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/user"
)

// SetupRoutes wires every domain route group onto a gin engine.
func SetupRoutes(db *gorm.DB, cfg *config.Config, mail mailer.Mailer) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMinute, time.Minute))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	notifier := notification.NewPushSender(db, user.NewUserRepository(db), cfg.Push.GatewayURL)

	api := r.Group("/api")
	auth.AuthRoutes(api, db, mail, cfg)
	lookup.LookupRoutes(api, db)
	user.UserRoutes(api, db, cfg.JWT.Secret)
	match.MatchRoutes(api, db, cfg.JWT.Secret)
	player.PlayerRoutes(api, db, cfg.JWT.Secret)
	invite.InviteRoutes(api, db, notifier, cfg.JWT.Secret)
	game.GameRoutes(api, db, cfg.JWT.Secret)
	formation.FormationRoutes(api, db, cfg.JWT.Secret)
	notification.NotificationRoutes(api, db, cfg.JWT.Secret)

	return r
}
