package auth

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peladeiro-app/api/config"
	"github.com/peladeiro-app/api/internal/mailer"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/user"
	"github.com/peladeiro-app/api/pkg/responses"
	"github.com/peladeiro-app/api/pkg/token"
	"github.com/peladeiro-app/api/utils"
)

const resetCodeExpiryMinutes = 15

// AuthController handles registration, login and password recovery.
type AuthController struct {
	users   user.UserRepository
	players player.PlayerRepository
	resets  ResetRepository
	mail    mailer.Mailer
	cfg     *config.Config
}

func NewAuthController(users user.UserRepository, players player.PlayerRepository, resets ResetRepository, mail mailer.Mailer, cfg *config.Config) *AuthController {
	return &AuthController{users: users, players: players, resets: resets, mail: mail, cfg: cfg}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Image    string `json:"image"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// Register godoc
// @Summary Create an account
// @Description Registration also creates the user's linked player record.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := ac.users.GetByEmail(email)
	if err != nil {
		responses.InternalServerError(c, "Failed to register")
		return
	}
	if existing != nil {
		responses.Conflict(c, "Email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to register")
		return
	}

	u := &user.User{Name: req.Name, Email: email, PasswordHash: hash, Image: req.Image}
	if err := ac.users.Create(u); err != nil {
		responses.InternalServerError(c, "Failed to register")
		return
	}
	if _, err := ac.players.CreateAccountPlayer(u.ID, u.Name); err != nil {
		responses.InternalServerError(c, "Failed to register")
		return
	}

	jwt, err := token.Generate(u.ID, u.Email, ac.cfg.JWT.Secret, ac.cfg.JWT.ExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Failed to register")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "User registered successfully", AuthResponse{Token: jwt, User: u})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := ac.users.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		responses.InternalServerError(c, "Failed to log in")
		return
	}
	if u == nil || !utils.CheckPassword(u.PasswordHash, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	jwt, err := token.Generate(u.ID, u.Email, ac.cfg.JWT.Secret, ac.cfg.JWT.ExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Failed to log in")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", AuthResponse{Token: jwt, User: u})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
// @Summary Request a password reset code by email
// @Description Always answers 200 so the endpoint cannot be used to probe for accounts.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} responses.SuccessResponse
// @Router /auth/forgot-password [post]
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := ac.users.GetByEmail(email)
	if err == nil && u != nil {
		code := uuid.NewString()
		reset := &PasswordReset{
			Email:     email,
			Code:      code,
			ExpiresAt: time.Now().Add(resetCodeExpiryMinutes * time.Minute),
		}
		// A fresh request replaces any outstanding code for the account.
		if err := ac.resets.DeleteByEmail(email); err != nil {
			log.Printf("failed to revoke prior reset codes for %s: %v", email, err)
		} else if err := ac.resets.Create(reset); err != nil {
			log.Printf("failed to store password reset for %s: %v", email, err)
		} else if ac.mail != nil {
			body := "Use this code to reset your password: " + code + "\nIt expires in 15 minutes."
			if err := ac.mail.Send(c.Request.Context(), email, "Password recovery", body); err != nil {
				log.Printf("failed to mail password reset to %s: %v", email, err)
			}
		}
	}

	responses.SendSuccess(c, http.StatusOK, "If the email exists, a recovery code has been sent", nil)
}

type ResetPasswordRequest struct {
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ResetPassword godoc
// @Summary Set a new password using a recovery code
// @Description The code is single use; every outstanding code for the account is revoked.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Code and new password"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Unknown or expired code"
// @Router /auth/reset-password [post]
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	reset, err := ac.resets.GetValidByCode(req.Code)
	if err != nil {
		responses.InternalServerError(c, "Failed to reset password")
		return
	}
	if reset == nil {
		responses.BadRequest(c, "Invalid or expired recovery code")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to reset password")
		return
	}
	if err := ac.users.UpdatePasswordByEmail(reset.Email, hash); err != nil {
		responses.InternalServerError(c, "Failed to reset password")
		return
	}
	if err := ac.resets.DeleteByEmail(reset.Email); err != nil {
		log.Printf("failed to revoke reset codes for %s: %v", reset.Email, err)
	}

	responses.SendSuccess(c, http.StatusOK, "Password reset successfully", nil)
}
