package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/pkg/responses"
	"github.com/peladeiro-app/api/utils"
)

// UserController handles profile HTTP requests.
type UserController struct {
	users   UserRepository
	players player.PlayerRepository
}

func NewUserController(users UserRepository, players player.PlayerRepository) *UserController {
	return &UserController{users: users, players: players}
}

// Profile is the authenticated user's view of their own account.
type Profile struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Image     string   `json:"image"`
	Positions []string `json:"positions"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Image       *string `json:"image"`
	DeviceToken *string `json:"device_token"`
	PositionIDs []uint  `json:"position_ids"`
}

// GetMe godoc
// @Summary Authenticated user's profile with preferred positions
// @Tags Users
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Security ApiKeyAuth
// @Router /users/me [get]
func (uc *UserController) GetMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	u, err := uc.users.GetByID(userID)
	if err != nil || u == nil {
		responses.InternalServerError(c, "Failed to load profile")
		return
	}
	positions, err := uc.users.GetPositionNames(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load profile")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		Positions: positions,
	})
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Description Renaming also propagates to the user's linked player record.
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me [put]
func (uc *UserController) UpdateMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	u, err := uc.users.GetByID(userID)
	if err != nil || u == nil {
		responses.InternalServerError(c, "Failed to load profile")
		return
	}

	if req.Name != nil && *req.Name != "" {
		u.Name = *req.Name
	}
	if req.Image != nil {
		u.Image = *req.Image
	}
	if req.DeviceToken != nil {
		u.DeviceToken = *req.DeviceToken
	}

	if err := uc.users.Update(u); err != nil {
		responses.InternalServerError(c, "Failed to update profile")
		return
	}
	if req.Name != nil && *req.Name != "" {
		if err := uc.players.RenameAccountPlayer(userID, u.Name); err != nil {
			responses.InternalServerError(c, "Failed to update profile")
			return
		}
	}
	if req.PositionIDs != nil {
		if err := uc.users.ReplacePositions(userID, req.PositionIDs); err != nil {
			responses.InternalServerError(c, "Failed to update positions")
			return
		}
	}

	positions, err := uc.users.GetPositionNames(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load profile")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		Positions: positions,
	})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags Users
// @Accept json
// @Produce json
// @Param passwords body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Current password is incorrect"
// @Security ApiKeyAuth
// @Router /users/me/password [put]
func (uc *UserController) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	u, err := uc.users.GetByID(userID)
	if err != nil || u == nil {
		responses.InternalServerError(c, "Failed to change password")
		return
	}
	if !utils.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		responses.BadRequest(c, "Current password is incorrect")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to change password")
		return
	}
	if err := uc.users.UpdatePassword(userID, hash); err != nil {
		responses.InternalServerError(c, "Failed to change password")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

// DeleteMe godoc
// @Summary Delete the authenticated user's account
// @Description Removes the account together with its player record, invites, participations, formation slots and notifications.
// @Tags Users
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /users/me [delete]
func (uc *UserController) DeleteMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	if err := uc.users.DeleteCascade(userID); err != nil {
		responses.InternalServerError(c, "Failed to delete account")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Account deleted successfully", nil)
}
