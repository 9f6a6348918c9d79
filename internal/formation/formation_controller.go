package formation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/pkg/responses"
)

// FormationController handles team formation HTTP requests.
type FormationController struct {
	service *FormationService
}

func NewFormationController(service *FormationService) *FormationController {
	return &FormationController{service: service}
}

func matchIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

type ManualFormationRequest struct {
	TeamA []uint `json:"team_a"`
	TeamB []uint `json:"team_b"`
}

// SetManual godoc
// @Summary Replace the formation with an explicit split (owner only)
// @Description Every listed user must hold an accepted invite for the match.
// @Tags Formation
// @Accept json
// @Produce json
// @Param id path uint true "Match ID"
// @Param formation body ManualFormationRequest true "User IDs per side"
// @Success 200 {object} responses.SuccessResponse{data=Formation}
// @Failure 400 {object} responses.ErrorResponse "Cancelled match, empty split, or unconfirmed user"
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{id}/formation/manual [post]
func (fc *FormationController) SetManual(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	var req ManualFormationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	f, err := fc.service.SetManual(matchID, req.TeamA, req.TeamB, userID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Formation saved successfully", f)
}

// SetAuto godoc
// @Summary Shuffle confirmed players into two balanced sides (owner only)
// @Tags Formation
// @Produce json
// @Param id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Formation}
// @Failure 400 {object} responses.ErrorResponse "Cancelled match or no confirmed players"
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{id}/formation/auto [post]
func (fc *FormationController) SetAuto(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	f, err := fc.service.SetAuto(matchID, userID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Formation generated successfully", f)
}

// GetFormation godoc
// @Summary Current formation grouped by side, with user display fields
// @Tags Formation
// @Produce json
// @Param id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Formation}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{id}/formation [get]
func (fc *FormationController) GetFormation(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	f, err := fc.service.Get(matchID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Formation retrieved successfully", f)
}

// ClearFormation godoc
// @Summary Remove the match's formation (owner only)
// @Tags Formation
// @Produce json
// @Param id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{id}/formation [delete]
func (fc *FormationController) ClearFormation(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	if err := fc.service.Clear(matchID, userID); err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Formation cleared successfully", nil)
}
