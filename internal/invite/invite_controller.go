package invite

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/pkg/responses"
)

// InviteController handles invitation HTTP requests.
type InviteController struct {
	service *InviteService
}

func NewInviteController(service *InviteService) *InviteController {
	return &InviteController{service: service}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

type CreateInviteRequest struct {
	MatchID uint `json:"match_id" binding:"required"`
	UserID  uint `json:"user_id" binding:"required"`
}

// CreateInvite godoc
// @Summary Invite a user to a match (owner only)
// @Tags Invites
// @Accept json
// @Produce json
// @Param invite body CreateInviteRequest true "Invite data"
// @Success 201 {object} responses.SuccessResponse{data=Invite}
// @Failure 403 {object} responses.ErrorResponse "Requester is not the match owner"
// @Failure 404 {object} responses.ErrorResponse "Match or user not found"
// @Failure 409 {object} responses.ErrorResponse "Pending invite or existing participation"
// @Security ApiKeyAuth
// @Router /invites [post]
func (ic *InviteController) CreateInvite(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	inv, err := ic.service.Create(req.MatchID, req.UserID, userID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Invite created successfully", inv)
}

// AcceptInvite godoc
// @Summary Accept a pending invite (invitee only)
// @Description Accepting also enrolls the invitee as a match participant.
// @Tags Invites
// @Produce json
// @Param id path uint true "Invite ID"
// @Success 200 {object} responses.SuccessResponse{data=Invite}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse "Invite not found or no longer pending"
// @Security ApiKeyAuth
// @Router /invites/{id}/accept [post]
func (ic *InviteController) AcceptInvite(c *gin.Context) {
	ic.transition(c, ic.service.Accept, "Invite accepted successfully")
}

// DeclineInvite godoc
// @Summary Decline a pending invite (invitee only)
// @Tags Invites
// @Produce json
// @Param id path uint true "Invite ID"
// @Success 200 {object} responses.SuccessResponse{data=Invite}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /invites/{id}/decline [post]
func (ic *InviteController) DeclineInvite(c *gin.Context) {
	ic.transition(c, ic.service.Decline, "Invite declined successfully")
}

// CancelInvite godoc
// @Summary Cancel a pending invite (owner only)
// @Tags Invites
// @Produce json
// @Param id path uint true "Invite ID"
// @Success 200 {object} responses.SuccessResponse{data=Invite}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /invites/{id}/cancel [post]
func (ic *InviteController) CancelInvite(c *gin.Context) {
	ic.transition(c, ic.service.Cancel, "Invite cancelled successfully")
}

func (ic *InviteController) transition(c *gin.Context, op func(uint, uint) (*Invite, error), message string) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid invite ID")
		return
	}

	inv, err := op(uint(id), userID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, message, inv)
}

// ListByMatch godoc
// @Summary List a match's invites with invitee display fields, newest first
// @Tags Invites
// @Produce json
// @Param id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=[]InviteWithUser}
// @Security ApiKeyAuth
// @Router /matches/{id}/invites [get]
func (ic *InviteController) ListByMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}
	invites, err := ic.service.ListByMatch(uint(matchID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list invites")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invites retrieved successfully", invites)
}

// ListMine godoc
// @Summary List the authenticated user's invitation history, newest first
// @Tags Invites
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Invite}
// @Security ApiKeyAuth
// @Router /invites [get]
func (ic *InviteController) ListMine(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	invites, err := ic.service.ListByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list invites")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invites retrieved successfully", invites)
}
