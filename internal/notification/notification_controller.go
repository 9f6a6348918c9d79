package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/pkg/responses"
)

// NotificationController serves a user's notification history.
type NotificationController struct {
	repo NotificationRepository
}

func NewNotificationController(repo NotificationRepository) *NotificationController {
	return &NotificationController{repo: repo}
}

// ListMine godoc
// @Summary List the authenticated user's notifications, newest first
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Notification}
// @Security ApiKeyAuth
// @Router /notifications [get]
func (nc *NotificationController) ListMine(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	notifications, err := nc.repo.ListByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list notifications")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notifications retrieved successfully", notifications)
}

// MarkSeen godoc
// @Summary Mark one of the authenticated user's notifications as seen
// @Tags Notifications
// @Produce json
// @Param id path uint true "Notification ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /notifications/{id}/seen [put]
func (nc *NotificationController) MarkSeen(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid notification ID")
		return
	}
	ok, err := nc.repo.MarkSeen(uint(id), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to update notification")
		return
	}
	if !ok {
		responses.NotFound(c, "Notification")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notification marked as seen", nil)
}
