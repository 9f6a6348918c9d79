package match

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/pkg/responses"
)

// MatchController handles match-related HTTP requests.
type MatchController struct {
	repo MatchRepository
}

func NewMatchController(repo MatchRepository) *MatchController {
	return &MatchController{repo: repo}
}

type CreateMatchRequest struct {
	Location     string   `json:"location" binding:"required,min=2,max=200"`
	Street       *string  `json:"street"`
	Neighborhood *string  `json:"neighborhood"`
	Number       *string  `json:"number"`
	CityID       *uint    `json:"city_id"`
	Open         bool     `json:"open"`
	Date         string   `json:"date" binding:"required"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      *string  `json:"end_time"`
	MatchTypeID  *uint    `json:"match_type_id"`
	Fee          *float64 `json:"fee"`
}

// CreateMatch godoc
// @Summary Create a match
// @Description Creates a match owned by the authenticated user, always in "aguardando" status.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body CreateMatchRequest true "Match data"
// @Success 201 {object} responses.SuccessResponse{data=Match}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	m := Match{
		Location:     req.Location,
		Street:       req.Street,
		Neighborhood: req.Neighborhood,
		Number:       req.Number,
		CityID:       req.CityID,
		OwnerID:      userID,
		Open:         req.Open,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		MatchTypeID:  req.MatchTypeID,
		Status:       StatusAwaiting, // callers cannot pick an initial status
		Fee:          req.Fee,
	}
	if err := mc.repo.Create(&m); err != nil {
		responses.InternalServerError(c, "Failed to create match")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match created successfully", m)
}

// GetMatch godoc
// @Summary Get a match with city/state/type names
// @Tags Matches
// @Produce json
// @Param id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchDetail}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}
	detail, err := mc.repo.GetDetailed(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match")
		return
	}
	if detail == nil {
		responses.NotFound(c, "Match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match retrieved successfully", detail)
}

// UpdateMatch godoc
// @Summary Update a match (owner only)
// @Description Applies a partial update. An empty payload returns the current row.
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path uint true "Match ID"
// @Param patch body Patch true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 404 {object} responses.ErrorResponse "Not found or not the owner"
// @Security ApiKeyAuth
// @Router /matches/{id} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	m, err := mc.repo.UpdateByOwner(uint(id), userID, patch)
	if err != nil {
		responses.InternalServerError(c, "Failed to update match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match updated successfully", m)
}

// CancelMatch godoc
// @Summary Cancel a match (owner only)
// @Tags Matches
// @Produce json
// @Param id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 404 {object} responses.ErrorResponse "Not found or not the owner"
// @Security ApiKeyAuth
// @Router /matches/{id}/cancel [post]
func (mc *MatchController) CancelMatch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	m, err := mc.repo.CancelByOwner(uint(id), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to cancel match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match cancelled successfully", m)
}

// ListCreated godoc
// @Summary List matches created by the authenticated user
// @Tags Matches
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Match}
// @Security ApiKeyAuth
// @Router /matches/created [get]
func (mc *MatchController) ListCreated(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	matches, err := mc.repo.ListCreatedBy(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list matches")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Matches retrieved successfully", matches)
}

// ListPlayed godoc
// @Summary List matches the authenticated user attended
// @Tags Matches
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Match}
// @Security ApiKeyAuth
// @Router /matches/played [get]
func (mc *MatchController) ListPlayed(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	matches, err := mc.repo.ListPlayedBy(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list matches")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Matches retrieved successfully", matches)
}

// SearchByCity godoc
// @Summary Search matches by city name substring
// @Tags Matches
// @Produce json
// @Param city query string true "City name fragment"
// @Success 200 {object} responses.SuccessResponse{data=[]Match}
// @Security ApiKeyAuth
// @Router /matches/search [get]
func (mc *MatchController) SearchByCity(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		responses.BadRequest(c, "Query parameter 'city' is required")
		return
	}
	matches, err := mc.repo.ListByCityName(city)
	if err != nil {
		responses.InternalServerError(c, "Failed to search matches")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Matches retrieved successfully", matches)
}
