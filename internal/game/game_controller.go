package game

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/pkg/responses"
)

// GameController handles game, team and statistics HTTP requests.
type GameController struct {
	service *GameService
}

func NewGameController(service *GameService) *GameController {
	return &GameController{service: service}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

type CreateGameRequest struct {
	Name *string `json:"name"`
}

// CreateGame godoc
// @Summary Create a game under a match (owner only)
// @Tags Games
// @Accept json
// @Produce json
// @Param id path uint true "Match ID"
// @Param game body CreateGameRequest false "Optional game name"
// @Success 201 {object} responses.SuccessResponse{data=Game}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{id}/games [post]
func (gc *GameController) CreateGame(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	matchID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateGameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	g, err := gc.service.CreateGame(matchID, req.Name, userID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Game created successfully", g)
}

// DeleteGame godoc
// @Summary Delete a game with its teams and statistics (owner only)
// @Tags Games
// @Produce json
// @Param id path uint true "Game ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /games/{id} [delete]
func (gc *GameController) DeleteGame(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := gc.service.DeleteGame(gameID, userID); err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Game deleted successfully", nil)
}

type TeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTeam godoc
// @Summary Add a team to a game (owner only)
// @Tags Games
// @Accept json
// @Produce json
// @Param id path uint true "Game ID"
// @Param team body TeamRequest true "Team name"
// @Success 201 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /games/{id}/teams [post]
func (gc *GameController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := gc.service.CreateTeam(gameID, req.Name, userID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", t)
}

// RenameTeam godoc
// @Summary Rename a team (owner only)
// @Tags Games
// @Accept json
// @Produce json
// @Param id path uint true "Team ID"
// @Param team body TeamRequest true "New team name"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id} [put]
func (gc *GameController) RenameTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	teamID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := gc.service.RenameTeam(teamID, req.Name, userID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", t)
}

// DeleteTeam godoc
// @Summary Delete a team and its statistics rows (owner only)
// @Tags Games
// @Produce json
// @Param id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{id} [delete]
func (gc *GameController) DeleteTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	teamID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := gc.service.DeleteTeam(teamID, userID); err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

type AddTeamParticipantRequest struct {
	TeamID     uint  `json:"team_id" binding:"required"`
	PlayerID   uint  `json:"player_id" binding:"required"`
	PositionID *uint `json:"position_id"`
}

// AddTeamParticipant godoc
// @Summary Place a match participant on a team (owner only)
// @Tags Games
// @Accept json
// @Produce json
// @Param participant body AddTeamParticipantRequest true "Placement data"
// @Success 201 {object} responses.SuccessResponse{data=TeamParticipant}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 409 {object} responses.ErrorResponse "Not a match participant, or already placed in the game"
// @Security ApiKeyAuth
// @Router /team-participants [post]
func (gc *GameController) AddTeamParticipant(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req AddTeamParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	tp, err := gc.service.AddParticipant(req.TeamID, req.PlayerID, req.PositionID, userID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Participant added to team successfully", tp)
}

// UpdateStatistics godoc
// @Summary Update a team participant's counters or position (owner only)
// @Description Accepts any non-empty subset of goals, assists, saves, yellow_cards, red_cards and position_id.
// @Tags Games
// @Accept json
// @Produce json
// @Param id path uint true "Team participant ID"
// @Param stats body StatsPatch true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=TeamParticipant}
// @Failure 400 {object} responses.ErrorResponse "No updatable fields supplied"
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /team-participants/{id} [put]
func (gc *GameController) UpdateStatistics(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	tpID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch StatsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	tp, err := gc.service.UpdateStats(tpID, userID, patch)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Statistics updated successfully", tp)
}

// RemoveTeamParticipant godoc
// @Summary Remove a participant from a team (owner only)
// @Tags Games
// @Produce json
// @Param id path uint true "Team participant ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /team-participants/{id} [delete]
func (gc *GameController) RemoveTeamParticipant(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	tpID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := gc.service.RemoveFromTeam(tpID, userID); err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Participant removed from team successfully", nil)
}

// GameSummary godoc
// @Summary Per-team totals and player lines for one game
// @Tags Games
// @Produce json
// @Param id path uint true "Game ID"
// @Success 200 {object} responses.SuccessResponse{data=GameSummary}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /games/{id}/summary [get]
func (gc *GameController) GameSummary(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := gc.service.SummaryByGame(gameID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Summary retrieved successfully", summary)
}

// MatchSummary godoc
// @Summary Aggregated summary across every game of a match
// @Tags Games
// @Produce json
// @Param id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchSummary}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{id}/summary [get]
func (gc *GameController) MatchSummary(c *gin.Context) {
	matchID, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := gc.service.SummaryByMatch(matchID)
	if err != nil {
		responses.SendAppError(c, err, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Summary retrieved successfully", summary)
}
