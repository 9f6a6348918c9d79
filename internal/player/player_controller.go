package player

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peladeiro-app/api/internal/match"
	"github.com/peladeiro-app/api/internal/middleware"
	"github.com/peladeiro-app/api/pkg/responses"
)

var errPlayerNotFound = errors.New("player not found")

// PlayerController handles player and participation HTTP requests.
type PlayerController struct {
	repo    PlayerRepository
	matches match.MatchRepository
}

func NewPlayerController(repo PlayerRepository, matches match.MatchRepository) *PlayerController {
	return &PlayerController{repo: repo, matches: matches}
}

type CreateExternalPlayerRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// CreateExternal godoc
// @Summary Create a guest player
// @Description Always inserts a new guest player attributed to the requester.
// @Tags Players
// @Accept json
// @Produce json
// @Param player body CreateExternalPlayerRequest true "Guest player data"
// @Success 201 {object} responses.SuccessResponse{data=Player}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /players/external [post]
func (pc *PlayerController) CreateExternal(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var req CreateExternalPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	p, err := pc.repo.CreateExternalPlayer(req.Name, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to create player")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Player created successfully", p)
}

type AddPlayerToMatchRequest struct {
	PlayerID *uint   `json:"player_id"`
	Name     string  `json:"name"`
	Note     *string `json:"note"`
}

// AddToMatch godoc
// @Summary Add a player to a match (owner only)
// @Description Attaches an existing player, or creates a guest from the given name, then ensures participation. Idempotent for the same (match, player).
// @Tags Players
// @Accept json
// @Produce json
// @Param id path uint true "Match ID"
// @Param player body AddPlayerToMatchRequest true "Existing player id or a guest name"
// @Success 201 {object} responses.SuccessResponse{data=MatchParticipant}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{id}/players [post]
func (pc *PlayerController) AddToMatch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	var req AddPlayerToMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.PlayerID == nil && req.Name == "" {
		responses.BadRequest(c, "Either player_id or name is required")
		return
	}

	m, err := pc.matches.GetByID(uint(matchID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}
	if m.OwnerID != userID {
		responses.SendError(c, http.StatusForbidden, "Only the match owner can add players")
		return
	}

	var participant *MatchParticipant
	err = pc.repo.WithTransaction(func(repo PlayerRepository) error {
		playerID := req.PlayerID
		if playerID == nil {
			guest, err := repo.CreateExternalPlayer(req.Name, userID)
			if err != nil {
				return err
			}
			playerID = &guest.ID
		} else {
			p, err := repo.GetByID(*playerID)
			if err != nil {
				return err
			}
			if p == nil {
				return errPlayerNotFound
			}
		}
		mp, _, err := repo.EnsureParticipant(uint(matchID), *playerID, req.Note)
		participant = mp
		return err
	})
	if err == errPlayerNotFound {
		responses.NotFound(c, "Player")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to add player to match")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Player added to match", participant)
}

// ListAvailable godoc
// @Summary List players available for invitation to a match
// @Description Excludes the owner, current participants and users with a pending or accepted invite. Optional case-insensitive name filter.
// @Tags Players
// @Produce json
// @Param id path uint true "Match ID"
// @Param name query string false "Name substring"
// @Success 200 {object} responses.SuccessResponse{data=[]AvailablePlayer}
// @Security ApiKeyAuth
// @Router /matches/{id}/players/available [get]
func (pc *PlayerController) ListAvailable(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}
	m, err := pc.matches.GetByID(uint(matchID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}

	players, err := pc.repo.ListAvailableForMatch(uint(matchID), c.Query("name"))
	if err != nil {
		responses.InternalServerError(c, "Failed to list players")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Players retrieved successfully", players)
}

// ListForMatch godoc
// @Summary List every player related to a match
// @Description Participants and invitees alike, each annotated with the most recent invite status or "manual".
// @Tags Players
// @Produce json
// @Param id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=[]MatchPlayer}
// @Security ApiKeyAuth
// @Router /matches/{id}/players [get]
func (pc *PlayerController) ListForMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}
	players, err := pc.repo.ListAllForMatch(uint(matchID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list players")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Players retrieved successfully", players)
}

// RemoveFromMatch godoc
// @Summary Remove a participant from a match
// @Description Allowed for the match owner or for the participant removing themselves.
// @Tags Players
// @Produce json
// @Param id path uint true "Match participant ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /participants/{id} [delete]
func (pc *PlayerController) RemoveFromMatch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid participant ID")
		return
	}

	mp, err := pc.repo.GetParticipantByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve participant")
		return
	}
	if mp == nil {
		responses.NotFound(c, "Participant")
		return
	}

	m, err := pc.matches.GetByID(mp.MatchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}

	allowed := m.OwnerID == userID
	if !allowed {
		p, err := pc.repo.GetByID(mp.PlayerID)
		if err != nil {
			responses.InternalServerError(c, "Failed to retrieve player")
			return
		}
		allowed = p != nil && p.UserID != nil && *p.UserID == userID
	}
	if !allowed {
		responses.SendError(c, http.StatusForbidden, "Only the match owner or the participant may remove")
		return
	}

	if err := pc.repo.RemoveParticipant(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to remove participant")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Participant removed successfully", nil)
}
