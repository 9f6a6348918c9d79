package lookup

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peladeiro-app/api/pkg/responses"
)

// LookupController serves the static reference tables.
type LookupController struct {
	repo LookupRepository
}

func NewLookupController(repo LookupRepository) *LookupController {
	return &LookupController{repo: repo}
}

// ListStates godoc
// @Summary List states
// @Tags Lookups
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]State}
// @Router /states [get]
func (lc *LookupController) ListStates(c *gin.Context) {
	states, err := lc.repo.ListStates()
	if err != nil {
		responses.InternalServerError(c, "Failed to list states")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "States retrieved successfully", states)
}

// ListCities godoc
// @Summary List cities of a state
// @Tags Lookups
// @Produce json
// @Param state_id path uint true "State ID"
// @Success 200 {object} responses.SuccessResponse{data=[]City}
// @Router /states/{state_id}/cities [get]
func (lc *LookupController) ListCities(c *gin.Context) {
	stateID, err := strconv.ParseUint(c.Param("state_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid state ID")
		return
	}
	cities, err := lc.repo.ListCitiesByState(uint(stateID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list cities")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Cities retrieved successfully", cities)
}

// ListMatchTypes godoc
// @Summary List match types
// @Tags Lookups
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]MatchType}
// @Router /match-types [get]
func (lc *LookupController) ListMatchTypes(c *gin.Context) {
	types, err := lc.repo.ListMatchTypes()
	if err != nil {
		responses.InternalServerError(c, "Failed to list match types")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match types retrieved successfully", types)
}

// ListPositions godoc
// @Summary List playing positions
// @Tags Lookups
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Position}
// @Router /positions [get]
func (lc *LookupController) ListPositions(c *gin.Context) {
	positions, err := lc.repo.ListPositions()
	if err != nil {
		responses.InternalServerError(c, "Failed to list positions")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Positions retrieved successfully", positions)
}
