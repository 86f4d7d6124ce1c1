package handlers

import (
	"errors"
	"net/http"

	"solar_advisor/internal/recommend"

	"github.com/gin-gonic/gin"
)

const errRecommendQuery = "invalid query: "

type recommendQuery struct {
	Budget  *float64 `form:"budget" binding:"required,gt=0"`
	Climate string   `form:"climate" binding:"required"`
	Limit   int      `form:"limit" binding:"omitempty,min=1,max=10"`
}

// @Summary      Panel recommendations
// @Description  Top panels by efficiency within budget. The preferred type follows the budget
// @Description  (<20000 Thin-film, <35000 Polycrystalline, else Monocrystalline); when nothing
// @Description  matches, the climate and then the type filter are dropped.
// @Tags         recommendations
// @Produce      json
// @Param        budget   query     number   true   "Budget in rupees"  example(25000)
// @Param        climate  query     string   true   "Hot, Sunny, Temperate or Cloudy"
// @Param        limit    query     integer  false  "Panels to return (1..10, default 3)"
// @Success      200      {object}  recommend.Result
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/v1/recommendations [get]
// @Security     BearerAuth
func (h *Handler) getRecommendations(c *gin.Context) {
	var q recommendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errRecommendQuery + err.Error()})
		return
	}

	res, err := h.services.Recommend(recommend.Query{Budget: *q.Budget, Climate: q.Climate, Limit: q.Limit})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, recommend.ErrInvalidBudget), errors.Is(err, recommend.ErrUnknownClimate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, recommend.ErrNoPanels):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to build recommendations", "recommend_failed", err)
	}
}
