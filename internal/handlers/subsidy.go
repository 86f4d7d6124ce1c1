package handlers

import (
	"errors"
	"net/http"

	"solar_advisor/internal/subsidy"

	"github.com/gin-gonic/gin"
)

// @Summary      Subsidy regions
// @Tags         subsidies
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, regions"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/subsidies [get]
// @Security     BearerAuth
func (h *Handler) listSubsidyRegions(c *gin.Context) {
	regions := h.services.Regions()
	c.JSON(http.StatusOK, gin.H{
		"count":   len(regions),
		"regions": regions,
	})
}

// @Summary      Subsidy schemes of a region
// @Description  Region names are matched case-insensitively.
// @Tags         subsidies
// @Produce      json
// @Param        region  path      string  true  "Region name"  example(Maharashtra)
// @Success      200     {object}  subsidy.Region
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/subsidies/{region} [get]
// @Security     BearerAuth
func (h *Handler) getSubsidy(c *gin.Context) {
	region, err := h.services.Lookup(c.Param("region"))
	if err != nil {
		if errors.Is(err, subsidy.ErrRegionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load subsidy", "subsidy_lookup_failed", err)
		return
	}
	c.JSON(http.StatusOK, region)
}
