package handlers

import (
	"errors"
	"net/http"

	"solar_advisor/internal/features"
	"solar_advisor/internal/models"
	"solar_advisor/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errPredict         = "failed to compute advisory"
	errLatest          = "failed to load latest prediction"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// predictRequest bounds mirror the input widgets of the dashboard. Pointers let
// zero be a valid value while still requiring the field.
type predictRequest struct {
	TemperatureC      *float64 `json:"temperature_c" binding:"required,min=-10,max=50"`
	HumidityPct       *float64 `json:"humidity_pct" binding:"required,min=0,max=100"`
	DustLevel         string   `json:"dust_level" binding:"required,oneof=Low Medium High"`
	DaysSinceCleaning *int     `json:"days_since_cleaning" binding:"required,min=0,max=365"`
	PanelAgeYears     *int     `json:"panel_age_years" binding:"required,min=0,max=30"`
}

func (r predictRequest) reading() models.Reading {
	return models.Reading{
		TemperatureC:      *r.TemperatureC,
		HumidityPct:       *r.HumidityPct,
		DustLevel:         models.DustLevel(r.DustLevel),
		DaysSinceCleaning: *r.DaysSinceCleaning,
		PanelAgeYears:     *r.PanelAgeYears,
	}
}

// PredictRequest is an exported model for Swagger docs of the predict payload.
type PredictRequest struct {
	// Ambient temperature in Celsius (-10..50)
	TemperatureC float64 `json:"temperature_c" example:"25"`
	// Relative humidity in percent (0..100)
	HumidityPct float64 `json:"humidity_pct" example:"60"`
	// Dust level. Allowed: Low, Medium, High
	DustLevel string `json:"dust_level" example:"Low"`
	// Days since the panels were last cleaned (0..365)
	DaysSinceCleaning int `json:"days_since_cleaning" example:"7"`
	// Panel age in years (0..30)
	PanelAgeYears int `json:"panel_age_years" example:"3"`
}

// isClientAdviseError reports whether err was caused by the submitted reading.
func isClientAdviseError(err error) bool {
	return errors.Is(err, service.ErrInvalidReading) || errors.Is(err, features.ErrSchemaMismatch)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Predict efficiency and advise
// @Description  Encodes the reading, predicts panel efficiency and returns maintenance alerts.
// @Tags         efficiency
// @Accept       json
// @Produce      json
// @Param        body  body      PredictRequest  true  "Site reading"
// @Success      200   {object}  models.AdvisoryReport
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/efficiency/predict [post]
// @Security     BearerAuth
func (h *Handler) predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	r := req.reading()
	rep, err := h.services.Advise(c.Request.Context(), r, service.SourceAPI)
	if err != nil {
		if isClientAdviseError(err) {
			if h.log != nil {
				h.log.Infow("prediction_rejected", "err", err, "dust_level", r.DustLevel)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errPredict, "prediction_failed", err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// @Summary      Latest prediction
// @Tags         efficiency
// @Produce      json
// @Success      200  {object}  models.PredictionRecord
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/efficiency/latest [get]
// @Security     BearerAuth
func (h *Handler) getLatest(c *gin.Context) {
	rec, err := h.services.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoPredictions) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLatest, "latest_prediction_failed", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Model information
// @Description  Feature schema, tree count, artifact checksum and alert thresholds.
// @Tags         model
// @Produce      json
// @Success      200  {object}  service.ModelDetails
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/model [get]
// @Security     BearerAuth
func (h *Handler) getModel(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.ModelDetails())
}
