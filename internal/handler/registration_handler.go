package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelintrips/registration-api/internal/service"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
	"github.com/travelintrips/registration-api/pkg/response"
)

// RegistrationHandler exposes the submission endpoint.
type RegistrationHandler struct {
	registration *service.RegistrationService
	metrics      *service.MetricsService
}

// NewRegistrationHandler creates a new handler.
func NewRegistrationHandler(registration *service.RegistrationService, metrics *service.MetricsService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, metrics: metrics}
}

// Submit godoc
// @Summary Submit a registration draft
// @Description Uploads staged documents, creates the account, and writes profile rows. Partial profile failures are reported as warnings on a successful response.
// @Tags Registration
// @Produce json
// @Param id path string true "Draft ID"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /registration/drafts/{id}/submit [post]
func (h *RegistrationHandler) Submit(c *gin.Context) {
	result, err := h.registration.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.metrics.RecordSubmission(appErrors.FromError(err).Code)
		response.Error(c, err)
		return
	}

	h.metrics.RecordSubmission("success")
	if len(result.Warnings) > 0 {
		response.JSONWithWarnings(c, http.StatusCreated, result, result.Warnings)
		return
	}
	response.JSON(c, http.StatusCreated, result)
}
