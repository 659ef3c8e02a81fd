package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelintrips/registration-api/internal/dto"
	"github.com/travelintrips/registration-api/internal/models"
	"github.com/travelintrips/registration-api/internal/service"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
	"github.com/travelintrips/registration-api/pkg/response"
)

// DraftHandler wires HTTP endpoints to the wizard service.
type DraftHandler struct {
	wizard  *service.WizardService
	metrics *service.MetricsService
}

// NewDraftHandler creates a new handler.
func NewDraftHandler(wizard *service.WizardService, metrics *service.MetricsService) *DraftHandler {
	return &DraftHandler{wizard: wizard, metrics: metrics}
}

// Create godoc
// @Summary Start a registration draft
// @Description Creates an empty draft on the personal stage
// @Tags Registration
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /registration/drafts [post]
func (h *DraftHandler) Create(c *gin.Context) {
	state, err := h.wizard.CreateDraft(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordDraftOperation("create")
	response.Created(c, state)
}

// Get godoc
// @Summary Get a registration draft
// @Description Returns the wizard view of a draft
// @Tags Registration
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registration/drafts/{id} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	state, err := h.wizard.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state)
}

// SetFields godoc
// @Summary Patch draft fields
// @Description Applies a partial field update; validation is deferred to advance
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.SetFieldsRequest true "Field patch"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registration/drafts/{id}/fields [patch]
func (h *DraftHandler) SetFields(c *gin.Context) {
	var req dto.SetFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid field patch payload"))
		return
	}

	state, err := h.wizard.SetFields(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordDraftOperation("set_fields")
	response.JSON(c, http.StatusOK, state)
}

// SetRole godoc
// @Summary Select the registration role
// @Description Sets the role and recomputes the stage sequence
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.SetRoleRequest true "Role selection"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registration/drafts/{id}/role [put]
func (h *DraftHandler) SetRole(c *gin.Context) {
	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "role is required"))
		return
	}

	state, err := h.wizard.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordDraftOperation("set_role")
	response.JSON(c, http.StatusOK, state)
}

// Advance godoc
// @Summary Advance to the next stage
// @Description Validates the active stage and moves forward; a blocked stage returns the inline field errors
// @Tags Registration
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /registration/drafts/{id}/advance [post]
func (h *DraftHandler) Advance(c *gin.Context) {
	state, err := h.wizard.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, appErrors.ErrStageBlocked) && state != nil {
			h.metrics.RecordDraftOperation("advance_blocked")
			response.JSON(c, http.StatusUnprocessableEntity, state)
			return
		}
		response.Error(c, err)
		return
	}
	h.metrics.RecordDraftOperation("advance")
	response.JSON(c, http.StatusOK, state)
}

// Retreat godoc
// @Summary Go back one stage
// @Description Moves to the prior stage without validation
// @Tags Registration
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registration/drafts/{id}/retreat [post]
func (h *DraftHandler) Retreat(c *gin.Context) {
	state, err := h.wizard.Retreat(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordDraftOperation("retreat")
	response.JSON(c, http.StatusOK, state)
}

// StageFile godoc
// @Summary Stage a document
// @Description Stores the document bytes on the draft; nothing is uploaded until submission
// @Tags Registration
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Draft ID"
// @Param slot path string true "Document slot"
// @Param file formData file true "Document file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registration/drafts/{id}/files/{slot} [post]
func (h *DraftHandler) StageFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "a file form field is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to open uploaded file"))
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
		return
	}

	state, err := h.wizard.StageFile(
		c.Request.Context(),
		c.Param("id"),
		models.FileSlot(c.Param("slot")),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordDraftOperation("stage_file")
	response.JSON(c, http.StatusOK, state)
}
