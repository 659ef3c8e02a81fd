package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelintrips/registration-api/internal/dto"
	"github.com/travelintrips/registration-api/internal/service"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
	"github.com/travelintrips/registration-api/pkg/response"
)

// The client identifies itself with this header; it stands in for the
// per-browser storage the original UI used for its language choice.
const clientIDHeader = "X-Client-ID"

// LocaleHandler exposes locale preference and translation table endpoints.
type LocaleHandler struct {
	locales *service.LocaleService
}

// NewLocaleHandler creates a new handler.
func NewLocaleHandler(locales *service.LocaleService) *LocaleHandler {
	return &LocaleHandler{locales: locales}
}

// GetLocale godoc
// @Summary Get the client's locale
// @Description Returns the stored locale for the client, or the default
// @Tags Localization
// @Produce json
// @Param X-Client-ID header string false "Client identifier"
// @Success 200 {object} response.Envelope
// @Router /preferences/locale [get]
func (h *LocaleHandler) GetLocale(c *gin.Context) {
	locale := h.locales.Resolve(c.Request.Context(), c.GetHeader(clientIDHeader))
	response.JSON(c, http.StatusOK, gin.H{"locale": locale})
}

// SetLocale godoc
// @Summary Set the client's locale
// @Description Persists the locale choice for the client
// @Tags Localization
// @Accept json
// @Produce json
// @Param X-Client-ID header string true "Client identifier"
// @Param payload body dto.SetLocaleRequest true "Locale choice"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /preferences/locale [put]
func (h *LocaleHandler) SetLocale(c *gin.Context) {
	var req dto.SetLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "locale is required"))
		return
	}

	if err := h.locales.Set(c.Request.Context(), c.GetHeader(clientIDHeader), req.Locale); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"locale": req.Locale})
}

// Translations godoc
// @Summary Get the translation table
// @Description Returns the full string table for a locale
// @Tags Localization
// @Produce json
// @Param locale query string false "Locale (en or id)"
// @Success 200 {object} response.Envelope
// @Router /i18n/translations [get]
func (h *LocaleHandler) Translations(c *gin.Context) {
	locale := c.Query("locale")
	if locale == "" {
		locale = h.locales.Resolve(c.Request.Context(), c.GetHeader(clientIDHeader))
	}
	response.JSON(c, http.StatusOK, gin.H{
		"locale":  locale,
		"strings": h.locales.Table(locale),
	})
}
