package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/travelintrips/registration-api/internal/i18n"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
)

type localeStore interface {
	GetLocale(ctx context.Context, clientID string) (string, error)
	SetLocale(ctx context.Context, clientID, locale string) error
}

// LocaleService resolves and persists per-client locale choices and serves
// the translation table.
type LocaleService struct {
	prefs         localeStore
	bundle        *i18n.Bundle
	logger        *zap.Logger
	defaultLocale string
}

// NewLocaleService constructs a LocaleService instance.
func NewLocaleService(prefs localeStore, bundle *i18n.Bundle, logger *zap.Logger, defaultLocale string) *LocaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !i18n.ValidLocale(defaultLocale) {
		defaultLocale = i18n.LocaleEnglish
	}
	return &LocaleService{prefs: prefs, bundle: bundle, logger: logger, defaultLocale: defaultLocale}
}

// Resolve returns the stored locale for the client, or the default. A store
// failure falls back to the default rather than failing the request.
func (s *LocaleService) Resolve(ctx context.Context, clientID string) string {
	if clientID == "" {
		return s.defaultLocale
	}
	locale, err := s.prefs.GetLocale(ctx, clientID)
	if err != nil {
		s.logger.Warn("locale lookup failed", zap.String("client_id", clientID), zap.Error(err))
		return s.defaultLocale
	}
	if !i18n.ValidLocale(locale) {
		return s.defaultLocale
	}
	return locale
}

// Set persists the client's locale choice.
func (s *LocaleService) Set(ctx context.Context, clientID, locale string) error {
	if !i18n.ValidLocale(locale) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported locale %q", locale))
	}
	if clientID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "client id is required")
	}
	if err := s.prefs.SetLocale(ctx, clientID, locale); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save locale")
	}
	return nil
}

// Table returns the full translation table for the given locale.
func (s *LocaleService) Table(locale string) map[string]string {
	if !i18n.ValidLocale(locale) {
		locale = s.defaultLocale
	}
	return s.bundle.Table(locale)
}
