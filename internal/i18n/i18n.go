package i18n

import (
	"go.uber.org/zap"
)

const (
	LocaleEnglish    = "en"
	LocaleIndonesian = "id"
)

// Entry holds the per-locale strings for one translation key.
type Entry struct {
	EN string `json:"en"`
	ID string `json:"id"`
}

// Bundle resolves dotted translation keys for the two supported locales.
type Bundle struct {
	table  map[string]Entry
	logger *zap.Logger
}

// NewBundle builds a bundle over the static translation table.
func NewBundle(logger *zap.Logger) *Bundle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bundle{table: translations, logger: logger}
}

// ValidLocale reports whether the locale is one of the supported two.
func ValidLocale(locale string) bool {
	return locale == LocaleEnglish || locale == LocaleIndonesian
}

// T resolves key for the given locale. A missing key logs a warning and
// returns the key itself; a missing locale string falls back to English,
// then the key.
func (b *Bundle) T(locale, key string) string {
	entry, ok := b.table[key]
	if !ok {
		b.logger.Warn("translation key not found", zap.String("key", key))
		return key
	}

	var text string
	switch locale {
	case LocaleIndonesian:
		text = entry.ID
	default:
		text = entry.EN
	}
	if text == "" {
		text = entry.EN
	}
	if text == "" {
		return key
	}
	return text
}

// Table returns the full table for one locale, used to hydrate clients.
func (b *Bundle) Table(locale string) map[string]string {
	out := make(map[string]string, len(b.table))
	for key := range b.table {
		out[key] = b.T(locale, key)
	}
	return out
}
