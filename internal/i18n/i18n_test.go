package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateBothLocales(t *testing.T) {
	bundle := NewBundle(nil)

	assert.Equal(t, "Sign in", bundle.T(LocaleEnglish, "auth.signin"))
	assert.Equal(t, "Masuk", bundle.T(LocaleIndonesian, "auth.signin"))
}

func TestTranslateMissingKeyReturnsKey(t *testing.T) {
	bundle := NewBundle(nil)
	assert.Equal(t, "no.such.key", bundle.T(LocaleEnglish, "no.such.key"))
}

func TestTranslateUnknownLocaleFallsBackToEnglish(t *testing.T) {
	bundle := NewBundle(nil)
	assert.Equal(t, "Sign in", bundle.T("fr", "auth.signin"))
}

func TestValidLocale(t *testing.T) {
	assert.True(t, ValidLocale("en"))
	assert.True(t, ValidLocale("id"))
	assert.False(t, ValidLocale("fr"))
	assert.False(t, ValidLocale(""))
}

func TestTableCoversEveryKey(t *testing.T) {
	bundle := NewBundle(nil)
	table := bundle.Table(LocaleIndonesian)
	assert.Len(t, table, len(translations))
	for key, value := range table {
		assert.NotEmpty(t, value, key)
	}
}
