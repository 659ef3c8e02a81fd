package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelintrips/registration-api/internal/i18n"
)

type localeStoreStub struct {
	locales map[string]string
	getErr  error
	setErr  error
}

func (s *localeStoreStub) GetLocale(ctx context.Context, clientID string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.locales[clientID], nil
}

func (s *localeStoreStub) SetLocale(ctx context.Context, clientID, locale string) error {
	if s.setErr != nil {
		return s.setErr
	}
	if s.locales == nil {
		s.locales = make(map[string]string)
	}
	s.locales[clientID] = locale
	return nil
}

func newTestLocales(store *localeStoreStub) *LocaleService {
	return NewLocaleService(store, i18n.NewBundle(nil), nil, i18n.LocaleEnglish)
}

func TestLocaleResolveDefaults(t *testing.T) {
	svc := newTestLocales(&localeStoreStub{})

	assert.Equal(t, "en", svc.Resolve(context.Background(), ""))
	assert.Equal(t, "en", svc.Resolve(context.Background(), "client-1"))
}

func TestLocaleSetAndResolve(t *testing.T) {
	store := &localeStoreStub{}
	svc := newTestLocales(store)

	require.NoError(t, svc.Set(context.Background(), "client-1", "id"))
	assert.Equal(t, "id", svc.Resolve(context.Background(), "client-1"))
}

func TestLocaleSetRejectsUnsupported(t *testing.T) {
	svc := newTestLocales(&localeStoreStub{})

	require.Error(t, svc.Set(context.Background(), "client-1", "fr"))
	require.Error(t, svc.Set(context.Background(), "", "id"))
}

func TestLocaleResolveFallsBackOnStoreFailure(t *testing.T) {
	svc := newTestLocales(&localeStoreStub{getErr: errors.New("redis down")})
	assert.Equal(t, "en", svc.Resolve(context.Background(), "client-1"))
}

func TestLocaleTable(t *testing.T) {
	svc := newTestLocales(&localeStoreStub{})

	en := svc.Table("en")
	id := svc.Table("id")
	assert.Equal(t, "Sign in", en["auth.signin"])
	assert.Equal(t, "Masuk", id["auth.signin"])

	// unsupported locale falls back to the default
	fr := svc.Table("fr")
	assert.Equal(t, "Sign in", fr["auth.signin"])
}
