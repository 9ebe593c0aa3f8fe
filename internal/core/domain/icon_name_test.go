package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ikon/internal/core/domain"
)

func TestParseIconName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		validate bool
		simple   bool
		want     domain.IconName
		ok       bool
	}{
		{name: "prefix and name", raw: "mdi:home", validate: true, want: domain.IconName{Prefix: "mdi", Name: "home"}, ok: true},
		{name: "dash form", raw: "mdi-home-outline", validate: true, want: domain.IconName{Prefix: "mdi", Name: "home-outline"}, ok: true},
		{name: "provider without at", raw: "custom:mdi:home", validate: true, want: domain.IconName{Provider: "custom", Prefix: "mdi", Name: "home"}, ok: true},
		{name: "provider with at", raw: "@custom:mdi:home", validate: true, want: domain.IconName{Provider: "custom", Prefix: "mdi", Name: "home"}, ok: true},
		{name: "provider with at and dash form", raw: "@custom:mdi-home", validate: true, want: domain.IconName{Provider: "custom", Prefix: "mdi", Name: "home"}, ok: true},
		{name: "empty provider", raw: ":mdi:home", validate: true, want: domain.IconName{Prefix: "mdi", Name: "home"}, ok: true},
		{name: "too many colons", raw: "a:b:c:d", validate: true},
		{name: "at with too many colons", raw: "@a:b:c:d", validate: true},
		{name: "at without colon", raw: "@home", validate: true},
		{name: "simple name rejected", raw: "home", validate: true},
		{name: "simple name allowed", raw: "home", validate: true, simple: true, want: domain.IconName{Name: "home"}, ok: true},
		{name: "empty name", raw: "mdi:", validate: true},
		{name: "empty prefix", raw: ":home", validate: true},
		{name: "empty string", raw: "", validate: true},
		{name: "uppercase rejected when validating", raw: "mdi:Home", validate: true},
		{name: "uppercase accepted without validation", raw: "mdi:Home", want: domain.IconName{Prefix: "mdi", Name: "Home"}, ok: true},
		{name: "double hyphen rejected", raw: "mdi:home--outline", validate: true},
		{name: "trailing hyphen rejected", raw: "mdi:home-", validate: true},
		{name: "invalid provider", raw: "@Bad:mdi:home", validate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.ParseIconName(tt.raw, tt.validate, tt.simple)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIconName_RoundTrip(t *testing.T) {
	names := []domain.IconName{
		{Prefix: "mdi", Name: "home"},
		{Prefix: "material-symbols", Name: "arrow-back-ios-new"},
		{Provider: "local", Prefix: "brand", Name: "logo-2"},
	}

	for _, n := range names {
		t.Run(n.String(), func(t *testing.T) {
			parsed, ok := domain.ParseIconName(n.String(), true, false)
			require.True(t, ok)
			assert.Equal(t, n, parsed)

			colon := n.Provider + ":" + n.Prefix + ":" + n.Name
			parsed, ok = domain.ParseIconName(colon, true, false)
			require.True(t, ok)
			assert.Equal(t, n, parsed)
		})
	}
}

func TestIconName_String(t *testing.T) {
	assert.Equal(t, "mdi:home", domain.IconName{Prefix: "mdi", Name: "home"}.String())
	assert.Equal(t, "@p:mdi:home", domain.IconName{Provider: "p", Prefix: "mdi", Name: "home"}.String())
	assert.Equal(t, "home", domain.IconName{Name: "home"}.String())
	assert.Equal(t, "p:mdi", domain.SetKey{Provider: "p", Prefix: "mdi"}.String())
}

func TestIconName_Compare(t *testing.T) {
	a := domain.IconName{Prefix: "mdi", Name: "a"}
	b := domain.IconName{Prefix: "mdi", Name: "b"}
	c := domain.IconName{Provider: "x", Prefix: "aaa", Name: "a"}

	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))
	assert.Negative(t, b.Compare(c))
}

func TestMustParseIconName_Panics(t *testing.T) {
	assert.Panics(t, func() { domain.MustParseIconName("nope") })
	assert.NotPanics(t, func() { domain.MustParseIconName("mdi:home") })
}
