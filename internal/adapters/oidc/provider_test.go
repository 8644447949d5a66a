package oidc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports"
)

func TestNewProvider_ConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config ProviderConfig
	}{
		{"missing client ID", ProviderConfig{ClientSecret: "s", RedirectURL: "r", DiscoveryURL: "d"}},
		{"missing client secret", ProviderConfig{ClientID: "c", RedirectURL: "r", DiscoveryURL: "d"}},
		{"missing redirect URL", ProviderConfig{ClientID: "c", ClientSecret: "s", DiscoveryURL: "d"}},
		{"missing discovery URL", ProviderConfig{ClientID: "c", ClientSecret: "s", RedirectURL: "r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestProvider_Begin(t *testing.T) {
	p := &Provider{
		config: &oauth2.Config{
			ClientID:    "client",
			RedirectURL: "https://app/callback",
			Scopes:      []string{"openid", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://idp/auth",
				TokenURL: "https://idp/token",
			},
		},
	}

	authURL, state, nonce, err := p.Begin(context.Background(), ports.BeginInput{RedirectURL: "https://app/callback"})
	require.NoError(t, err)

	assert.Contains(t, authURL, "https://idp/auth")
	assert.Contains(t, authURL, "state="+state)
	assert.Contains(t, authURL, "nonce="+nonce)
	assert.Len(t, state, 32)
	assert.Len(t, nonce, 32)
	assert.NotEqual(t, state, nonce)
}

func TestProvider_Begin_MissingRedirect(t *testing.T) {
	p := &Provider{config: &oauth2.Config{}}

	_, _, _, err := p.Begin(context.Background(), ports.BeginInput{})
	assert.Error(t, err)
}

func TestProvider_Exchange_InputValidation(t *testing.T) {
	p := &Provider{config: &oauth2.Config{}}

	tests := []struct {
		name string
		in   ports.ExchangeInput
	}{
		{"missing code", ports.ExchangeInput{State: "s", Nonce: "n"}},
		{"missing state", ports.ExchangeInput{Code: "c", Nonce: "n"}},
		{"missing nonce", ports.ExchangeInput{Code: "c", State: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Exchange(context.Background(), tt.in)
			assert.Error(t, err)
		})
	}
}

func TestIDClaims_ToIdentity(t *testing.T) {
	exp := time.Now().Add(time.Hour)

	c := idClaims{
		Sub:         "42",
		Name:        "Ayesha Khan",
		Groups:      []string{"dashboard-admins"},
		OrgName:     "Pak-Turk Logistics",
		OrgLogo:     "https://cdn/logo.png",
		OrgLanguage: "tr",
		OrgCurrency: "TRY",
	}

	id := c.toIdentity(exp)
	assert.Equal(t, "42", id.UserID)
	assert.Equal(t, "Ayesha Khan", id.FullName)
	assert.Equal(t, []string{"dashboard-admins"}, id.Groups)
	assert.Equal(t, "Pak-Turk Logistics", id.CompanyName)
	assert.Equal(t, "tr", id.DefaultLanguage)
	assert.Equal(t, "TRY", id.DefaultCurrency)
	assert.Equal(t, exp, id.ExpiresAt)
}

func TestIDClaims_ToIdentity_AssemblesNameFromParts(t *testing.T) {
	c := idClaims{Sub: "42", GivenName: "Ayesha", FamilyName: "Khan"}

	id := c.toIdentity(time.Now())
	assert.Equal(t, "Ayesha Khan", id.FullName)
}

func TestMergeClaims_FillsOnlyEmptyFields(t *testing.T) {
	dst := idClaims{Sub: "42", Name: "Ayesha Khan"}
	src := idClaims{
		Sub:     "should-not-overwrite",
		Groups:  []string{"members"},
		OrgName: "Pak-Turk Logistics",
	}

	mergeClaims(&dst, src)

	assert.Equal(t, "42", dst.Sub)
	assert.Equal(t, "Ayesha Khan", dst.Name)
	assert.Equal(t, []string{"members"}, dst.Groups)
	assert.Equal(t, "Pak-Turk Logistics", dst.OrgName)
}

func TestGenerateRandomString(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s, err := generateRandomString(32)
		require.NoError(t, err)
		require.Len(t, s, 32)
		assert.False(t, seen[s], "random strings must not repeat")
		seen[s] = true
	}

	empty, err := generateRandomString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
