package oidc

// Package oidc provides the enterprise SSO adapter built on OIDC/OAuth2.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/ports"
)

// Provider implements the AuthProvider port using OIDC/OAuth2.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client

	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	DiscoveryURL string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new OIDC provider. It performs a single discovery
// fetch against the issuer.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if config.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	p := &Provider{httpClient: httpClient}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	p.oidcProvider = op
	p.verifier = op.Verifier(&gooidc.Config{ClientID: config.ClientID})

	p.config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       strings.Fields(config.Scope),
		Endpoint:     op.Endpoint(),
	}

	return p, nil
}

func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}

	state, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}

	nonce, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}

	authURL := p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_type", "code"),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)

	return authURL, state, nonce, nil
}

func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainsession.Identity, error) {
	if in.Code == "" {
		return domainsession.Identity{}, errors.New("authorization code is required")
	}
	if in.State == "" {
		return domainsession.Identity{}, errors.New("state is required")
	}
	if in.Nonce == "" {
		return domainsession.Identity{}, errors.New("nonce is required")
	}

	token, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return domainsession.Identity{}, fmt.Errorf("exchange code for token: %w", err)
	}

	claims, err := p.extractClaims(ctx, token, in.Nonce)
	if err != nil {
		return domainsession.Identity{}, fmt.Errorf("extract id_token: %w", err)
	}

	// Fill missing fields from the userinfo endpoint.
	if claims.Sub == "" || claims.Name == "" {
		if fillErr := p.fillFromUserInfo(ctx, token.AccessToken, &claims); fillErr != nil {
			return domainsession.Identity{}, fmt.Errorf("get user info: %w", fillErr)
		}
	}

	expiresAt := time.Now().Add(time.Hour)
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry
	}

	return claims.toIdentity(expiresAt), nil
}

// idClaims is the superset of standard OIDC claims and the organization
// claims our IdP tenant attaches to dashboard users.
type idClaims struct {
	Sub        string   `json:"sub"`
	Name       string   `json:"name"`
	GivenName  string   `json:"given_name"`
	FamilyName string   `json:"family_name"`
	Groups     []string `json:"groups"`
	Nonce      string   `json:"nonce"`

	OrgName     string `json:"org_name"`
	OrgLogo     string `json:"org_logo"`
	OrgLanguage string `json:"org_language"`
	OrgCurrency string `json:"org_currency"`
}

func (c idClaims) toIdentity(expiresAt time.Time) domainsession.Identity {
	fullName := c.Name
	if fullName == "" {
		fullName = strings.TrimSpace(c.GivenName + " " + c.FamilyName)
	}
	return domainsession.Identity{
		UserID:          c.Sub,
		FullName:        fullName,
		Groups:          c.Groups,
		CompanyName:     c.OrgName,
		CompanyLogo:     c.OrgLogo,
		DefaultLanguage: c.OrgLanguage,
		DefaultCurrency: c.OrgCurrency,
		ExpiresAt:       expiresAt,
	}
}

func (p *Provider) extractClaims(ctx context.Context, tok *oauth2.Token, expectedNonce string) (idClaims, error) {
	var claims idClaims
	if !p.hasOpenIDScope() {
		return claims, nil
	}
	rawID, err := getIDTokenFromToken(tok)
	if err != nil {
		return claims, err
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return claims, fmt.Errorf("verify id_token: %w", err)
	}
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return claims, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}
	if expectedNonce != "" && claims.Nonce != expectedNonce {
		return idClaims{}, errors.New("invalid nonce")
	}
	return claims, nil
}

func (p *Provider) fillFromUserInfo(ctx context.Context, accessToken string, claims *idClaims) error {
	ui, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	if err != nil {
		return fmt.Errorf("fetch user info: %w", err)
	}
	var info idClaims
	if claimsErr := ui.Claims(&info); claimsErr != nil {
		return fmt.Errorf("decode user info: %w", claimsErr)
	}
	mergeClaims(claims, info)
	return nil
}

// mergeClaims fills empty fields of dst from src.
func mergeClaims(dst *idClaims, src idClaims) {
	if dst.Sub == "" {
		dst.Sub = src.Sub
	}
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.GivenName == "" {
		dst.GivenName = src.GivenName
	}
	if dst.FamilyName == "" {
		dst.FamilyName = src.FamilyName
	}
	if len(dst.Groups) == 0 {
		dst.Groups = src.Groups
	}
	if dst.OrgName == "" {
		dst.OrgName = src.OrgName
	}
	if dst.OrgLogo == "" {
		dst.OrgLogo = src.OrgLogo
	}
	if dst.OrgLanguage == "" {
		dst.OrgLanguage = src.OrgLanguage
	}
	if dst.OrgCurrency == "" {
		dst.OrgCurrency = src.OrgCurrency
	}
}

// generateRandomString generates a cryptographically secure URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}

// hasOpenIDScope reports whether the configured scopes include "openid".
func (p *Provider) hasOpenIDScope() bool {
	for _, sc := range p.config.Scopes {
		if sc == "openid" {
			return true
		}
	}
	return false
}

// getIDTokenFromToken extracts the id_token from oauth2.Token.
func getIDTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	raw := tok.Extra("id_token")
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}
