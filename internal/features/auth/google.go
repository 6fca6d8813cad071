package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/features/user"
	"github.com/jdverbeke/cinevault-server-go/pkg/config"
)

// GoogleVerifier validates Google identity tokens. Wrapped in an interface so
// handler tests can stub the network call.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleIdentity, error)
}

// GoogleIdentity is the subset of the ID token payload the auth flow needs.
type GoogleIdentity struct {
	Subject string
	Email   string
	Picture string
}

type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a verifier bound to the configured OAuth client.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, rawIDToken string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoogleTokenInvalid, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrGoogleTokenInvalid
	}

	picture, _ := payload.Claims["picture"].(string)

	return &GoogleIdentity{
		Subject: payload.Subject,
		Email:   email,
		Picture: picture,
	}, nil
}

// NewGoogleOAuthConfig builds the oauth2 config for the authorization-code
// flow used by web clients.
func NewGoogleOAuthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// ExchangeGoogleCode swaps an authorization code for an ID token.
func ExchangeGoogleCode(ctx context.Context, oauthCfg *oauth2.Config, code string) (string, error) {
	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGoogleTokenInvalid, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", ErrGoogleTokenInvalid
	}

	return rawIDToken, nil
}

// LoginWithGoogle signs a verified Google identity into an account, creating
// the profile on first sign-in.
func LoginWithGoogle(db *gorm.DB, identity *GoogleIdentity, cfg TokenConfig) (*AuthResponse, error) {
	var picture, subject *string
	if identity.Picture != "" {
		picture = &identity.Picture
	}
	if identity.Subject != "" {
		subject = &identity.Subject
	}

	usr, err := user.EnsureProfile(db, identity.Email, picture, subject)
	if err != nil {
		return nil, err
	}

	return issueTokens(db, usr, cfg)
}
