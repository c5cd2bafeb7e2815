package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// defaultUserInfoURL is Google's OpenID Connect userinfo endpoint.
const defaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// ErrNoEmail is returned when the identity provider reports no email address.
var ErrNoEmail = errors.New("identity provider returned no email")

// Identity is the subset of the userinfo response the planner needs.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Google runs the OAuth2 authorization-code flow against Google.
// A zero ClientID leaves the flow disabled; every other endpoint of the API
// keeps working without sign-in configured.
type Google struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewGoogle builds the flow from client credentials. Returns a disabled flow
// when clientID is empty.
func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	if clientID == "" {
		return &Google{}
	}
	return &Google{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: defaultUserInfoURL,
	}
}

// Enabled reports whether sign-in is configured.
func (g *Google) Enabled() bool {
	return g.config != nil
}

// AuthCodeURL builds the provider redirect URL carrying the given state.
func (g *Google) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and fetches the identity
// behind it.
func (g *Google) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	client := g.config.Client(ctx, token)
	resp, err := client.Get(g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("userinfo status %d: %s", resp.StatusCode, body)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if id.Email == "" {
		return nil, ErrNoEmail
	}
	if id.Name == "" {
		id.Name = id.Email
	}
	return &id, nil
}
