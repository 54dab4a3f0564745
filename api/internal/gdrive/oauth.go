package gdrive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
)

var ErrOAuthDisabled = errors.New("gdrive: OAuth client is not configured")

// OAuth is the Google authorization-code client limited to files the app creates.
type OAuth struct {
	cfg *oauth2.Config
}

// NewOAuth returns a disabled client when clientID is empty.
func NewOAuth(clientID, clientSecret, redirectURL string) *OAuth {
	if strings.TrimSpace(clientID) == "" {
		return &OAuth{}
	}
	return &OAuth{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{drive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}}
}

// WithEndpoint swaps the Google endpoints, e.g. for a local token server.
func (o *OAuth) WithEndpoint(ep oauth2.Endpoint) *OAuth {
	if o.Enabled() {
		o.cfg.Endpoint = ep
	}
	return o
}

func (o *OAuth) Enabled() bool { return o != nil && o.cfg != nil }

// ClientID is handed to the page for the browser token flow.
func (o *OAuth) ClientID() string {
	if !o.Enabled() {
		return ""
	}
	return o.cfg.ClientID
}

func (o *OAuth) AuthURL(state string) (string, error) {
	if !o.Enabled() {
		return "", ErrOAuthDisabled
	}
	return o.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange trades the consent code for an access token.
func (o *OAuth) Exchange(ctx context.Context, code string) (oauth2.TokenSource, error) {
	if !o.Enabled() {
		return nil, ErrOAuthDisabled
	}
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("gdrive: empty authorization code")
	}
	tok, err := o.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("gdrive: token exchange: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, errors.New("gdrive: token response without access_token")
	}
	return oauth2.StaticTokenSource(tok), nil
}

// BearerToken wraps an access token the browser obtained on its own.
func BearerToken(accessToken string) (oauth2.TokenSource, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.New("gdrive: empty access token")
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}), nil
}
