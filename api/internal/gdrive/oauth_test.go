package gdrive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestOAuthDisabled(t *testing.T) {
	o := NewOAuth("", "", "")
	assert.False(t, o.Enabled())
	assert.Empty(t, o.ClientID())

	_, err := o.AuthURL("state")
	assert.ErrorIs(t, err, ErrOAuthDisabled)
	_, err = o.Exchange(context.Background(), "code")
	assert.ErrorIs(t, err, ErrOAuthDisabled)
}

func TestOAuthAuthURL(t *testing.T) {
	o := NewOAuth("client-1", "secret", "http://localhost:8000/oauth2/callback")
	raw, err := o.AuthURL("st-42")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "st-42", q.Get("state"))
	assert.Equal(t, "https://www.googleapis.com/auth/drive.file", q.Get("scope"))
	assert.Equal(t, "http://localhost:8000/oauth2/callback", q.Get("redirect_uri"))
}

func TestOAuthExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	o := NewOAuth("client-1", "secret", "http://localhost/cb").
		WithEndpoint(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"})

	ts, err := o.Exchange(context.Background(), "good")
	require.NoError(t, err)
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "at-1", tok.AccessToken)

	_, err = o.Exchange(context.Background(), "bad")
	assert.Error(t, err)

	_, err = o.Exchange(context.Background(), "")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	_, err := BearerToken("  ")
	assert.Error(t, err)

	ts, err := BearerToken("abc")
	require.NoError(t, err)
	tok, _ := ts.Token()
	assert.Equal(t, "abc", tok.AccessToken)
}
