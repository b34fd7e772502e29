package centry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// grantRecord captures what the mock token endpoint saw in the last exchange.
type grantRecord struct {
	payload       map[string]interface{}
	authorization string
}

// tokenServer mocks the token endpoint: it records the last grant payload and
// authorization header, and answers with the configured body.
func tokenServer(t *testing.T, respond func(w http.ResponseWriter)) (*httptest.Server, *grantRecord) {
	t.Helper()

	state := &grantRecord{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.Empty(t, r.URL.RawQuery)

		state.authorization = r.Header.Get("Authorization")
		state.payload = map[string]interface{}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&state.payload))

		respond(w)
	}))
	t.Cleanup(server.Close)

	return server, state
}

func grantJSON(fields map[string]interface{}) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(fields)
	}
}

func TestAuthorize(t *testing.T) {
	server, state := tokenServer(t, grantJSON(map[string]interface{}{
		"access_token":  "at-1",
		"refresh_token": "rt-1",
		"token_type":    "Bearer",
		"scope":         "public",
		"created_at":    1700000000,
		"expires_in":    7200,
	}))

	client := NewClient("cid", "sec", "urn:ietf:wg:oauth:2.0:oob")
	client.BaseURL = server.URL

	require.NoError(t, client.Authorize("the-code"))

	require.Empty(t, state.authorization)
	require.Equal(t, "authorization_code", state.payload["grant_type"])
	require.Equal(t, "the-code", state.payload["code"])
	require.Equal(t, "cid", state.payload["client_id"])
	require.Equal(t, "sec", state.payload["client_secret"])
	require.Equal(t, "urn:ietf:wg:oauth:2.0:oob", state.payload["redirect_uri"])

	require.Equal(t, "at-1", client.AccessToken())
	require.Equal(t, "rt-1", client.RefreshToken())
	require.Equal(t, "Bearer", client.TokenType())
	require.Equal(t, "public", client.Scope())
	require.Equal(t, int64(1700000000), client.CreatedAt())
	require.Equal(t, int64(7200), client.ExpiresIn())
}

func TestRefresh(t *testing.T) {
	server, state := tokenServer(t, grantJSON(map[string]interface{}{
		"access_token":  "at-new",
		"refresh_token": "rt-new",
		"token_type":    "Bearer",
	}))

	client := NewClientWithTokens("cid", "sec", "urn:ietf:wg:oauth:2.0:oob", "at-old", "rt-old")
	client.BaseURL = server.URL

	require.NoError(t, client.Refresh())

	// The token endpoint never sees a bearer header, even mid-session.
	require.Empty(t, state.authorization)
	require.Equal(t, "refresh_token", state.payload["grant_type"])
	require.Equal(t, "rt-old", state.payload["refresh_token"])

	require.NotEqual(t, "at-old", client.AccessToken())
	require.Equal(t, "at-new", client.AccessToken())
	require.Equal(t, "rt-new", client.RefreshToken())
}

func TestClientCredentials(t *testing.T) {
	tests := []struct {
		name      string
		scope     string
		wantScope bool
	}{
		{"blank scope is omitted", "", false},
		{"whitespace scope is omitted", "   ", false},
		{"scope is forwarded", "public", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, state := tokenServer(t, grantJSON(map[string]interface{}{
				"access_token": "at-cc",
				"token_type":   "Bearer",
			}))

			client := NewClient("cid", "sec", "urn:ietf:wg:oauth:2.0:oob")
			client.BaseURL = server.URL

			require.NoError(t, client.ClientCredentials(tc.scope))

			require.Equal(t, "client_credentials", state.payload["grant_type"])
			_, present := state.payload["scope"]
			require.Equal(t, tc.wantScope, present)
			if tc.wantScope {
				require.Equal(t, tc.scope, state.payload["scope"])
			}
			require.Equal(t, "at-cc", client.AccessToken())
		})
	}
}

func TestGrantMalformedResponse(t *testing.T) {
	server, _ := tokenServer(t, func(w http.ResponseWriter) {
		w.Write([]byte("<html>definitely not json</html>"))
	})

	client := NewClientWithTokens("cid", "sec", "urn:ietf:wg:oauth:2.0:oob", "at-old", "rt-old")
	client.BaseURL = server.URL

	err := client.Refresh()
	require.ErrorIs(t, err, ErrInvalidGrantResponse)

	// Previous token state survives a malformed exchange.
	require.Equal(t, "at-old", client.AccessToken())
	require.Equal(t, "rt-old", client.RefreshToken())
}

func TestGrantMissingKeys(t *testing.T) {
	server, _ := tokenServer(t, grantJSON(map[string]interface{}{
		"access_token": "at-only",
	}))

	client := NewClientWithTokens("cid", "sec", "urn:ietf:wg:oauth:2.0:oob", "at-old", "rt-old")
	client.BaseURL = server.URL

	require.NoError(t, client.Refresh())

	// Keys the server omitted zero the matching fields instead of failing.
	require.Equal(t, "at-only", client.AccessToken())
	require.Empty(t, client.RefreshToken())
	require.Empty(t, client.Scope())
	require.Zero(t, client.ExpiresIn())
}

func TestTokenInterop(t *testing.T) {
	t.Run("nil before authorization", func(t *testing.T) {
		client := NewClient("cid", "sec", "urn:ietf:wg:oauth:2.0:oob")
		require.Nil(t, client.Token())
	})

	t.Run("exports the grant as an oauth2.Token", func(t *testing.T) {
		server, _ := tokenServer(t, grantJSON(map[string]interface{}{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"token_type":    "Bearer",
			"created_at":    1700000000,
			"expires_in":    7200,
		}))

		client := NewClient("cid", "sec", "urn:ietf:wg:oauth:2.0:oob")
		client.BaseURL = server.URL
		require.NoError(t, client.ClientCredentials("public"))

		tok := client.Token()
		require.NotNil(t, tok)
		require.Equal(t, "at-1", tok.AccessToken)
		require.Equal(t, "rt-1", tok.RefreshToken)
		require.Equal(t, "Bearer", tok.TokenType)
		require.Equal(t, time.Unix(1700000000, 0).Add(7200*time.Second), tok.Expiry)
	})

	t.Run("restores state from an oauth2.Token", func(t *testing.T) {
		client := NewClient("cid", "sec", "urn:ietf:wg:oauth:2.0:oob")

		src := NewClientWithTokens("cid", "sec", "urn:ietf:wg:oauth:2.0:oob", "at-p", "rt-p")
		client.SetToken(src.Token())

		require.Equal(t, "at-p", client.AccessToken())
		require.Equal(t, "rt-p", client.RefreshToken())

		client.SetToken(nil)
		require.Equal(t, "at-p", client.AccessToken())
	})
}
