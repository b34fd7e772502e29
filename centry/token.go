package centry

import (
	"time"

	"golang.org/x/oauth2"
)

// AccessToken returns the current access token, or "" when unauthorized.
func (c *Client) AccessToken() string { return c.accessToken }

// RefreshToken returns the current refresh token, or "" when unauthorized.
func (c *Client) RefreshToken() string { return c.refreshToken }

// TokenType returns the token type from the last grant, typically "Bearer".
func (c *Client) TokenType() string { return c.tokenType }

// Scope returns the scope granted by the last exchange, or "" when the
// server omitted it.
func (c *Client) Scope() string { return c.scope }

// CreatedAt returns the Unix timestamp the last token was issued at.
func (c *Client) CreatedAt() int64 { return c.createdAt }

// ExpiresIn returns the lifetime in seconds of the last token.
func (c *Client) ExpiresIn() int64 { return c.expiresIn }

// SetTokens restores a persisted access/refresh token pair, e.g. at the start
// of a session.
func (c *Client) SetTokens(accessToken, refreshToken string) {
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// applyGrantResponse is the single place the token fields are overwritten.
// Fields are assigned independently: a key the server omitted zeroes the
// matching field rather than failing.
func (c *Client) applyGrantResponse(parsed grantResponse) {
	c.accessToken = parsed.AccessToken
	c.refreshToken = parsed.RefreshToken
	c.tokenType = parsed.TokenType
	c.scope = parsed.Scope
	c.createdAt = parsed.CreatedAt
	c.expiresIn = parsed.ExpiresIn
}

// Token exports the current token state as an *oauth2.Token for persistence
// or interop with code built on golang.org/x/oauth2. Returns nil when the
// client holds no access token. Expiry is derived from the grant's
// created_at and expires_in when both are present.
func (c *Client) Token() *oauth2.Token {
	if c.accessToken == "" {
		return nil
	}
	tok := &oauth2.Token{
		AccessToken:  c.accessToken,
		RefreshToken: c.refreshToken,
		TokenType:    c.tokenType,
	}
	if c.createdAt > 0 && c.expiresIn > 0 {
		tok.Expiry = time.Unix(c.createdAt, 0).Add(time.Duration(c.expiresIn) * time.Second)
	}
	return tok
}

// SetToken restores token state from an *oauth2.Token. A nil token is a
// no-op.
func (c *Client) SetToken(tok *oauth2.Token) {
	if tok == nil {
		return
	}
	c.accessToken = tok.AccessToken
	c.refreshToken = tok.RefreshToken
	c.tokenType = tok.TokenType
}
