package centry

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Authorize exchanges an authorization code, obtained by sending the user to
// AuthorizationURL, for an access/refresh token pair. On success the client's
// token fields hold the new values; read them off the client to persist them.
//
// Example:
//
//	if err := client.Authorize(code); err != nil {
//		log.Fatal(err)
//	}
//	save(client.AccessToken(), client.RefreshToken())
func (c *Client) Authorize(code string) error {
	return c.grant("authorization_code", map[string]interface{}{"code": code})
}

// Refresh exchanges the current refresh token for a new token pair. The
// client does not call this automatically; invoke it when the access token
// has expired.
func (c *Client) Refresh() error {
	return c.grant("refresh_token", map[string]interface{}{"refresh_token": c.refreshToken})
}

// ClientCredentials obtains a token pair using the client credentials grant,
// with no user interaction. A blank scope is omitted from the exchange
// entirely; the server treats an empty scope parameter differently from an
// absent one.
func (c *Client) ClientCredentials(scope string) error {
	extras := map[string]interface{}{}
	if strings.TrimSpace(scope) != "" {
		extras["scope"] = scope
	}
	return c.grant("client_credentials", extras)
}

// grant performs a token exchange against the token endpoint. All three
// public grant flows funnel through here: the payload always carries the
// application credentials and the grant type, with extras layered on top
// (extras win on key collision).
//
// The response body is decoded leniently: keys the server omits reset the
// matching token fields to their zero values. Only a body that is not JSON
// at all fails, with ErrInvalidGrantResponse, leaving the previous token
// state untouched.
func (c *Client) grant(grantType string, extras map[string]interface{}) error {
	payload := map[string]interface{}{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"redirect_uri":  c.redirectURI,
		"grant_type":    grantType,
	}
	for k, v := range extras {
		payload[k] = v
	}

	resp, err := c.Request(HttpPost, tokenEndpoint, nil, payload)
	if err != nil {
		return err
	}

	var parsed grantResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGrantResponse, err)
	}

	c.applyGrantResponse(parsed)
	return nil
}
