// Package centry provides a client for the Centry REST API with OAuth2
// authentication.
//
// The client holds the application's OAuth2 credentials and the most recent
// token set, builds authorization URLs, performs the standard grant exchanges
// (authorization code, refresh token, client credentials) and issues
// authenticated JSON requests against the API host.
//
// The client does not persist tokens, refresh them automatically, or retry
// failed calls; those policies belong to the caller. Read the token state off
// the client after a grant and store it however you like, then restore it with
// NewClientWithTokens or SetTokens in a later session.
//
// Usage:
//
//	client := centry.NewClient("your_client_id", "your_client_secret", "urn:ietf:wg:oauth:2.0:oob")
//
//	// Send the user here, then exchange the code they bring back:
//	fmt.Println(client.AuthorizationURL("public read_orders"))
//	if err := client.Authorize(code); err != nil {
//		log.Fatal(err)
//	}
//
//	// Authenticated API calls:
//	resp, err := client.Get("conexion/v1/sizes.json", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Status: %d, Body: %s\n", resp.StatusCode, resp.Body)
//
// A single Client instance is not safe for concurrent grant calls; callers
// that share one across goroutines must serialize Authorize, Refresh and
// ClientCredentials externally.
package centry
