package centry

// DefaultBaseURL is the production Centry API host. Override Client.BaseURL
// to target a sandbox or a test server.
const DefaultBaseURL = "https://www.centry.cl"

// tokenEndpoint is the OAuth2 token endpoint, the one endpoint reachable
// without a bearer token.
const tokenEndpoint = "oauth/token"

// publicEndpoints lists the endpoints that must not carry an Authorization
// header. Checked by membership; never mutated after init.
var publicEndpoints = map[string]struct{}{
	tokenEndpoint: {},
}

// grantResponse represents the token endpoint's answer to a grant exchange.
// Every key is optional: missing keys decode to zero values, mirroring the
// server's lenient contract.
type grantResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	CreatedAt    int64  `json:"created_at"`
	ExpiresIn    int64  `json:"expires_in"`
}
