package centry

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Client is an OAuth2 client for the Centry API. It holds the registered
// application's credentials and the token set from the most recent grant
// exchange.
//
// The credential fields are fixed at construction. The token fields change
// only on a successful grant exchange or an explicit SetTokens/SetToken call;
// callers sharing a Client across goroutines must serialize those calls.
type Client struct {
	// BaseURL is the scheme and host requests are issued against. Defaults
	// to DefaultBaseURL.
	BaseURL string

	// HTTPClient performs the actual round-trips. Replace it to configure
	// timeouts or transports; the default has no timeout.
	HTTPClient *http.Client

	clientID     string
	clientSecret string
	redirectURI  string

	accessToken  string
	refreshToken string
	tokenType    string
	scope        string
	createdAt    int64
	expiresIn    int64
}

// Response carries the raw result of an API call. The client never interprets
// the status code: a 4xx or 5xx answer is still a Response, not an error, so
// the caller can inspect the body the API sent with it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewClient creates a Client for the given registered application.
//
// Parameters:
//   - clientID: The application's ID.
//   - clientSecret: The application's secret.
//   - redirectURI: The redirect URI registered for the application. Use
//     "urn:ietf:wg:oauth:2.0:oob" for out-of-band flows.
//
// The new client starts unauthorized; call Authorize, ClientCredentials, or
// restore persisted tokens with SetTokens before issuing API requests.
//
// Example:
//
//	client := centry.NewClient("your_client_id", "your_client_secret", "urn:ietf:wg:oauth:2.0:oob")
//	fmt.Println(client.AuthorizationURL("public read_orders"))
func NewClient(clientID, clientSecret, redirectURI string) *Client {
	return &Client{
		BaseURL:      DefaultBaseURL,
		HTTPClient:   &http.Client{},
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
	}
}

// NewClientWithTokens creates a Client resuming a previously persisted
// session, skipping re-authorization until the tokens expire.
func NewClientWithTokens(clientID, clientSecret, redirectURI, accessToken, refreshToken string) *Client {
	c := NewClient(clientID, clientSecret, redirectURI)
	c.accessToken = accessToken
	c.refreshToken = refreshToken
	return c
}

// ClientID returns the application ID the client was constructed with.
func (c *Client) ClientID() string { return c.clientID }

// RedirectURI returns the redirect URI the client was constructed with.
func (c *Client) RedirectURI() string { return c.redirectURI }

// AuthorizationURL builds the URL a user must visit to authorize the
// application for the given scope. Pure function: no network call, no state
// change.
//
// The result has the form
//
//	https://{host}/oauth/authorize?client_id=...&redirect_uri=...&response_type=code&scope=...
//
// with every value form-encoded (spaces in scope become '+').
func (c *Client) AuthorizationURL(scope string) string {
	v := url.Values{}
	v.Set("client_id", c.clientID)
	v.Set("redirect_uri", c.redirectURI)
	v.Set("response_type", "code")
	v.Set("scope", scope)
	return c.baseURL() + "/oauth/authorize?" + v.Encode()
}

// Request issues an API call and returns the raw response.
//
// Parameters:
//   - method: One of HttpGet, HttpPost, HttpPut, HttpDelete. Anything else
//     fails with ErrInvalidMethod before a request is built.
//   - endpoint: The endpoint path relative to the API host, e.g.
//     "conexion/v1/sizes.json".
//   - params: Values merged into the URL query string. Nil or empty means no
//     query string.
//   - payload: Serialized as the JSON request body when non-empty. Nil or
//     empty means no body.
//
// Every request carries Content-Type and Accept headers for JSON, and a
// bearer Authorization header unless the endpoint is the public token
// endpoint. Gzip-encoded response bodies are decompressed transparently.
//
// Only transport failures produce an error; a non-2xx status comes back as a
// normal Response for the caller to inspect.
//
// Example:
//
//	resp, err := client.Request(centry.HttpGet, "conexion/v1/products.json", url.Values{"page": {"2"}}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Status: %d, Body: %s\n", resp.StatusCode, resp.Body)
func (c *Client) Request(method HttpMethod, endpoint string, params url.Values, payload map[string]interface{}) (*Response, error) {
	req, err := c.newRequest(method, endpoint, params, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer reader.Close()
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Get issues a GET request to the endpoint.
func (c *Client) Get(endpoint string, params url.Values) (*Response, error) {
	return c.Request(HttpGet, endpoint, params, nil)
}

// Post issues a POST request with the payload as JSON body.
func (c *Client) Post(endpoint string, params url.Values, payload map[string]interface{}) (*Response, error) {
	return c.Request(HttpPost, endpoint, params, payload)
}

// Put issues a PUT request with the payload as JSON body.
func (c *Client) Put(endpoint string, params url.Values, payload map[string]interface{}) (*Response, error) {
	return c.Request(HttpPut, endpoint, params, payload)
}

// Delete issues a DELETE request. A payload may be passed as an optional
// trailing argument for the few endpoints that expect one.
func (c *Client) Delete(endpoint string, params url.Values, payload ...map[string]interface{}) (*Response, error) {
	var body map[string]interface{}
	if len(payload) > 0 {
		body = payload[0]
	}
	return c.Request(HttpDelete, endpoint, params, body)
}

// DownloadFile fetches an endpoint and writes the response body to destPath.
// If destPath is a directory, the filename is taken from the response's
// Content-Disposition header when present.
//
// Unlike Request, a non-2xx status is an error here: an error body must not
// end up on disk pretending to be the requested file.
func (c *Client) DownloadFile(method HttpMethod, endpoint string, params url.Values, destPath string) error {
	req, err := c.newRequest(method, endpoint, params, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("download failed with status %d: %s", resp.StatusCode, string(body))
	}

	if fi, err := os.Stat(destPath); err == nil && fi.IsDir() {
		if disposition := resp.Header.Get("Content-Disposition"); disposition != "" {
			if _, fields, err := mime.ParseMediaType(disposition); err == nil {
				if filename, ok := fields["filename"]; ok {
					destPath = filepath.Join(destPath, filename)
				}
			}
		}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// newRequest validates the method and assembles the outgoing request: target
// URL, optional JSON body, JSON headers, and the bearer header for
// non-public endpoints.
func (c *Client) newRequest(method HttpMethod, endpoint string, params url.Values, payload map[string]interface{}) (*http.Request, error) {
	if !method.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, string(method))
	}

	path := strings.TrimPrefix(endpoint, "/")
	target := c.baseURL() + "/" + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var body io.Reader
	if len(payload) > 0 {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(string(method), target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	_, public := publicEndpoints[path]
	if !public && c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	return req, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
