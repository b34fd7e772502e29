package centry

// HttpMethod represents an HTTP method.
type HttpMethod string

// HTTP method constants. These are the only verbs the Centry API accepts;
// Request rejects anything else with ErrInvalidMethod.
const (
	HttpGet    HttpMethod = "GET"
	HttpPost   HttpMethod = "POST"
	HttpPut    HttpMethod = "PUT"
	HttpDelete HttpMethod = "DELETE"
)

func (m HttpMethod) valid() bool {
	switch m {
	case HttpGet, HttpPost, HttpPut, HttpDelete:
		return true
	}
	return false
}
