package request

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
	ClientAPI    = "api"
)

// ResolveClientType trusts an explicit X-Client-Type header and otherwise
// guesses from the User-Agent. Bots and tools like curl count as API clients.
func ResolveClientType(header, userAgent string) string {
	switch h := strings.ToLower(strings.TrimSpace(header)); h {
	case ClientWeb, ClientMobile, ClientAPI:
		return h
	}

	if strings.TrimSpace(userAgent) == "" {
		return ClientAPI
	}
	parser := ua.New(userAgent)
	if parser.Bot() || parser.Mozilla() == "" {
		return ClientAPI
	}
	return ClientWeb
}

// IsWebClient reports whether tokens should also be delivered as cookies.
func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
