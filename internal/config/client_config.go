package config

import "time"

const (
	baseURLVar      = "TALENT_API_URL"
	timeoutVar      = "TALENT_TIMEOUT"
	expiryMarginVar = "TALENT_EXPIRY_MARGIN"
	userAgentVar    = "TALENT_USER_AGENT"
	tokenPathVar    = "TALENT_TOKEN_PATH"
	refreshPathVar  = "TALENT_REFRESH_PATH"
)

type Client struct{}

var _ ClientConfig = Client{}

// GetBaseURL returns the API origin every request path is resolved against
func (Client) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://127.0.0.1:8000/api")
}

func (Client) GetRequestTimeout() time.Duration {
	return GetDuration(timeoutVar, 30*time.Second)
}

// GetExpiryMargin is how much validity an access token must have left to be sent as-is
func (Client) GetExpiryMargin() time.Duration {
	return GetDuration(expiryMarginVar, 1*time.Second)
}

// GetTokenPath is the login endpoint, relative to the base URL
func (Client) GetTokenPath() string {
	return GetEnv(tokenPathVar, "/token/")
}

func (Client) GetRefreshPath() string {
	return GetEnv(refreshPathVar, "/token/refresh/")
}

func (Client) GetUserAgent() string {
	return GetEnv(userAgentVar, "go-talent-client/1.0")
}
