package models

// Principal is the identity asserted after a successful login. The PoC has
// exactly one account, so exactly one principal exists system-wide.
type Principal struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthTokens carries the signed session token the client attaches to
// subsequent requests. The server keeps no record of issued tokens.
type AuthTokens struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type SessionResponse struct {
	User Principal `json:"user"`
}
