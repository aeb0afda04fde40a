package models

// User ist ein angemeldeter Bearbeiter.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// TokenResponse ist die Antwort der Auth-Endpunkte.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
