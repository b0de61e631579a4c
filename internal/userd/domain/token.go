package domain

// TokenPair is returned on login and on refresh: the short-lived access
// token, the long-lived refresh token, and the id of the principal they
// were issued for. On refresh the original refresh token is echoed back
// unchanged.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}
