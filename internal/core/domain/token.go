package domain

// TokenPair is what a successful signup, signin or refresh hands back to
// the caller: a short-lived access token and a long-lived refresh token.
// Neither token is persisted; only the refresh token's digest is stored
// on the user record so a later refresh can be matched or rejected.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
