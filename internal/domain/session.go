package domain

// Session is the credential and identity held for the signed-in user.
type Session struct {
	AccessToken  string
	RefreshToken string
	Username     string
	UserID       string
	Role         Role
}

// HasCredential reports whether a bearer token is held.
func (s Session) HasCredential() bool {
	return s.AccessToken != ""
}

// TokenPair is the response of the token endpoint.
type TokenPair struct {
	Access  string
	Refresh string
}

// CurrentUser is the identity returned by the current-user endpoint.
// ID is empty when the backend omits it.
type CurrentUser struct {
	ID       string
	Username string
	Role     Role
}
