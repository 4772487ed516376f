package domain

// TokenScope distinguishes the three token kinds that share one signing scheme.
// A token is only ever accepted by the verifier for its own scope.
type TokenScope string

const (
	// ScopeAccess marks a short-lived token proving an authenticated session.
	ScopeAccess TokenScope = "access_token"
	// ScopeRefresh marks a long-lived token exchangeable for a new token pair.
	ScopeRefresh TokenScope = "refresh_token"
	// ScopeEmail marks a token embedded in email confirmation links; its subject
	// is an email address rather than a username.
	ScopeEmail TokenScope = "email_token"
)

// TokenPair is the result of a successful login or refresh rotation.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // Always "bearer"
}
