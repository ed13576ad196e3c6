package response

import "github.com/sangkips/commandes-api/internal/domain/entity"

// Session is the body of a successful login or refresh
type Session struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	// ExpiresIn is the access token lifetime in seconds
	ExpiresIn int64 `json:"expires_in"`
}
