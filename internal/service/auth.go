package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/deppfellow/go-quizbank/internal/server"
)

// AuthService registers the Clerk secret key so the session middleware can
// verify tokens.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
