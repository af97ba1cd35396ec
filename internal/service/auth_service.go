package service

import (
	"errors"
	"time"

	"rag-chat-be/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authService verifies the single operator account configured through the
// environment. There is no user table; this backend serves one frontend
// with one credential pair.
type authService struct {
	username     string
	passwordHash string
	jwtSecret    string
}

func NewAuthService(username, passwordHash, jwtSecret string) IAuthService {
	return &authService{
		username:     username,
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
	}
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username != s.username {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	expiry := time.Hour * 24
	claims := jwt.MapClaims{
		"username": req.Username,
		"exp":      time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     signedToken,
		ExpiresIn: int64(expiry.Seconds()),
	}, nil
}
