package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"storefront/internal/core/model"
	"storefront/internal/core/repository"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 10 * 24 * time.Hour

	// 64 bytes of entropy, hex encoded, matching the opaque refresh
	// token format clients already store.
	refreshTokenBytes = 64
)

// Claims are the verified contents of an access token. Admin is carried
// in the token so catalog write handlers can check the capability
// without a user lookup.
type Claims struct {
	UserID string `json:"uid"`
	Admin  bool   `json:"admin"`
	jwt.RegisteredClaims
}

type SessionService interface {
	IssueAccessToken(user *model.User) (string, error)
	VerifyAccessToken(token string) (*Claims, error)
	IssueRefreshToken(user *model.User) (string, error)
	VerifySession(userID, refreshToken string) (*model.User, error)
}

type sessionService struct {
	userRepo repository.UserRepository
	secret   []byte
}

// NewSessionService builds a session manager that signs access tokens
// with the given secret. The secret is injected here; it is never read
// from package state.
func NewSessionService(userRepo repository.UserRepository, secret string) SessionService {
	return &sessionService{
		userRepo: userRepo,
		secret:   []byte(secret),
	}
}

func (s *sessionService) IssueAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Admin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

func (s *sessionService) VerifyAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *sessionService) IssueRefreshToken(user *model.User) (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	user.Sessions = append(user.Sessions, model.Session{
		Token:     token,
		ExpiresAt: time.Now().Add(refreshTokenTTL).Unix(),
	})

	// The token is only valid once the session is persisted; roll the
	// append back on failure so the caller never hands out a token that
	// the store does not know about.
	if err := s.userRepo.Update(user); err != nil {
		user.Sessions = user.Sessions[:len(user.Sessions)-1]
		return "", err
	}
	return token, nil
}

func (s *sessionService) VerifySession(userID, refreshToken string) (*model.User, error) {
	if userID == "" || refreshToken == "" {
		return nil, ErrSessionNotFound
	}

	user, err := s.userRepo.FindByIDAndToken(userID, refreshToken)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	// The verdict is computed fresh on every call; nothing carries over
	// between verifications. Sessions are few per user, so a linear
	// scan is fine.
	now := time.Now().Unix()
	for _, session := range user.Sessions {
		if session.Token != refreshToken {
			continue
		}
		if session.Expired(now) {
			return nil, ErrSessionExpired
		}
		return user, nil
	}
	return nil, ErrSessionNotFound
}
