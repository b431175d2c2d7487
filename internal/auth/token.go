package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretBytes is the smallest decoded HS256 key accepted.
const MinSecretBytes = 32

type Reason string

const (
	ReasonEmpty       Reason = "empty"
	ReasonMalformed   Reason = "malformed"
	ReasonSignature   Reason = "signature"
	ReasonExpired     Reason = "expired"
	ReasonUnsupported Reason = "unsupported"
)

// TokenError classifies a rejected token. Every reason means the same
// thing to a client: unauthenticated.
type TokenError struct {
	Reason Reason
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return "token rejected: " + string(e.Reason)
	}
	return fmt.Sprintf("token rejected: %s: %v", e.Reason, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

type Claims = jwt.RegisteredClaims

// TokenService issues and validates HS256 session tokens. It holds no
// session state; a token is valid until it expires.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenService(secretBase64 string, ttl time.Duration) (*TokenService, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(secretBase64))
	if err != nil {
		return nil, fmt.Errorf("jwt secret must be base64: %w", err)
	}
	if len(key) < MinSecretBytes {
		return nil, fmt.Errorf("jwt secret must decode to at least %d bytes, got %d", MinSecretBytes, len(key))
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenService{key: key, ttl: ttl, now: time.Now}, nil
}

func (s *TokenService) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	now := s.now()
	claims := &Claims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, &TokenError{Reason: ReasonEmpty}
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, &TokenError{Reason: ReasonMalformed}
	}
	return claims, nil
}

// ExtractSubject checks the signature but not the time claims. Use
// Validate before trusting the subject.
func (s *TokenService) ExtractSubject(tokenString string) (string, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return "", classify(err)
	}
	return claims.Subject, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.key, nil
}

func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &TokenError{Reason: ReasonMalformed, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &TokenError{Reason: ReasonSignature, Err: err}
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return &TokenError{Reason: ReasonExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return &TokenError{Reason: ReasonUnsupported, Err: err}
	default:
		return &TokenError{Reason: ReasonMalformed, Err: err}
	}
}
