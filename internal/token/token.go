package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession covers every way a session token can be bad:
// tampered, expired, wrong algorithm, malformed claims.
var ErrInvalidSession = errors.New("invalid session token")

const (
	// VerifyCodeTTL is how long a signup verification code stays valid.
	VerifyCodeTTL = 6 * time.Hour
	// ResetTokenTTL is how long a password reset token stays valid.
	ResetTokenTTL = 30 * time.Minute
)

// Issuer signs and validates stateless session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// SessionTTL is the configured session lifetime, also used as the
// cookie max-age.
func (i *Issuer) SessionTTL() time.Duration {
	return i.ttl
}

func (i *Issuer) IssueSession(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(i.ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// ParseSession returns the user id carried by a valid session token.
func (i *Issuer) ParseSession(tokenStr string) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidSession
	}
	return userID, nil
}

// VerificationCode draws a uniform 6-digit code from crypto/rand.
func VerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// ResetToken returns 20 random bytes hex-encoded (40 characters).
func ResetToken() (string, error) {
	return randomHex(20)
}

func randomHex(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
