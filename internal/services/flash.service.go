package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Flash is a one-shot message shown on the next page render
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

type flashClaims struct {
	Flash
	jwt.RegisteredClaims
}

// FlashSigner signs flash messages so they can travel in a cookie
type FlashSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewFlashSigner returns a signer keyed by secret. An empty secret is replaced
// by a random per-process key, so pending flashes do not survive a restart.
func NewFlashSigner(secret string) *FlashSigner {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		randomBytes := make([]byte, 32)
		if _, err := rand.Read(randomBytes); err != nil {
			secret = fmt.Sprintf("jelly-%d", time.Now().UnixNano())
			log.WithError(err).Warn("Random generation failed, using fallback flash key")
		} else {
			secret = hex.EncodeToString(randomBytes)
		}
		log.Debug("Generated per-process flash signing key")
	}

	return &FlashSigner{
		secret: []byte(secret),
		ttl:    5 * time.Minute,
	}
}

// Sign encodes flash as a signed token
func (f *FlashSigner) Sign(flash Flash) (string, error) {
	now := time.Now()
	claims := flashClaims{
		Flash: flash,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(f.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "jelly",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(f.secret)
}

// Verify decodes a token produced by Sign
func (f *FlashSigner) Verify(tokenString string) (*Flash, error) {
	claims := &flashClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return f.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer("jelly"))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid flash token")
	}
	return &claims.Flash, nil
}
